package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqo/server/internal/gateway"
)

func TestBuildExpenseReport(t *testing.T) {
	rows := []gateway.Expense{
		{Amount: 5000, Category: "loyer", Description: "loyer boutique", IsRecurring: true},
		{Amount: 1200, Category: "transport", Description: "livraisons"},
		{Amount: 800, Category: "loyer", Description: "entrepôt", IsRecurring: true},
		{Amount: 300, Description: "divers"},
	}

	report := BuildExpenseReport(rows, 30)

	assert.Equal(t, 7300.0, report.Total)
	assert.Equal(t, 5800.0, report.ByCategory["loyer"])
	assert.Equal(t, 1200.0, report.ByCategory["transport"])
	assert.Equal(t, 300.0, report.ByCategory["autre"], "missing category falls back")
	assert.Equal(t, 5800.0, report.RecurringTotal)
	assert.Equal(t, 2, report.RecurringCount)

	require.Len(t, report.Top, 4)
	assert.Equal(t, "loyer boutique", report.Top[0].Description)
	assert.Equal(t, "livraisons", report.Top[1].Description)
}

func TestBuildExpenseReportTopFiveTruncation(t *testing.T) {
	var rows []gateway.Expense
	for i := 0; i < 8; i++ {
		rows = append(rows, gateway.Expense{Amount: float64(100 * (i + 1)), Description: "e"})
	}

	report := BuildExpenseReport(rows, 30)

	require.Len(t, report.Top, 5)
	assert.Equal(t, 800.0, report.Top[0].Amount)
	assert.Equal(t, 400.0, report.Top[4].Amount)
}

func TestBuildExpenseReportEmpty(t *testing.T) {
	report := BuildExpenseReport(nil, 15)

	assert.Equal(t, 15, report.PeriodDays)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Top)
	assert.Zero(t, report.RecurringCount)
}
