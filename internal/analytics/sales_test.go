package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boutiqo/server/internal/gateway"
)

func TestBuildSalesReport(t *testing.T) {
	rows := []gateway.Sale{
		{TotalAmount: 1000, PaymentMethod: "cash"},
		{TotalAmount: 2000, PaymentMethod: "card"},
	}

	report := BuildSalesReport(rows, 30)

	assert.Equal(t, 30, report.PeriodDays)
	assert.Equal(t, 3000.0, report.TotalRevenue)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, 1500.0, report.AverageSale)
	assert.Equal(t, map[string]int{"cash": 1, "card": 1}, report.PaymentMethods)
	assert.Empty(t, report.Message)
}

func TestBuildSalesReportNoSales(t *testing.T) {
	report := BuildSalesReport(nil, 7)

	assert.Equal(t, NoSalesMessage, report.Message)
	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.SalesCount)
	assert.Zero(t, report.AverageSale)
}

func TestBuildSalesReportNullAmountsCountAsZero(t *testing.T) {
	// a null total_amount unmarshals to the zero value
	rows := []gateway.Sale{
		{TotalAmount: 0, PaymentMethod: "cash"},
		{TotalAmount: 500, PaymentMethod: "cash"},
	}

	report := BuildSalesReport(rows, 30)

	assert.Equal(t, 500.0, report.TotalRevenue)
	assert.Equal(t, 2, report.SalesCount)
	assert.Equal(t, 250.0, report.AverageSale)
}

func TestBuildFinancialHealth(t *testing.T) {
	sales := &SalesReport{TotalRevenue: 10000, SalesCount: 4}
	expenses := []gateway.Expense{{Amount: 2500}, {Amount: 1500}}

	health := BuildFinancialHealth(sales, expenses, 30)

	assert.Equal(t, 10000.0, health.Revenue)
	assert.Equal(t, 4000.0, health.Expenses)
	assert.Equal(t, 6000.0, health.Profit)
	assert.Equal(t, 60.0, health.MarginPercent)
}

func TestBuildFinancialHealthZeroRevenue(t *testing.T) {
	sales := &SalesReport{Message: NoSalesMessage}
	expenses := []gateway.Expense{{Amount: 500}}

	health := BuildFinancialHealth(sales, expenses, 30)

	assert.Equal(t, -500.0, health.Profit)
	assert.Equal(t, 0.0, health.MarginPercent, "margin must not divide by zero")
}
