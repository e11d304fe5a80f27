package analytics

import (
	"context"
	"sort"

	"github.com/boutiqo/server/internal/gateway"
)

// ExpenseLine is one entry of the top-expenses listing.
type ExpenseLine struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

// ExpenseReport breaks spending down by category and recurrence.
type ExpenseReport struct {
	PeriodDays     int                `json:"period_days"`
	Total          float64            `json:"total"`
	ByCategory     map[string]float64 `json:"by_category"`
	RecurringTotal float64            `json:"recurring_total"`
	RecurringCount int                `json:"recurring_count"`
	Top            []ExpenseLine      `json:"top_expenses"`
}

func (s *Service) AnalyzeExpenses(ctx context.Context, days int, shopID string) (*ExpenseReport, error) {
	days = normalizeDays(days)
	rows, err := s.store.Expenses(ctx, windowStart(days), shopID)
	if err != nil {
		return nil, err
	}
	return BuildExpenseReport(rows, days), nil
}

// BuildExpenseReport computes the total, per-category sums, the recurring
// subtotal and the five largest expenses (ties keep original order).
func BuildExpenseReport(rows []gateway.Expense, days int) *ExpenseReport {
	report := &ExpenseReport{
		PeriodDays: days,
		ByCategory: make(map[string]float64),
	}

	lines := make([]ExpenseLine, 0, len(rows))
	for _, e := range rows {
		report.Total += e.Amount
		category := e.Category
		if category == "" {
			category = "autre"
		}
		report.ByCategory[category] += e.Amount
		if e.IsRecurring {
			report.RecurringTotal += e.Amount
			report.RecurringCount++
		}
		lines = append(lines, ExpenseLine{
			Description: e.Description,
			Category:    category,
			Amount:      e.Amount,
		})
	}

	sort.SliceStable(lines, func(a, b int) bool {
		return lines[a].Amount > lines[b].Amount
	})
	if len(lines) > 5 {
		lines = lines[:5]
	}
	report.Top = lines
	return report
}
