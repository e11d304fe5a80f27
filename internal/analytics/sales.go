package analytics

import (
	"context"
	"math"

	"github.com/boutiqo/server/internal/gateway"
)

// NoSalesMessage distinguishes "no activity" from "zero activity" for callers.
const NoSalesMessage = "aucune vente trouvée sur la période"

// SalesReport summarises revenue over a time window.
type SalesReport struct {
	PeriodDays     int            `json:"period_days"`
	TotalRevenue   float64        `json:"total_revenue"`
	SalesCount     int            `json:"sales_count"`
	AverageSale    float64        `json:"average_sale"`
	PaymentMethods map[string]int `json:"payment_methods,omitempty"`
	Message        string         `json:"message,omitempty"`
}

func (s *Service) AnalyzeSales(ctx context.Context, days int, shopID string) (*SalesReport, error) {
	days = normalizeDays(days)
	rows, err := s.store.Sales(ctx, windowStart(days), shopID)
	if err != nil {
		return nil, err
	}
	return BuildSalesReport(rows, days), nil
}

// BuildSalesReport folds sale rows into totals and a payment-method
// histogram. An empty window yields the explicit no-sales marker.
func BuildSalesReport(rows []gateway.Sale, days int) *SalesReport {
	if len(rows) == 0 {
		return &SalesReport{PeriodDays: days, Message: NoSalesMessage}
	}

	report := &SalesReport{
		PeriodDays:     days,
		SalesCount:     len(rows),
		PaymentMethods: make(map[string]int),
	}
	for _, sale := range rows {
		report.TotalRevenue += sale.TotalAmount
		if sale.PaymentMethod != "" {
			report.PaymentMethods[sale.PaymentMethod]++
		}
	}
	report.AverageSale = math.Round(report.TotalRevenue/float64(report.SalesCount)*100) / 100
	return report
}

// FinancialHealth composes revenue with expenses over the same window.
type FinancialHealth struct {
	PeriodDays    int     `json:"period_days"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

func (s *Service) FinancialHealth(ctx context.Context, days int, shopID string) (*FinancialHealth, error) {
	days = normalizeDays(days)
	sales, err := s.AnalyzeSales(ctx, days, shopID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses(ctx, windowStart(days), shopID)
	if err != nil {
		return nil, err
	}
	return BuildFinancialHealth(sales, expenses, days), nil
}

// BuildFinancialHealth derives profit and margin, guarding the zero-revenue
// division.
func BuildFinancialHealth(sales *SalesReport, expenses []gateway.Expense, days int) *FinancialHealth {
	var spent float64
	for _, e := range expenses {
		spent += e.Amount
	}

	health := &FinancialHealth{
		PeriodDays: days,
		Revenue:    sales.TotalRevenue,
		Expenses:   spent,
		Profit:     sales.TotalRevenue - spent,
	}
	if health.Revenue != 0 {
		health.MarginPercent = math.Round(health.Profit/health.Revenue*100*100) / 100
	}
	return health
}
