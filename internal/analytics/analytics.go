package analytics

import (
	"context"
	"time"

	"github.com/boutiqo/server/internal/gateway"
)

const (
	// DefaultWindowDays is applied when a tool omits the days argument.
	DefaultWindowDays = 30
	// DefaultTopLimit is applied when the top-products limit is omitted.
	DefaultTopLimit = 5
)

// Service exposes the aggregation operations the assistant can invoke as
// tools. Dashboards call the same methods directly. Each operation fetches
// rows from the gateway and delegates to a pure compute function.
type Service struct {
	store gateway.Store
}

func NewService(store gateway.Store) *Service {
	return &Service{store: store}
}

// normalizeDays applies the default window to missing or invalid values.
func normalizeDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

func windowStart(days int) time.Time {
	return time.Now().AddDate(0, 0, -normalizeDays(days))
}

// Debts is a straight filtered read, no aggregation.
func (s *Service) Debts(ctx context.Context, status, shopID string) ([]gateway.Debt, error) {
	return s.store.Debts(ctx, status, shopID)
}
