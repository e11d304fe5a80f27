package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/boutiqo/server/internal/gateway"
)

// ProductRevenue accumulates sold quantity and revenue for one product.
type ProductRevenue struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

func (s *Service) TopProducts(ctx context.Context, limit int, shopID string) ([]ProductRevenue, error) {
	items, err := s.store.SaleItems(ctx, time.Time{}, shopID)
	if err != nil {
		return nil, err
	}
	return RankTopProducts(items, limit), nil
}

// RankTopProducts accumulates per-product quantity and revenue
// (quantity x unit price), sorts by revenue descending and truncates.
// Ties keep insertion order.
func RankTopProducts(items []gateway.SaleItem, limit int) []ProductRevenue {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	index := make(map[string]int)
	ranked := make([]ProductRevenue, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		i, ok := index[item.Product.Name]
		if !ok {
			i = len(ranked)
			index[item.Product.Name] = i
			ranked = append(ranked, ProductRevenue{Name: item.Product.Name})
		}
		ranked[i].Quantity += item.Quantity
		ranked[i].Revenue += item.Quantity * item.Price
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Revenue > ranked[b].Revenue
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
