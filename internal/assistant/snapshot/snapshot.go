package snapshot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/boutiqo/server/internal/gateway"
)

// DefaultMinStock is the low-stock threshold for products that do not carry
// their own min_stock value.
const DefaultMinStock = 2

// CategorySummary is the per-category rollup of the inventory.
type CategorySummary struct {
	Count      int      `json:"count"`
	TotalStock int      `json:"total_stock"`
	LowStock   []string `json:"low_stock,omitempty"`
}

// ProductLine is the flat listing entry used for "what products exist"
// style questions.
type ProductLine struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// Snapshot is a bounded, ephemeral view of the current business state used
// to ground every assistant turn. It is rebuilt on each turn and never
// persisted.
type Snapshot struct {
	Scope         string                      `json:"scope"`
	TotalProducts int                         `json:"total_products"`
	Categories    map[string]*CategorySummary `json:"categories"`
	Products      []ProductLine               `json:"products"`
}

// Build computes a fresh snapshot from current inventory rows. Any read
// failure propagates: grounding must be complete or absent.
func Build(ctx context.Context, store gateway.Store, shopID string) (*Snapshot, error) {
	products, err := store.Products(ctx, shopID)
	if err != nil {
		return nil, err
	}

	scope := "toutes boutiques"
	if shopID != "" {
		scope = "boutique " + shopID
	}

	snap := &Snapshot{
		Scope:         scope,
		TotalProducts: len(products),
		Categories:    make(map[string]*CategorySummary),
		Products:      make([]ProductLine, 0, len(products)),
	}

	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "autre"
		}
		summary, ok := snap.Categories[category]
		if !ok {
			summary = &CategorySummary{}
			snap.Categories[category] = summary
		}
		summary.Count++
		summary.TotalStock += p.Stock

		threshold := DefaultMinStock
		if p.MinStock != nil {
			threshold = *p.MinStock
		}
		if p.Stock <= threshold {
			summary.LowStock = append(summary.LowStock, p.Name)
		}

		snap.Products = append(snap.Products, ProductLine{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
			Price: p.Price,
		})
	}

	return snap, nil
}

// Render produces the compact text block embedded in the grounding prompt.
// Categories are sorted so the rendered block is deterministic.
func (s *Snapshot) Render() string {
	categories := make([]string, 0, len(s.Categories))
	for category := range s.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b strings.Builder
	fmt.Fprintf(&b, "Produits au catalogue: %d\n", s.TotalProducts)
	for _, category := range categories {
		summary := s.Categories[category]
		fmt.Fprintf(&b, "- %s: %d produits, stock total %d", category, summary.Count, summary.TotalStock)
		if len(summary.LowStock) > 0 {
			fmt.Fprintf(&b, ", stock faible: %s", strings.Join(summary.LowStock, ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("Liste des produits:\n")
	for _, p := range s.Products {
		fmt.Fprintf(&b, "- %s (id %s): stock %d, prix %.0f\n", p.Name, p.ID, p.Stock, p.Price)
	}
	return b.String()
}
