package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/boutiqo/server/internal/gateway"
)

// Conversion rate bands.
const (
	ConversionStatusAlert  = "alerte"
	ConversionStatusStar   = "star"
	ConversionStatusNormal = "normal"
)

const (
	alertRecommendation  = "forte visibilité mais peu d'achats: revoir le prix ou la fiche produit"
	starRecommendation   = "produit star, excellente conversion: à mettre en avant"
	normalRecommendation = "conversion dans la norme"
)

// ConversionEntry reports view-to-sale conversion for one product.
type ConversionEntry struct {
	Name           string  `json:"name"`
	Views          int     `json:"views"`
	Sales          float64 `json:"sales"`
	RatePercent    float64 `json:"rate_percent"`
	Status         string  `json:"status"`
	Recommendation string  `json:"recommendation"`
}

func (s *Service) AnalyzeConversion(ctx context.Context, days int, shopID string) ([]ConversionEntry, error) {
	days = normalizeDays(days)
	since := windowStart(days)
	views, err := s.store.ProductViews(ctx, since, shopID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.SaleItems(ctx, since, shopID)
	if err != nil {
		return nil, err
	}
	return BuildConversionReport(views, items), nil
}

// BuildConversionReport joins per-product view counts to sold quantities.
// Products without a single recorded view are excluded since views are the
// denominator. The result is sorted by views descending, top 10.
func BuildConversionReport(views []gateway.ProductView, items []gateway.SaleItem) []ConversionEntry {
	index := make(map[string]int)
	entries := make([]ConversionEntry, 0, len(views))
	for _, v := range views {
		if v.ProductID == "" {
			continue
		}
		i, ok := index[v.ProductID]
		if !ok {
			i = len(entries)
			index[v.ProductID] = i
			entry := ConversionEntry{Name: v.ProductID}
			if v.Product != nil && v.Product.Name != "" {
				entry.Name = v.Product.Name
			}
			entries = append(entries, entry)
		}
		entries[i].Views++
	}

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			entries[i].Sales += item.Quantity
		}
	}

	for i := range entries {
		e := &entries[i]
		e.RatePercent = math.Round(e.Sales/float64(e.Views)*100*100) / 100
		switch {
		case e.RatePercent < 5:
			e.Status = ConversionStatusAlert
			e.Recommendation = alertRecommendation
		case e.RatePercent > 20:
			e.Status = ConversionStatusStar
			e.Recommendation = starRecommendation
		default:
			e.Status = ConversionStatusNormal
			e.Recommendation = normalRecommendation
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Views > entries[b].Views
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	return entries
}
