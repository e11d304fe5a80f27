package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqo/server/internal/gateway"
)

func views(productID, name string, n int) []gateway.ProductView {
	out := make([]gateway.ProductView, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, gateway.ProductView{
			ProductID: productID,
			Product:   &gateway.ViewProduct{Name: name},
		})
	}
	return out
}

func soldItem(productID string, qty float64) gateway.SaleItem {
	return gateway.SaleItem{ProductID: productID, Quantity: qty}
}

func TestBuildConversionReportBanding(t *testing.T) {
	vs := append(views("p1", "tee-shirt", 100), views("p2", "casquette", 10)...)
	items := []gateway.SaleItem{soldItem("p1", 2), soldItem("p2", 5)}

	entries := BuildConversionReport(vs, items)

	require.Len(t, entries, 2)

	// sorted by views descending
	assert.Equal(t, "tee-shirt", entries[0].Name)
	assert.Equal(t, 100, entries[0].Views)
	assert.Equal(t, 2.0, entries[0].RatePercent)
	assert.Equal(t, ConversionStatusAlert, entries[0].Status)

	assert.Equal(t, "casquette", entries[1].Name)
	assert.Equal(t, 50.0, entries[1].RatePercent)
	assert.Equal(t, ConversionStatusStar, entries[1].Status)
}

func TestBuildConversionReportNormalBand(t *testing.T) {
	entries := BuildConversionReport(views("p1", "sac", 10), []gateway.SaleItem{soldItem("p1", 1)})

	require.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].RatePercent)
	assert.Equal(t, ConversionStatusNormal, entries[0].Status)
}

func TestBuildConversionReportExcludesZeroViewProducts(t *testing.T) {
	// a product with sales but no recorded view has no denominator
	entries := BuildConversionReport(views("p1", "sac", 5), []gateway.SaleItem{
		soldItem("p1", 1),
		soldItem("ghost", 3),
	})

	require.Len(t, entries, 1)
	assert.Equal(t, "sac", entries[0].Name)
}

func TestBuildConversionReportTruncatesToTen(t *testing.T) {
	var vs []gateway.ProductView
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("p%d", i)
		vs = append(vs, views(id, id, i+1)...)
	}

	entries := BuildConversionReport(vs, nil)

	require.Len(t, entries, 10)
	assert.Equal(t, 12, entries[0].Views)
	assert.Equal(t, 3, entries[9].Views)
}
