package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/catalog"
)

func seedHardwareCatalog(t *testing.T, cat *catalog.Catalog) {
	t.Helper()

	inputs := []catalog.ProductInput{
		{
			Name:          "Claw Hammer 16oz",
			Code:          "HER-001",
			Brand:         "Stanley",
			Category:      "Hand Tools",
			Subcategory:   "Hammers",
			Quantity:      "25",
			PurchasePrice: "12.50",
			SalePrice:     "18.99",
		},
		{
			Name:          "Anchor Kit",
			Code:          "FIJ-010",
			Description:   "Includes plastic anchors and a Bolt set, 10mm",
			Brand:         "Truper",
			Category:      "Fasteners",
			Subcategory:   "Anchors",
			Quantity:      "3",
			PurchasePrice: "4.00",
			SalePrice:     "7.50",
		},
		{
			Name:          "Hex Bolt Box M8",
			Code:          "FIJ-002",
			Brand:         "Hillman",
			Category:      "Fasteners",
			Subcategory:   "Bolts",
			Quantity:      "80",
			PurchasePrice: "0.10",
			SalePrice:     "0.25",
		},
		{
			Name:             "Work Gloves",
			Category:         "Safety",
			Quantity:         "5",
			ReorderThreshold: "5",
			PurchasePrice:    "2.00",
			SalePrice:        "4.00",
		},
	}
	for _, in := range inputs {
		mustCreate(t, cat, in)
	}
}

func TestSearchByNameMatchesDescription(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	results, err := cat.Search(context.Background(), "bolt", catalog.SearchByName)
	require.NoError(t, err)

	got := make([]string, 0, len(results))
	for _, p := range results {
		got = append(got, p.Name)
	}
	// "Anchor Kit" matches only through its description; ordering is by name.
	assert.Equal(t, []string{"Anchor Kit", "Hex Bolt Box M8"}, got)
}

func TestSearchEmptyTermYieldsNothing(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	for _, mode := range []catalog.SearchMode{catalog.SearchByName, catalog.SearchByCategory, catalog.SearchByCode} {
		results, err := cat.Search(context.Background(), "   ", mode)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearchByCategory(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	results, err := cat.Search(context.Background(), "fasten", catalog.SearchByCategory)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Subcategory matches count too.
	results, err = cat.Search(context.Background(), "hammers", catalog.SearchByCategory)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Claw Hammer 16oz", results[0].Name)
}

func TestSearchByCodeIgnoresOtherFields(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	results, err := cat.Search(context.Background(), "fij", catalog.SearchByCode)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// "hammer" appears in a name but no code.
	results, err = cat.Search(context.Background(), "hammer", catalog.SearchByCode)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseSearchMode(t *testing.T) {
	mode, err := catalog.ParseSearchMode("")
	require.NoError(t, err)
	assert.Equal(t, catalog.SearchByName, mode)

	mode, err = catalog.ParseSearchMode(" Category ")
	require.NoError(t, err)
	assert.Equal(t, catalog.SearchByCategory, mode)

	_, err = catalog.ParseSearchMode("barcode")
	assert.Error(t, err)
}

func TestListProductsOrdersByCategoryThenName(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	products, err := cat.ListProducts(context.Background())
	require.NoError(t, err)

	got := make([]string, 0, len(products))
	for _, p := range products {
		got = append(got, p.Name)
	}
	assert.Equal(t, []string{
		"Anchor Kit",       // Fasteners
		"Hex Bolt Box M8",  // Fasteners
		"Claw Hammer 16oz", // Hand Tools
		"Work Gloves",      // Safety
	}, got)
}

func TestListLowStock(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	low, err := cat.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)

	// Ascending by quantity; quantity == threshold counts as low.
	assert.Equal(t, "Anchor Kit", low[0].Name)
	assert.Equal(t, 3, low[0].Quantity)
	assert.Equal(t, "Work Gloves", low[1].Name)
	assert.Equal(t, 5, low[1].Quantity)
}

func TestListCategoriesAndBrands(t *testing.T) {
	cat := newTestCatalog(t)
	seedHardwareCatalog(t, cat)

	categories, err := cat.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fasteners", "Hand Tools", "Safety"}, categories)

	brands, err := cat.ListBrands(context.Background())
	require.NoError(t, err)
	// The gloves have no brand; blanks are excluded.
	assert.Equal(t, []string{"Hillman", "Stanley", "Truper"}, brands)
}

func TestStats(t *testing.T) {
	cat := newTestCatalog(t)

	mustCreate(t, cat, catalog.ProductInput{
		Name:          "Widget A",
		Category:      "Widgets",
		Quantity:      "10",
		PurchasePrice: "2",
		SalePrice:     "3",
	})
	mustCreate(t, cat, catalog.ProductInput{
		Name:          "Widget B",
		Category:      "Widgets",
		Quantity:      "5",
		PurchasePrice: "4",
		SalePrice:     "1",
	})

	stats, err := cat.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.InDelta(t, 40.0, stats.TotalInvestment, 1e-9)
	assert.InDelta(t, 35.0, stats.TotalValue, 1e-9)
	assert.InDelta(t, -5.0, stats.PotentialProfit, 1e-9, "a negative profit is a valid result")
	assert.Equal(t, 15, stats.TotalUnits)
	assert.Equal(t, 1, stats.CategoryCount)
	assert.Equal(t, 1, stats.LowStockCount, "only the record at its threshold is low")
}

func TestStatsEmptyCatalog(t *testing.T) {
	cat := newTestCatalog(t)

	stats, err := cat.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalInvestment)
	assert.Zero(t, stats.TotalValue)
	assert.Zero(t, stats.PotentialProfit)
	assert.Zero(t, stats.TotalUnits)
	assert.Zero(t, stats.CategoryCount)
	assert.Zero(t, stats.LowStockCount)
}
