package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inventory-service/internal/model"
)

// SearchMode selects which columns a search term is matched against.
type SearchMode string

const (
	// SearchByName matches name, description, code or brand.
	SearchByName SearchMode = "name"
	// SearchByCategory matches category or subcategory.
	SearchByCategory SearchMode = "category"
	// SearchByCode matches code only.
	SearchByCode SearchMode = "code"
)

// ParseSearchMode maps the wire value onto a SearchMode. Blank defaults to
// name search; anything else is a caller error.
func ParseSearchMode(raw string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SearchByName:
		return SearchByName, nil
	case SearchByCategory:
		return SearchByCategory, nil
	case SearchByCode:
		return SearchByCode, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", raw)
	}
}

// Stats is the aggregate view over the whole catalog, computed from a
// single snapshot read.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalInvestment float64 `json:"total_investment"`
	TotalValue      float64 `json:"total_value"`
	PotentialProfit float64 `json:"potential_profit"`
	LowStockCount   int     `json:"low_stock_count"`
	CategoryCount   int     `json:"category_count"`
	TotalUnits      int     `json:"total_units"`
}

// ListProducts returns the full catalog ordered by category, then name.
func (c *Catalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool {
		ci, cj := strings.ToLower(products[i].Category), strings.ToLower(products[j].Category)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
	return products, nil
}

// Search returns the records matching term under the given mode, ordered by
// name. Search is opt-in: an empty term yields an empty result, not the
// whole catalog.
func (c *Catalog) Search(ctx context.Context, term string, mode SearchMode) ([]model.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []model.Product{}, nil
	}

	products, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Product, 0)
	for _, p := range products {
		if matches(p, term, mode) {
			matched = append(matched, p)
		}
	}
	sortByName(matched)
	return matched, nil
}

// ListLowStock returns every record at or below its reorder threshold,
// most depleted first.
func (c *Catalog) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]model.Product, 0)
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return low, nil
}

// ListCategories returns the distinct non-empty category values, ascending.
func (c *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, func(p model.Product) string { return p.Category })
}

// ListBrands returns the distinct non-empty brand values, ascending.
func (c *Catalog) ListBrands(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, func(p model.Product) string { return p.Brand })
}

// Stats aggregates the catalog-wide metrics. A negative potential profit is
// a valid result, not an error.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	products, err := c.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalProducts: len(products)}
	categories := make(map[string]struct{})
	for _, p := range products {
		qty := float64(p.Quantity)
		stats.TotalInvestment += qty * p.PurchasePrice
		stats.TotalValue += qty * p.SalePrice
		stats.TotalUnits += p.Quantity
		if p.LowStock() {
			stats.LowStockCount++
		}
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
	}
	stats.PotentialProfit = stats.TotalValue - stats.TotalInvestment
	stats.CategoryCount = len(categories)
	return stats, nil
}

// snapshot is the single consistent read every derived view is computed
// from. No cache sits in front of the store, so each call sees the latest
// committed state.
func (c *Catalog) snapshot(ctx context.Context) ([]model.Product, error) {
	products, err := c.store.FindAll(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return products, nil
}

func (c *Catalog) distinct(ctx context.Context, field func(model.Product) string) ([]string, error) {
	products, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func matches(p model.Product, term string, mode SearchMode) bool {
	switch mode {
	case SearchByCategory:
		return contains(p.Category, term) || contains(p.Subcategory, term)
	case SearchByCode:
		return contains(p.CodeValue(), term)
	default:
		return contains(p.Name, term) || contains(p.Description, term) ||
			contains(p.CodeValue(), term) || contains(p.Brand, term)
	}
}

func contains(value, loweredTerm string) bool {
	return strings.Contains(strings.ToLower(value), loweredTerm)
}

func sortByName(products []model.Product) {
	sort.Slice(products, func(i, j int) bool {
		return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
	})
}
