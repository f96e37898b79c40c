package catalog

import (
	"strconv"
	"strings"

	"inventory-service/internal/model"
)

// Defaults applied when the corresponding input field is blank.
const (
	DefaultCategory         = "General"
	DefaultUnit             = "unit"
	DefaultReorderThreshold = 5
)

// Warning is an advisory attached to a successful write. It never blocks
// the operation.
type Warning string

// WarningLowMargin is raised when the sale price does not exceed the
// purchase price.
const WarningLowMargin Warning = "sale price does not exceed purchase price"

// ProductInput carries the raw field values for a create or update, exactly
// as the presentation layer received them. Numeric fields stay strings so a
// bad value is a reported validation failure rather than a silent zero.
type ProductInput struct {
	Name             string
	Code             string
	Description      string
	Brand            string
	Category         string
	Subcategory      string
	Location         string
	Supplier         string
	Unit             string
	Quantity         string
	PurchasePrice    string
	SalePrice        string
	ReorderThreshold string
}

// normalize validates the input and produces a record ready for
// persistence: strings trimmed, blanks coerced to their defaults, numerics
// parsed and range-checked. It fails with the first violation found.
func (in ProductInput) normalize() (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, missingField("name")
	}

	quantity, err := parseCount("quantity", in.Quantity, 0)
	if err != nil {
		return model.Product{}, err
	}
	purchasePrice, err := parsePrice("purchase_price", in.PurchasePrice)
	if err != nil {
		return model.Product{}, err
	}
	salePrice, err := parsePrice("sale_price", in.SalePrice)
	if err != nil {
		return model.Product{}, err
	}
	threshold, err := parseCount("reorder_threshold", in.ReorderThreshold, DefaultReorderThreshold)
	if err != nil {
		return model.Product{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = DefaultUnit
	}

	// An empty code is "no code": stored as NULL so the unique index
	// ignores it.
	var code *string
	if c := strings.TrimSpace(in.Code); c != "" {
		code = &c
	}

	return model.Product{
		Code:             code,
		Name:             name,
		Description:      strings.TrimSpace(in.Description),
		Brand:            strings.TrimSpace(in.Brand),
		Category:         category,
		Subcategory:      strings.TrimSpace(in.Subcategory),
		Location:         strings.TrimSpace(in.Location),
		Supplier:         strings.TrimSpace(in.Supplier),
		Unit:             unit,
		Quantity:         quantity,
		PurchasePrice:    purchasePrice,
		SalePrice:        salePrice,
		ReorderThreshold: threshold,
	}, nil
}

// warnings collects the advisory checks over a normalized record.
func warnings(p model.Product) []Warning {
	if p.SalePrice <= p.PurchasePrice {
		return []Warning{WarningLowMargin}
	}
	return nil
}

func parseCount(field, raw string, blank int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return blank, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, invalidNumber(field)
	}
	return n, nil
}

func parsePrice(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, invalidNumber(field)
	}
	return v, nil
}
