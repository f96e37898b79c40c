package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents a stocked item in the catalog. Records are removed
// outright on delete; there is no soft-delete column.
//
// Code is a pointer so a product without a code stores NULL, letting the
// unique index admit any number of codeless products. NameKey holds the
// lowercased name and carries the unique index, so case-variant names
// collide at the store even when two writers race.
type Product struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	Code             *string   `json:"code,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	Name             string    `json:"name" gorm:"type:varchar(255);not null;index"`
	NameKey          string    `json:"-" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description      string    `json:"description" gorm:"type:text"`
	Brand            string    `json:"brand" gorm:"type:varchar(100)"`
	Category         string    `json:"category" gorm:"type:varchar(100);not null;default:General"`
	Subcategory      string    `json:"subcategory" gorm:"type:varchar(100)"`
	Location         string    `json:"location" gorm:"type:varchar(100)"`
	Supplier         string    `json:"supplier" gorm:"type:varchar(150)"`
	Unit             string    `json:"unit" gorm:"type:varchar(50);default:unit"`
	Quantity         int       `json:"quantity" gorm:"not null;default:0"`
	PurchasePrice    float64   `json:"purchase_price" gorm:"not null;default:0"`
	SalePrice        float64   `json:"sale_price" gorm:"not null;default:0"`
	ReorderThreshold int       `json:"reorder_threshold" gorm:"not null;default:5"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeSave keeps NameKey in lockstep with Name on every create and save.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NameKey = strings.ToLower(p.Name)
	return nil
}

// CodeValue returns the code, or "" when the product has none.
func (p *Product) CodeValue() string {
	if p.Code == nil {
		return ""
	}
	return *p.Code
}

// LowStock reports whether the current quantity has fallen to or below the
// configured reorder threshold.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.ReorderThreshold
}
