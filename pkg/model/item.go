// Package model defines the domain types exchanged with the ERP backend.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType classifies an item in the BOM hierarchy.
type ItemType string

const (
	TypeFinishedGood ItemType = "FG"  // finished good
	TypeSemiFinished ItemType = "SF"  // semi-finished
	TypeModule       ItemType = "MOD" // module / assembly
	TypePart         ItemType = "PT"  // part
	TypeRawMaterial  ItemType = "RM"  // raw material
)

// Label returns the human-readable name for the item type.
func (t ItemType) Label() string {
	switch t {
	case TypeFinishedGood:
		return "Finished Good"
	case TypeSemiFinished:
		return "Semi-Finished"
	case TypeModule:
		return "Module"
	case TypePart:
		return "Part"
	case TypeRawMaterial:
		return "Raw Material"
	default:
		return string(t)
	}
}

// Item is one inventory item as returned by /items.
type Item struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	ItemType    ItemType        `json:"item_type"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	SafetyStock float64         `json:"safety_stock"`
	IsActive    bool            `json:"is_active"`
	CategoryID  string          `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Row converts the item into the untyped field map consumed by the grid.
// Money fields are exposed as float64 so numeric filters and sorting apply.
func (i Item) Row() map[string]any {
	return map[string]any{
		"id":           i.ID,
		"sku":          i.SKU,
		"name":         i.Name,
		"item_type":    string(i.ItemType),
		"unit":         i.Unit,
		"unit_cost":    i.UnitCost.InexactFloat64(),
		"sale_price":   i.SalePrice.InexactFloat64(),
		"safety_stock": i.SafetyStock,
		"is_active":    i.IsActive,
		"created_at":   i.CreatedAt.Format("2006-01-02"),
	}
}

// Pagination is the list envelope metadata shared by all list endpoints.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}
