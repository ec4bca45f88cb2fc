package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inbound is one inbound receipt (goods arriving into stock).
type Inbound struct {
	ID         string          `json:"id"`
	RefNo      string          `json:"ref_no"`
	SKU        string          `json:"sku"`
	ItemName   string          `json:"item_name"`
	Quantity   float64         `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Supplier   string          `json:"supplier"`
	Status     string          `json:"status"` // draft, confirmed, received
	ReceivedAt *time.Time      `json:"received_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Row converts the inbound into a grid field map.
func (in Inbound) Row() map[string]any {
	received := any(nil)
	if in.ReceivedAt != nil {
		received = in.ReceivedAt.Format("2006-01-02")
	}
	return map[string]any{
		"id":          in.ID,
		"ref_no":      in.RefNo,
		"sku":         in.SKU,
		"item_name":   in.ItemName,
		"quantity":    in.Quantity,
		"unit":        in.Unit,
		"unit_cost":   in.UnitCost.InexactFloat64(),
		"supplier":    in.Supplier,
		"status":      in.Status,
		"received_at": received,
		"created_at":  in.CreatedAt.Format("2006-01-02"),
	}
}

// Outbound is one outbound shipment (goods leaving stock).
type Outbound struct {
	ID        string     `json:"id"`
	RefNo     string     `json:"ref_no"`
	SKU       string     `json:"sku"`
	ItemName  string     `json:"item_name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Receiver  string     `json:"receiver"`
	Status    string     `json:"status"` // draft, confirmed, shipped
	ShippedAt *time.Time `json:"shipped_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Row converts the outbound into a grid field map.
func (out Outbound) Row() map[string]any {
	shipped := any(nil)
	if out.ShippedAt != nil {
		shipped = out.ShippedAt.Format("2006-01-02")
	}
	return map[string]any{
		"id":         out.ID,
		"ref_no":     out.RefNo,
		"sku":        out.SKU,
		"item_name":  out.ItemName,
		"quantity":   out.Quantity,
		"unit":       out.Unit,
		"receiver":   out.Receiver,
		"status":     out.Status,
		"shipped_at": shipped,
		"created_at": out.CreatedAt.Format("2006-01-02"),
	}
}

// Category is one node of the item category tree.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	Depth    int    `json:"depth"`
}
