package model

import "time"

// Stock is the on-hand quantity of one item at one location.
type Stock struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	SKU       string    `json:"sku"`
	ItemName  string    `json:"item_name"`
	Location  string    `json:"location"`
	Quantity  float64   `json:"quantity"`
	Reserved  float64   `json:"reserved"`
	Available float64   `json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Row converts the stock record into a grid field map.
func (s Stock) Row() map[string]any {
	return map[string]any{
		"id":         s.ID,
		"item_id":    s.ItemID,
		"sku":        s.SKU,
		"item_name":  s.ItemName,
		"location":   s.Location,
		"quantity":   s.Quantity,
		"reserved":   s.Reserved,
		"available":  s.Available,
		"updated_at": s.UpdatedAt.Format("2006-01-02"),
	}
}
