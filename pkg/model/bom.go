package model

import "github.com/shopspring/decimal"

// BomNode is one node of an item's bill-of-materials tree. The root node is
// the inspected item itself; children are its direct components. The backend
// guarantees acyclicity, the client does not re-verify it.
type BomNode struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	SKU       string           `json:"sku"`
	Name      string           `json:"name"`
	ItemType  ItemType         `json:"type"`
	Quantity  float64          `json:"quantity"`
	Unit      string           `json:"unit"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost *decimal.Decimal `json:"total_cost,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	Children  []BomNode        `json:"children,omitempty"`
}

// HasChildren reports whether the node has any direct components.
func (n BomNode) HasChildren() bool { return len(n.Children) > 0 }

// Count returns the number of nodes in the subtree rooted at n, including n.
func (n BomNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// BomComponent is one flat BOM entry (parent -> component edge).
type BomComponent struct {
	ID              string           `json:"id"`
	ParentItemID    string           `json:"parent_item_id"`
	ComponentItemID string           `json:"component_item_id"`
	Quantity        float64          `json:"quantity"`
	Unit            string           `json:"unit"`
	Sequence        int              `json:"sequence,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	ComponentSKU    string           `json:"component_sku,omitempty"`
	ComponentName   string           `json:"component_name,omitempty"`
	ComponentType   ItemType         `json:"component_type,omitempty"`
	UnitCost        *decimal.Decimal `json:"component_unit_cost,omitempty"`
}

// BomTree is the /items/{id}/bom/tree response.
type BomTree struct {
	ItemID     string         `json:"item_id"`
	SKU        string         `json:"sku"`
	Name       string         `json:"name"`
	ItemType   ItemType       `json:"type"`
	HasBom     bool           `json:"has_bom"`
	Tree       BomNode        `json:"tree"`
	Components []BomComponent `json:"components"`
}

// BomStats is the /items/{id}/bom/stats response.
type BomStats struct {
	TotalComponents int             `json:"total_components"`
	MaxDepth        int             `json:"max_depth"`
	TotalCost       decimal.Decimal `json:"total_cost"`
}

// BomCreate is the body for adding a component under a parent item.
type BomCreate struct {
	ComponentItemID string  `json:"component_item_id"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	Notes           string  `json:"notes,omitempty"`
}

// BomUpdate is the body for editing one component entry. Nil fields are
// left unchanged by the backend.
type BomUpdate struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}
