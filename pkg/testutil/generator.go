// Package testutil provides deterministic fixture generators for grid rows
// and BOM trees. All generators are seeded so tests are reproducible.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/inventaworks/inventa/pkg/model"
)

var itemTypes = []model.ItemType{
	model.TypeFinishedGood,
	model.TypeSemiFinished,
	model.TypeModule,
	model.TypePart,
	model.TypeRawMaterial,
}

// GenerateItems produces n deterministic items. The same n always yields
// the same items.
func GenerateItems(n int) []model.Item {
	rng := rand.New(rand.NewSource(42))
	items := make([]model.Item, n)
	for i := range items {
		cost := decimal.NewFromFloat(float64(rng.Intn(10000)) / 100)
		items[i] = model.Item{
			ID:        fmt.Sprintf("item-%04d", i),
			SKU:       fmt.Sprintf("SKU-%04d", i),
			Name:      fmt.Sprintf("Item %d", i),
			ItemType:  itemTypes[rng.Intn(len(itemTypes))],
			Unit:      "EA",
			UnitCost:  cost,
			SalePrice: cost.Mul(decimal.NewFromFloat(1.4)),
			IsActive:  true,
		}
	}
	return items
}

// GenerateRows is GenerateItems flattened to grid rows.
func GenerateRows(n int) []map[string]any {
	items := GenerateItems(n)
	rows := make([]map[string]any, n)
	for i, it := range items {
		rows[i] = it.Row()
	}
	return rows
}

// GenerateBomTree builds a uniform tree with the given depth and fanout.
// Node ids encode their path so they are stable across calls.
func GenerateBomTree(depth, fanout int) model.BomNode {
	var build func(path string, level int) model.BomNode
	build = func(path string, level int) model.BomNode {
		cost := decimal.NewFromInt(int64(10 * (level + 1)))
		n := model.BomNode{
			ID:        "n" + path,
			ItemID:    "item" + path,
			SKU:       "SKU" + path,
			Name:      "Node " + path,
			ItemType:  itemTypes[level%len(itemTypes)],
			Quantity:  1,
			Unit:      "EA",
			TotalCost: &cost,
		}
		if level < depth {
			for c := 0; c < fanout; c++ {
				n.Children = append(n.Children, build(fmt.Sprintf("%s-%d", path, c), level+1))
			}
		}
		return n
	}
	return build("0", 0)
}
