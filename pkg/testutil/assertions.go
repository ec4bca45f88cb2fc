package testutil

import (
	"testing"

	"github.com/inventaworks/inventa/pkg/model"
)

// AssertRowCount verifies the expected number of grid rows.
func AssertRowCount(t *testing.T, rows []map[string]any, expected int) {
	t.Helper()
	if len(rows) != expected {
		t.Errorf("expected %d rows, got %d", expected, len(rows))
	}
}

// AssertNoDuplicateField verifies a field is unique across rows.
func AssertNoDuplicateField(t *testing.T, rows []map[string]any, field string) {
	t.Helper()
	seen := make(map[any]bool)
	for _, row := range rows {
		v := row[field]
		if seen[v] {
			t.Errorf("duplicate %s: %v", field, v)
		}
		seen[v] = true
	}
}

// AssertFieldOrder verifies the rows carry the field's values in the
// given order.
func AssertFieldOrder(t *testing.T, rows []map[string]any, field string, want []any) {
	t.Helper()
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, row := range rows {
		if row[field] != want[i] {
			t.Errorf("row %d: %s = %v, want %v", i, field, row[field], want[i])
		}
	}
}

// AssertTreeAcyclic verifies no node id repeats along any root-to-leaf
// path of a BOM tree.
func AssertTreeAcyclic(t *testing.T, root model.BomNode) {
	t.Helper()
	var walk func(n model.BomNode, path map[string]bool)
	walk = func(n model.BomNode, path map[string]bool) {
		if path[n.ID] {
			t.Errorf("cycle at node %s", n.ID)
			return
		}
		path[n.ID] = true
		for _, c := range n.Children {
			walk(c, path)
		}
		delete(path, n.ID)
	}
	walk(root, make(map[string]bool))
}
