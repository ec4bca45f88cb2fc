package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inventaworks/inventa/pkg/grid"
)

func dropdownTable(t *testing.T) *grid.Table {
	t.Helper()
	cfg, _ := grid.Builtin("items")
	tbl := grid.NewTable(cfg, grid.NewCollator("en"))
	tbl.SetRows([]map[string]any{
		{"sku": "A-1", "name": "Bolt", "item_type": "part", "unit": "EA"},
		{"sku": "A-2", "name": "Nut", "item_type": "part", "unit": "EA"},
		{"sku": "A-3", "name": "Frame", "item_type": "module", "unit": "EA"},
		{"sku": "A-4", "name": "Chair", "item_type": "finished_good", "unit": "EA"},
	})
	return tbl
}

func typeColumn(cfg grid.Config) grid.Column {
	for _, c := range cfg.Columns {
		if c.ID == "item_type" {
			return c
		}
	}
	panic("item_type column missing")
}

func TestDropdownToggleCommitsImmediately(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	// distinct values sort ascending: finished_good, module, part
	d.Update(key(tea.KeySpace)) // finished_good off
	if got := tbl.FilteredCount(); got != 3 {
		t.Errorf("filtered = %d, want 3", got)
	}
	v := tbl.Value("item_type")
	if v == nil {
		t.Fatal("filter still nil after toggle")
	}
	if v.Allows("finished_good") {
		t.Error("finished_good should be deselected")
	}
	if !v.Allows("part") {
		t.Error("part should stay selected")
	}
}

func TestDropdownSelectAllTwoState(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	d.Update(key(tea.KeySpace)) // partial selection

	d.Update(key(tea.KeyCtrlA)) // partial -> none
	v := tbl.Value("item_type")
	if v == nil || len(v) != 0 {
		t.Errorf("ctrl+a from partial should select none, got %v", v)
	}
	if tbl.FilteredCount() != 0 {
		t.Errorf("filtered = %d, want 0", tbl.FilteredCount())
	}

	d.Update(key(tea.KeyCtrlA)) // none -> all
	if tbl.Value("item_type") != nil {
		t.Errorf("ctrl+a from none should clear the filter, got %v", tbl.Value("item_type"))
	}
	if tbl.FilteredCount() != 4 {
		t.Errorf("filtered = %d, want 4", tbl.FilteredCount())
	}
}

func TestDropdownSearchNarrowsList(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	d.Update(keyRunes("mod"))
	values := d.visible()
	if len(values) != 1 || values[0] != "module" {
		t.Errorf("visible = %v, want [module]", values)
	}

	// toggling through a narrowed list hits the shown value
	d.Update(key(tea.KeySpace))
	if tbl.Value("item_type").Allows("module") {
		t.Error("module should be deselected")
	}
	if !tbl.Value("item_type").Allows("part") {
		t.Error("search-hidden values must keep their selection")
	}
}

func TestDropdownEscClearsSearchOnly(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	d.Update(key(tea.KeySpace)) // deselect finished_good
	d.Update(keyRunes("mod"))

	_, done := d.Update(key(tea.KeyEsc))
	if !done {
		t.Fatal("esc should close the dropdown")
	}
	if d.search.Value() != "" {
		t.Error("esc should clear the search text")
	}
	if tbl.Value("item_type").Allows("finished_good") {
		t.Error("esc must not reset the committed selection")
	}
}

func TestDropdownSortToggle(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	asc := d.visible()
	d.Update(key(tea.KeyCtrlS))
	desc := d.visible()
	if len(asc) != len(desc) {
		t.Fatalf("value count changed: %v vs %v", asc, desc)
	}
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Errorf("desc order not reversed: %v vs %v", asc, desc)
			break
		}
	}
}

func TestDropdownCursorClampedToSearch(t *testing.T) {
	tbl := dropdownTable(t)
	d := NewFilterDropdown(tbl, typeColumn(tbl.Config()))

	d.Update(key(tea.KeyDown))
	d.Update(key(tea.KeyDown)) // cursor at last of 3
	d.Update(keyRunes("mod"))  // one match left
	if d.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after narrowing", d.cursor)
	}
}
