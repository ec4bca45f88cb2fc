package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inventaworks/inventa/pkg/grid"
	"github.com/inventaworks/inventa/pkg/model"
	"github.com/inventaworks/inventa/pkg/store"
	"github.com/inventaworks/inventa/pkg/testutil"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func gridConfig() grid.Config {
	cfg, _ := grid.Builtin("items")
	return cfg
}

// newReadyGrid builds a grid and feeds it n generated rows.
func newReadyGrid(t *testing.T, n int) *GridModel {
	t.Helper()
	rows := testutil.GenerateRows(n)
	fetch := func(ctx context.Context) ([]map[string]any, error) {
		return rows, nil
	}
	m := NewGridModel(gridConfig(), "en", fetch, store.NewMemory(), model.RoleStaff)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no fetch command")
	}
	m.Update(cmd())
	if m.state != gridReady {
		t.Fatalf("grid not ready after load: state=%d err=%v", m.state, m.err)
	}
	return m
}

func TestGridLoadsRows(t *testing.T) {
	m := newReadyGrid(t, 45)
	if got := m.Table().FilteredCount(); got != 45 {
		t.Errorf("filtered count = %d, want 45", got)
	}
	if !strings.Contains(m.View(), "showing 1–20 of 45") {
		t.Errorf("footer missing, view:\n%s", m.View())
	}
}

func TestGridStaleFetchIgnored(t *testing.T) {
	m := newReadyGrid(t, 5)

	// an old generation must not clobber current rows
	m.Update(rowsLoadedMsg{entity: m.entity, gen: m.gen - 1, rows: nil})
	if got := m.Table().FilteredCount(); got != 5 {
		t.Errorf("stale fetch applied, count = %d", got)
	}
}

func TestGridFetchErrorAndRetry(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context) ([]map[string]any, error) {
		calls++
		if calls == 1 {
			return nil, context.DeadlineExceeded
		}
		return testutil.GenerateRows(3), nil
	}
	m := NewGridModel(gridConfig(), "en", fetch, store.NewMemory(), model.RoleStaff)

	m.Update(m.Init()())
	if m.state != gridFailed {
		t.Fatalf("state = %d, want failed", m.state)
	}
	if !strings.Contains(m.View(), "press r to retry") {
		t.Error("retry hint missing from error view")
	}

	retry := m.Update(keyRunes("r"))
	if retry == nil {
		t.Fatal("r produced no reload command")
	}
	m.Update(retry())
	if m.state != gridReady {
		t.Errorf("state after retry = %d, want ready", m.state)
	}
}

func TestGridGlobalSearchKeyFlow(t *testing.T) {
	m := newReadyGrid(t, 30)

	m.Update(keyRunes("/"))
	if m.focus != focusSearch {
		t.Fatal("/ did not focus the search input")
	}
	m.Update(keyRunes("item 1"))
	if m.Table().Global() != "item 1" {
		t.Errorf("global = %q", m.Table().Global())
	}
	// Item 1, Item 10..19: 11 matches
	if got := m.Table().FilteredCount(); got != 11 {
		t.Errorf("filtered = %d, want 11", got)
	}

	m.Update(key(tea.KeyEsc))
	if m.focus != focusRows {
		t.Error("esc did not return focus to rows")
	}
	if m.Table().Global() != "item 1" {
		t.Error("esc must keep the filter text")
	}
}

func TestGridSortKeyPersistsState(t *testing.T) {
	st := store.NewMemory()
	rows := testutil.GenerateRows(10)
	fetch := func(ctx context.Context) ([]map[string]any, error) { return rows, nil }
	m := NewGridModel(gridConfig(), "en", fetch, st, model.RoleStaff)
	m.Update(m.Init()())

	// items starts sorted by sku ascending, so one press flips to desc
	m.Update(keyRunes("s"))
	sorting := m.Table().Sorting()
	if len(sorting) != 1 || sorting[0].ID != "sku" || !sorting[0].Desc {
		t.Fatalf("sorting = %+v", sorting)
	}

	if _, ok, _ := st.Get(grid.StateKey("items")); !ok {
		t.Error("sort change not persisted")
	}

	// a fresh grid over the same store restores the sort
	m2 := NewGridModel(gridConfig(), "en", fetch, st, model.RoleStaff)
	if got := m2.Table().Sorting(); len(got) != 1 || got[0].ID != "sku" || !got[0].Desc {
		t.Errorf("restored sorting = %+v", got)
	}
}

func TestGridPageSizeCycle(t *testing.T) {
	m := newReadyGrid(t, 100)
	m.Update(keyRunes("]")) // page 2
	if m.Table().Page() != 1 {
		t.Fatalf("page = %d", m.Table().Page())
	}

	m.Update(keyRunes("p")) // 20 -> 50
	if m.Table().PageSize() != 50 {
		t.Errorf("page size = %d, want 50", m.Table().PageSize())
	}
	if m.Table().Page() != 0 {
		t.Error("page size change must reset to the first page")
	}
}

func TestGridVisibilityPanel(t *testing.T) {
	m := newReadyGrid(t, 10)

	m.Update(keyRunes("v"))
	if m.focus != focusColumns {
		t.Fatal("v did not open the visibility panel")
	}

	// find a hideable column and toggle it off
	cols := m.Table().Config().Columns
	target := -1
	for i, c := range cols {
		if c.CanHide() {
			target = i
			break
		}
	}
	if target < 0 {
		t.Skip("no hideable columns in layout")
	}
	for i := 0; i < target; i++ {
		m.Update(key(tea.KeyDown))
	}
	m.Update(key(tea.KeySpace))
	if m.Table().ColumnVisible(cols[target].ID) {
		t.Error("space did not hide the column")
	}

	m.Update(key(tea.KeyEsc))
	if m.focus != focusRows {
		t.Error("esc did not close the panel")
	}
	for _, c := range m.Table().VisibleColumns() {
		if c.ID == cols[target].ID {
			t.Error("hidden column still listed as visible")
		}
	}
}

func TestGridRowActivation(t *testing.T) {
	m := newReadyGrid(t, 5)

	cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(RowActivatedMsg)
	if !ok {
		t.Fatalf("got %T, want RowActivatedMsg", cmd())
	}
	if msg.Entity != "items" {
		t.Errorf("entity = %q", msg.Entity)
	}
	if msg.Row["sku"] != "SKU-0000" {
		t.Errorf("row = %v", msg.Row["sku"])
	}
}

func TestGridFilterDropdownKeyFlow(t *testing.T) {
	m := newReadyGrid(t, 40)

	// move the column cursor to a select-filter column
	cols := m.Table().VisibleColumns()
	target := -1
	for i, c := range cols {
		if c.FilterKind == grid.FilterSelect {
			target = i
			break
		}
	}
	if target < 0 {
		t.Skip("no select columns in layout")
	}
	for i := 0; i < target; i++ {
		m.Update(key(tea.KeyRight))
	}

	m.Update(keyRunes("f"))
	if m.focus != focusDropdown {
		t.Fatal("f did not open the dropdown")
	}

	before := m.Table().FilteredCount()
	m.Update(key(tea.KeySpace)) // first value off
	after := m.Table().FilteredCount()
	if after >= before {
		t.Errorf("toggle did not narrow rows: %d -> %d", before, after)
	}

	m.Update(key(tea.KeyEsc))
	if m.focus != focusRows {
		t.Error("esc did not close the dropdown")
	}
	if got := m.Table().FilteredCount(); got != after {
		t.Errorf("closing the dropdown changed the filter: %d -> %d", after, got)
	}
}

func TestGridEmptyState(t *testing.T) {
	m := newReadyGrid(t, 10)
	m.Table().SetGlobal("no such thing anywhere")
	view := m.View()
	if !strings.Contains(view, "no rows match") {
		t.Errorf("empty state missing:\n%s", view)
	}
	if !strings.Contains(view, "showing 0–0 of 0") {
		t.Errorf("footer should report 0–0 of 0:\n%s", view)
	}
}
