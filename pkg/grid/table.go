package grid

import (
	"sort"

	"golang.org/x/text/collate"
)

// PageSizes is the fixed set offered by the page-size selector.
var PageSizes = []int{10, 20, 50, 100}

// Table is the grid projection for one entity: it owns the row collection,
// the active filters and sort, and the pagination window, and recomputes
// the visible slice on demand. Rows are never mutated, only read through
// the fields named by the column config.
type Table struct {
	cfg  Config
	coll *collate.Collator

	rows []map[string]any

	values     map[string]Value // column id -> multi-select allow-list
	ranges     map[string]Range // column id -> numeric range
	global     string
	sorting    []SortEntry
	visibility map[string]bool // column id -> shown; absent means shown

	pageIndex int
	pageSize  int

	filtered []int // indices into rows, post-filter post-sort
	dirty    bool
}

// NewTable builds an empty table for the given config. The collator drives
// string ordering; pass NewCollator(locale) from the app config.
func NewTable(cfg Config, coll *collate.Collator) *Table {
	t := &Table{
		cfg:        cfg,
		coll:       coll,
		values:     make(map[string]Value),
		ranges:     make(map[string]Range),
		visibility: make(map[string]bool),
		pageSize:   cfg.DefaultPageSize(),
		dirty:      true,
	}
	if init := cfg.InitialState; init != nil {
		for id, vis := range init.ColumnVisibility {
			t.visibility[id] = vis
		}
		t.sorting = append(t.sorting, init.Sorting...)
	}
	return t
}

// Config returns the grid configuration the table was built from.
func (t *Table) Config() Config { return t.cfg }

// SetRows replaces the row collection. Filters and sort are kept; the page
// index is clamped against the new filtered count.
func (t *Table) SetRows(rows []map[string]any) {
	t.rows = rows
	t.invalidate()
}

// Rows returns the unfiltered row collection.
func (t *Table) Rows() []map[string]any { return t.rows }

// Value returns the multi-select filter for a column (nil = no filter).
func (t *Table) Value(columnID string) Value {
	v, ok := t.values[columnID]
	if !ok {
		return nil
	}
	return v
}

// SetValue installs a multi-select filter. A nil value clears the filter a
// non-nil empty value is the explicit select-none state and is kept.
func (t *Table) SetValue(columnID string, v Value) {
	if v == nil {
		delete(t.values, columnID)
	} else {
		t.values[columnID] = v
	}
	t.invalidate()
}

// Range returns the numeric range filter for a column.
func (t *Table) Range(columnID string) Range { return t.ranges[columnID] }

// SetRange installs a numeric range filter; a zero range clears it.
func (t *Table) SetRange(columnID string, r Range) {
	if r.IsZero() {
		delete(t.ranges, columnID)
	} else {
		t.ranges[columnID] = r
	}
	t.invalidate()
}

// Global returns the cross-column free-text filter.
func (t *Table) Global() string { return t.global }

// SetGlobal installs the cross-column free-text filter, a case-insensitive
// substring test over every displayed column.
func (t *Table) SetGlobal(query string) {
	t.global = query
	t.invalidate()
}

// Sorting returns the active sort list (at most one entry from the UI).
func (t *Table) Sorting() []SortEntry { return t.sorting }

// SetSorting replaces the sort list wholesale (used by state restore).
func (t *Table) SetSorting(s []SortEntry) {
	t.sorting = s
	t.invalidate()
}

// CycleSort advances the asc -> desc -> unsorted cycle for a column.
func (t *Table) CycleSort(columnID string) {
	col, ok := t.cfg.Column(columnID)
	if !ok || !col.CanSort() || !t.cfg.Features.Sorting {
		return
	}
	t.sorting = NextSort(t.sorting, columnID)
	t.invalidate()
}

// ColumnVisible reports whether a column is currently displayed.
func (t *Table) ColumnVisible(columnID string) bool {
	vis, ok := t.visibility[columnID]
	return !ok || vis
}

// SetColumnVisible shows or hides a column. Hiding is refused for columns
// with hideable disabled.
func (t *Table) SetColumnVisible(columnID string, visible bool) {
	col, ok := t.cfg.Column(columnID)
	if !ok {
		return
	}
	if !visible && !col.CanHide() {
		return
	}
	t.visibility[columnID] = visible
	t.invalidate()
}

// VisibleColumns returns the displayed columns in config order.
func (t *Table) VisibleColumns() []Column {
	cols := make([]Column, 0, len(t.cfg.Columns))
	for _, col := range t.cfg.Columns {
		if t.ColumnVisible(col.ID) {
			cols = append(cols, col)
		}
	}
	return cols
}

// PageSize returns the current page size.
func (t *Table) PageSize() int { return t.pageSize }

// SetPageSize changes the page size and resets to the first page, so the
// view never lands on an out-of-range page.
func (t *Table) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	t.pageSize = size
	t.pageIndex = 0
	t.invalidate()
}

// Page returns the zero-based page index.
func (t *Table) Page() int {
	t.recompute()
	return t.pageIndex
}

// NextPage advances one page when possible.
func (t *Table) NextPage() {
	t.recompute()
	if t.pageIndex+1 < t.PageCount() {
		t.pageIndex++
	}
}

// PrevPage goes back one page when possible.
func (t *Table) PrevPage() {
	t.recompute()
	if t.pageIndex > 0 {
		t.pageIndex--
	}
}

// PageCount returns ceil(filtered / pageSize), minimum 1.
func (t *Table) PageCount() int {
	t.recompute()
	n := (len(t.filtered) + t.pageSize - 1) / t.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// FilteredCount returns the row count after all filters.
func (t *Table) FilteredCount() int {
	t.recompute()
	return len(t.filtered)
}

// PageRows returns the rows of the current page in display order.
func (t *Table) PageRows() []map[string]any {
	t.recompute()
	start := t.pageIndex * t.pageSize
	if start >= len(t.filtered) {
		return nil
	}
	end := start + t.pageSize
	if end > len(t.filtered) {
		end = len(t.filtered)
	}
	out := make([]map[string]any, 0, end-start)
	for _, idx := range t.filtered[start:end] {
		out = append(out, t.rows[idx])
	}
	return out
}

// FilteredRows returns every row that passes the filters, in display
// order, ignoring pagination. Exports run over this set.
func (t *Table) FilteredRows() []map[string]any {
	t.recompute()
	out := make([]map[string]any, 0, len(t.filtered))
	for _, idx := range t.filtered {
		out = append(out, t.rows[idx])
	}
	return out
}

// VisibleRange returns the 1-based "showing X-Y of N" numbers for the
// footer, computed from the filtered count, not the unfiltered total.
// An empty result reports 0-0 of 0.
func (t *Table) VisibleRange() (first, last, total int) {
	t.recompute()
	total = len(t.filtered)
	if total == 0 {
		return 0, 0, 0
	}
	first = t.pageIndex*t.pageSize + 1
	last = first + t.pageSize - 1
	if last > total {
		last = total
	}
	return first, last, total
}

// Distinct returns the sorted distinct values of a column's field over the
// full (pre-filter) row collection.
func (t *Table) Distinct(columnID string, desc bool) []string {
	col, ok := t.cfg.Column(columnID)
	if !ok {
		return nil
	}
	return Distinct(t.rows, col.Field, desc)
}

func (t *Table) invalidate() { t.dirty = true }

// recompute rebuilds the filtered+sorted projection when stale: global
// text filter over displayed columns, then per-column filters, then a
// stable sort, then a page-index clamp.
func (t *Table) recompute() {
	if !t.dirty {
		return
	}
	t.dirty = false

	globalFields := make([]string, 0, len(t.cfg.Columns))
	for _, col := range t.VisibleColumns() {
		globalFields = append(globalFields, col.Field)
	}

	t.filtered = t.filtered[:0]
rows:
	for i, row := range t.rows {
		if !MatchesGlobal(row, globalFields, t.global) {
			continue
		}
		for id, v := range t.values {
			col, ok := t.cfg.Column(id)
			if !ok {
				continue
			}
			if !v.Allows(Stringify(row[col.Field])) {
				continue rows
			}
		}
		for id, r := range t.ranges {
			col, ok := t.cfg.Column(id)
			if !ok {
				continue
			}
			if !r.Allows(row[col.Field]) {
				continue rows
			}
		}
		t.filtered = append(t.filtered, i)
	}

	if len(t.sorting) > 0 {
		entries := make([]struct {
			col  Column
			desc bool
		}, 0, len(t.sorting))
		for _, s := range t.sorting {
			if col, ok := t.cfg.Column(s.ID); ok {
				entries = append(entries, struct {
					col  Column
					desc bool
				}{col, s.Desc})
			}
		}
		sort.SliceStable(t.filtered, func(a, b int) bool {
			ra, rb := t.rows[t.filtered[a]], t.rows[t.filtered[b]]
			for _, e := range entries {
				c := Compare(e.col, ra[e.col.Field], rb[e.col.Field], t.coll)
				if c == 0 {
					continue
				}
				if e.desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if max := (len(t.filtered) - 1) / t.pageSize; t.pageIndex > max {
		if max < 0 {
			max = 0
		}
		t.pageIndex = max
	}
}
