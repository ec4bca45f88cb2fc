package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is the active multi-select constraint for one column, an explicit
// allow-list of stringified cell values.
//
// The zero state matters: a nil Value means "no filter" and allows every
// value, including ones not present when the filter was last touched. A
// non-nil empty Value is a distinct state meaning "show nothing" (the user
// explicitly deselected everything). Code must therefore never collapse an
// empty allow-list into nil, and never materialize "all selected" as a full
// enumeration — see Toggle.
type Value []string

// Allows reports whether the stringified cell value passes the filter.
func (v Value) Allows(s string) bool {
	if v == nil {
		return true
	}
	for _, allowed := range v {
		if allowed == s {
			return true
		}
	}
	return false
}

// Has reports whether the value is explicitly present in the allow-list.
// Unlike Allows it treats nil as "not listed".
func (v Value) Has(s string) bool {
	for _, allowed := range v {
		if allowed == s {
			return true
		}
	}
	return false
}

// Toggle flips membership of val in the allow-list given the column's
// current distinct-value list, applying the all/none duality rule:
//
//   - toggling a value off a nil (allow-all) filter yields an allow-list of
//     every distinct value except the one deselected;
//   - toggling the last missing value back on collapses the filter to nil,
//     so "every box checked" and "never filtered" are the same state.
func (v Value) Toggle(val string, distinct []string) Value {
	var next Value
	if v == nil {
		next = make(Value, 0, len(distinct))
		for _, d := range distinct {
			if d != val {
				next = append(next, d)
			}
		}
		return next
	}
	if v.Has(val) {
		next = make(Value, 0, len(v))
		for _, allowed := range v {
			if allowed != val {
				next = append(next, allowed)
			}
		}
	} else {
		next = append(append(Value{}, v...), val)
	}
	if allDistinct(next, distinct) {
		return nil
	}
	return next
}

// ToggleAll implements the two-state select-all control: any non-empty
// allow-list (partial selection) becomes the explicit empty list (select
// none); the empty list becomes nil (select all / clear the filter).
func (v Value) ToggleAll() Value {
	if v != nil && len(v) == 0 {
		return nil
	}
	return Value{}
}

// SelectedCount returns how many of the distinct values display as checked.
func (v Value) SelectedCount(distinctCount int) int {
	if v == nil {
		return distinctCount
	}
	return len(v)
}

func allDistinct(v Value, distinct []string) bool {
	if len(v) != len(distinct) {
		return false
	}
	for _, d := range distinct {
		if !v.Has(d) {
			return false
		}
	}
	return true
}

// Range is an inclusive numeric constraint; either bound may be absent.
type Range struct {
	Min *float64
	Max *float64
}

// IsZero reports whether neither bound is set.
func (r Range) IsZero() bool { return r.Min == nil && r.Max == nil }

// Allows reports whether the cell value passes the range. Non-numeric
// values fail a non-empty range filter.
func (r Range) Allows(cell any) bool {
	if r.IsZero() {
		return true
	}
	n, ok := toNumber(cell)
	if !ok {
		return false
	}
	if r.Min != nil && n < *r.Min {
		return false
	}
	if r.Max != nil && n > *r.Max {
		return false
	}
	return true
}

// Stringify renders a cell value the way the distinct-value list and the
// multi-select predicate see it. Nil maps to the empty string, which the
// distinct derivation then skips.
func Stringify(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		// The grid's legal cell kinds are string, number, bool and nil;
		// anything else falls back to its Go formatting.
		return fmt.Sprintf("%v", v)
	}
}

func toNumber(cell any) (float64, bool) {
	switch v := cell.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Distinct derives the sorted distinct-value list for one field over the
// given rows. Nil, missing and empty-string values are skipped; duplicates
// merge. The list is sorted ascending (numeric when every value parses as a
// number, lexical otherwise); pass desc to invert.
func Distinct(rows []map[string]any, field string, desc bool) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		s := Stringify(row[field])
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	values := make([]string, 0, len(set))
	for s := range set {
		values = append(values, s)
	}
	SortValues(values, desc)
	return values
}

// SortValues orders a distinct-value list in place, auto-detecting numeric
// versus lexical ordering: when every value parses as a number the list is
// sorted numerically, otherwise case-folded lexically.
func SortValues(values []string, desc bool) {
	numeric := len(values) > 0
	for _, s := range values {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
			break
		}
	}
	less := func(a, b string) bool {
		if numeric {
			na, _ := strconv.ParseFloat(a, 64)
			nb, _ := strconv.ParseFloat(b, 64)
			return na < nb
		}
		la, lb := strings.ToLower(a), strings.ToLower(b)
		if la == lb {
			return a < b
		}
		return la < lb
	}
	sort.SliceStable(values, func(i, j int) bool {
		if desc {
			return less(values[j], values[i])
		}
		return less(values[i], values[j])
	})
}

// SearchValues returns the subset of values containing the query as a
// case-insensitive substring. An empty query returns values unchanged.
func SearchValues(values []string, query string) []string {
	if query == "" {
		return values
	}
	q := strings.ToLower(query)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, v)
		}
	}
	return out
}

// MatchesGlobal reports whether any of the row's listed fields contains the
// query as a case-insensitive substring. An empty query matches everything.
func MatchesGlobal(row map[string]any, fields []string, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(Stringify(row[f])), q) {
			return true
		}
	}
	return false
}
