package grid

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator builds the collator used for string columns. Unknown locale
// tags fall back to English rather than failing.
func NewCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}

// Compare orders two cell values for the given column. Number and date-free
// numeric cells compare numerically; everything else compares through the
// locale collator on the stringified form. Nil sorts first.
func Compare(col Column, a, b any, coll *collate.Collator) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if col.Kind == CellNumber {
		na, aok := toNumber(a)
		nb, bok := toNumber(b)
		if aok && bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	return coll.CompareString(Stringify(a), Stringify(b))
}

// NextSort advances the sort cycle for a column: unsorted -> ascending ->
// descending -> unsorted. current is the active sort list (at most one
// entry); the returned list replaces it wholesale, so activating a sort on
// one column drops any sort on another.
func NextSort(current []SortEntry, columnID string) []SortEntry {
	if len(current) == 0 || current[0].ID != columnID {
		return []SortEntry{{ID: columnID, Desc: false}}
	}
	if !current[0].Desc {
		return []SortEntry{{ID: columnID, Desc: true}}
	}
	return nil
}
