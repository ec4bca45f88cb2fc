package grid

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// stateVersion tags the persistence key so a future incompatible schema can
// change the key instead of colliding with old payloads.
const stateVersion = "v1"

// Store is the durable key-value storage the grid persists view state
// into. Implementations live in pkg/store; tests inject an in-memory fake.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// ViewState is the persisted slice of grid UI state. Column filters and
// the page index are deliberately transient and never saved.
type ViewState struct {
	ColumnVisibility map[string]bool `json:"columnVisibility"`
	Sorting          []SortEntry     `json:"sorting"`
	PageSize         int             `json:"pageSize"`
}

// StateKey returns the storage key for an entity's view state.
func StateKey(entity string) string {
	return fmt.Sprintf("grid-state-%s-%s", stateVersion, entity)
}

// ViewState captures the table's persistable state.
func (t *Table) ViewState() ViewState {
	vis := make(map[string]bool, len(t.visibility))
	for id, v := range t.visibility {
		vis[id] = v
	}
	sorting := make([]SortEntry, len(t.sorting))
	copy(sorting, t.sorting)
	return ViewState{
		ColumnVisibility: vis,
		Sorting:          sorting,
		PageSize:         t.pageSize,
	}
}

// ApplyState restores a previously saved view state. Each sub-state is
// applied independently so a partially valid payload still contributes
// whatever it carries. The page index resets to the first page.
func (t *Table) ApplyState(s ViewState) {
	for id, vis := range s.ColumnVisibility {
		if _, ok := t.cfg.Column(id); ok {
			t.visibility[id] = vis
		}
	}
	if s.Sorting != nil {
		sorting := make([]SortEntry, 0, len(s.Sorting))
		for _, e := range s.Sorting {
			if _, ok := t.cfg.Column(e.ID); ok {
				sorting = append(sorting, e)
			}
		}
		t.sorting = sorting
	}
	if s.PageSize > 0 {
		t.pageSize = s.PageSize
	}
	t.pageIndex = 0
	t.invalidate()
}

// SaveState serializes the table's view state under the entity's key.
// Write failures degrade silently on the caller's side; the grid must not
// crash over a broken store.
func (t *Table) SaveState(st Store) error {
	data, err := json.Marshal(t.ViewState())
	if err != nil {
		return fmt.Errorf("marshal grid state: %w", err)
	}
	if err := st.Set(StateKey(t.cfg.Entity), data); err != nil {
		return fmt.Errorf("save grid state %s: %w", t.cfg.Entity, err)
	}
	return nil
}

// LoadState restores the entity's saved view state, if any. A payload that
// does not parse is removed from the store and defaults are kept; that is
// recovery, not an error.
func (t *Table) LoadState(st Store) error {
	key := StateKey(t.cfg.Entity)
	data, ok, err := st.Get(key)
	if err != nil {
		return fmt.Errorf("load grid state %s: %w", t.cfg.Entity, err)
	}
	if !ok {
		return nil
	}
	var state ViewState
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt payloads would fail on every mount; drop them once.
		_ = st.Delete(key)
		return nil
	}
	t.ApplyState(state)
	return nil
}
