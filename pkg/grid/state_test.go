package grid

import (
	"errors"
	"reflect"
	"testing"
)

// memStore is a minimal in-memory Store for tests.
type memStore struct {
	data map[string][]byte
	err  error // returned by every operation when set
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.data, key)
	return nil
}

func TestStateKeyFormat(t *testing.T) {
	if got := StateKey("items"); got != "grid-state-v1-items" {
		t.Errorf("StateKey = %q", got)
	}
}

// TestStateRoundTrip is testable property 4: save, then load into a fresh
// table, and the persisted sub-states come back identical.
func TestStateRoundTrip(t *testing.T) {
	st := newMemStore()

	tbl := newTestTable(t)
	tbl.SetColumnVisible("type", false)
	tbl.CycleSort("cost")
	tbl.CycleSort("cost") // descending
	tbl.SetPageSize(50)
	if err := tbl.SaveState(st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	fresh := NewTable(testConfig(), NewCollator("en"))
	fresh.SetRows(testRows())
	if err := fresh.LoadState(st); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if fresh.ColumnVisible("type") {
		t.Error("column visibility did not round-trip")
	}
	want := []SortEntry{{ID: "cost", Desc: true}}
	if !reflect.DeepEqual(fresh.Sorting(), want) {
		t.Errorf("sorting = %v, want %v", fresh.Sorting(), want)
	}
	if fresh.PageSize() != 50 {
		t.Errorf("page size = %d, want 50", fresh.PageSize())
	}
}

// TestStateCorruptionRecovery is testable property 5: a malformed payload
// yields default state, no error, and the bad entry is removed.
func TestStateCorruptionRecovery(t *testing.T) {
	st := newMemStore()
	st.data[StateKey("test-items")] = []byte("{not json")

	tbl := newTestTable(t)
	if err := tbl.LoadState(st); err != nil {
		t.Fatalf("LoadState on corrupt payload returned error: %v", err)
	}

	if tbl.PageSize() != 20 {
		t.Errorf("page size = %d, want default 20", tbl.PageSize())
	}
	if len(tbl.Sorting()) != 0 {
		t.Errorf("sorting = %v, want default empty", tbl.Sorting())
	}
	if _, ok := st.data[StateKey("test-items")]; ok {
		t.Error("corrupt entry should have been removed")
	}
}

func TestStatePartialApply(t *testing.T) {
	st := newMemStore()
	// Only pageSize is usable; unknown column ids must be dropped.
	st.data[StateKey("test-items")] = []byte(
		`{"columnVisibility":{"ghost":false},"sorting":[{"id":"ghost","desc":true}],"pageSize":100}`)

	tbl := newTestTable(t)
	if err := tbl.LoadState(st); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if tbl.PageSize() != 100 {
		t.Errorf("page size = %d, want 100 from the parseable field", tbl.PageSize())
	}
	if len(tbl.Sorting()) != 0 {
		t.Errorf("sorting = %v, unknown column must not survive restore", tbl.Sorting())
	}
	for _, col := range tbl.Config().Columns {
		if !tbl.ColumnVisible(col.ID) {
			t.Errorf("column %s hidden by a ghost id", col.ID)
		}
	}
}

func TestStateMissingIsNoop(t *testing.T) {
	st := newMemStore()
	tbl := newTestTable(t)
	if err := tbl.LoadState(st); err != nil {
		t.Fatalf("LoadState with no entry: %v", err)
	}
	if tbl.PageSize() != 20 {
		t.Errorf("page size = %d, want untouched default", tbl.PageSize())
	}
}

func TestStateStoreErrorSurfaces(t *testing.T) {
	st := newMemStore()
	st.err = errors.New("disk gone")

	tbl := newTestTable(t)
	if err := tbl.SaveState(st); err == nil {
		t.Error("SaveState should surface store errors")
	}
	if err := tbl.LoadState(st); err == nil {
		t.Error("LoadState should surface store errors")
	}
}

func TestApplyStateResetsPage(t *testing.T) {
	rows := make([]map[string]any, 30)
	for i := range rows {
		rows[i] = map[string]any{"sku": Stringify(float64(i)), "type": "RM", "cost": float64(i)}
	}
	tbl := NewTable(testConfig(), NewCollator("en"))
	tbl.SetRows(rows)
	tbl.SetPageSize(10)
	tbl.NextPage()
	if tbl.Page() != 1 {
		t.Fatalf("page = %d before restore, want 1", tbl.Page())
	}

	tbl.ApplyState(ViewState{PageSize: 20})
	if tbl.Page() != 0 {
		t.Errorf("page = %d after restore, want 0 (page index is not persisted)", tbl.Page())
	}
}
