package store

import (
	"os"
	"path/filepath"
	"testing"
)

// backends returns every Store implementation under test, each rooted in
// its own temp location.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFile(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	sqliteStore, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			key := "grid-state-v1-items"

			if _, ok, err := st.Get(key); err != nil || ok {
				t.Fatalf("fresh store Get = ok=%v err=%v, want missing", ok, err)
			}

			if err := st.Set(key, []byte(`{"pageSize":50}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := st.Get(key)
			if err != nil || !ok {
				t.Fatalf("Get after Set = ok=%v err=%v", ok, err)
			}
			if string(got) != `{"pageSize":50}` {
				t.Errorf("Get = %s", got)
			}

			// Overwrite wins.
			if err := st.Set(key, []byte(`{"pageSize":10}`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _, _ = st.Get(key)
			if string(got) != `{"pageSize":10}` {
				t.Errorf("Get after overwrite = %s", got)
			}

			if err := st.Delete(key); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := st.Get(key); ok {
				t.Error("Get after Delete should be missing")
			}

			// Deleting twice is fine.
			if err := st.Delete(key); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreKeysAreDisjoint(t *testing.T) {
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := st.Set("grid-state-v1-items", []byte("a")); err != nil {
				t.Fatal(err)
			}
			if err := st.Set("grid-state-v1-stocks", []byte("b")); err != nil {
				t.Fatal(err)
			}
			if err := st.Delete("grid-state-v1-items"); err != nil {
				t.Fatal(err)
			}
			got, ok, err := st.Get("grid-state-v1-stocks")
			if err != nil || !ok || string(got) != "b" {
				t.Errorf("sibling key disturbed: %s ok=%v err=%v", got, ok, err)
			}
		})
	}
}

func TestFileStoreSafeNames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	st, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set("weird/key:name", []byte("v")); err != nil {
		t.Fatalf("Set with unsafe key: %v", err)
	}
	got, ok, err := st.Get("weird/key:name")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("round-trip of escaped key failed: %s ok=%v err=%v", got, ok, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one state file, found %d", len(entries))
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	st, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set("k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := reopened.Get("k")
	if err != nil || !ok || string(got) != "persisted" {
		t.Errorf("value lost across reopen: %s ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	st, err := NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Set("k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	st.Close()

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, ok, err := reopened.Get("k")
	if err != nil || !ok || string(got) != "persisted" {
		t.Errorf("value lost across reopen: %s ok=%v err=%v", got, ok, err)
	}
}

func TestSQLiteCreatesParentDir(t *testing.T) {
	// a fresh machine has no state dir yet
	path := filepath.Join(t.TempDir(), "inventa", "state", "state.db")
	st, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite under a missing dir: %v", err)
	}
	defer st.Close()

	if err := st.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}
