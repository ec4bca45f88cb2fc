package grid

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty entity", func(c *Config) { c.Entity = "" }, "entity"},
		{"no columns", func(c *Config) { c.Columns = nil }, "no columns"},
		{"duplicate id", func(c *Config) { c.Columns[1].ID = "sku" }, "duplicate"},
		{"empty id", func(c *Config) { c.Columns[0].ID = "" }, "empty id"},
		{"missing field", func(c *Config) { c.Columns[0].Field = "" }, "no field"},
		{"filterable without kind", func(c *Config) { c.Columns[0].FilterKind = "" }, "filterKind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNonFilterableNeedsNoKind(t *testing.T) {
	cfg := testConfig()
	cfg.Columns[0].Filterable = boolp(false)
	cfg.Columns[0].FilterKind = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for non-filterable column without kind", err)
	}
}

func TestColumnDefaults(t *testing.T) {
	col := Column{ID: "x", Field: "x", Label: "X"}
	if !col.CanSort() || !col.CanFilter() || !col.CanHide() {
		t.Error("sortable, filterable and hideable must default to true")
	}
	col.Sortable = boolp(false)
	if col.CanSort() {
		t.Error("explicit false must win over the default")
	}
}

func TestBuiltinConfigsValid(t *testing.T) {
	for _, entity := range Entities() {
		cfg, ok := Builtin(entity)
		if !ok {
			t.Fatalf("no builtin config for %s", entity)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("builtin %s config invalid: %v", entity, err)
		}
	}
	if _, ok := Builtin("nope"); ok {
		t.Error("unknown entity should have no builtin config")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "widgets.yaml")
	data := `
entity: widgets
features:
  sorting: true
  filtering: true
  pagination: true
columns:
  - id: code
    field: code
    label: Code
    kind: text
    filterKind: text
  - id: qty
    field: qty
    label: Qty
    kind: number
    sortable: false
    filterKind: number
  - id: note
    field: note
    label: Note
    kind: text
    filterable: false
initialState:
  pageSize: 50
  sorting:
    - id: code
      desc: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Entity != "widgets" || len(cfg.Columns) != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Columns[1].CanSort() {
		t.Error("qty should be non-sortable")
	}
	if cfg.Columns[2].CanFilter() {
		t.Error("note should be non-filterable")
	}
	if cfg.DefaultPageSize() != 50 {
		t.Errorf("default page size = %d, want 50", cfg.DefaultPageSize())
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(":\t:::not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("unparseable yaml should error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("entity: x\ncolumns:\n  - id: a\n    field: f\n    label: L\n    kind: text\n    filterKind: text\n  - id: a\n    field: g\n    label: M\n    kind: text\n    filterKind: text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("duplicate ids should fail validation, got %v", err)
	}
}
