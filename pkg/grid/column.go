// Package grid implements the entity-agnostic data grid engine: column
// configuration, per-column and global filtering, sorting, pagination and
// persisted view state. It is pure data and logic; rendering lives in pkg/ui.
package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CellKind determines how a column's values are rendered.
type CellKind string

const (
	CellText   CellKind = "text"
	CellNumber CellKind = "number"
	CellSelect CellKind = "select"
	CellDate   CellKind = "date"
	CellBadge  CellKind = "badge"
	CellLink   CellKind = "link"
)

// FilterKind determines which filter widget and predicate a column uses.
type FilterKind string

const (
	FilterText      FilterKind = "text"   // multi-select over distinct values
	FilterNumber    FilterKind = "number" // inclusive numeric range
	FilterSelect    FilterKind = "select" // multi-select over distinct values
	FilterDateRange FilterKind = "dateRange"
)

// Pinned is a layout hint for a column; it carries no behavioral contract.
type Pinned string

const (
	PinLeft  Pinned = "left"
	PinRight Pinned = "right"
)

// Option is one static value/label pair for columns whose filter domain is
// not derived from data.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Column describes one grid column. Sortable, Filterable and Hideable
// default to true; the yaml layer uses pointers so an omitted key and an
// explicit false are distinguishable.
type Column struct {
	ID            string     `yaml:"id"`
	Field         string     `yaml:"field"`
	Label         string     `yaml:"label"`
	Kind          CellKind   `yaml:"kind"`
	Width         int        `yaml:"width,omitempty"`
	Sortable      *bool      `yaml:"sortable,omitempty"`
	Filterable    *bool      `yaml:"filterable,omitempty"`
	Hideable      *bool      `yaml:"hideable,omitempty"`
	FilterKind    FilterKind `yaml:"filterKind,omitempty"`
	FilterOptions []Option   `yaml:"filterOptions,omitempty"`
	Pinned        Pinned     `yaml:"pinned,omitempty"`
}

// CanSort reports whether sorting is enabled for the column.
func (c Column) CanSort() bool { return c.Sortable == nil || *c.Sortable }

// CanFilter reports whether filtering is enabled for the column.
func (c Column) CanFilter() bool { return c.Filterable == nil || *c.Filterable }

// CanHide reports whether the column may be hidden by the user.
func (c Column) CanHide() bool { return c.Hideable == nil || *c.Hideable }

// Features gates the grid's UI affordances per entity.
type Features struct {
	ColumnVisibility bool `yaml:"columnVisibility"`
	Sorting          bool `yaml:"sorting"`
	Filtering        bool `yaml:"filtering"`
	Pagination       bool `yaml:"pagination"`
	Export           bool `yaml:"export"`
}

// SortEntry is one (column, direction) pair. The UI only ever pushes a
// single entry but the persisted format keeps the list shape.
type SortEntry struct {
	ID   string `yaml:"id" json:"id"`
	Desc bool   `yaml:"desc" json:"desc"`
}

// InitialState is the optional per-entity default view state.
type InitialState struct {
	ColumnVisibility map[string]bool `yaml:"columnVisibility,omitempty"`
	Sorting          []SortEntry     `yaml:"sorting,omitempty"`
	PageSize         int             `yaml:"pageSize,omitempty"`
}

// Config is the full grid configuration for one entity. Column order is the
// default display order. Entity doubles as the persistence namespace.
type Config struct {
	Entity       string        `yaml:"entity"`
	Columns      []Column      `yaml:"columns"`
	Features     Features      `yaml:"features"`
	InitialState *InitialState `yaml:"initialState,omitempty"`
}

// Validate checks the structural invariants of a grid config: a non-empty
// entity key, unique column ids, and a filter kind on every filterable
// column.
func (c Config) Validate() error {
	if c.Entity == "" {
		return fmt.Errorf("grid config: entity must not be empty")
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("grid config %q: no columns", c.Entity)
	}
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.ID == "" {
			return fmt.Errorf("grid config %q: column with empty id (field %q)", c.Entity, col.Field)
		}
		if seen[col.ID] {
			return fmt.Errorf("grid config %q: duplicate column id %q", c.Entity, col.ID)
		}
		seen[col.ID] = true
		if col.Field == "" {
			return fmt.Errorf("grid config %q: column %q has no field", c.Entity, col.ID)
		}
		if col.CanFilter() && col.FilterKind == "" {
			return fmt.Errorf("grid config %q: filterable column %q has no filterKind", c.Entity, col.ID)
		}
	}
	return nil
}

// Column returns the column with the given id, or false when absent.
func (c Config) Column(id string) (Column, bool) {
	for _, col := range c.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

// DefaultPageSize returns the initial page size, falling back to 20.
func (c Config) DefaultPageSize() int {
	if c.InitialState != nil && c.InitialState.PageSize > 0 {
		return c.InitialState.PageSize
	}
	return 20
}

// LoadConfig reads and validates a grid config from a yaml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read grid config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse grid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
