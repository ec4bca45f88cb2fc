package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/inventaworks/inventa/pkg/config"
	"github.com/inventaworks/inventa/pkg/debug"
	"github.com/inventaworks/inventa/pkg/export"
	"github.com/inventaworks/inventa/pkg/grid"
	"github.com/inventaworks/inventa/pkg/model"
)

// RowFetcher loads the full row set for one entity.
type RowFetcher func(ctx context.Context) ([]map[string]any, error)

// RowActivatedMsg is emitted when the user presses enter on a row.
type RowActivatedMsg struct {
	Entity string
	Row    map[string]any
}

// StatusMsg is a transient message for the app status line.
type StatusMsg string

type rowsLoadedMsg struct {
	entity string
	gen    uint64
	rows   []map[string]any
	err    error
}

type gridState int

const (
	gridLoading gridState = iota
	gridReady
	gridFailed
)

type gridFocus int

const (
	focusRows gridFocus = iota
	focusSearch
	focusDropdown
	focusRange
	focusColumns
)

// GridModel is one entity's data grid: fetch, filter, sort, paginate,
// column visibility and view-state persistence over a grid.Table.
type GridModel struct {
	entity  string
	table   *grid.Table
	fetch   RowFetcher
	store   grid.Store
	role    model.Role
	exports string // directory for export files

	state gridState
	focus gridFocus
	err   error
	gen   uint64

	search   textinput.Model
	dropdown *FilterDropdown
	rng      *RangeFilter

	colCursor int // index into VisibleColumns
	rowCursor int // index into PageRows
	visCursor int // index in the visibility panel

	width  int
	height int
}

// NewGridModel builds the grid for one entity. Saved view state is
// applied before the first fetch; a load error falls back to defaults.
func NewGridModel(cfg grid.Config, locale string, fetch RowFetcher, store grid.Store, role model.Role) *GridModel {
	table := grid.NewTable(cfg, grid.NewCollator(locale))
	if store != nil {
		if err := table.LoadState(store); err != nil {
			debug.Log("grid %s: load state: %v", cfg.Entity, err)
		}
	}

	ti := textinput.New()
	ti.Placeholder = "filter all columns"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return &GridModel{
		entity:  cfg.Entity,
		table:   table,
		fetch:   fetch,
		store:   store,
		role:    role,
		exports: config.DataDir(),
		search:  ti,
		state:   gridLoading,
	}
}

// Table exposes the underlying projection, mainly for tests.
func (m *GridModel) Table() *grid.Table { return m.table }

// Entity returns the entity this grid shows.
func (m *GridModel) Entity() string { return m.entity }

// SetSize updates the layout bounds.
func (m *GridModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload fetches the rows again, discarding any in-flight fetch.
func (m *GridModel) Reload() tea.Cmd {
	m.state = gridLoading
	m.err = nil
	m.gen++
	gen := m.gen
	entity := m.entity
	fetch := m.fetch

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rows, err := fetch(ctx)
		return rowsLoadedMsg{entity: entity, gen: gen, rows: rows, err: err}
	}
}

// Init starts the first fetch.
func (m *GridModel) Init() tea.Cmd {
	return m.Reload()
}

// saveState persists the current view state; errors are logged, never
// surfaced, a failed save must not break interaction.
func (m *GridModel) saveState() {
	if m.store == nil {
		return
	}
	if err := m.table.SaveState(m.store); err != nil {
		debug.Log("grid %s: save state: %v", m.entity, err)
	}
}

func (m *GridModel) clampCursors() {
	cols := m.table.VisibleColumns()
	if m.colCursor >= len(cols) {
		m.colCursor = len(cols) - 1
	}
	if m.colCursor < 0 {
		m.colCursor = 0
	}
	rows := len(m.table.PageRows())
	if m.rowCursor >= rows {
		m.rowCursor = rows - 1
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}
}

func (m *GridModel) currentColumn() (grid.Column, bool) {
	cols := m.table.VisibleColumns()
	if len(cols) == 0 {
		return grid.Column{}, false
	}
	m.clampCursors()
	return cols[m.colCursor], true
}

// cyclePageSize steps through the allowed page sizes.
func (m *GridModel) cyclePageSize() {
	cur := m.table.PageSize()
	for i, size := range grid.PageSizes {
		if size == cur {
			m.table.SetPageSize(grid.PageSizes[(i+1)%len(grid.PageSizes)])
			return
		}
	}
	m.table.SetPageSize(grid.PageSizes[0])
}

func (m *GridModel) exportCmd(kind string) tea.Cmd {
	table := m.table
	dir := m.exports
	entity := m.entity
	return func() tea.Msg {
		stamp := time.Now().Format("20060102-150405")
		switch kind {
		case "xlsx":
			path := filepath.Join(dir, fmt.Sprintf("%s-%s.xlsx", entity, stamp))
			if err := export.WriteXLSX(table, path); err != nil {
				return StatusMsg("export failed: " + err.Error())
			}
			return StatusMsg("exported " + path)
		case "csv":
			if err := export.CopyCSV(table); err != nil {
				return StatusMsg("copy failed: " + err.Error())
			}
			return StatusMsg("copied csv to clipboard")
		default:
			return nil
		}
	}
}

// Update handles one message.
func (m *GridModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case rowsLoadedMsg:
		if msg.entity != m.entity || msg.gen != m.gen {
			return nil // stale fetch
		}
		if msg.err != nil {
			m.state = gridFailed
			m.err = msg.err
			return nil
		}
		m.state = gridReady
		m.err = nil
		m.table.SetRows(msg.rows)
		m.clampCursors()
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *GridModel) handleKey(key tea.KeyMsg) tea.Cmd {
	switch m.focus {
	case focusSearch:
		switch key.String() {
		case "esc", "enter":
			m.focus = focusRows
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(key)
		m.table.SetGlobal(m.search.Value())
		m.clampCursors()
		return cmd

	case focusDropdown:
		cmd, done := m.dropdown.Update(key)
		if done {
			m.dropdown = nil
			m.focus = focusRows
		}
		m.clampCursors()
		return cmd

	case focusRange:
		cmd, done := m.rng.Update(key)
		if done {
			m.rng = nil
			m.focus = focusRows
		}
		m.clampCursors()
		return cmd

	case focusColumns:
		return m.handleVisibilityKey(key)
	}

	// focusRows
	switch key.String() {
	case "/":
		m.focus = focusSearch
		m.search.Focus()
		return textinput.Blink

	case "left", "h":
		m.colCursor--
		m.clampCursors()

	case "right", "l":
		m.colCursor++
		m.clampCursors()

	case "up", "k":
		m.rowCursor--
		m.clampCursors()

	case "down", "j":
		m.rowCursor++
		m.clampCursors()

	case "[", "pgup":
		m.table.PrevPage()
		m.rowCursor = 0

	case "]", "pgdown":
		m.table.NextPage()
		m.rowCursor = 0

	case "s":
		if col, ok := m.currentColumn(); ok {
			m.table.CycleSort(col.ID)
			m.saveState()
		}

	case "f":
		col, ok := m.currentColumn()
		if !ok || !col.CanFilter() || !m.table.Config().Features.Filtering {
			return nil
		}
		switch col.FilterKind {
		case grid.FilterNumber:
			m.rng = NewRangeFilter(m.table, col)
			m.focus = focusRange
		default:
			m.dropdown = NewFilterDropdown(m.table, col)
			m.focus = focusDropdown
		}
		return textinput.Blink

	case "v":
		if m.table.Config().Features.ColumnVisibility {
			m.focus = focusColumns
			m.visCursor = 0
		}

	case "p":
		m.cyclePageSize()
		m.rowCursor = 0
		m.saveState()

	case "e":
		if m.table.Config().Features.Export {
			return m.exportCmd("xlsx")
		}

	case "c":
		if m.table.Config().Features.Export {
			return m.exportCmd("csv")
		}

	case "r":
		return m.Reload()

	case "enter":
		rows := m.table.PageRows()
		if m.rowCursor < len(rows) {
			row := rows[m.rowCursor]
			entity := m.entity
			return func() tea.Msg {
				return RowActivatedMsg{Entity: entity, Row: row}
			}
		}
	}
	return nil
}

func (m *GridModel) handleVisibilityKey(key tea.KeyMsg) tea.Cmd {
	cols := m.table.Config().Columns
	switch key.String() {
	case "esc", "v", "enter":
		m.focus = focusRows
		m.clampCursors()

	case "up", "k":
		if m.visCursor > 0 {
			m.visCursor--
		}

	case "down", "j":
		if m.visCursor < len(cols)-1 {
			m.visCursor++
		}

	case " ":
		if m.visCursor < len(cols) {
			col := cols[m.visCursor]
			m.table.SetColumnVisible(col.ID, !m.table.ColumnVisible(col.ID))
			m.saveState()
		}
	}
	return nil
}

func (m *GridModel) colWidth(col grid.Column) int {
	if col.Width > 0 {
		return col.Width
	}
	return 16
}

func (m *GridModel) renderCell(col grid.Column, row map[string]any) string {
	val := row[col.Field]
	w := m.colWidth(col)
	switch col.Kind {
	case grid.CellNumber:
		return PadLeft(grid.Stringify(val), w)
	case grid.CellBadge:
		// PadRight can't see through the badge's ANSI escapes, so pad
		// from the plain value's width. The badge itself adds one cell
		// of padding each side.
		s := grid.Stringify(val)
		pad := w - runewidth.StringWidth(s) - 2
		if pad < 0 {
			pad = 0
		}
		return TypeBadge(model.ItemType(s)) + strings.Repeat(" ", pad)
	default:
		return PadRight(grid.Stringify(val), w)
	}
}

// View renders the grid.
func (m *GridModel) View() string {
	var b strings.Builder

	// search line
	if m.focus == focusSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
	} else {
		b.WriteString(MutedStyle.Render("press / to filter"))
	}
	b.WriteByte('\n')

	switch m.state {
	case gridLoading:
		b.WriteString(MutedStyle.Render("loading " + m.entity + "…"))
		b.WriteByte('\n')
		return b.String()

	case gridFailed:
		b.WriteString(ErrorStyle.Render("failed to load " + m.entity))
		b.WriteByte('\n')
		if m.err != nil {
			b.WriteString(MutedStyle.Render(m.err.Error()))
			b.WriteByte('\n')
		}
		b.WriteString(FooterStyle.Render("press r to retry"))
		b.WriteByte('\n')
		return b.String()
	}

	cols := m.table.VisibleColumns()

	// header
	var header strings.Builder
	for i, col := range cols {
		label := col.Label
		for _, s := range m.table.Sorting() {
			if s.ID == col.ID {
				if s.Desc {
					label += " ▼"
				} else {
					label += " ▲"
				}
			}
		}
		if m.table.Value(col.ID) != nil || !m.table.Range(col.ID).IsZero() {
			label += " •"
		}
		cell := PadRight(label, m.colWidth(col))
		if i == m.colCursor && m.focus == focusRows {
			cell = AccentStyle.Render(cell)
		}
		header.WriteString(cell)
		header.WriteString("  ")
	}
	b.WriteString(HeaderStyle.Render(header.String()))
	b.WriteByte('\n')

	// body
	rows := m.table.PageRows()
	if len(rows) == 0 {
		b.WriteString(MutedStyle.Render("  no rows match the current filters"))
		b.WriteByte('\n')
	}
	for i, row := range rows {
		var line strings.Builder
		for _, col := range cols {
			line.WriteString(m.renderCell(col, row))
			line.WriteString("  ")
		}
		out := line.String()
		if i == m.rowCursor && m.focus == focusRows {
			out = SelectedRowStyle.Render(out)
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}

	// footer
	first, last, total := m.table.VisibleRange()
	footer := fmt.Sprintf("showing %d–%d of %d · page %d/%d · size %d",
		first, last, total, m.table.Page()+1, m.table.PageCount(), m.table.PageSize())
	b.WriteString(FooterStyle.Render(footer))
	b.WriteByte('\n')

	// overlays
	switch m.focus {
	case focusDropdown:
		b.WriteString(m.dropdown.View())
		b.WriteByte('\n')
	case focusRange:
		b.WriteString(m.rng.View())
		b.WriteByte('\n')
	case focusColumns:
		b.WriteString(m.visibilityView())
		b.WriteByte('\n')
	}

	return b.String()
}

func (m *GridModel) visibilityView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(PadRight(" columns", 30)))
	b.WriteByte('\n')
	for i, col := range m.table.Config().Columns {
		mark := "[ ]"
		if m.table.ColumnVisible(col.ID) {
			mark = "[x]"
		}
		label := col.Label
		if !col.CanHide() {
			label += MutedStyle.Render(" (always on)")
		}
		line := fmt.Sprintf(" %s %s", mark, label)
		if i == m.visCursor {
			line = SelectedRowStyle.Render(PadRight(line, 30))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(FooterStyle.Render(" space toggle · esc close"))
	return PanelFocusedStyle.Render(b.String())
}
