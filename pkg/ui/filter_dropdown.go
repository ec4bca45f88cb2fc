package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inventaworks/inventa/pkg/grid"
)

// FilterDropdown is the per-column filter popup for text/select columns:
// a search box over the column's distinct values and a checkbox list.
// Every toggle commits to the table immediately; closing the dropdown
// only clears the search text, never the selection.
type FilterDropdown struct {
	table    *grid.Table
	column   grid.Column
	search   textinput.Model
	sortDesc bool
	cursor   int
	width    int
}

// NewFilterDropdown opens a dropdown for the given column.
func NewFilterDropdown(table *grid.Table, column grid.Column) *FilterDropdown {
	ti := textinput.New()
	ti.Placeholder = "search values"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()

	return &FilterDropdown{
		table:  table,
		column: column,
		search: ti,
		width:  34,
	}
}

// Column returns the column this dropdown filters.
func (d *FilterDropdown) Column() grid.Column { return d.column }

// visible returns the distinct values with the search applied, in the
// current sort direction.
func (d *FilterDropdown) visible() []string {
	values := d.table.Distinct(d.column.ID, d.sortDesc)
	return grid.SearchValues(values, d.search.Value())
}

// allValues is the unsearched domain, what select-all operates over.
func (d *FilterDropdown) allValues() []string {
	return d.table.Distinct(d.column.ID, d.sortDesc)
}

func (d *FilterDropdown) clampCursor() {
	n := len(d.visible())
	if d.cursor >= n {
		d.cursor = n - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// Update handles one message. The second return reports whether the
// dropdown wants to close.
func (d *FilterDropdown) Update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter":
			d.search.SetValue("")
			return nil, true

		case "up", "ctrl+p":
			d.cursor--
			d.clampCursor()
			return nil, false

		case "down", "ctrl+n":
			d.cursor++
			d.clampCursor()
			return nil, false

		case " ":
			values := d.visible()
			if d.cursor < len(values) {
				v := d.table.Value(d.column.ID)
				v = v.Toggle(values[d.cursor], d.allValues())
				d.table.SetValue(d.column.ID, v)
			}
			return nil, false

		case "ctrl+a":
			v := d.table.Value(d.column.ID)
			v = v.ToggleAll()
			d.table.SetValue(d.column.ID, v)
			return nil, false

		case "ctrl+s":
			d.sortDesc = !d.sortDesc
			return nil, false
		}
	}

	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	d.clampCursor()
	return cmd, false
}

// View renders the dropdown panel.
func (d *FilterDropdown) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(PadRight(" "+d.column.Label, d.width)))
	b.WriteByte('\n')
	b.WriteString(d.search.View())
	b.WriteByte('\n')

	filter := d.table.Value(d.column.ID)
	values := d.visible()
	if len(values) == 0 {
		b.WriteString(MutedStyle.Render("  no values"))
		b.WriteByte('\n')
	}
	for i, v := range values {
		mark := "[ ]"
		if filter.Allows(v) {
			mark = "[x]"
		}
		label := v
		if label == "" {
			label = MutedStyle.Render("(blank)")
		}
		line := fmt.Sprintf(" %s %s", mark, Truncate(label, d.width-6))
		if i == d.cursor {
			line = SelectedRowStyle.Render(PadRight(line, d.width))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	all := d.allValues()
	hint := "space toggle · ctrl+a all/none · ctrl+s sort"
	b.WriteString(FooterStyle.Render(fmt.Sprintf(" %d/%d selected\n %s", filter.SelectedCount(len(all)), len(all), hint)))

	return PanelFocusedStyle.Render(b.String())
}
