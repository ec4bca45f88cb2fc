package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inventaworks/inventa/pkg/grid"
)

// RangeFilter is the popup for numeric columns: inclusive min and max
// bounds, either of which may be left empty for a half-open range.
type RangeFilter struct {
	table  *grid.Table
	column grid.Column
	min    textinput.Model
	max    textinput.Model
	onMax  bool
	width  int
}

// NewRangeFilter opens a range popup pre-filled with the active bounds.
func NewRangeFilter(table *grid.Table, column grid.Column) *RangeFilter {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 20
		ti.Width = 12
		return ti
	}

	f := &RangeFilter{
		table:  table,
		column: column,
		min:    newInput("min"),
		max:    newInput("max"),
		width:  34,
	}

	r := table.Range(column.ID)
	if r.Min != nil {
		f.min.SetValue(strconv.FormatFloat(*r.Min, 'f', -1, 64))
	}
	if r.Max != nil {
		f.max.SetValue(strconv.FormatFloat(*r.Max, 'f', -1, 64))
	}
	f.min.Focus()
	return f
}

// Column returns the column this popup filters.
func (f *RangeFilter) Column() grid.Column { return f.column }

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

// commit pushes the current inputs to the table. Unparseable text counts
// as an empty bound.
func (f *RangeFilter) commit() {
	f.table.SetRange(f.column.ID, grid.Range{
		Min: parseBound(f.min.Value()),
		Max: parseBound(f.max.Value()),
	})
}

// Update handles one message. The second return reports whether the
// popup wants to close.
func (f *RangeFilter) Update(msg tea.Msg) (tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return nil, true

		case "enter":
			f.commit()
			return nil, true

		case "tab", "shift+tab", "up", "down":
			f.onMax = !f.onMax
			if f.onMax {
				f.min.Blur()
				f.max.Focus()
			} else {
				f.max.Blur()
				f.min.Focus()
			}
			return nil, false

		case "ctrl+x":
			f.min.SetValue("")
			f.max.SetValue("")
			f.commit()
			return nil, true
		}
	}

	var cmd tea.Cmd
	if f.onMax {
		f.max, cmd = f.max.Update(msg)
	} else {
		f.min, cmd = f.min.Update(msg)
	}
	return cmd, false
}

// View renders the popup panel.
func (f *RangeFilter) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(PadRight(" "+f.column.Label+" range", f.width)))
	b.WriteByte('\n')
	b.WriteString(" from " + f.min.View())
	b.WriteByte('\n')
	b.WriteString("   to " + f.max.View())
	b.WriteByte('\n')
	b.WriteString(FooterStyle.Render(" enter apply · ctrl+x clear · esc cancel"))
	return PanelFocusedStyle.Render(b.String())
}
