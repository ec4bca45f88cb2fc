package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/inventaworks/inventa/pkg/api"
	"github.com/inventaworks/inventa/pkg/config"
	"github.com/inventaworks/inventa/pkg/export"
	"github.com/inventaworks/inventa/pkg/model"
)

// BomCloseMsg asks the app to leave the tree view.
type BomCloseMsg struct{}

type bomLoadedMsg struct {
	gen  uint64
	view api.BomView
	err  error
}

type bomMutatedMsg struct {
	action string
	err    error
}

type bomState int

const (
	bomLoading bomState = iota
	bomReady
	bomFailed
)

type bomMode int

const (
	bomBrowse bomMode = iota
	bomConfirmDelete
	bomConfirmForce
	bomForm
)

// visibleNode is one row of the flattened tree.
type visibleNode struct {
	node  model.BomNode
	depth int
}

// BomTreeModel is the bill-of-materials drill-in view for one item:
// the component tree with per-node expansion, cost rollups, and the
// add/edit/delete mutations behind role gating.
type BomTreeModel struct {
	client *api.Client
	itemID string
	label  string
	role   model.Role

	state bomState
	mode  bomMode
	err   error
	gen   uint64

	view     api.BomView
	expanded map[string]bool
	cursor   int

	pendingDelete string // component entry id awaiting confirm
	dependents    int    // from the conflict response

	form     *huh.Form
	formEdit string // entry id being edited, empty for add
	formVals formValues

	status string
}

type formValues struct {
	componentID string
	quantity    string
	unit        string
	notes       string
}

// NewBomTreeModel opens the tree view for an item.
func NewBomTreeModel(client *api.Client, itemID, label string, role model.Role) *BomTreeModel {
	return &BomTreeModel{
		client:   client,
		itemID:   itemID,
		label:    label,
		role:     role,
		state:    bomLoading,
		expanded: make(map[string]bool),
	}
}

// CanEdit reports whether the session role may mutate the BOM.
func (m *BomTreeModel) CanEdit() bool { return m.role.CanEditBOM() }

// Expanded exposes the expansion set, for tests.
func (m *BomTreeModel) Expanded() map[string]bool { return m.expanded }

// Reload refetches tree, stats and components, discarding in-flight
// fetches. The expansion set survives reloads, entry ids are stable.
func (m *BomTreeModel) Reload() tea.Cmd {
	m.state = bomLoading
	m.err = nil
	m.gen++
	gen := m.gen
	client := m.client
	itemID := m.itemID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		view, err := client.FetchBomView(ctx, itemID)
		return bomLoadedMsg{gen: gen, view: view, err: err}
	}
}

// Init starts the first fetch.
func (m *BomTreeModel) Init() tea.Cmd {
	return m.Reload()
}

// visible flattens the tree in display order: a node's children show
// only while the node is expanded.
func (m *BomTreeModel) visible() []visibleNode {
	if !m.view.Tree.HasBom {
		return nil
	}
	var out []visibleNode
	var walk func(n model.BomNode, depth int)
	walk = func(n model.BomNode, depth int) {
		out = append(out, visibleNode{node: n, depth: depth})
		if m.expanded[n.ID] {
			for _, c := range n.Children {
				walk(c, depth+1)
			}
		}
	}
	walk(m.view.Tree.Tree, 0)
	return out
}

func (m *BomTreeModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *BomTreeModel) selected() (visibleNode, bool) {
	nodes := m.visible()
	if len(nodes) == 0 {
		return visibleNode{}, false
	}
	m.clampCursor()
	return nodes[m.cursor], true
}

func (m *BomTreeModel) deleteCmd(entryID string, force bool) tea.Cmd {
	client := m.client
	itemID := m.itemID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := client.DeleteBomComponent(ctx, itemID, entryID, force)
		return bomMutatedMsg{action: "delete", err: err}
	}
}

func (m *BomTreeModel) submitFormCmd() tea.Cmd {
	client := m.client
	itemID := m.itemID
	vals := m.formVals
	editID := m.formEdit

	qty, err := strconv.ParseFloat(strings.TrimSpace(vals.quantity), 64)
	if err != nil || qty <= 0 {
		m.status = "quantity must be a positive number"
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if editID == "" {
			_, err := client.AddBomComponent(ctx, itemID, model.BomCreate{
				ComponentItemID: strings.TrimSpace(vals.componentID),
				Quantity:        qty,
				Unit:            strings.TrimSpace(vals.unit),
				Notes:           strings.TrimSpace(vals.notes),
			})
			return bomMutatedMsg{action: "add", err: err}
		}
		unit := strings.TrimSpace(vals.unit)
		notes := strings.TrimSpace(vals.notes)
		_, uerr := client.UpdateBomComponent(ctx, itemID, editID, model.BomUpdate{
			Quantity: &qty,
			Unit:     &unit,
			Notes:    &notes,
		})
		return bomMutatedMsg{action: "update", err: uerr}
	}
}

func (m *BomTreeModel) openForm(edit *model.BomNode) tea.Cmd {
	m.formVals = formValues{unit: "EA", quantity: "1"}
	m.formEdit = ""
	title := "Add component"
	var fields []huh.Field

	if edit != nil {
		m.formEdit = edit.ID
		m.formVals.quantity = strconv.FormatFloat(edit.Quantity, 'f', -1, 64)
		m.formVals.unit = edit.Unit
		m.formVals.notes = edit.Notes
		title = "Edit " + edit.SKU
	} else {
		fields = append(fields,
			huh.NewInput().
				Title("Component item ID").
				Value(&m.formVals.componentID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("required")
					}
					return nil
				}),
		)
	}

	fields = append(fields,
		huh.NewInput().Title("Quantity").Value(&m.formVals.quantity),
		huh.NewInput().Title("Unit").Value(&m.formVals.unit),
		huh.NewInput().Title("Notes").Value(&m.formVals.notes),
	)

	m.form = huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false)
	m.mode = bomForm
	return m.form.Init()
}

// Update handles one message. The returned command may carry fetches,
// mutations or the close signal.
func (m *BomTreeModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bomLoadedMsg:
		if msg.gen != m.gen {
			return nil // stale fetch
		}
		if msg.err != nil {
			m.state = bomFailed
			m.err = msg.err
			return nil
		}
		m.state = bomReady
		m.err = nil
		m.view = msg.view
		// Root starts expanded, descendants collapsed; an existing
		// expansion set from before a reload is kept as-is.
		if len(m.expanded) == 0 && m.view.Tree.HasBom {
			m.expanded[m.view.Tree.Tree.ID] = true
		}
		m.clampCursor()
		return nil

	case bomMutatedMsg:
		if msg.err != nil {
			if conflict, ok := api.IsConflict(msg.err); ok && msg.action == "delete" {
				m.dependents = conflict.DependentsCount
				m.mode = bomConfirmForce
				return nil
			}
			m.status = msg.err.Error()
			m.mode = bomBrowse
			return nil
		}
		m.status = msg.action + " ok"
		m.mode = bomBrowse
		m.pendingDelete = ""
		m.dependents = 0
		return m.Reload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == bomForm && m.form != nil {
		f, cmd := m.form.Update(msg)
		if form, ok := f.(*huh.Form); ok {
			m.form = form
		}
		return m.checkFormState(cmd)
	}
	return nil
}

func (m *BomTreeModel) checkFormState(cmd tea.Cmd) tea.Cmd {
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.mode = bomBrowse
		return m.submitFormCmd()
	case huh.StateAborted:
		m.form = nil
		m.mode = bomBrowse
		return nil
	}
	return cmd
}

func (m *BomTreeModel) handleKey(key tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case bomConfirmDelete:
		switch key.String() {
		case "y", "enter":
			m.mode = bomBrowse
			return m.deleteCmd(m.pendingDelete, false)
		case "n", "esc":
			m.mode = bomBrowse
			m.pendingDelete = ""
		}
		return nil

	case bomConfirmForce:
		switch key.String() {
		case "y":
			m.mode = bomBrowse
			return m.deleteCmd(m.pendingDelete, true)
		case "n", "esc":
			m.mode = bomBrowse
			m.pendingDelete = ""
			m.dependents = 0
		}
		return nil

	case bomForm:
		if m.form == nil {
			m.mode = bomBrowse
			return nil
		}
		f, cmd := m.form.Update(key)
		if form, ok := f.(*huh.Form); ok {
			m.form = form
		}
		return m.checkFormState(cmd)
	}

	// bomBrowse
	switch key.String() {
	case "esc", "q":
		return func() tea.Msg { return BomCloseMsg{} }

	case "up", "k":
		m.cursor--
		m.clampCursor()

	case "down", "j":
		m.cursor++
		m.clampCursor()

	case "enter", " ":
		if sel, ok := m.selected(); ok && sel.node.HasChildren() {
			m.expanded[sel.node.ID] = !m.expanded[sel.node.ID]
			m.clampCursor()
		}

	case "a":
		if m.CanEdit() && m.state == bomReady {
			return m.openForm(nil)
		}

	case "e":
		if sel, ok := m.selected(); ok && m.CanEdit() && sel.depth > 0 {
			node := sel.node
			return m.openForm(&node)
		}

	case "d":
		if sel, ok := m.selected(); ok && m.CanEdit() && sel.depth > 0 {
			m.pendingDelete = sel.node.ID
			m.mode = bomConfirmDelete
		}

	case "g":
		if m.state == bomReady && m.view.Tree.HasBom {
			return m.snapshotCmd()
		}

	case "r":
		return m.Reload()
	}
	return nil
}

func (m *BomTreeModel) snapshotCmd() tea.Cmd {
	opts := export.BomSnapshotOptions{
		Path:  filepath.Join(config.DataDir(), fmt.Sprintf("bom-%s-%s.svg", m.view.Tree.SKU, time.Now().Format("20060102-150405"))),
		Title: "BOM " + m.view.Tree.SKU,
		Tree:  m.view.Tree.Tree,
		Stats: m.view.Stats,
	}
	return func() tea.Msg {
		if err := export.SaveBomSnapshot(opts); err != nil {
			return StatusMsg("snapshot failed: " + err.Error())
		}
		return StatusMsg("saved " + opts.Path)
	}
}

// View renders the tree view.
func (m *BomTreeModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(" BOM · " + m.label + " "))
	b.WriteByte('\n')

	switch m.state {
	case bomLoading:
		b.WriteString(MutedStyle.Render("loading tree…"))
		b.WriteByte('\n')
		return b.String()

	case bomFailed:
		b.WriteString(ErrorStyle.Render("failed to load BOM"))
		b.WriteByte('\n')
		if m.err != nil {
			b.WriteString(MutedStyle.Render(m.err.Error()))
			b.WriteByte('\n')
		}
		b.WriteString(FooterStyle.Render("press r to retry, esc to go back"))
		b.WriteByte('\n')
		return b.String()
	}

	if !m.view.Tree.HasBom {
		b.WriteString(MutedStyle.Render("this item has no bill of materials"))
		b.WriteByte('\n')
		if m.CanEdit() {
			b.WriteString(FooterStyle.Render("press a to add the first component"))
			b.WriteByte('\n')
		}
		return b.String()
	}

	stats := m.view.Stats
	b.WriteString(FooterStyle.Render(fmt.Sprintf("components %d · depth %d · total cost %s",
		stats.TotalComponents, stats.MaxDepth, FormatMoney(stats.TotalCost))))
	b.WriteByte('\n')

	for i, vn := range m.visible() {
		b.WriteString(m.renderNode(vn, i == m.cursor))
		b.WriteByte('\n')
	}

	switch m.mode {
	case bomConfirmDelete:
		b.WriteString(ErrorStyle.Render("delete this component? (y/n)"))
		b.WriteByte('\n')
	case bomConfirmForce:
		b.WriteString(ErrorStyle.Render(fmt.Sprintf(
			"component has %d dependent entries; delete anyway? (y/n)", m.dependents)))
		b.WriteByte('\n')
	case bomForm:
		if m.form != nil {
			b.WriteString(m.form.View())
			b.WriteByte('\n')
		}
	}

	if m.status != "" {
		b.WriteString(MutedStyle.Render(m.status))
		b.WriteByte('\n')
	}

	hints := "enter expand/collapse · g snapshot · esc back"
	if m.CanEdit() {
		hints = "enter expand/collapse · a add · e edit · d delete · g snapshot · esc back"
	}
	b.WriteString(FooterStyle.Render(hints))
	b.WriteByte('\n')
	return b.String()
}

func (m *BomTreeModel) renderNode(vn visibleNode, selected bool) string {
	n := vn.node

	indicator := "  "
	if n.HasChildren() {
		if m.expanded[n.ID] {
			indicator = "▾ "
		} else {
			indicator = "▸ "
		}
	}

	var line strings.Builder
	line.WriteString(strings.Repeat("  ", vn.depth))
	line.WriteString(indicator)
	line.WriteString(TypeBadge(n.ItemType))
	line.WriteString(" ")
	line.WriteString(n.SKU)
	line.WriteString("  ")
	line.WriteString(Truncate(n.Name, 28))
	line.WriteString("  ")
	line.WriteString(MutedStyle.Render(fmt.Sprintf("%g %s", n.Quantity, n.Unit)))
	if n.TotalCost != nil {
		line.WriteString("  ")
		line.WriteString(FooterStyle.Render(FormatMoney(*n.TotalCost)))
	}

	out := line.String()
	if selected {
		out = "› " + out
	} else {
		out = "  " + out
	}
	return out
}
