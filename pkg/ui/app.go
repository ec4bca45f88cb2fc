package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/inventaworks/inventa/pkg/api"
	"github.com/inventaworks/inventa/pkg/config"
	"github.com/inventaworks/inventa/pkg/debug"
	"github.com/inventaworks/inventa/pkg/grid"
	"github.com/inventaworks/inventa/pkg/model"
	"github.com/inventaworks/inventa/pkg/watcher"
)

type appView int

const (
	viewLogin appView = iota
	viewGrid
	viewBom
)

type loginDoneMsg struct {
	session model.Session
	err     error
}

// LayoutChangedMsg reports a grid layout file edit from the watcher.
type LayoutChangedMsg struct{ Entity string }

type statusClearMsg struct{ at time.Time }

// App is the root model: the login gate, the entity grids and the BOM
// drill-in view.
type App struct {
	cfg    config.Config
	client *api.Client
	store  grid.Store
	watch  *watcher.Watcher

	view    appView
	session model.Session

	loginForm *huh.Form
	loginVals struct {
		username string
		password string
	}
	loginErr error
	loggingIn bool

	entity string
	grids  map[string]*GridModel
	bom    *BomTreeModel

	status   string
	statusAt time.Time

	width  int
	height int
}

// NewApp builds the root model. The watcher may be nil when the layout
// directory doesn't exist.
func NewApp(cfg config.Config, client *api.Client, store grid.Store, watch *watcher.Watcher) *App {
	entity := cfg.UI.DefaultEntity
	if entity == "" {
		entity = "items"
	}

	a := &App{
		cfg:    cfg,
		client: client,
		store:  store,
		watch:  watch,
		view:   viewLogin,
		entity: entity,
		grids:  make(map[string]*GridModel),
	}
	a.loginForm = a.newLoginForm()
	return a
}

func (a *App) newLoginForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&a.loginVals.username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&a.loginVals.password),
	).Title("Sign in")).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false)
}

func (a *App) loginCmd() tea.Cmd {
	client := a.client
	username := a.loginVals.username
	password := a.loginVals.password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		session, err := client.Login(ctx, username, password)
		return loginDoneMsg{session: session, err: err}
	}
}

// watchCmd blocks on the next layout change.
func watchCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		entity := <-w.Changed()
		return LayoutChangedMsg{Entity: entity}
	}
}

func statusTimeoutCmd(at time.Time) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{at: at}
	})
}

// Init starts the login form and the layout watcher.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loginForm.Init()}
	if a.watch != nil {
		cmds = append(cmds, watchCmd(a.watch))
	}
	return tea.Batch(cmds...)
}

// gridFor returns (building on demand) the grid model for an entity.
func (a *App) gridFor(entity string) (*GridModel, tea.Cmd) {
	if g, ok := a.grids[entity]; ok {
		return g, nil
	}
	cfg := a.layoutFor(entity)
	g := NewGridModel(cfg, a.cfg.UI.Locale, a.fetcherFor(entity), a.store, a.session.User.Role)
	if a.cfg.UI.PageSize > 0 {
		g.Table().SetPageSize(a.cfg.UI.PageSize)
	}
	g.SetSize(a.width, a.height)
	a.grids[entity] = g
	return g, g.Init()
}

// layoutFor loads the entity's layout override from the grid config dir,
// falling back to the builtin layout.
func (a *App) layoutFor(entity string) grid.Config {
	builtin, _ := grid.Builtin(entity)
	dir := config.GridConfigDir()
	if dir == "" {
		return builtin
	}
	cfg, err := grid.LoadConfig(filepath.Join(dir, entity+".yaml"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			debug.Log("layout %s: %v", entity, err)
		}
		return builtin
	}
	return cfg
}

// fetcherFor maps an entity to its list endpoint, flattened to rows.
func (a *App) fetcherFor(entity string) RowFetcher {
	client := a.client
	switch entity {
	case "stocks":
		return func(ctx context.Context) ([]map[string]any, error) {
			stocks, _, err := client.ListStocks(ctx, api.ListParams{})
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]any, len(stocks))
			for i, s := range stocks {
				rows[i] = s.Row()
			}
			return rows, nil
		}
	case "inbounds":
		return func(ctx context.Context) ([]map[string]any, error) {
			list, _, err := client.ListInbounds(ctx, api.ListParams{})
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]any, len(list))
			for i, v := range list {
				rows[i] = v.Row()
			}
			return rows, nil
		}
	case "outbounds":
		return func(ctx context.Context) ([]map[string]any, error) {
			list, _, err := client.ListOutbounds(ctx, api.ListParams{})
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]any, len(list))
			for i, v := range list {
				rows[i] = v.Row()
			}
			return rows, nil
		}
	default:
		return func(ctx context.Context) ([]map[string]any, error) {
			items, _, err := client.ListItems(ctx, api.ListParams{})
			if err != nil {
				return nil, err
			}
			rows := make([]map[string]any, len(items))
			for i, it := range items {
				rows[i] = it.Row()
			}
			return rows, nil
		}
	}
}

func (a *App) setStatus(s string) tea.Cmd {
	a.status = s
	a.statusAt = time.Now()
	return statusTimeoutCmd(a.statusAt)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, g := range a.grids {
			g.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case loginDoneMsg:
		a.loggingIn = false
		if msg.err != nil {
			a.loginErr = msg.err
			a.loginForm = a.newLoginForm()
			return a, a.loginForm.Init()
		}
		a.session = msg.session
		a.view = viewGrid
		_, cmd := a.gridFor(a.entity)
		return a, cmd

	case LayoutChangedMsg:
		// Drop the cached grid so the next visit rebuilds it from the
		// edited layout. The active entity rebuilds immediately.
		delete(a.grids, msg.Entity)
		var cmds []tea.Cmd
		if a.watch != nil {
			cmds = append(cmds, watchCmd(a.watch))
		}
		if a.view == viewGrid && a.entity == msg.Entity {
			_, cmd := a.gridFor(msg.Entity)
			cmds = append(cmds, cmd, a.setStatus("reloaded "+msg.Entity+" layout"))
		}
		return a, tea.Batch(cmds...)

	case rowsLoadedMsg:
		// Route by entity, not by the active view: a fetch resolving for
		// a background grid must still land on that grid, or it would sit
		// in its loading state forever.
		if api.IsUnauthorized(msg.err) {
			return a, a.dropToLogin(msg.err)
		}
		if g, ok := a.grids[msg.entity]; ok {
			return a, g.Update(msg)
		}
		return a, nil

	case bomLoadedMsg:
		return a.routeBomMsg(msg, msg.err)

	case bomMutatedMsg:
		return a.routeBomMsg(msg, msg.err)

	case loggedOutMsg:
		return a, a.dropToLogin(nil)

	case StatusMsg:
		return a, a.setStatus(string(msg))

	case statusClearMsg:
		if msg.at.Equal(a.statusAt) {
			a.status = ""
		}
		return a, nil

	case RowActivatedMsg:
		if msg.Entity == "items" {
			id, _ := msg.Row["id"].(string)
			sku, _ := msg.Row["sku"].(string)
			if id != "" {
				a.bom = NewBomTreeModel(a.client, id, sku, a.session.User.Role)
				a.view = viewBom
				return a, a.bom.Init()
			}
		}
		return a, nil

	case BomCloseMsg:
		a.bom = nil
		a.view = viewGrid
		return a, nil
	}

	switch a.view {
	case viewLogin:
		return a.updateLogin(msg)
	case viewBom:
		if a.bom != nil {
			return a, a.bom.Update(msg)
		}
		a.view = viewGrid
		return a, nil
	default:
		return a.updateGrid(msg)
	}
}

// routeBomMsg delivers a BOM fetch or mutation result to the tree model
// if it is still open, after checking for an expired session.
func (a *App) routeBomMsg(msg tea.Msg, err error) (tea.Model, tea.Cmd) {
	if api.IsUnauthorized(err) {
		return a, a.dropToLogin(err)
	}
	if a.bom != nil {
		return a, a.bom.Update(msg)
	}
	return a, nil
}

// dropToLogin abandons the session: cached grids and the tree view hold
// role-gated data, so they go too. err, when set, shows on the form.
func (a *App) dropToLogin(err error) tea.Cmd {
	a.client.ClearToken()
	a.session = model.Session{}
	a.grids = make(map[string]*GridModel)
	a.bom = nil
	a.view = viewLogin
	a.loggingIn = false
	a.loginErr = err
	a.loginForm = a.newLoginForm()
	return a.loginForm.Init()
}

type loggedOutMsg struct{}

func (a *App) logoutCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Logout(ctx) // best effort, the token is dropped either way
		return loggedOutMsg{}
	}
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.loggingIn {
		return a, nil
	}
	f, cmd := a.loginForm.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		a.loginForm = form
	}
	switch a.loginForm.State {
	case huh.StateCompleted:
		a.loggingIn = true
		a.loginErr = nil
		return a, a.loginCmd()
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		g := a.grids[a.entity]
		rowsFocused := g == nil || g.focus == focusRows
		if rowsFocused {
			switch key.String() {
			case "tab":
				return a, a.switchEntity(1)
			case "shift+tab":
				return a, a.switchEntity(-1)
			case "ctrl+l":
				return a, a.logoutCmd()
			case "q":
				return a, tea.Quit
			}
		}
	}

	g, buildCmd := a.gridFor(a.entity)
	cmd := g.Update(msg)
	return a, tea.Batch(buildCmd, cmd)
}

func (a *App) switchEntity(step int) tea.Cmd {
	entities := grid.Entities()
	for i, e := range entities {
		if e == a.entity {
			a.entity = entities[(i+step+len(entities))%len(entities)]
			_, cmd := a.gridFor(a.entity)
			return cmd
		}
	}
	a.entity = entities[0]
	_, cmd := a.gridFor(a.entity)
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	switch a.view {
	case viewLogin:
		b.WriteString(HeaderStyle.Render(" inventa "))
		b.WriteString("\n\n")
		b.WriteString(a.loginForm.View())
		if a.loggingIn {
			b.WriteString("\n" + MutedStyle.Render("signing in…"))
		}
		if a.loginErr != nil {
			b.WriteString("\n" + ErrorStyle.Render(a.loginErr.Error()))
		}
		b.WriteByte('\n')

	case viewBom:
		if a.bom != nil {
			b.WriteString(a.bom.View())
		}

	default:
		// entity tabs
		var tabs strings.Builder
		for _, e := range grid.Entities() {
			label := " " + e + " "
			if e == a.entity {
				tabs.WriteString(AccentStyle.Render("[" + e + "]"))
			} else {
				tabs.WriteString(MutedStyle.Render(label))
			}
			tabs.WriteString(" ")
		}
		b.WriteString(tabs.String())
		b.WriteByte('\n')

		if g, ok := a.grids[a.entity]; ok {
			b.WriteString(g.View())
		}
	}

	if a.status != "" {
		b.WriteString(FooterStyle.Render(a.status))
		b.WriteByte('\n')
	}
	return b.String()
}
