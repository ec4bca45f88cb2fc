package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inventaworks/inventa/pkg/api"
	"github.com/inventaworks/inventa/pkg/config"
	"github.com/inventaworks/inventa/pkg/grid"
	"github.com/inventaworks/inventa/pkg/store"
	"github.com/inventaworks/inventa/pkg/ui"
	"github.com/inventaworks/inventa/pkg/version"
	"github.com/inventaworks/inventa/pkg/watcher"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (default: XDG config dir)")
	apiURL := flag.String("api", "", "Backend base URL, overrides the config file")
	entity := flag.String("entity", "", "Entity grid to open first (items, stocks, inbounds, outbounds)")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: iv [options]")
		fmt.Println("\nA terminal front end for the inventa ERP backend.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("iv %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *entity != "" {
		cfg.UI.DefaultEntity = *entity
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var opts []api.Option
	if d := cfg.API.Timeout(); d > 0 {
		opts = append(opts, api.WithTimeout(d))
	}
	client, err := api.New(cfg.API.BaseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st, err := openStore(cfg)
	if err != nil {
		// A broken state store costs saved view state, nothing more.
		fmt.Fprintf(os.Stderr, "Warning: state store unavailable, view state will not persist: %v\n", err)
		st = store.NewMemory()
	}
	if closer, ok := st.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	var watch *watcher.Watcher
	if dir := config.GridConfigDir(); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			watch, err = watcher.New(dir)
			if err == nil {
				if err := watch.Start(); err != nil {
					watch = nil
				}
			}
		}
	}
	if watch != nil {
		defer watch.Stop()
	}

	app := ui.NewApp(cfg, client, st, watch)
	if err := runTUIProgram(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error running iv: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func openStore(cfg config.Config) (grid.Store, error) {
	switch cfg.State.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "sqlite":
		return store.NewSQLite(cfg.StatePath())
	default:
		return store.NewFile(cfg.StatePath())
	}
}

func runTUIProgram(app *ui.App) error {
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set IV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("IV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	return err
}
