package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hivecastapp/hivecast/internal/backend"
	"github.com/hivecastapp/hivecast/internal/config"
	"github.com/hivecastapp/hivecast/internal/state"
	"github.com/hivecastapp/hivecast/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("hivecast " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "export":
			return runExport()
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync fails harmlessly

	b, err := backend.Open(cfg, log)
	if err != nil {
		return err
	}
	auth := state.NewAuthSession(b, cfg.TokenPath(), log.Named("auth"))
	appState := state.NewAppState(b, log.Named("state"))

	app := tui.NewApp(auth, appState, b.Mode, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// newLogger builds a file logger under the data directory. The TUI owns the
// terminal, so nothing ever logs to stderr while it runs.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(cfg.DataDir, "hivecast.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}

// runExport writes the JSON backup to the current directory without
// starting the TUI.
func runExport() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	b, err := backend.Open(cfg, log)
	if err != nil {
		return err
	}
	ctx := context.Background()

	auth := state.NewAuthSession(b, cfg.TokenPath(), log.Named("auth"))
	if err := auth.Init(ctx); err != nil {
		return err
	}
	appState := state.NewAppState(b, log.Named("state"))
	if err := appState.Refresh(ctx); err != nil {
		return err
	}

	path, err := appState.ExportData(ctx, ".")
	if err != nil {
		return err
	}
	fmt.Println("exported to " + path)
	return nil
}

func printHelp() {
	fmt.Print(`hivecast - the production desk for independent creators

Usage:
  hivecast            open the dashboard (interactive TUI)
  hivecast export     write projects, events, and settings to a JSON file
  hivecast version    show version

Environment:
  HIVECAST_API_URL    hosted API base URL (enables remote mode with a key)
  HIVECAST_API_KEY    hosted API key
  HIVECAST_DATA_DIR   local data directory (default ~/.hivecast)
  HIVECAST_DEBUG      verbose logging
`)
}
