package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tickerdeck/config"
	"tickerdeck/market"
	"tickerdeck/models"
	"tickerdeck/sortable"
)

func main() {
	// Optional .env for remote sync credentials.
	_ = godotenv.Load()

	baseDir, err := config.Dir()
	if err != nil {
		fmt.Printf("Error locating config directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(filepath.Join(baseDir, "config.yaml"))
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if url := os.Getenv("TICKERDECK_REMOTE_URL"); url != "" {
		cfg.Remote.URL = url
	}
	if token := os.Getenv("TICKERDECK_REMOTE_TOKEN"); token != "" {
		cfg.Remote.Token = token
	}

	logger := newLogger(cfg.LogFile)
	defer logger.Sync()

	store, err := sortable.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		fmt.Printf("Error opening order store: %v\n", err)
		os.Exit(1)
	}
	var remote *sortable.RemoteStore
	if cfg.Remote.URL != "" {
		remote = sortable.NewRemoteStore(cfg.Remote.URL, cfg.Remote.Token)
	}
	persist := sortable.NewPersister(store, remote, logger)

	model := models.NewAppModel(cfg, persist, market.NewClient(), logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to a file: the terminal belongs to the TUI.
func newLogger(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
