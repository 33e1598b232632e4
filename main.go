package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"xedit/internal/config"
	"xedit/internal/editor"
	"xedit/internal/gateway"
	"xedit/internal/logging"
	"xedit/internal/ui"
)

// startupMessage picks what to open first: a directory becomes the tree root,
// anything else is opened as a file. An empty path starts an untitled document.
func startupMessage(path string) (editor.Msg, error) {
	if path == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return editor.OpenDirectory{Path: absPath}, nil
	}
	return editor.OpenFile{Path: absPath}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// A path argument overrides XEDIT_OPEN
	if len(os.Args) > 1 {
		cfg.Open = os.Args[1]
	}

	log, err := logging.New(logging.FromConfig(cfg.LogConfig))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	startup, err := startupMessage(cfg.Open)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fs := gateway.NewOS(
		gateway.WithIgnore(cfg.Ignore),
		gateway.WithHidden(cfg.ShowHidden),
		gateway.WithMaxFileSize(cfg.MaxFileSize),
	)
	picker := ui.NewPicker()
	ctrl := editor.New(log)

	m := ui.New(ctrl, editor.Env{FS: fs, Picker: picker},
		ui.WithStartup(startup),
		ui.WithTheme(cfg.Theme),
		ui.WithTabWidth(cfg.TabWidth),
		ui.WithHighlighting(cfg.HighlightStyle, cfg.Highlight),
		ui.WithShowHidden(cfg.ShowHidden),
		ui.WithLogger(log),
	)

	p := tea.NewProgram(m, tea.WithAltScreen())
	picker.Attach(p.Send)

	log.Info("starting", zap.String("open", cfg.Open))
	if _, err := p.Run(); err != nil {
		log.Error("program exited", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
