package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/host"
	"github.com/atomicstack/search-popup/internal/logging"
	"github.com/atomicstack/search-popup/internal/manifest"
	"github.com/atomicstack/search-popup/internal/state"
	"github.com/atomicstack/search-popup/internal/tmux"
	"github.com/atomicstack/search-popup/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Capability     string
	ManifestPath   string
	SocketPath     string
	TmuxTarget     string
	Width          int
	Height         int
	ShowFooter     bool
	Verbose        bool
	ShowModuleName bool
	ClearOnSubmit  bool
	CallTimeout    time.Duration
}

// Prepare loads the manifest, builds the host registry and acquires the
// configured capability. The reference is absent when the name is unknown.
// An unreadable manifest is logged and treated as empty.
func Prepare(cfg Config) capability.Reference {
	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		logging.Error(fmt.Errorf("load manifest: %w", err))
		m = manifest.Manifest{}
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		logging.Error(fmt.Errorf("resolve socket path: %w", err))
		socketPath = ""
	}
	registry := host.Build(host.Options{
		Manifest:   m,
		Store:      state.NewSearchStore(),
		SocketPath: socketPath,
		TmuxTarget: cfg.TmuxTarget,
	})
	return capability.Acquire(registry, cfg.Capability, capability.WithTimeout(cfg.CallTimeout))
}

// NewModel builds the UI model for ref.
func NewModel(cfg Config, ref capability.Reference) *ui.Model {
	return ui.NewModel(ref, ui.Options{
		Width:          cfg.Width,
		Height:         cfg.Height,
		ShowFooter:     cfg.ShowFooter,
		Verbose:        cfg.Verbose,
		ShowModuleName: cfg.ShowModuleName,
		ClearOnSubmit:  cfg.ClearOnSubmit,
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	program := tea.NewProgram(NewModel(cfg, Prepare(cfg)), tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
