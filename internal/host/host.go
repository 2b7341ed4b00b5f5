// Package host assembles the capability registry the popup looks names up in.
package host

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/catalog"
	"github.com/atomicstack/search-popup/internal/execcap"
	"github.com/atomicstack/search-popup/internal/logging"
	"github.com/atomicstack/search-popup/internal/logging/events"
	"github.com/atomicstack/search-popup/internal/manifest"
	"github.com/atomicstack/search-popup/internal/state"
	"github.com/atomicstack/search-popup/internal/tmux"
)

// Registration sources reported in trace events.
const (
	SourceBuiltin  = "builtin"
	SourceManifest = "manifest"
	SourceTmux     = "tmux"
)

// Options describes what the host offers.
type Options struct {
	Manifest   manifest.Manifest
	Store      state.SearchStore
	SocketPath string
	TmuxTarget string
}

// Build registers the built-in catalogue, every manifest capability and, when
// its socket exists, tmux. Failing entries are logged and skipped.
func Build(opts Options) *capability.Registry {
	reg := capability.NewRegistry()

	register(reg, catalog.Name, SourceBuiltin, catalog.New(opts.Manifest.Catalog.Titles, opts.Store))

	for _, rejected := range opts.Manifest.Rejected {
		skip(rejected.Name, SourceManifest, rejected)
	}
	for _, spec := range opts.Manifest.Capabilities {
		c, err := execcap.FromManifest(spec)
		if err != nil {
			skip(spec.Name, SourceManifest, err)
			continue
		}
		register(reg, spec.Name, SourceManifest, c)
	}

	if opts.SocketPath != "" {
		if _, err := os.Stat(opts.SocketPath); err != nil {
			skip(tmux.Name, SourceTmux, fmt.Errorf("socket %s: %w", opts.SocketPath, err))
		} else {
			register(reg, tmux.Name, SourceTmux, tmux.New(opts.SocketPath, opts.TmuxTarget))
		}
	}
	return reg
}

func register(reg *capability.Registry, name, source string, c capability.Capability) {
	if err := reg.Register(name, c); err != nil {
		skip(name, source, err)
		return
	}
	events.Host.Register(name, source)
}

func skip(name, source string, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	logging.Error(fmt.Errorf("register %s capability %q: %w", source, name, err))
	events.Host.Skip(name, source, err)
}
