package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/search-popup/internal/app"
	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/catalog"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose     bool
	PrintSchema bool
}

const (
	envCapability     = "SEARCH_POPUP_CAPABILITY"
	envManifest       = "SEARCH_POPUP_MANIFEST"
	envSocketPath     = "SEARCH_POPUP_SOCKET"
	envTmuxTarget     = "SEARCH_POPUP_TMUX_TARGET"
	envWidth          = "SEARCH_POPUP_WIDTH"
	envHeight         = "SEARCH_POPUP_HEIGHT"
	envShowFooter     = "SEARCH_POPUP_FOOTER"
	envVerbose        = "SEARCH_POPUP_VERBOSE"
	envTrace          = "SEARCH_POPUP_TRACE"
	envLogFile        = "SEARCH_POPUP_LOG_FILE"
	envCallTimeout    = "SEARCH_POPUP_CALL_TIMEOUT"
	envShowModuleName = "SEARCH_POPUP_SHOW_MODULE_NAME"
	envClearOnSubmit  = "SEARCH_POPUP_CLEAR_ON_SUBMIT"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("search-popup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	capName := fs.String("capability", envOrDefault(env, envCapability, catalog.Name), "name of the capability to forward searches to")
	manifestPath := fs.String("manifest", envOrDefault(env, envManifest, ""), "path to a YAML manifest declaring extra capabilities")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	tmuxTarget := fs.String("tmux-target", envOrDefault(env, envTmuxTarget, ""), "tmux pane the tmux capability types into (defaults to $TMUX_PANE)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	callTimeout := fs.Duration("call-timeout", envOrDuration(env, envCallTimeout, capability.DefaultTimeout), "timeout for each capability call")
	showModuleName := fs.Bool("show-module-name", envOrBool(env, envShowModuleName, true), "query and display the capability's module name on start")
	clearOnSubmit := fs.Bool("clear-on-submit", envOrBool(env, envClearOnSubmit, false), "clear the text field after a successful submit")
	printSchema := fs.Bool("print-schema", false, "print the manifest JSON schema and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *callTimeout <= 0 {
		return Config{}, fmt.Errorf("call-timeout must be > 0 (got %s)", *callTimeout)
	}

	cfg := Config{
		App: app.Config{
			Capability:     strings.TrimSpace(*capName),
			ManifestPath:   *manifestPath,
			SocketPath:     *socket,
			TmuxTarget:     *tmuxTarget,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			Verbose:        *verbose,
			ShowModuleName: *showModuleName,
			ClearOnSubmit:  *clearOnSubmit,
			CallTimeout:    *callTimeout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose:     *verbose,
			PrintSchema: *printSchema,
		},
		Flags: map[string]string{
			"capability":     *capName,
			"manifest":       *manifestPath,
			"socket":         *socket,
			"tmuxTarget":     *tmuxTarget,
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"verbose":        strconv.FormatBool(*verbose),
			"logFile":        *logFile,
			"callTimeout":    callTimeout.String(),
			"showModuleName": strconv.FormatBool(*showModuleName),
			"clearOnSubmit":  strconv.FormatBool(*clearOnSubmit),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.Features.PrintSchema {
		return nil
	}
	if cfg.App.Capability == "" {
		return fmt.Errorf("capability name must not be empty")
	}
	return nil
}
