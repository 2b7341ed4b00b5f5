package config

import (
	"testing"
	"time"

	"github.com/atomicstack/search-popup/internal/catalog"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Capability != catalog.Name {
		t.Fatalf("expected default capability %q, got %q", catalog.Name, cfg.App.Capability)
	}
	if cfg.App.CallTimeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.App.CallTimeout)
	}
	if !cfg.App.ShowModuleName {
		t.Fatalf("module name should be shown by default")
	}
	if cfg.App.ClearOnSubmit || cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"SEARCH_POPUP_CAPABILITY=Notes",
		"SEARCH_POPUP_WIDTH=50",
		"SEARCH_POPUP_CALL_TIMEOUT=2s",
		"SEARCH_POPUP_CLEAR_ON_SUBMIT=true",
	}
	cfg, err := LoadArgs([]string{"--capability", "tmux", "--width", "70", "--show-module-name=false"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Capability != "tmux" || cfg.App.Width != 70 {
		t.Fatalf("flags should win: %#v", cfg.App)
	}
	if cfg.App.CallTimeout != 2*time.Second || !cfg.App.ClearOnSubmit {
		t.Fatalf("env values not applied: %#v", cfg.App)
	}
	if cfg.App.ShowModuleName {
		t.Fatalf("expected module name disabled")
	}
	if cfg.Flags["capability"] != "tmux" || cfg.Flags["callTimeout"] != "2s" {
		t.Fatalf("unexpected flag map %#v", cfg.Flags)
	}
}

func TestLoadArgsIgnoresMalformedEnv(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"SEARCH_POPUP_WIDTH=wide", "SEARCH_POPUP_CALL_TIMEOUT=soon", "garbage"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.CallTimeout != 5*time.Second {
		t.Fatalf("malformed env should fall back: %#v", cfg.App)
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"negative width":  {"--width", "-1"},
		"negative height": {"--height", "-2"},
		"zero timeout":    {"--call-timeout", "0s"},
		"unknown flag":    {"--bogus"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadArgs(args, nil); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestValidateRequiresCapability(t *testing.T) {
	cfg, err := LoadArgs([]string{"--capability", "  "}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected blank capability to fail validation")
	}
	cfg.Features.PrintSchema = true
	if err := Validate(cfg); err != nil {
		t.Fatalf("print-schema skips capability check: %v", err)
	}
}
