// Package execcap implements capabilities backed by external programs.
package execcap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atomicstack/search-popup/internal/manifest"
)

// Capability runs argv templates for each operation.
type Capability struct {
	name        string
	queryStatic string
	queryRun    []string
	commandRun  []string
	stdin       bool
}

// FromManifest converts a manifest entry into a capability. Entries without a
// query answer with their description, falling back to the name.
func FromManifest(spec manifest.Capability) (*Capability, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	c := &Capability{
		name:       spec.Name,
		commandRun: append([]string(nil), spec.Command.Run...),
		stdin:      spec.Command.Stdin,
	}
	switch {
	case spec.Query == nil:
		c.queryStatic = spec.Description
		if strings.TrimSpace(c.queryStatic) == "" {
			c.queryStatic = spec.Name
		}
	case len(spec.Query.Run) > 0:
		c.queryRun = append([]string(nil), spec.Query.Run...)
	default:
		c.queryStatic = spec.Query.Static
	}
	return c, nil
}

// Query returns the static answer or the trimmed stdout of the query program.
func (c *Capability) Query(ctx context.Context) (string, error) {
	if len(c.queryRun) == 0 {
		return c.queryStatic, nil
	}
	out, err := run(ctx, c.queryRun, nil)
	if err != nil {
		return "", fmt.Errorf("%s query: %w", c.name, err)
	}
	return strings.TrimSpace(out), nil
}

// Command runs the command program with text as its last argument, or on
// stdin when configured.
func (c *Capability) Command(ctx context.Context, text string) error {
	argv := c.commandRun
	var stdin *strings.Reader
	if c.stdin {
		stdin = strings.NewReader(text)
	} else {
		argv = append(append([]string(nil), c.commandRun...), text)
	}
	if _, err := run(ctx, argv, stdin); err != nil {
		return fmt.Errorf("%s command: %w", c.name, err)
	}
	return nil
}

func run(ctx context.Context, argv []string, stdin *strings.Reader) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = stdin
	}
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return "", fmt.Errorf("%s exited %d: %s", argv[0], exitErr.ExitCode(), msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
