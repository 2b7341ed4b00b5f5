package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// runTmux executes tmux against socketPath and returns stdout. Tests replace
// it with a stub.
var runTmux = func(ctx context.Context, socketPath string, args ...string) (string, error) {
	full := append(baseArgs(socketPath), args...)
	cmd := exec.CommandContext(ctx, "tmux", full...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("tmux %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
