// Package tmux provides a capability that types submitted text into a tmux
// pane, typically the pane the popup was opened from.
package tmux

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Name is the registry name of the tmux capability.
const Name = "tmux"

// DefaultSendInterval is the minimum gap between two submissions typed into
// the same pane.
const DefaultSendInterval = 150 * time.Millisecond

// Capability sends text to a tmux pane. Sends are serialised so the text and
// its Enter never interleave with another submission.
type Capability struct {
	socketPath string
	target     string
	pressEnter bool

	sendMu sync.Mutex
	sends  *throttle
}

// Option configures a Capability.
type Option func(*Capability)

// WithEnter controls whether Enter is sent after the text. Defaults to true.
func WithEnter(enabled bool) Option {
	return func(c *Capability) { c.pressEnter = enabled }
}

// WithSendInterval overrides DefaultSendInterval. Zero disables spacing.
func WithSendInterval(d time.Duration) Option {
	return func(c *Capability) { c.sends = newThrottle(d) }
}

// New creates a capability bound to socketPath. An empty target falls back to
// the pane that launched the popup ($TMUX_PANE), then to tmux's own default.
func New(socketPath, target string, opts ...Option) *Capability {
	target = strings.TrimSpace(target)
	if target == "" {
		target = CurrentPane()
	}
	c := &Capability{
		socketPath: socketPath,
		target:     target,
		pressEnter: true,
		sends:      newThrottle(DefaultSendInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the pane the capability types into.
func (c *Capability) Target() string { return c.target }

// Query reports the tmux version and the session the target belongs to. The
// version comes from the binary; the session is read over the control-mode
// client.
func (c *Capability) Query(ctx context.Context) (string, error) {
	version, err := runTmux(ctx, c.socketPath, "-V")
	if err != nil {
		return "", err
	}
	session, err := sessionName(c.socketPath, c.target)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s @ %s", strings.TrimSpace(version), session), nil
}

// Command types text literally into the target pane.
func (c *Capability) Command(ctx context.Context, text string) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if err := c.sends.wait(ctx); err != nil {
		return err
	}
	args := []string{"send-keys"}
	if c.target != "" {
		args = append(args, "-t", c.target)
	}
	literal := append(append([]string(nil), args...), "-l")
	if strings.HasPrefix(text, "-") {
		literal = append(literal, "--")
	}
	literal = append(literal, text)
	if _, err := runTmux(ctx, c.socketPath, literal...); err != nil {
		return err
	}
	if !c.pressEnter {
		return nil
	}
	_, err := runTmux(ctx, c.socketPath, append(args, "Enter")...)
	return err
}

// CurrentPane returns the pane id tmux exported to the popup, if any.
func CurrentPane() string {
	return strings.TrimSpace(os.Getenv("TMUX_PANE"))
}

// ResolveSocketPath picks the tmux socket: explicit flag value, then
// SEARCH_POPUP_SOCKET, then $TMUX, then the default per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("SEARCH_POPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
