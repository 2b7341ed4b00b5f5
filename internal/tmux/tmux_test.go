package tmux

import (
	"context"
	"errors"
	"fmt"
	"os/user"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type tmuxCall struct {
	socket string
	args   []string
}

func withStubTmux(t *testing.T, fn func(args []string) (string, error)) *[]tmuxCall {
	t.Helper()
	prev := runTmux
	calls := &[]tmuxCall{}
	runTmux = func(_ context.Context, socket string, args ...string) (string, error) {
		*calls = append(*calls, tmuxCall{socket: socket, args: append([]string(nil), args...)})
		return fn(args)
	}
	t.Cleanup(func() { runTmux = prev })
	return calls
}

func TestCommandSendsLiteralTextThenEnter(t *testing.T) {
	calls := withStubTmux(t, func([]string) (string, error) { return "", nil })
	c := New("/tmp/sock", "%3")
	if err := c.Command(context.Background(), "hello world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tmuxCall{
		{socket: "/tmp/sock", args: []string{"send-keys", "-t", "%3", "-l", "hello world"}},
		{socket: "/tmp/sock", args: []string{"send-keys", "-t", "%3", "Enter"}},
	}
	if !reflect.DeepEqual(*calls, want) {
		t.Fatalf("unexpected calls:\n got %#v\nwant %#v", *calls, want)
	}
}

func TestCommandGuardsLeadingDash(t *testing.T) {
	calls := withStubTmux(t, func([]string) (string, error) { return "", nil })
	c := New("", "%1", WithEnter(false))
	if err := c.Command(context.Background(), "-rf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected a single call without Enter, got %d", len(*calls))
	}
	got := (*calls)[0].args
	want := []string{"send-keys", "-t", "%1", "-l", "--", "-rf"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCommandStopsOnSendFailure(t *testing.T) {
	boom := errors.New("no server")
	calls := withStubTmux(t, func([]string) (string, error) { return "", boom })
	c := New("", "%1")
	if err := c.Command(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected Enter to be skipped after failure, got %d calls", len(*calls))
	}
}

type fakeClient struct {
	displayMessageFn func(target, format string) (string, error)
	closed           int
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if f.displayMessageFn != nil {
		return f.displayMessageFn(target, format)
	}
	return "", nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func withStubClient(t *testing.T, fn func(socketPath string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

func TestQueryCombinesVersionAndSession(t *testing.T) {
	withStubTmux(t, func(args []string) (string, error) {
		if args[0] == "-V" {
			return "tmux 3.4\n", nil
		}
		return "", fmt.Errorf("unexpected %v", args)
	})
	var gotTarget, gotFormat, gotSocket string
	fake := &fakeClient{displayMessageFn: func(target, format string) (string, error) {
		gotTarget, gotFormat = target, format
		return "work\n", nil
	}}
	withStubClient(t, func(socketPath string) (tmuxClient, error) {
		gotSocket = socketPath
		return fake, nil
	})

	got, err := New("/tmp/sock", "%0").Query(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "tmux 3.4 @ work" {
		t.Fatalf("unexpected query result %q", got)
	}
	if gotSocket != "/tmp/sock" || gotTarget != "%0" || gotFormat != "#{session_name}" {
		t.Fatalf("unexpected display-message call socket=%q target=%q format=%q", gotSocket, gotTarget, gotFormat)
	}
	if fake.closed != 1 {
		t.Fatalf("expected client to be closed once, got %d", fake.closed)
	}
}

func TestQueryReportsClientErrors(t *testing.T) {
	withStubTmux(t, func([]string) (string, error) { return "tmux 3.4", nil })
	boom := errors.New("no server running")
	withStubClient(t, func(string) (tmuxClient, error) { return nil, boom })
	if _, err := New("", "%0").Query(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}

	fake := &fakeClient{displayMessageFn: func(string, string) (string, error) { return "", boom }}
	withStubClient(t, func(string) (tmuxClient, error) { return fake, nil })
	if _, err := New("", "%0").Query(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if fake.closed != 1 {
		t.Fatalf("client must be closed after a failed query")
	}
}

func TestNewFallsBackToTmuxPane(t *testing.T) {
	t.Setenv("TMUX_PANE", "%42")
	if got := New("", "").Target(); got != "%42" {
		t.Fatalf("expected target from TMUX_PANE, got %q", got)
	}
	if got := New("", " %7 ").Target(); got != "%7" {
		t.Fatalf("expected explicit target, got %q", got)
	}
}

func TestResolveSocketPathPrecedence(t *testing.T) {
	t.Setenv("SEARCH_POPUP_SOCKET", "/env/socket")
	t.Setenv("TMUX", "/tmux/socket,123,0")
	if got, _ := ResolveSocketPath("/flag/socket"); got != "/flag/socket" {
		t.Fatalf("expected flag socket, got %q", got)
	}
	if got, _ := ResolveSocketPath(""); got != "/env/socket" {
		t.Fatalf("expected env socket, got %q", got)
	}
	t.Setenv("SEARCH_POPUP_SOCKET", "")
	if got, _ := ResolveSocketPath(""); got != "/tmux/socket" {
		t.Fatalf("expected $TMUX socket, got %q", got)
	}
}

func TestResolveSocketPathDefault(t *testing.T) {
	t.Setenv("SEARCH_POPUP_SOCKET", "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/custom")
	u, err := user.Current()
	if err != nil {
		t.Skipf("skipping: user lookup failed: %v", err)
	}
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join("/custom", "tmux-"+u.Uid, "default")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !strings.HasSuffix(got, "default") {
		t.Fatalf("unexpected socket %q", got)
	}
}

func TestCommandSpacesConsecutiveSends(t *testing.T) {
	calls := withStubTmux(t, func([]string) (string, error) { return "", nil })
	c := New("", "%1", WithSendInterval(25*time.Millisecond))
	start := time.Now()
	for _, text := range []string{"one", "two"} {
		if err := c.Command(context.Background(), text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected sends to be spaced, took %s", elapsed)
	}
	if len(*calls) != 4 {
		t.Fatalf("expected text and Enter for both sends, got %d calls", len(*calls))
	}
}

func TestCommandGivesUpWhenContextEndsWhileWaiting(t *testing.T) {
	withStubTmux(t, func([]string) (string, error) { return "", nil })
	c := New("", "%1", WithSendInterval(time.Second))
	if err := c.Command(context.Background(), "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := c.Command(ctx, "second"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
