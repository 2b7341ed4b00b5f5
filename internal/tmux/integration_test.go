package tmux

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/search-popup/internal/testutil"
)

func TestCommandTypesIntoRealPane(t *testing.T) {
	socket := testutil.StartTmuxServer(t, "popup")
	c := New(socket, "popup:0.0")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Command(ctx, "search me"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	name, err := c.Query(ctx)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if !strings.HasSuffix(name, "@ popup") {
		t.Fatalf("unexpected query result %q", name)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		out, err := testutil.CapturePane(t, socket, "popup:0.0")
		if err == nil && strings.Contains(out, "search me") {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("text never appeared in pane")
}
