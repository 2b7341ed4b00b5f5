package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/testutil"
)

func acquire(t *testing.T, c capability.Capability, opts ...capability.Option) capability.Reference {
	t.Helper()
	r := capability.NewRegistry()
	if err := r.Register("test", c); err != nil {
		t.Fatalf("register: %v", err)
	}
	return capability.Acquire(r, "test", opts...)
}

func TestQueryDeliversResult(t *testing.T) {
	ref := acquire(t, testutil.NewOK("module"))
	cmd := New().Query(ref)
	msg, ok := cmd().(QueryResult)
	if !ok {
		t.Fatalf("expected QueryResult")
	}
	if msg.Err != nil || msg.Name != "module" || msg.ID == "" {
		t.Fatalf("unexpected result %#v", msg)
	}
}

func TestCommandDeliversErrors(t *testing.T) {
	boom := errors.New("boom")
	ref := acquire(t, testutil.NewFailing(boom))
	cmd := New().Command(ref, "sub-1", "hello")
	msg, ok := cmd().(CommandResult)
	if !ok {
		t.Fatalf("expected CommandResult")
	}
	if !errors.Is(msg.Err, boom) {
		t.Fatalf("expected wrapped boom, got %v", msg.Err)
	}
	if msg.ID != "sub-1" || msg.Length != 5 {
		t.Fatalf("unexpected result %#v", msg)
	}
}

func TestCommandSkippedForAbsentReference(t *testing.T) {
	ref := capability.Acquire(capability.NewRegistry(), "missing")
	if cmd := New().Command(ref, "", "hello"); cmd != nil {
		t.Fatalf("expected no command for absent reference")
	}
}

func TestCommandTimeoutSurfacesAsErrTimeout(t *testing.T) {
	ref := acquire(t, testutil.NewSlow("slow", time.Second), capability.WithTimeout(10*time.Millisecond))
	msg := New().Command(ref, "", "hello")().(CommandResult)
	if !errors.Is(msg.Err, capability.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", msg.Err)
	}
	if msg.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestBusContextCancelsCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ref := acquire(t, testutil.NewSlow("slow", time.Second))
	msg := NewWithContext(ctx).Command(ref, "", "hello")().(CommandResult)
	if !errors.Is(msg.Err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", msg.Err)
	}
}
