package testutil

import (
	"context"
	"sync"
	"time"
)

// FakeCapability is a scriptable capability for tests. The zero value answers
// queries with an empty string and accepts every command.
type FakeCapability struct {
	QueryResult string
	QueryErr    error
	CommandErr  error
	// Delay stalls every call. Calls honour context cancellation unless
	// IgnoreContext is set.
	Delay         time.Duration
	IgnoreContext bool
	// PanicWith, when non-nil, is raised from every call.
	PanicWith interface{}

	mu       sync.Mutex
	queries  int
	commands []string
}

// NewOK returns a fake that reports name from Query and accepts commands.
func NewOK(name string) *FakeCapability {
	return &FakeCapability{QueryResult: name}
}

// NewFailing returns a fake whose calls all fail with err.
func NewFailing(err error) *FakeCapability {
	return &FakeCapability{QueryErr: err, CommandErr: err}
}

// NewSlow returns a fake that takes delay to answer each call.
func NewSlow(name string, delay time.Duration) *FakeCapability {
	return &FakeCapability{QueryResult: name, Delay: delay}
}

// NewPanicking returns a fake that panics with v on every call.
func NewPanicking(v interface{}) *FakeCapability {
	return &FakeCapability{PanicWith: v}
}

func (f *FakeCapability) Query(ctx context.Context) (string, error) {
	f.mu.Lock()
	f.queries++
	f.mu.Unlock()
	if err := f.stall(ctx); err != nil {
		return "", err
	}
	if f.PanicWith != nil {
		panic(f.PanicWith)
	}
	if f.QueryErr != nil {
		return "", f.QueryErr
	}
	return f.QueryResult, nil
}

func (f *FakeCapability) Command(ctx context.Context, text string) error {
	f.mu.Lock()
	f.commands = append(f.commands, text)
	f.mu.Unlock()
	if err := f.stall(ctx); err != nil {
		return err
	}
	if f.PanicWith != nil {
		panic(f.PanicWith)
	}
	return f.CommandErr
}

// Queries returns how many times Query was called.
func (f *FakeCapability) Queries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries
}

// Commands returns the payloads passed to Command, in call order.
func (f *FakeCapability) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func (f *FakeCapability) stall(ctx context.Context) error {
	if f.Delay <= 0 {
		return nil
	}
	if f.IgnoreContext {
		time.Sleep(f.Delay)
		return nil
	}
	timer := time.NewTimer(f.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
