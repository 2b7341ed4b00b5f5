package capability

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/search-popup/internal/logging/events"
)

// DefaultTimeout bounds every capability call unless overridden.
const DefaultTimeout = 5 * time.Second

// Reference is the handle acquired once at startup. The zero value is absent.
type Reference struct {
	name    string
	impl    Capability
	timeout time.Duration
}

// Option configures a Reference.
type Option func(*Reference)

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(r *Reference) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// Acquire looks name up in l. It never fails: an unregistered name or a nil
// lookuper yields an absent reference.
func Acquire(l Lookuper, name string, opts ...Option) Reference {
	ref := Reference{name: name, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&ref)
	}
	if !isNil(l) {
		if c, ok := l.Lookup(name); ok && !isNil(c) {
			ref.impl = c
		}
	}
	events.Capability.Acquire(name, ref.impl != nil)
	return ref
}

// Present reports whether the capability was registered.
func (r Reference) Present() bool { return r.impl != nil }

// Name returns the name the reference was acquired with.
func (r Reference) Name() string { return r.name }

// Timeout returns the per-call timeout.
func (r Reference) Timeout() time.Duration {
	if r.timeout <= 0 {
		return DefaultTimeout
	}
	return r.timeout
}

// Query calls the capability's query operation.
func (r Reference) Query(ctx context.Context) (string, error) {
	var out string
	start := time.Now()
	err := r.call(ctx, OpQuery, func(ctx context.Context) error {
		var err error
		out, err = r.impl.Query(ctx)
		return err
	})
	if err != nil {
		events.Capability.QueryFailed(r.name, err)
		return "", err
	}
	events.Capability.Query(r.name, out, time.Since(start))
	return out, nil
}

// Command calls the capability's command operation with text.
func (r Reference) Command(ctx context.Context, text string) error {
	start := time.Now()
	err := r.call(ctx, OpCommand, func(ctx context.Context) error {
		return r.impl.Command(ctx, text)
	})
	if err != nil {
		events.Capability.CommandFailed(r.name, err)
		return err
	}
	events.Capability.Command(r.name, len(text), time.Since(start))
	return nil
}

// call runs fn on its own goroutine so a capability that ignores ctx still
// cannot stall the caller past the timeout.
func (r Reference) call(ctx context.Context, op Op, fn func(context.Context) error) error {
	if !r.Present() {
		return &CallError{Capability: r.name, Op: op, Err: ErrAbsent}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("%w: %v", ErrPanic, p)
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &CallError{Capability: r.name, Op: op, Err: r.timeoutErr(ctx, err)}
		}
		return nil
	case <-ctx.Done():
		return &CallError{Capability: r.name, Op: op, Err: r.timeoutErr(ctx, ctx.Err())}
	}
}

func (r Reference) timeoutErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, r.Timeout())
	}
	return err
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
