// Package capability models the externally implemented feature set the popup
// forwards input to. A Capability is looked up by name in a Registry exactly
// once; the resulting Reference is either present or absent for the lifetime
// of the program.
package capability

import (
	"context"
	"errors"
	"fmt"
)

// Capability is the contract every backend implements.
type Capability interface {
	// Query returns a string identifying the capability.
	Query(ctx context.Context) (string, error)
	// Command triggers the capability's action with the given text.
	Command(ctx context.Context, text string) error
}

// Op names a capability operation for error reporting.
type Op string

const (
	OpQuery   Op = "query"
	OpCommand Op = "command"
)

var (
	// ErrAbsent is returned when an operation is invoked on an absent reference.
	ErrAbsent = errors.New("capability not registered")
	// ErrTimeout is returned when a call does not finish within the reference timeout.
	ErrTimeout = errors.New("capability call timed out")
	// ErrPanic is returned when the capability panics during a call.
	ErrPanic = errors.New("capability panicked")
)

// CallError describes a failed capability call.
type CallError struct {
	Capability string
	Op         Op
	Err        error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Capability, e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// QueryFunc and CommandFunc adapt plain functions to Capability.
type QueryFunc func(ctx context.Context) (string, error)

type CommandFunc func(ctx context.Context, text string) error

// Funcs is a Capability assembled from two functions. Nil functions behave as
// no-ops returning the zero value.
type Funcs struct {
	QueryFn   QueryFunc
	CommandFn CommandFunc
}

func (f Funcs) Query(ctx context.Context) (string, error) {
	if f.QueryFn == nil {
		return "", nil
	}
	return f.QueryFn(ctx)
}

func (f Funcs) Command(ctx context.Context, text string) error {
	if f.CommandFn == nil {
		return nil
	}
	return f.CommandFn(ctx, text)
}
