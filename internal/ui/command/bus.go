package command

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/logging/events"
)

// QueryResult is delivered once a query call finishes.
type QueryResult struct {
	ID      string
	Name    string
	Err     error
	Elapsed time.Duration
}

// CommandResult is delivered once a command call finishes.
type CommandResult struct {
	ID      string
	Length  int
	Err     error
	Elapsed time.Duration
}

// Bus turns capability calls into Bubble Tea commands so they run off the
// event loop, bounded by the reference timeout.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus bound to the background context.
func New() *Bus {
	return NewWithContext(context.Background())
}

// NewWithContext binds every call to ctx; cancelling it aborts in-flight calls.
func NewWithContext(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Query wraps ref.Query.
func (b *Bus) Query(ref capability.Reference) tea.Cmd {
	id := uuid.NewString()
	label := fmt.Sprintf("%s.query", ref.Name())
	events.Command.Queue(id, label)
	return func() tea.Msg {
		start := time.Now()
		name, err := ref.Query(b.ctx)
		msg := QueryResult{ID: id, Name: name, Err: err, Elapsed: time.Since(start)}
		events.Command.Result(id, label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Command wraps ref.Command for the submission identified by id. A blank id
// gets a fresh one.
func (b *Bus) Command(ref capability.Reference, id, text string) tea.Cmd {
	if id == "" {
		id = uuid.NewString()
	}
	label := fmt.Sprintf("%s.command", ref.Name())
	if !ref.Present() {
		events.Command.Skip(id, label)
		return nil
	}
	events.Command.Queue(id, label)
	return func() tea.Msg {
		start := time.Now()
		err := ref.Command(b.ctx, text)
		msg := CommandResult{ID: id, Length: len(text), Err: err, Elapsed: time.Since(start)}
		events.Command.Result(id, label, fmt.Sprintf("%T", msg))
		return msg
	}
}
