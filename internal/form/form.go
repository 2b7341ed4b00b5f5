// Package form owns the state of the popup's single text field and decides
// whether a submission may reach the capability.
package form

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrEmptyInput is returned by Submit when the text is blank after trimming.
var ErrEmptyInput = errors.New("input is empty")

// Submission is an accepted submit attempt.
type Submission struct {
	ID   string
	Text string
}

// Controller holds the current input text. The zero value is ready to use.
type Controller struct {
	text          string
	clearOnSubmit bool
	rejections    int
	submissions   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClearOnSubmit clears the text after every accepted submission.
func WithClearOnSubmit(clear bool) Option {
	return func(c *Controller) { c.clearOnSubmit = clear }
}

// New returns a controller with empty input.
func New(opts ...Option) *Controller {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text returns the current input.
func (c *Controller) Text() string { return c.text }

// Edit replaces the input with text and reports whether it changed. Any
// string is accepted.
func (c *Controller) Edit(text string) bool {
	if text == c.text {
		return false
	}
	c.text = text
	return true
}

// Submit validates the current input. Blank input is rejected with
// ErrEmptyInput and leaves the text untouched. Accepted submissions carry the
// text exactly as typed, surrounding whitespace included.
func (c *Controller) Submit() (Submission, error) {
	if strings.TrimSpace(c.text) == "" {
		c.rejections++
		return Submission{}, ErrEmptyInput
	}
	c.submissions++
	sub := Submission{ID: uuid.NewString(), Text: c.text}
	if c.clearOnSubmit {
		c.text = ""
	}
	return sub, nil
}

// Rejections counts submissions refused because of blank input.
func (c *Controller) Rejections() int { return c.rejections }

// Submissions counts accepted submissions.
func (c *Controller) Submissions() int { return c.submissions }

// ClearOnSubmit reports whether accepted submissions reset the text.
func (c *Controller) ClearOnSubmit() bool { return c.clearOnSubmit }
