// Package catalog implements the built-in NativeAccessibility capability: it
// accepts a title to look for, ranks the configured catalogue against it, and
// records the run in a state.SearchStore.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/search-popup/internal/logging/events"
	"github.com/atomicstack/search-popup/internal/state"
)

// Name is the registry name of the built-in capability.
const Name = "NativeAccessibility"

// Steps recorded in the search store during a run.
const (
	ActionSearch       = "search"
	ActionSelectResult = "select-result"
)

const defaultLimit = 10

// Catalog is a capability.Capability over a fixed list of titles.
type Catalog struct {
	titles []string
	store  state.SearchStore
	limit  int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLimit caps the number of ranked matches kept per search.
func WithLimit(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.limit = n
		}
	}
}

// New builds a catalogue over titles. Blank and duplicate titles are dropped.
// A nil store gets a private one.
func New(titles []string, store state.SearchStore, opts ...Option) *Catalog {
	if store == nil {
		store = state.NewSearchStore()
	}
	c := &Catalog{store: store, limit: defaultLimit}
	seen := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		c.titles = append(c.titles, title)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Titles returns the catalogue contents.
func (c *Catalog) Titles() []string {
	return append([]string(nil), c.titles...)
}

// Store exposes the search state the catalogue writes to.
func (c *Catalog) Store() state.SearchStore { return c.store }

// Query returns the module's confirmation string.
func (c *Catalog) Query(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("confirmation from the %s module", Name), nil
}

// Command starts a new search run for text: previous progress is forgotten,
// the term becomes pending, and ranked matches are stored.
func (c *Catalog) Command(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	events.Catalog.Reset(c.store.Reset())
	c.store.SetPending(text)

	matches := c.Search(text)
	c.store.SetResults(matches)
	c.store.MarkCompleted(ActionSearch)
	if len(matches) > 0 {
		c.store.MarkCompleted(ActionSelectResult)
	}
	events.Catalog.Search(text, matches)
	return nil
}

// Search ranks the catalogue against term, best match first.
func (c *Catalog) Search(term string) []string {
	term = strings.TrimSpace(term)
	if term == "" || len(c.titles) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(term, c.titles)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, rank.Target)
		if len(out) == c.limit {
			break
		}
	}
	return out
}
