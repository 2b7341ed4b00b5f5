package state

import (
	"sort"
	"strings"
	"sync"
)

// SearchStore tracks the search an automation run is working on and which of
// its steps have already completed, so a step is never repeated within a run.
type SearchStore interface {
	Pending() string
	SetPending(string)
	Results() []string
	SetResults([]string)
	MarkCompleted(action string)
	IsCompleted(action string) bool
	Completed() []string
	Reset() int
}

type searchStore struct {
	mu        sync.RWMutex
	pending   string
	results   []string
	completed map[string]struct{}
}

func NewSearchStore() SearchStore {
	return &searchStore{completed: map[string]struct{}{}}
}

func (s *searchStore) Pending() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

func (s *searchStore) SetPending(term string) {
	s.mu.Lock()
	s.pending = term
	s.mu.Unlock()
}

func (s *searchStore) Results() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneStrings(s.results)
}

func (s *searchStore) SetResults(results []string) {
	s.mu.Lock()
	s.results = cloneStrings(results)
	s.mu.Unlock()
}

// MarkCompleted records action. Blank identifiers are ignored.
func (s *searchStore) MarkCompleted(action string) {
	if strings.TrimSpace(action) == "" {
		return
	}
	s.mu.Lock()
	s.completed[action] = struct{}{}
	s.mu.Unlock()
}

func (s *searchStore) IsCompleted(action string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.completed[action]
	return ok
}

func (s *searchStore) Completed() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.completed))
	for action := range s.completed {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}

// Reset forgets every completed action and returns how many were dropped.
func (s *searchStore) Reset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.completed)
	s.completed = map[string]struct{}{}
	return n
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	dup := make([]string, len(in))
	copy(dup, in)
	return dup
}
