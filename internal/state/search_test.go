package state

import (
	"reflect"
	"sync"
	"testing"
)

func TestSearchStoreCompletedActions(t *testing.T) {
	s := NewSearchStore()
	s.MarkCompleted("")
	s.MarkCompleted("  ")
	s.MarkCompleted("open-search")
	s.MarkCompleted("type-title")
	s.MarkCompleted("open-search")

	if !s.IsCompleted("open-search") || s.IsCompleted("read-chapter") {
		t.Fatalf("unexpected completion state: %v", s.Completed())
	}
	if got := s.Completed(); !reflect.DeepEqual(got, []string{"open-search", "type-title"}) {
		t.Fatalf("unexpected completed list %v", got)
	}
	if n := s.Reset(); n != 2 {
		t.Fatalf("expected reset to drop 2 actions, got %d", n)
	}
	if len(s.Completed()) != 0 {
		t.Fatalf("expected no completed actions after reset")
	}
}

func TestSearchStoreResultsAreCopied(t *testing.T) {
	s := NewSearchStore()
	in := []string{"a", "b"}
	s.SetResults(in)
	in[0] = "mutated"
	out := s.Results()
	if out[0] != "a" {
		t.Fatalf("store aliased caller slice: %v", out)
	}
	out[1] = "mutated"
	if s.Results()[1] != "b" {
		t.Fatalf("store leaked internal slice")
	}
}

func TestSearchStoreConcurrentAccess(t *testing.T) {
	s := NewSearchStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetPending("term")
			s.MarkCompleted("step")
			_ = s.Pending()
			_ = s.IsCompleted("step")
		}()
	}
	wg.Wait()
	if s.Pending() != "term" || !s.IsCompleted("step") {
		t.Fatalf("unexpected state after concurrent writes")
	}
}
