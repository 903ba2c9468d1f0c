package subject

import (
	"testing"

	"github.com/stemsi/kinderbook/internal/model"
)

func TestScoreStore_SetGetRemove(t *testing.T) {
	s := NewScoreStore()

	if _, ok := s.Get(1); ok {
		t.Fatalf("expected absent entry")
	}

	s.Set(1, Unset)
	got, ok := s.Get(1)
	if !ok || got != Unset {
		t.Fatalf("expected unset entry, got %v ok=%v", got, ok)
	}

	s.Set(1, 77)
	if got, _ := s.Get(1); got != 77 {
		t.Fatalf("expected 77, got %v", got)
	}

	s.Remove(1)
	if s.Contains(1) {
		t.Fatalf("expected entry removed")
	}

	// Removing again is a no-op.
	s.Remove(1)
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestScoreStore_AllIsACopy(t *testing.T) {
	s := NewScoreStore()
	s.Set(1, 50)

	all := s.All()
	all[1] = 99
	all[2] = 10

	if got, _ := s.Get(1); got != 50 {
		t.Fatalf("store mutated through All(): got %v", got)
	}
	if s.Contains(2) {
		t.Fatalf("store gained entry through All()")
	}
}

func TestScoreStore_NotifiesInOrder(t *testing.T) {
	s := NewScoreStore()

	var first, second []Change
	s.Subscribe(func(c Change) { first = append(first, c) })
	s.Subscribe(func(c Change) {
		// The mutation is visible before observers run.
		if c.Kind != ChangeRemoved && !s.Contains(c.PersonID) {
			t.Errorf("observer ran before mutation for %+v", c)
		}
		second = append(second, c)
	})

	s.Set(7, Unset)
	s.Set(7, 88)
	s.Set(7, 88) // unchanged, no event
	s.Remove(7)
	s.Remove(7) // absent, no event

	want := []Change{
		{PersonID: 7, Kind: ChangeAdded, Score: Unset, Previous: Unset},
		{PersonID: 7, Kind: ChangeUpdated, Score: 88, Previous: Unset},
		{PersonID: 7, Kind: ChangeRemoved, Score: 88, Previous: 88},
	}
	if len(first) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(first), first)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("event %d: want %+v, got %+v", i, want[i], first[i])
		}
		if second[i] != want[i] {
			t.Fatalf("second observer event %d: want %+v, got %+v", i, want[i], second[i])
		}
	}
}

func TestScoreStore_Dispose(t *testing.T) {
	s := NewScoreStore()

	count := 0
	dispose := s.Subscribe(func(Change) { count++ })
	s.Set(model.PersonID(1), 10)
	dispose()
	dispose() // idempotent
	s.Set(model.PersonID(1), 20)

	if count != 1 {
		t.Fatalf("expected 1 notification before dispose, got %d", count)
	}
}
