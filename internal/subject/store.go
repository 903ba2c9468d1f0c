package subject

import (
	"maps"

	"github.com/stemsi/kinderbook/internal/model"
)

// ChangeKind tells observers what happened to a score entry.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one mutation of a ScoreStore. For ChangeRemoved, Score is
// the value that was removed; Previous is only meaningful for ChangeUpdated.
type Change struct {
	PersonID model.PersonID
	Kind     ChangeKind
	Score    Score
	Previous Score
}

// Observer receives changes synchronously, after the store has been mutated.
type Observer func(Change)

// ScoreStore maps enrolled children to their score in one subject.
// It performs no enrollment checks; Subject does.
type ScoreStore struct {
	scores    map[model.PersonID]Score
	observers map[int]Observer
	order     []int
	nextObs   int
}

// NewScoreStore creates an empty store.
func NewScoreStore() *ScoreStore {
	return &ScoreStore{
		scores:    make(map[model.PersonID]Score),
		observers: make(map[int]Observer),
	}
}

// Set inserts or overwrites the score of id.
func (s *ScoreStore) Set(id model.PersonID, score Score) {
	prev, existed := s.scores[id]
	if existed && prev == score {
		return
	}
	s.scores[id] = score
	if existed {
		s.notify(Change{PersonID: id, Kind: ChangeUpdated, Score: score, Previous: prev})
		return
	}
	s.notify(Change{PersonID: id, Kind: ChangeAdded, Score: score, Previous: Unset})
}

// Remove deletes the entry of id. Absent entries are ignored.
func (s *ScoreStore) Remove(id model.PersonID) {
	prev, ok := s.scores[id]
	if !ok {
		return
	}
	delete(s.scores, id)
	s.notify(Change{PersonID: id, Kind: ChangeRemoved, Score: prev, Previous: prev})
}

// Get returns the score of id; ok is false when there is no entry at all.
func (s *ScoreStore) Get(id model.PersonID) (score Score, ok bool) {
	score, ok = s.scores[id]
	return score, ok
}

// Contains reports whether id has an entry.
func (s *ScoreStore) Contains(id model.PersonID) bool {
	_, ok := s.scores[id]
	return ok
}

// Len returns the number of entries.
func (s *ScoreStore) Len() int {
	return len(s.scores)
}

// All returns a copy of every entry.
func (s *ScoreStore) All() map[model.PersonID]Score {
	return maps.Clone(s.scores)
}

// Subscribe registers fn and returns a function that removes it again.
func (s *ScoreStore) Subscribe(fn Observer) (dispose func()) {
	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn
	s.order = append(s.order, key)
	return func() {
		if _, ok := s.observers[key]; !ok {
			return
		}
		delete(s.observers, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *ScoreStore) notify(c Change) {
	for _, key := range append([]int(nil), s.order...) {
		if fn, ok := s.observers[key]; ok {
			fn(c)
		}
	}
}
