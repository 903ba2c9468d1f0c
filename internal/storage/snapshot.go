// Package storage saves and loads the whole address book: children,
// enrollments and scores.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/validator"
)

const snapshotVersion = 2

var ErrCorruptData = errors.New("stored data is invalid")

// Store persists snapshots. Load reports false when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Snapshot is the persisted form of an address book.
type Snapshot struct {
	Version       int                     `json:"version"`
	NextID        model.PersonID          `json:"next_id"`
	Persons       []model.PersonView      `json:"persons"`
	SubjectScores map[string][]ScoreEntry `json:"subject_scores"`
}

// ScoreEntry is one enrollment. Files written before persons had stable IDs
// only carry the child name; those are matched by name on load.
type ScoreEntry struct {
	PersonID   model.PersonID `json:"person_id,omitempty"`
	PersonName string         `json:"person_name,omitempty"`
	Score      subject.Score  `json:"score"`
}

// Capture builds a snapshot of book. Enrolled children without a score are
// kept with the Unset score.
func Capture(book *repository.AddressBook) Snapshot {
	snap := Snapshot{
		Version:       snapshotVersion,
		NextID:        book.IDs().Peek(),
		Persons:       []model.PersonView{},
		SubjectScores: make(map[string][]ScoreEntry),
	}
	for _, p := range book.AllPersons() {
		snap.Persons = append(snap.Persons, p.View())
	}
	for _, s := range book.Registry().All() {
		scores := s.Scores()
		entries := make([]ScoreEntry, 0, len(scores))
		for _, p := range s.Roster() {
			entries = append(entries, ScoreEntry{PersonID: p.ID(), Score: scores[p.ID()]})
		}
		if len(entries) > 0 {
			snap.SubjectScores[s.Name()] = entries
		}
	}
	return snap
}

type enrollment struct {
	subject *subject.Subject
	person  model.Person
	score   subject.Score
}

// Restore replaces the contents of book with the snapshot. The snapshot is
// checked completely first; on error book is left untouched.
func (snap Snapshot) Restore(book *repository.AddressBook, log zerolog.Logger) error {
	persons := make([]model.Person, 0, len(snap.Persons))
	byID := make(map[model.PersonID]model.Person, len(snap.Persons))
	for _, v := range snap.Persons {
		if err := validator.Struct(v.PersonFields); err != nil {
			return corrupt("person %d: %s", v.ID, validator.FirstMessage(err))
		}
		if v.ID <= 0 {
			return corrupt("person %q has no id", v.ChildName)
		}
		if _, ok := byID[v.ID]; ok {
			return corrupt("duplicate person id %d", v.ID)
		}
		p := model.RestorePerson(book.IDs(), v.ID, v.PersonFields)
		for _, q := range persons {
			if q.IsSamePerson(p) {
				return corrupt("persons list contains duplicate child %q", p.ChildName())
			}
		}
		persons = append(persons, p)
		byID[p.ID()] = p
	}

	var plan []enrollment
	for name, entries := range snap.SubjectScores {
		s, err := book.Registry().Resolve(name)
		if err != nil {
			return corrupt("unknown subject %q", name)
		}
		for _, e := range entries {
			p, err := resolveEntry(e, persons, byID, log.With().Str("subject", s.Name()).Logger())
			if err != nil {
				return err
			}
			if !e.Score.IsValid() {
				return corrupt("%s: score %d of %q is out of range", s.Name(), int(e.Score), p.ChildName())
			}
			plan = append(plan, enrollment{subject: s, person: p, score: e.Score})
		}
	}

	book.Replace(persons)
	book.IDs().Observe(snap.NextID - 1)
	for _, e := range plan {
		e.subject.Enroll(e.person)
		if err := e.subject.SetScore(e.person, e.score); err != nil {
			return err
		}
	}
	return nil
}

func resolveEntry(e ScoreEntry, persons []model.Person, byID map[model.PersonID]model.Person, log zerolog.Logger) (model.Person, error) {
	if e.PersonID != 0 {
		p, ok := byID[e.PersonID]
		if !ok {
			return model.Person{}, corrupt("unknown person %d in scores", e.PersonID)
		}
		return p, nil
	}
	if e.PersonName == "" {
		return model.Person{}, corrupt("score entry without person")
	}

	var matches []model.Person
	for _, p := range persons {
		if strings.EqualFold(p.ChildName(), strings.TrimSpace(e.PersonName)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return model.Person{}, corrupt("unknown person in scores: %s", e.PersonName)
	case 1:
		log.Warn().
			Str("person_name", e.PersonName).
			Int64("person_id", int64(matches[0].ID())).
			Msg("Score entry matched by child name")
		return matches[0], nil
	default:
		return model.Person{}, corrupt("score entry for %q matches %d children", e.PersonName, len(matches))
	}
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}
