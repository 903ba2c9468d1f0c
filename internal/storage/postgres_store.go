package storage

import (
	"context"
	"fmt"
	"sort"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/subject"
)

// PostgresStore keeps the snapshot in the persons and enrollments tables.
type PostgresStore struct {
	repo *repository.SnapshotRepository
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(repo *repository.SnapshotRepository) *PostgresStore {
	return &PostgresStore{repo: repo}
}

func (s *PostgresStore) Load(ctx context.Context) (Snapshot, bool, error) {
	persons, err := s.repo.ListPersons(ctx)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("list persons: %w", err)
	}
	rows, err := s.repo.ListEnrollments(ctx)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("list enrollments: %w", err)
	}
	next, err := s.repo.GetNextID(ctx)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("get next id: %w", err)
	}
	if len(persons) == 0 && next == 0 {
		return Snapshot{}, false, nil
	}
	return fromRows(next, persons, rows), true, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap Snapshot) error {
	next, persons, rows := toRows(snap)
	return s.repo.ReplaceAll(ctx, next, persons, rows)
}

func fromRows(next model.PersonID, persons []model.PersonView, rows []repository.EnrollmentRow) Snapshot {
	snap := Snapshot{
		Version:       snapshotVersion,
		NextID:        next,
		Persons:       persons,
		SubjectScores: make(map[string][]ScoreEntry),
	}
	for _, r := range rows {
		snap.SubjectScores[r.Subject] = append(snap.SubjectScores[r.Subject], ScoreEntry{
			PersonID: r.PersonID,
			Score:    subject.Score(r.Score),
		})
	}
	return snap
}

func toRows(snap Snapshot) (model.PersonID, []model.PersonView, []repository.EnrollmentRow) {
	names := make([]string, 0, len(snap.SubjectScores))
	for name := range snap.SubjectScores {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows []repository.EnrollmentRow
	for _, name := range names {
		for _, e := range snap.SubjectScores[name] {
			rows = append(rows, repository.EnrollmentRow{Subject: name, PersonID: e.PersonID, Score: int(e.Score)})
		}
	}
	return snap.NextID, snap.Persons, rows
}
