package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/kinderbook/internal/model"
)

// EnrollmentRow is one row of the enrollments table.
type EnrollmentRow struct {
	Subject  string
	PersonID model.PersonID
	Score    int
}

// SnapshotRepository stores the whole address book in Postgres. Every save
// replaces the previous contents inside one transaction.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// ListPersons returns every stored person ordered by ID.
func (r *SnapshotRepository) ListPersons(ctx context.Context) ([]model.PersonView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, child_name, parent_name, parent_phone, parent_email, address, allergies, tags
		 FROM persons ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []model.PersonView
	for rows.Next() {
		var p model.PersonView
		if err := rows.Scan(&p.ID, &p.ChildName, &p.ParentName, &p.Phone, &p.Email, &p.Address, &p.Allergies, &p.Tags); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

// ListEnrollments returns every enrollment ordered by subject then person.
func (r *SnapshotRepository) ListEnrollments(ctx context.Context) ([]EnrollmentRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject, person_id, score FROM enrollments ORDER BY subject, person_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EnrollmentRow
	for rows.Next() {
		var e EnrollmentRow
		if err := rows.Scan(&e.Subject, &e.PersonID, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetNextID returns the stored ID counter, or 0 when none was saved yet.
func (r *SnapshotRepository) GetNextID(ctx context.Context) (model.PersonID, error) {
	var next int64
	err := r.pool.QueryRow(ctx, `SELECT next_id FROM book_meta WHERE id = 1`).Scan(&next)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return model.PersonID(next), nil
}

// ReplaceAll swaps the stored persons and enrollments for the given ones.
func (r *SnapshotRepository) ReplaceAll(ctx context.Context, nextID model.PersonID, persons []model.PersonView, enrollments []EnrollmentRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM enrollments`); err != nil {
		return fmt.Errorf("clear enrollments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM persons`); err != nil {
		return fmt.Errorf("clear persons: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"persons"},
		[]string{"id", "child_name", "parent_name", "parent_phone", "parent_email", "address", "allergies", "tags"},
		pgx.CopyFromSlice(len(persons), func(i int) ([]any, error) {
			p := persons[i]
			return []any{int64(p.ID), p.ChildName, p.ParentName, p.Phone, p.Email, p.Address, nonNil(p.Allergies), nonNil(p.Tags)}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy persons: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"enrollments"},
		[]string{"subject", "person_id", "score"},
		pgx.CopyFromSlice(len(enrollments), func(i int) ([]any, error) {
			e := enrollments[i]
			return []any{e.Subject, int64(e.PersonID), e.Score}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy enrollments: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO book_meta (id, next_id) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET next_id = EXCLUDED.next_id`, int64(nextID)); err != nil {
		return fmt.Errorf("save next id: %w", err)
	}

	return tx.Commit(ctx)
}

// Truncate removes every stored row. Used by tests and the seeder.
func (r *SnapshotRepository) Truncate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE enrollments, persons, book_meta`)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
