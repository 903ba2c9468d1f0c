package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/parser"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/storage"
	"github.com/stemsi/kinderbook/internal/subject"
)

var ErrSaveFailed = errors.New("could not save the address book")

// BookService is the single entry point to the address book. Every command
// and every query runs under one mutex, so callers from several goroutines
// see the book as if there were one user.
type BookService struct {
	mu     sync.Mutex
	book   *repository.AddressBook
	parser *parser.Parser
	store  storage.Store
	log    zerolog.Logger
}

func NewBookService(book *repository.AddressBook, store storage.Store, log zerolog.Logger) *BookService {
	return &BookService{
		book:   book,
		parser: parser.New(book.Registry()),
		store:  store,
		log:    log.With().Str("component", "book_service").Logger(),
	}
}

// Load replaces the book with the stored snapshot. Nothing stored yet is
// not an error.
func (s *BookService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		s.log.Info().Msg("No saved address book, starting empty")
		return nil
	}
	if err := snap.Restore(s.book, s.log); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	s.log.Info().
		Int("persons", len(snap.Persons)).
		Int("subjects", len(snap.SubjectScores)).
		Msg("Address book loaded")
	return nil
}

// Execute parses and runs one line of user input.
func (s *BookService) Execute(ctx context.Context, input string) (command.Result, error) {
	cmd, err := s.parser.Parse(input)
	if err != nil {
		s.log.Warn().Err(err).Str("input", input).Msg("Command rejected by parser")
		return command.Result{}, err
	}
	return s.Run(ctx, cmd)
}

// Run executes cmd and saves the book when the command changed it. A failed
// save is reported with ErrSaveFailed; the command itself has still taken
// effect.
func (s *BookService) Run(ctx context.Context, cmd command.Command) (command.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	executionID := uuid.NewString()
	start := time.Now()

	res, err := cmd.Execute(s.book)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("command", cmd.Name()).
			Str("execution_id", executionID).
			Msg("Command failed")
		return command.Result{}, err
	}

	s.log.Info().
		Str("command", cmd.Name()).
		Str("execution_id", executionID).
		Int("outcomes", len(res.Outcomes)).
		Int("skipped", res.Count(command.OutcomeSkipped)).
		Bool("changed", res.Changed).
		Dur("took", time.Since(start)).
		Msg("Command executed")

	if !res.Changed {
		return res, nil
	}
	if err := s.store.Save(ctx, storage.Capture(s.book)); err != nil {
		s.log.Error().Err(err).Str("execution_id", executionID).Msg("Failed to save address book")
		return res, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return res, nil
}

// Persons returns the displayed children.
func (s *BookService) Persons() []model.PersonView {
	s.mu.Lock()
	defer s.mu.Unlock()

	shown := s.book.FilteredPersons()
	out := make([]model.PersonView, 0, len(shown))
	for _, p := range shown {
		out = append(out, p.View())
	}
	return out
}

// PersonScores returns the scores of the child with the given ID.
func (s *BookService) PersonScores(id model.PersonID) (model.PersonView, []subject.SubjectScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.book.PersonByID(id)
	if err != nil {
		return model.PersonView{}, nil, err
	}
	scores := s.book.Registry().ScoresOf(p)
	if scores == nil {
		scores = []subject.SubjectScore{}
	}
	return p.View(), scores, nil
}

// SubjectSummary is a subject with the size of its roster.
type SubjectSummary struct {
	Name     string `json:"name"`
	Enrolled int    `json:"enrolled"`
}

// Subjects lists every subject in declaration order.
func (s *BookService) Subjects() []SubjectSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.book.Registry().All()
	out := make([]SubjectSummary, 0, len(all))
	for _, sub := range all {
		out = append(out, SubjectSummary{Name: sub.Name(), Enrolled: len(sub.Roster())})
	}
	return out
}

// RosterEntry is one enrolled child and their score in a subject.
type RosterEntry struct {
	PersonID model.PersonID `json:"person_id"`
	Child    string         `json:"child"`
	Score    subject.Score  `json:"score"`
}

// SubjectScores returns the roster of the named subject ordered by ID.
func (s *BookService) SubjectScores(name string) (string, []RosterEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.book.Registry().Resolve(name)
	if err != nil {
		return "", nil, err
	}
	scores := sub.Scores()
	roster := sub.Roster()
	out := make([]RosterEntry, 0, len(roster))
	for _, p := range roster {
		out = append(out, RosterEntry{PersonID: p.ID(), Child: model.FormatShort(p), Score: scores[p.ID()]})
	}
	return sub.Name(), out, nil
}

// Subscribe registers fn for every score change. fn runs while a command
// holds the service lock and must not block or call back into the service.
func (s *BookService) Subscribe(fn func(subjectName string, c subject.Change)) (dispose func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.book.Registry().Subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		d()
	}
}
