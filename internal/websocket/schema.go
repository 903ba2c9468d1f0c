package websocket

import (
	"time"

	"github.com/stemsi/kinderbook/internal/model"
	"github.com/stemsi/kinderbook/internal/subject"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing   Action = "ping"
	ActionFilter Action = "filter"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// FilterRequest limits the stream to one subject. An empty subject
// restores the full stream.
type FilterRequest struct {
	Action  Action `json:"action"`
	Subject string `json:"subject"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventScoreChanged Event = "score_changed"
	EventFiltered     Event = "filtered"
	EventPong         Event = "pong"
)

// ScoreChangedEvent describes one change of a subject's score store.
type ScoreChangedEvent struct {
	Event    Event              `json:"event"`
	Subject  string             `json:"subject"`
	PersonID model.PersonID     `json:"person_id"`
	Kind     subject.ChangeKind `json:"kind"`
	Score    subject.Score      `json:"score"`
	Previous subject.Score      `json:"previous"`
	At       time.Time          `json:"at"`
}

// NewScoreChangedEvent builds the event for a change in subjectName.
func NewScoreChangedEvent(subjectName string, c subject.Change) ScoreChangedEvent {
	return ScoreChangedEvent{
		Event:    EventScoreChanged,
		Subject:  subjectName,
		PersonID: c.PersonID,
		Kind:     c.Kind,
		Score:    c.Score,
		Previous: c.Previous,
		At:       time.Now().UTC(),
	}
}

type FilteredResponse struct {
	Event   Event  `json:"event"`
	Subject string `json:"subject"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
