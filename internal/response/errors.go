package response

import (
	"errors"
	"net/http"

	"github.com/stemsi/kinderbook/internal/command"
	"github.com/stemsi/kinderbook/internal/parser"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/subject"
)

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Commands ──────────────────────────────────────────────────────
	ErrUnknownSubject  ErrCode = "UNKNOWN_SUBJECT"
	ErrIndexOutOfRange ErrCode = "INDEX_OUT_OF_RANGE"
	ErrInvalidScore    ErrCode = "INVALID_SCORE"
	ErrInvalidCommand  ErrCode = "INVALID_COMMAND"
	ErrUnknownCommand  ErrCode = "UNKNOWN_COMMAND"
	ErrInvalidValue    ErrCode = "INVALID_VALUE"
	ErrDuplicatePerson ErrCode = "DUPLICATE_PERSON"
	ErrNothingToEdit   ErrCode = "NOTHING_TO_EDIT"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Commands ──────────────────────────────────────────────────────
	case ErrUnknownSubject:
		return "Subject must be one of the offered subjects."
	case ErrIndexOutOfRange:
		return "The child index provided is invalid."
	case ErrInvalidScore:
		return "Score must be between 0 to 100."
	case ErrInvalidCommand:
		return "Invalid command format."
	case ErrUnknownCommand:
		return "Unknown command."
	case ErrInvalidValue:
		return "A field value is invalid."
	case ErrDuplicatePerson:
		return "This child already exists in the address book."
	case ErrNothingToEdit:
		return "At least one field to edit must be provided."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}

// CodeFor maps a command, parse or lookup error onto its API error code
// and HTTP status.
func CodeFor(err error) (int, ErrCode) {
	switch {
	case errors.Is(err, subject.ErrUnknownSubject):
		return http.StatusBadRequest, ErrUnknownSubject
	case errors.Is(err, command.ErrIndexOutOfRange):
		return http.StatusBadRequest, ErrIndexOutOfRange
	case errors.Is(err, subject.ErrInvalidScore):
		return http.StatusBadRequest, ErrInvalidScore
	case errors.Is(err, parser.ErrInvalidFormat):
		return http.StatusBadRequest, ErrInvalidCommand
	case errors.Is(err, parser.ErrUnknownCommand):
		return http.StatusBadRequest, ErrUnknownCommand
	case errors.Is(err, parser.ErrInvalidValue):
		return http.StatusBadRequest, ErrInvalidValue
	case errors.Is(err, command.ErrDuplicatePerson), errors.Is(err, repository.ErrDuplicatePerson):
		return http.StatusConflict, ErrDuplicatePerson
	case errors.Is(err, command.ErrNothingToEdit):
		return http.StatusBadRequest, ErrNothingToEdit
	case errors.Is(err, repository.ErrPersonNotFound):
		return http.StatusNotFound, ErrNotFound
	default:
		return http.StatusInternalServerError, ErrInternal
	}
}
