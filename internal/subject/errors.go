package subject

import (
	"errors"
	"fmt"
)

var (
	ErrNotEnrolled    = errors.New("not enrolled")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrInvalidScore   = errors.New("score must be within range 0 - 100")
)

// Error carries the failing subject/person context for one of the sentinel
// errors above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func notEnrolled(child, subject string) error {
	return &Error{Kind: ErrNotEnrolled, Msg: fmt.Sprintf("%s is not enrolled in %s", child, subject)}
}

func unknownSubject(name string) error {
	return &Error{Kind: ErrUnknownSubject, Msg: fmt.Sprintf("%q", name)}
}

func invalidScore(v int) error {
	return &Error{Kind: ErrInvalidScore, Msg: fmt.Sprintf("got %d", v)}
}
