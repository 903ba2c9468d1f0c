package parser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat  = errors.New("invalid command format")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidValue   = errors.New("invalid value")
)

// Error is a parse failure. Usage, when set, is the help text of the
// command that failed to parse.
type Error struct {
	Kind  error
	Msg   string
	Usage string
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Usage == "" {
		return msg
	}
	return fmt.Sprintf("%s\n%s", msg, e.Usage)
}

func (e *Error) Unwrap() error { return e.Kind }

func invalidFormat(word, msg string) error {
	if msg == "" {
		msg = "Invalid command format!"
	}
	return &Error{Kind: ErrInvalidFormat, Msg: msg, Usage: usages[word]}
}

func invalidValue(msg string) error {
	return &Error{Kind: ErrInvalidValue, Msg: msg}
}
