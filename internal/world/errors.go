package world

import (
	"errors"
	"fmt"
)

// Kind classifies why an edit was rejected. Every kind is recoverable: the
// level is left untouched and the caller may retry with other parameters.
type Kind int

const (
	// KindInput covers missing or malformed arguments and unknown names.
	KindInput Kind = iota
	// KindConflict covers name collisions, occupied direction slots and degree limits.
	KindConflict
	// KindGeometric covers coordinate collisions and corridors that cannot move.
	KindGeometric
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConflict:
		return "conflict"
	case KindGeometric:
		return "geometric"
	default:
		return "unknown"
	}
}

// Error is returned by every rejected level edit.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // Optional cause
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrInput     = &Error{Kind: KindInput}
	ErrConflict  = &Error{Kind: KindConflict}
	ErrGeometric = &Error{Kind: KindGeometric}

	// ErrInLoop is the cause of a geometric error raised for corridors on a cycle.
	ErrInLoop = errors.New("corridor is part of a closed loop")
)

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String() + " error"
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels of the same kind (errors without a message).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// KindOf returns the kind of a level error, and false for any other error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func inputErr(format string, args ...any) error {
	return &Error{Kind: KindInput, Msg: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func geometricErr(format string, args ...any) error {
	return &Error{Kind: KindGeometric, Msg: fmt.Sprintf(format, args...)}
}
