package model

import "fmt"

// Kind identifies which error condition the engine raised.
type Kind string

const (
	// BadInput means a pre-condition on the engine's entry point was
	// violated: a non-finite or negative dimension, zero container
	// extent, or non-positive quantity.
	BadInput Kind = "bad_input"
	// InternalInvariant means a §3 invariant was about to be violated
	// by the engine itself (e.g. a collision detected at emit-time).
	// This is always a bug, never a caller mistake.
	InternalInvariant Kind = "internal_invariant"
)

// Error is the error type returned across the engine boundary.
// CapacityExceeded is deliberately not a Kind: items that don't fit
// are reported via PackingResult.UnplacedSummary, never as an error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBadInput) / errors.Is(err, ErrInternalInvariant)
// match any *Error of the same Kind, regardless of message or wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrBadInput and ErrInternalInvariant are sentinels for use with
// errors.Is. They carry no message; compare against them, don't return
// them directly — construct with BadInputf/InternalInvariantf instead.
var (
	ErrBadInput          = &Error{Kind: BadInput}
	ErrInternalInvariant = &Error{Kind: InternalInvariant}
)

// BadInputf builds a BadInput error satisfying errors.Is(err, ErrBadInput).
func BadInputf(format string, args ...any) error {
	return &Error{Kind: BadInput, Msg: fmt.Sprintf(format, args...)}
}

// InternalInvariantf builds an InternalInvariant error satisfying
// errors.Is(err, ErrInternalInvariant).
func InternalInvariantf(format string, args ...any) error {
	return &Error{Kind: InternalInvariant, Msg: fmt.Sprintf(format, args...)}
}
