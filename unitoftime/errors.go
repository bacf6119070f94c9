/*
errors.go - Error taxonomy for units of time

ERROR CATEGORIES:
  1. Invalid argument (ErrInvalidArgument and its children)
     - ErrNullInput:           nothing was provided
     - ErrBlankInput:          empty or whitespace-only string
     - ErrInvalidGranularity:  the Invalid sentinel reached a comparison
     - ErrOutOfRange:          a component outside its domain
     - ErrKindMismatch:        two units of different kinds were compared
     - ErrGranularityMismatch: coarsening towards a finer granularity
  2. Invalid operation (ErrInvalidOperation and its children)
     - ErrMalformed:    a string that no grammar accepts
     - ErrTypeMismatch: a well-formed string of an incompatible kind

USAGE:
  _, err := unitoftime.Decode[unitoftime.CalendarMonth]("c-2001-01-09")
  if errors.Is(err, unitoftime.ErrTypeMismatch) {
      var de *unitoftime.DecodeError
      errors.As(err, &de) // de.Kind == KindCalendarDay
  }
*/
package unitoftime

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is the parent of every argument failure.
	ErrInvalidArgument = errors.New("unit of time: invalid argument")

	// ErrInvalidOperation is the parent of every decode failure past the
	// null and blank checks.
	ErrInvalidOperation = errors.New("unit of time: invalid operation")

	// ErrNullInput is returned when no string was provided at all.
	ErrNullInput = fmt.Errorf("%w: input is null", ErrInvalidArgument)

	// ErrBlankInput is returned for empty or whitespace-only input.
	ErrBlankInput = fmt.Errorf("%w: input is empty or whitespace", ErrInvalidArgument)

	// ErrInvalidGranularity is returned when GranularityInvalid (or an
	// unknown value) is passed to a comparison.
	ErrInvalidGranularity = fmt.Errorf("%w: granularity is invalid", ErrInvalidArgument)

	// ErrOutOfRange is returned when a component is outside its domain.
	ErrOutOfRange = fmt.Errorf("%w: component out of range", ErrInvalidArgument)

	// ErrKindMismatch is returned when two units of different kinds meet.
	ErrKindMismatch = fmt.Errorf("%w: units are of different kinds", ErrInvalidArgument)

	// ErrGranularityMismatch is returned when a unit cannot be expressed at
	// the requested granularity.
	ErrGranularityMismatch = fmt.Errorf("%w: granularity is finer than the unit", ErrInvalidArgument)

	// ErrMalformed is returned when a string matches no grammar, or matches
	// one but names an impossible date.
	ErrMalformed = fmt.Errorf("%w: malformed sortable string", ErrInvalidOperation)

	// ErrTypeMismatch is returned when a string decodes to a kind the
	// requested type cannot hold.
	ErrTypeMismatch = fmt.Errorf("%w: decoded unit does not match requested type", ErrInvalidOperation)
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ComponentError describes a single bad component of a unit.
type ComponentError struct {
	Component string // "year", "month", "quarter", "day", "family", "granularity"
	Value     int
	Text      string // set instead of Value when the input was not numeric
	Err       error
}

func (e *ComponentError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s %q: %v", e.Component, e.Text, e.Err)
	}
	return fmt.Sprintf("%s %d: %v", e.Component, e.Value, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// DecodeError reports a failed decode. Err is ErrMalformed or
// ErrTypeMismatch.
type DecodeError struct {
	Input     string
	Component string // offending component for malformed input, if known
	Kind      Kind   // decoded kind, set for type mismatches
	Target    Target // requested target, set for type mismatches
	Err       error
	Cause     error // component failure behind a malformed input, may be nil
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrTypeMismatch):
		return fmt.Sprintf("%v: %q is %s, requested %s", e.Err, e.Input, e.Kind, e.Target)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %q: %v", e.Err, e.Input, e.Cause)
	case e.Component != "":
		return fmt.Sprintf("%v: %q: bad %s", e.Err, e.Input, e.Component)
	default:
		return fmt.Sprintf("%v: %q", e.Err, e.Input)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(input, component string, cause error) *DecodeError {
	return &DecodeError{Input: input, Component: component, Err: ErrMalformed, Cause: cause}
}

func outOfRange(component string, value int) error {
	return &ComponentError{Component: component, Value: value, Err: ErrOutOfRange}
}
