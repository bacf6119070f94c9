/*
resolve.go - Decoding into a requested type

PURPOSE:
  A sortable string always decodes to exactly one concrete kind. Callers
  ask for a node of the hierarchy (Target) and get the unit back only when
  that node can hold the decoded kind.

COMPATIBILITY:
  Target                       accepts
  TargetUnitOfTime             every kind
  TargetCalendarUnitOfTime     KindCalendar*
  TargetFiscalUnitOfTime       KindFiscal*
  TargetGenericUnitOfTime      KindGeneric*
  Target<Concrete>             that kind only

  Everything else is ErrTypeMismatch. The check runs after parsing, so a
  malformed string reports ErrMalformed whatever was requested.

USAGE:
  day, err := unitoftime.Decode[unitoftime.CalendarDay]("c-2001-01-09")
  any, err := unitoftime.DecodeAs("f-2017-Q3", unitoftime.TargetUnitOfTime)
*/
package unitoftime

import "strings"

// =============================================================================
// TARGET - A node of the hierarchy
// =============================================================================

// Target names a type a sortable string can be decoded into.
type Target int

const (
	TargetInvalid Target = iota
	TargetUnitOfTime
	TargetCalendarUnitOfTime
	TargetFiscalUnitOfTime
	TargetGenericUnitOfTime
	TargetCalendarDay
	TargetCalendarMonth
	TargetCalendarQuarter
	TargetCalendarYear
	TargetCalendarUnbounded
	TargetFiscalMonth
	TargetFiscalQuarter
	TargetFiscalYear
	TargetFiscalUnbounded
	TargetGenericMonth
	TargetGenericQuarter
	TargetGenericYear
	TargetGenericUnbounded
)

type targetInfo struct {
	name   string
	family Family // set for family capabilities and concrete targets
	kind   Kind   // set for concrete targets only
}

var targets = [...]targetInfo{
	TargetInvalid:            {"Invalid", FamilyInvalid, KindInvalid},
	TargetUnitOfTime:         {"UnitOfTime", FamilyInvalid, KindInvalid},
	TargetCalendarUnitOfTime: {"CalendarUnitOfTime", FamilyCalendar, KindInvalid},
	TargetFiscalUnitOfTime:   {"FiscalUnitOfTime", FamilyFiscal, KindInvalid},
	TargetGenericUnitOfTime:  {"GenericUnitOfTime", FamilyGeneric, KindInvalid},
	TargetCalendarDay:        {"CalendarDay", FamilyCalendar, KindCalendarDay},
	TargetCalendarMonth:      {"CalendarMonth", FamilyCalendar, KindCalendarMonth},
	TargetCalendarQuarter:    {"CalendarQuarter", FamilyCalendar, KindCalendarQuarter},
	TargetCalendarYear:       {"CalendarYear", FamilyCalendar, KindCalendarYear},
	TargetCalendarUnbounded:  {"CalendarUnbounded", FamilyCalendar, KindCalendarUnbounded},
	TargetFiscalMonth:        {"FiscalMonth", FamilyFiscal, KindFiscalMonth},
	TargetFiscalQuarter:      {"FiscalQuarter", FamilyFiscal, KindFiscalQuarter},
	TargetFiscalYear:         {"FiscalYear", FamilyFiscal, KindFiscalYear},
	TargetFiscalUnbounded:    {"FiscalUnbounded", FamilyFiscal, KindFiscalUnbounded},
	TargetGenericMonth:       {"GenericMonth", FamilyGeneric, KindGenericMonth},
	TargetGenericQuarter:     {"GenericQuarter", FamilyGeneric, KindGenericQuarter},
	TargetGenericYear:        {"GenericYear", FamilyGeneric, KindGenericYear},
	TargetGenericUnbounded:   {"GenericUnbounded", FamilyGeneric, KindGenericUnbounded},
}

func (t Target) info() targetInfo {
	if t < TargetInvalid || int(t) >= len(targets) {
		return targets[TargetInvalid]
	}
	return targets[t]
}

func (t Target) String() string { return t.info().name }
func (t Target) Valid() bool    { return t > TargetInvalid && int(t) < len(targets) }

// Accepts reports whether a unit of kind k can be returned as t.
func (t Target) Accepts(k Kind) bool {
	if !t.Valid() || !k.Valid() {
		return false
	}
	info := t.info()
	switch {
	case t == TargetUnitOfTime:
		return true
	case info.kind != KindInvalid:
		return info.kind == k
	default:
		return info.family == k.Family()
	}
}

// TargetOf returns the concrete target of a kind.
func TargetOf(k Kind) Target {
	for t := TargetCalendarDay; int(t) < len(targets); t++ {
		if targets[t].kind == k && k.Valid() {
			return t
		}
	}
	return TargetInvalid
}

// ParseTarget accepts a target name such as "CalendarUnitOfTime",
// ignoring case.
func ParseTarget(name string) (Target, error) {
	for t := TargetUnitOfTime; int(t) < len(targets); t++ {
		if strings.EqualFold(targets[t].name, name) {
			return t, nil
		}
	}
	return TargetInvalid, &ComponentError{Component: "target", Text: name, Err: ErrOutOfRange}
}

// targetFor maps a type parameter onto its Target without reflection.
// Types outside the hierarchy map to TargetInvalid.
func targetFor[T UnitOfTime]() Target {
	switch any((*T)(nil)).(type) {
	case *UnitOfTime:
		return TargetUnitOfTime
	case *CalendarUnitOfTime:
		return TargetCalendarUnitOfTime
	case *FiscalUnitOfTime:
		return TargetFiscalUnitOfTime
	case *GenericUnitOfTime:
		return TargetGenericUnitOfTime
	case *CalendarDay:
		return TargetCalendarDay
	case *CalendarMonth:
		return TargetCalendarMonth
	case *CalendarQuarter:
		return TargetCalendarQuarter
	case *CalendarYear:
		return TargetCalendarYear
	case *CalendarUnbounded:
		return TargetCalendarUnbounded
	case *FiscalMonth:
		return TargetFiscalMonth
	case *FiscalQuarter:
		return TargetFiscalQuarter
	case *FiscalYear:
		return TargetFiscalYear
	case *FiscalUnbounded:
		return TargetFiscalUnbounded
	case *GenericMonth:
		return TargetGenericMonth
	case *GenericQuarter:
		return TargetGenericQuarter
	case *GenericYear:
		return TargetGenericYear
	case *GenericUnbounded:
		return TargetGenericUnbounded
	}
	return TargetInvalid
}

// =============================================================================
// RESOLVE & DECODE
// =============================================================================

// Resolve returns u when t can hold u's kind, and a type-mismatch
// *DecodeError otherwise.
func Resolve(u UnitOfTime, t Target) (UnitOfTime, error) {
	if u == nil {
		return nil, ErrNullInput
	}
	if !t.Accepts(u.Kind()) {
		return nil, &DecodeError{Input: u.SortableString(), Kind: u.Kind(), Target: t, Err: ErrTypeMismatch}
	}
	return u, nil
}

// DecodeAs decodes s and resolves it against t.
func DecodeAs(s string, t Target) (UnitOfTime, error) {
	u, err := parse(s)
	if err != nil {
		return nil, err
	}
	return Resolve(u, t)
}

// Decode decodes s into T, which may be UnitOfTime, a family capability
// or a concrete variant.
func Decode[T UnitOfTime](s string) (T, error) {
	var zero T
	target := targetFor[T]()
	u, err := DecodeAs(s, target)
	if err != nil {
		return zero, err
	}
	v, ok := u.(T)
	if !ok {
		return zero, &DecodeError{Input: s, Kind: u.Kind(), Target: target, Err: ErrTypeMismatch}
	}
	return v, nil
}

// DecodeNullable is Decode for callers that may hold no string at all;
// a nil s fails with ErrNullInput.
func DecodeNullable[T UnitOfTime](s *string) (T, error) {
	if s == nil {
		var zero T
		return zero, ErrNullInput
	}
	return Decode[T](*s)
}
