/*
Package unitoftime models discrete units of accounting time.

PURPOSE:
  A unit of time is a day, month, quarter, year or an "unbounded" sentinel
  in one of three families: Calendar, Fiscal or Generic. Every unit has a
  canonical, lexicographically sortable string form and can be recovered
  from that string as any compatible node of the type hierarchy.

KEY CONCEPTS IN THIS FILE (types.go):
  - Family:     Calendar ("c"), Fiscal ("f"), Generic ("g")
  - Kind:       The concrete variant (family x granularity)
  - UnitOfTime: Root capability implemented by every concrete variant
  - CalendarUnitOfTime / FiscalUnitOfTime / GenericUnitOfTime:
                Family capabilities

HIERARCHY:
  UnitOfTime
  ├── CalendarUnitOfTime: CalendarDay, CalendarMonth, CalendarQuarter,
  │                       CalendarYear, CalendarUnbounded
  ├── FiscalUnitOfTime:   FiscalMonth, FiscalQuarter, FiscalYear, FiscalUnbounded
  └── GenericUnitOfTime:  GenericMonth, GenericQuarter, GenericYear, GenericUnbounded

  The interfaces are sealed: only the types in this package implement them.

USAGE:
  day, err := unitoftime.NewCalendarDay(2017, unitoftime.January, unitoftime.DayThree)
  key := unitoftime.Encode(day) // "c-2017-01-03"

  back, err := unitoftime.Decode[unitoftime.CalendarUnitOfTime](key)

SEE ALSO:
  - codec.go:       Encoding, grammar and parsing
  - resolve.go:     Type recovery
  - granularity.go: Granularity ordering
  - period.go:      Reporting periods and arithmetic
*/
package unitoftime

// =============================================================================
// FAMILY
// =============================================================================

// Family identifies which calendar system a unit belongs to.
type Family int

const (
	FamilyInvalid Family = iota
	FamilyCalendar
	FamilyFiscal
	FamilyGeneric
)

// Prefix returns the single-letter token that leads the sortable string.
func (f Family) Prefix() string {
	switch f {
	case FamilyCalendar:
		return "c"
	case FamilyFiscal:
		return "f"
	case FamilyGeneric:
		return "g"
	default:
		return ""
	}
}

func (f Family) String() string {
	switch f {
	case FamilyCalendar:
		return "calendar"
	case FamilyFiscal:
		return "fiscal"
	case FamilyGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// Valid reports whether f is one of the three real families.
func (f Family) Valid() bool {
	return f >= FamilyCalendar && f <= FamilyGeneric
}

func familyFromPrefix(prefix string) (Family, bool) {
	switch prefix {
	case "c":
		return FamilyCalendar, true
	case "f":
		return FamilyFiscal, true
	case "g":
		return FamilyGeneric, true
	default:
		return FamilyInvalid, false
	}
}

// ParseFamily accepts a family name ("calendar") or prefix ("c").
func ParseFamily(s string) (Family, error) {
	switch s {
	case "calendar", "c":
		return FamilyCalendar, nil
	case "fiscal", "f":
		return FamilyFiscal, nil
	case "generic", "g":
		return FamilyGeneric, nil
	}
	return FamilyInvalid, &ComponentError{Component: "family", Text: s, Err: ErrOutOfRange}
}

// =============================================================================
// KIND - One tag per concrete variant
// =============================================================================

// Kind identifies a concrete unit-of-time variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindCalendarDay
	KindCalendarMonth
	KindCalendarQuarter
	KindCalendarYear
	KindCalendarUnbounded
	KindFiscalMonth
	KindFiscalQuarter
	KindFiscalYear
	KindFiscalUnbounded
	KindGenericMonth
	KindGenericQuarter
	KindGenericYear
	KindGenericUnbounded
)

type kindInfo struct {
	name        string
	family      Family
	granularity Granularity
}

var kinds = [...]kindInfo{
	KindInvalid:           {"Invalid", FamilyInvalid, GranularityInvalid},
	KindCalendarDay:       {"CalendarDay", FamilyCalendar, GranularityDay},
	KindCalendarMonth:     {"CalendarMonth", FamilyCalendar, GranularityMonth},
	KindCalendarQuarter:   {"CalendarQuarter", FamilyCalendar, GranularityQuarter},
	KindCalendarYear:      {"CalendarYear", FamilyCalendar, GranularityYear},
	KindCalendarUnbounded: {"CalendarUnbounded", FamilyCalendar, GranularityUnbounded},
	KindFiscalMonth:       {"FiscalMonth", FamilyFiscal, GranularityMonth},
	KindFiscalQuarter:     {"FiscalQuarter", FamilyFiscal, GranularityQuarter},
	KindFiscalYear:        {"FiscalYear", FamilyFiscal, GranularityYear},
	KindFiscalUnbounded:   {"FiscalUnbounded", FamilyFiscal, GranularityUnbounded},
	KindGenericMonth:      {"GenericMonth", FamilyGeneric, GranularityMonth},
	KindGenericQuarter:    {"GenericQuarter", FamilyGeneric, GranularityQuarter},
	KindGenericYear:       {"GenericYear", FamilyGeneric, GranularityYear},
	KindGenericUnbounded:  {"GenericUnbounded", FamilyGeneric, GranularityUnbounded},
}

func (k Kind) info() kindInfo {
	if k < KindInvalid || int(k) >= len(kinds) {
		return kinds[KindInvalid]
	}
	return kinds[k]
}

func (k Kind) String() string           { return k.info().name }
func (k Kind) Family() Family           { return k.info().family }
func (k Kind) Granularity() Granularity { return k.info().granularity }
func (k Kind) Valid() bool              { return k.info().family != FamilyInvalid }

// KindOf returns the concrete variant for a family and granularity.
// Fiscal and generic units have no day granularity.
func KindOf(f Family, g Granularity) (Kind, bool) {
	for k := KindCalendarDay; int(k) < len(kinds); k++ {
		if kinds[k].family == f && kinds[k].granularity == g {
			return k, true
		}
	}
	return KindInvalid, false
}

// =============================================================================
// CAPABILITIES
// =============================================================================

// UnitOfTime is the root capability shared by every concrete variant.
type UnitOfTime interface {
	Family() Family
	Granularity() Granularity
	Kind() Kind

	// SortableString returns the canonical encoding, e.g. "c-2017-Q1".
	SortableString() string
	String() string

	// ordinal orders units of one kind chronologically.
	ordinal() int
}

// CalendarUnitOfTime is implemented by the calendar variants only.
type CalendarUnitOfTime interface {
	UnitOfTime
	calendarUnit()
}

// FiscalUnitOfTime is implemented by the fiscal variants only.
type FiscalUnitOfTime interface {
	UnitOfTime
	fiscalUnit()
}

// GenericUnitOfTime is implemented by the generic variants only.
type GenericUnitOfTime interface {
	UnitOfTime
	genericUnit()
}

// IsUnbounded reports whether u is one of the unbounded sentinels.
func IsUnbounded(u UnitOfTime) bool {
	return u != nil && u.Granularity() == GranularityUnbounded
}

// Unbounded returns the unbounded unit of a family.
func Unbounded(f Family) (UnitOfTime, error) {
	switch f {
	case FamilyCalendar:
		return CalendarUnbounded{}, nil
	case FamilyFiscal:
		return FiscalUnbounded{}, nil
	case FamilyGeneric:
		return GenericUnbounded{}, nil
	}
	return nil, &ComponentError{Component: "family", Value: int(f), Err: ErrOutOfRange}
}
