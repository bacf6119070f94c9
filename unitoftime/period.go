package unitoftime

import (
	"fmt"
	"strings"
)

// =============================================================================
// REPORTING PERIOD - An inclusive range of units of one family
// =============================================================================

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = fmt.Errorf("%w: period ends before it starts", ErrInvalidArgument)

// ReportingPeriod covers every unit from Start to End inclusive.
//
// Examples:
//   - Q1 2017:             c-2017-01 .. c-2017-03
//   - Fiscal 2016 onwards: f-2016 .. f-unbounded
//   - All generic time:    g-unbounded .. g-unbounded
type ReportingPeriod struct {
	start UnitOfTime
	end   UnitOfTime
}

// NewReportingPeriod requires both ends in one family. Bounded ends must
// share a kind and be in order; an unbounded end leaves that side open.
func NewReportingPeriod(start, end UnitOfTime) (ReportingPeriod, error) {
	if start == nil || end == nil {
		return ReportingPeriod{}, ErrNullInput
	}
	if start.Family() != end.Family() {
		return ReportingPeriod{}, ErrKindMismatch
	}
	if !IsUnbounded(start) && !IsUnbounded(end) {
		c, err := Compare(start, end)
		if err != nil {
			return ReportingPeriod{}, err
		}
		if c > 0 {
			return ReportingPeriod{}, ErrInvalidPeriod
		}
	}
	return ReportingPeriod{start: start, end: end}, nil
}

func (p ReportingPeriod) Start() UnitOfTime { return p.start }
func (p ReportingPeriod) End() UnitOfTime   { return p.end }

// IsZero reports whether p was not built by NewReportingPeriod or
// ParseReportingPeriod.
func (p ReportingPeriod) IsZero() bool { return p.start == nil || p.end == nil }

// Family is FamilyInvalid for the zero period.
func (p ReportingPeriod) Family() Family {
	if p.IsZero() {
		return FamilyInvalid
	}
	return p.start.Family()
}

// Granularity is the granularity of the bounded ends, or unbounded when
// both ends are open. It is GranularityInvalid for the zero period.
func (p ReportingPeriod) Granularity() Granularity {
	if p.IsZero() {
		return GranularityInvalid
	}
	if !IsUnbounded(p.start) {
		return p.start.Granularity()
	}
	return p.end.Granularity()
}

// Contains reports whether u falls inside the period. u must belong to the
// period's family and be at least as granular as the period.
func (p ReportingPeriod) Contains(u UnitOfTime) (bool, error) {
	if u == nil || p.IsZero() {
		return false, ErrNullInput
	}
	if u.Family() != p.Family() {
		return false, ErrKindMismatch
	}
	g := p.Granularity()
	if g == GranularityUnbounded {
		return true, nil
	}
	enclosing, err := Coarsen(u, g)
	if err != nil {
		return false, err
	}
	if !IsUnbounded(p.start) && Before(enclosing, p.start) {
		return false, nil
	}
	if !IsUnbounded(p.end) && Before(p.end, enclosing) {
		return false, nil
	}
	return true, nil
}

// Units lists every unit of a period with two bounded ends.
func (p ReportingPeriod) Units() ([]UnitOfTime, error) {
	if p.IsZero() {
		return nil, ErrNullInput
	}
	if IsUnbounded(p.start) || IsUnbounded(p.end) {
		return nil, &ComponentError{Component: "period", Text: p.SortableString(), Err: ErrOutOfRange}
	}
	var units []UnitOfTime
	current := p.start
	for !Before(p.end, current) {
		units = append(units, current)
		next, err := Plus(current, 1)
		if err != nil {
			break // ran off the supported year range
		}
		current = next
	}
	return units, nil
}

// SortableString joins the encoded ends with a comma.
func (p ReportingPeriod) SortableString() string {
	if p.IsZero() {
		return ""
	}
	return p.start.SortableString() + "," + p.end.SortableString()
}

func (p ReportingPeriod) String() string {
	if p.IsZero() {
		return "[]"
	}
	return "[" + p.start.String() + ", " + p.end.String() + "]"
}

// ParseReportingPeriod decodes "<start>,<end>".
func ParseReportingPeriod(s string) (ReportingPeriod, error) {
	if strings.TrimSpace(s) == "" {
		return ReportingPeriod{}, ErrBlankInput
	}
	rawStart, rawEnd, ok := strings.Cut(s, ",")
	if !ok {
		return ReportingPeriod{}, malformed(s, "period", nil)
	}
	start, err := DecodeAs(rawStart, TargetUnitOfTime)
	if err != nil {
		return ReportingPeriod{}, err
	}
	end, err := DecodeAs(rawEnd, TargetUnitOfTime)
	if err != nil {
		return ReportingPeriod{}, err
	}
	return NewReportingPeriod(start, end)
}

func (p ReportingPeriod) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, ErrNullInput
	}
	return []byte(p.SortableString()), nil
}

func (p *ReportingPeriod) UnmarshalText(text []byte) error {
	parsed, err := ParseReportingPeriod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// Plus shifts a bounded unit by n units of its own granularity.
func Plus(u UnitOfTime, n int) (UnitOfTime, error) {
	switch v := u.(type) {
	case CalendarDay:
		return Widen(v.Plus(n))
	case CalendarMonth:
		return Widen(v.Plus(n))
	case CalendarQuarter:
		return Widen(v.Plus(n))
	case CalendarYear:
		return Widen(v.Plus(n))
	case FiscalMonth:
		return Widen(v.Plus(n))
	case FiscalQuarter:
		return Widen(v.Plus(n))
	case FiscalYear:
		return Widen(v.Plus(n))
	case GenericMonth:
		return Widen(v.Plus(n))
	case GenericQuarter:
		return Widen(v.Plus(n))
	case GenericYear:
		return Widen(v.Plus(n))
	case nil:
		return nil, ErrNullInput
	}
	return nil, &ComponentError{Component: "granularity", Text: u.Granularity().String(), Err: ErrOutOfRange}
}
