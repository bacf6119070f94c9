/*
codec.go - Sortable string encoding

FORMAT:
  unit    = family "-" body
  family  = "c" / "f" / "g"
  body    = day / month / quarter / year / "unbounded"
  day     = year4 "-" 2DIGIT "-" 2DIGIT     ; calendar only
  month   = year4 "-" 2DIGIT
  quarter = year4 "-Q" DIGIT                ; 1..4
  year4   = 4DIGIT                          ; 0001..9999

  c-2017-01-03   c-2017-01   f-2017-07   g-2017-Q1   c-2017   c-unbounded

ORDERING:
  Within one kind, lexicographic order of encodings is chronological order.
  The zero-padded four-digit year carries this.

STRICTNESS:
  Digits must be ASCII and exactly as wide as the grammar says. "c-2007-1-11",
  "c-2007-001-11", "c-2007Q-1" and "c-2015-02-29" are all malformed.
*/
package unitoftime

import (
	"errors"
	"strings"
)

// Encode returns the canonical sortable string of u.
func Encode(u UnitOfTime) string {
	return u.SortableString()
}

// =============================================================================
// GRAMMAR
// =============================================================================

var errNotNumeric = errors.New("not a zero-padded decimal number")

// grammar is one body shape. Shapes never overlap: lengths and delimiter
// positions separate them, and only the quarter shape has a literal "Q".
type grammar struct {
	granularity Granularity
	match       func(body string) bool
	build       func(f Family, body string) (UnitOfTime, error)
}

var grammars = [...]grammar{
	{GranularityDay, matchDay, buildDay},
	{GranularityMonth, matchMonth, buildMonth},
	{GranularityQuarter, matchQuarter, buildQuarter},
	{GranularityYear, matchYear, buildYear},
	{GranularityUnbounded, matchUnbounded, buildUnbounded},
}

func matchDay(b string) bool       { return len(b) == 10 && b[4] == '-' && b[7] == '-' }
func matchMonth(b string) bool     { return len(b) == 7 && b[4] == '-' && b[5] != 'Q' }
func matchQuarter(b string) bool   { return len(b) == 7 && b[4:6] == "-Q" }
func matchYear(b string) bool      { return len(b) == 4 }
func matchUnbounded(b string) bool { return b == "unbounded" }

// parse decodes s into its concrete variant without any type check.
func parse(s string) (UnitOfTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrBlankInput
	}

	prefix, body, ok := strings.Cut(s, "-")
	if !ok {
		return nil, malformed(s, "family", nil)
	}
	family, ok := familyFromPrefix(prefix)
	if !ok {
		return nil, malformed(s, "family", &ComponentError{Component: "family", Text: prefix, Err: ErrOutOfRange})
	}

	for _, g := range grammars {
		if !g.match(body) {
			continue
		}
		u, err := g.build(family, body)
		if err != nil {
			var ce *ComponentError
			component := g.granularity.String()
			if errors.As(err, &ce) {
				component = ce.Component
			}
			return nil, malformed(s, component, err)
		}
		return u, nil
	}
	return nil, malformed(s, "", nil)
}

// digits reads an all-ASCII-digit component. The caller fixes the width.
func digits(s, component string) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, &ComponentError{Component: component, Text: s, Err: errNotNumeric}
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// Widen returns a constructor's result as a UnitOfTime, keeping a nil
// interface on error.
func Widen[T UnitOfTime](u T, err error) (UnitOfTime, error) {
	if err != nil {
		return nil, err
	}
	return u, nil
}

func buildDay(f Family, body string) (UnitOfTime, error) {
	if f != FamilyCalendar {
		return nil, &ComponentError{Component: "granularity", Text: "day", Err: ErrOutOfRange}
	}
	year, err := digits(body[0:4], "year")
	if err != nil {
		return nil, err
	}
	month, err := digits(body[5:7], "month")
	if err != nil {
		return nil, err
	}
	day, err := digits(body[8:10], "day")
	if err != nil {
		return nil, err
	}
	return Widen(NewCalendarDay(year, MonthOfYear(month), DayOfMonth(day)))
}

func buildMonth(f Family, body string) (UnitOfTime, error) {
	year, err := digits(body[0:4], "year")
	if err != nil {
		return nil, err
	}
	month, err := digits(body[5:7], "month")
	if err != nil {
		return nil, err
	}
	switch f {
	case FamilyCalendar:
		return Widen(NewCalendarMonth(year, MonthOfYear(month)))
	case FamilyFiscal:
		return Widen(NewFiscalMonth(year, MonthNumber(month)))
	default:
		return Widen(NewGenericMonth(year, MonthNumber(month)))
	}
}

func buildQuarter(f Family, body string) (UnitOfTime, error) {
	year, err := digits(body[0:4], "year")
	if err != nil {
		return nil, err
	}
	quarter, err := digits(body[6:7], "quarter")
	if err != nil {
		return nil, err
	}
	switch f {
	case FamilyCalendar:
		return Widen(NewCalendarQuarter(year, QuarterNumber(quarter)))
	case FamilyFiscal:
		return Widen(NewFiscalQuarter(year, QuarterNumber(quarter)))
	default:
		return Widen(NewGenericQuarter(year, QuarterNumber(quarter)))
	}
}

func buildYear(f Family, body string) (UnitOfTime, error) {
	year, err := digits(body, "year")
	if err != nil {
		return nil, err
	}
	switch f {
	case FamilyCalendar:
		return Widen(NewCalendarYear(year))
	case FamilyFiscal:
		return Widen(NewFiscalYear(year))
	default:
		return Widen(NewGenericYear(year))
	}
}

func buildUnbounded(f Family, _ string) (UnitOfTime, error) {
	return Unbounded(f)
}
