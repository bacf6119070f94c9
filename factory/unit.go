/*
Package factory provides JSON to Go unit-of-time conversion.

PURPOSE:
  Converts component descriptions (family, granularity, year, month,
  quarter, day) into unitoftime values and back. The HTTP API accepts
  units this way so clients never have to build sortable strings by hand.

JSON SCHEMA:
  {"family": "calendar", "granularity": "day", "year": 2017, "month": 1, "day": 3}
  {"family": "fiscal", "granularity": "quarter", "year": 2017, "quarter": 3}
  {"family": "generic", "granularity": "unbounded"}

  Components the granularity does not use must be omitted (or zero).

PERIODS:
  {"start": {...unit...}, "end": {...unit...}}

USAGE:
  f := factory.NewUnitFactory()
  u, err := f.ParseUnit(`{"family":"c","granularity":"month","year":2017,"month":1}`)
  key := unitoftime.Encode(u) // "c-2017-01"

SEE ALSO:
  - unitoftime/types.go:  Families and kinds
  - unitoftime/period.go: Reporting periods
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/accounting-time/unitoftime"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// UnitJSON is the component form of a unit of time.
type UnitJSON struct {
	Family      string `json:"family" validate:"required,oneof=calendar fiscal generic c f g"`
	Granularity string `json:"granularity" validate:"required,oneof=day month quarter year unbounded"`
	Year        int    `json:"year,omitempty" validate:"omitempty,min=1,max=9999"`
	Month       int    `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
	Quarter     int    `json:"quarter,omitempty" validate:"omitempty,min=1,max=4"`
	Day         int    `json:"day,omitempty" validate:"omitempty,min=1,max=31"`
}

// PeriodJSON is the component form of a reporting period.
type PeriodJSON struct {
	Start UnitJSON `json:"start" validate:"required"`
	End   UnitJSON `json:"end" validate:"required"`
}

// =============================================================================
// UNIT FACTORY
// =============================================================================

// UnitFactory converts component descriptions to units of time.
type UnitFactory struct{}

// NewUnitFactory creates a new unit factory.
func NewUnitFactory() *UnitFactory {
	return &UnitFactory{}
}

// ParseUnit parses a JSON string into a unit of time.
func (f *UnitFactory) ParseUnit(jsonStr string) (unitoftime.UnitOfTime, error) {
	var uj UnitJSON
	if err := json.Unmarshal([]byte(jsonStr), &uj); err != nil {
		return nil, fmt.Errorf("failed to parse unit JSON: %w", err)
	}
	return f.FromJSON(uj)
}

// FromJSON builds the unit described by uj. Component failures come back
// as *unitoftime.ComponentError wrapping unitoftime.ErrOutOfRange.
func (f *UnitFactory) FromJSON(uj UnitJSON) (unitoftime.UnitOfTime, error) {
	family, err := unitoftime.ParseFamily(uj.Family)
	if err != nil {
		return nil, err
	}
	granularity, err := unitoftime.ParseGranularity(uj.Granularity)
	if err != nil {
		return nil, err
	}
	if err := checkUnused(uj, granularity); err != nil {
		return nil, err
	}

	switch granularity {
	case unitoftime.GranularityDay:
		if family != unitoftime.FamilyCalendar {
			return nil, unsupported(family, granularity)
		}
		return unitoftime.Widen(unitoftime.NewCalendarDay(uj.Year, unitoftime.MonthOfYear(uj.Month), unitoftime.DayOfMonth(uj.Day)))

	case unitoftime.GranularityMonth:
		switch family {
		case unitoftime.FamilyCalendar:
			return unitoftime.Widen(unitoftime.NewCalendarMonth(uj.Year, unitoftime.MonthOfYear(uj.Month)))
		case unitoftime.FamilyFiscal:
			return unitoftime.Widen(unitoftime.NewFiscalMonth(uj.Year, unitoftime.MonthNumber(uj.Month)))
		default:
			return unitoftime.Widen(unitoftime.NewGenericMonth(uj.Year, unitoftime.MonthNumber(uj.Month)))
		}

	case unitoftime.GranularityQuarter:
		q := unitoftime.QuarterNumber(uj.Quarter)
		switch family {
		case unitoftime.FamilyCalendar:
			return unitoftime.Widen(unitoftime.NewCalendarQuarter(uj.Year, q))
		case unitoftime.FamilyFiscal:
			return unitoftime.Widen(unitoftime.NewFiscalQuarter(uj.Year, q))
		default:
			return unitoftime.Widen(unitoftime.NewGenericQuarter(uj.Year, q))
		}

	case unitoftime.GranularityYear:
		switch family {
		case unitoftime.FamilyCalendar:
			return unitoftime.Widen(unitoftime.NewCalendarYear(uj.Year))
		case unitoftime.FamilyFiscal:
			return unitoftime.Widen(unitoftime.NewFiscalYear(uj.Year))
		default:
			return unitoftime.Widen(unitoftime.NewGenericYear(uj.Year))
		}

	default:
		return unitoftime.Unbounded(family)
	}
}

// PeriodFromJSON builds a reporting period from two component descriptions.
func (f *UnitFactory) PeriodFromJSON(pj PeriodJSON) (unitoftime.ReportingPeriod, error) {
	start, err := f.FromJSON(pj.Start)
	if err != nil {
		return unitoftime.ReportingPeriod{}, fmt.Errorf("start: %w", err)
	}
	end, err := f.FromJSON(pj.End)
	if err != nil {
		return unitoftime.ReportingPeriod{}, fmt.Errorf("end: %w", err)
	}
	return unitoftime.NewReportingPeriod(start, end)
}

// ToJSON converts a unit of time to its component form.
func (f *UnitFactory) ToJSON(u unitoftime.UnitOfTime) UnitJSON {
	uj := UnitJSON{
		Family:      u.Family().String(),
		Granularity: u.Granularity().String(),
	}

	switch v := u.(type) {
	case unitoftime.CalendarDay:
		uj.Year, uj.Month, uj.Day = v.Year(), int(v.Month()), int(v.Day())
	case unitoftime.CalendarMonth:
		uj.Year, uj.Month = v.Year(), int(v.Month())
	case unitoftime.FiscalMonth:
		uj.Year, uj.Month = v.Year(), int(v.Month())
	case unitoftime.GenericMonth:
		uj.Year, uj.Month = v.Year(), int(v.Month())
	case unitoftime.CalendarQuarter:
		uj.Year, uj.Quarter = v.Year(), int(v.Quarter())
	case unitoftime.FiscalQuarter:
		uj.Year, uj.Quarter = v.Year(), int(v.Quarter())
	case unitoftime.GenericQuarter:
		uj.Year, uj.Quarter = v.Year(), int(v.Quarter())
	case unitoftime.CalendarYear:
		uj.Year = v.Year()
	case unitoftime.FiscalYear:
		uj.Year = v.Year()
	case unitoftime.GenericYear:
		uj.Year = v.Year()
	}

	return uj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func unsupported(f unitoftime.Family, g unitoftime.Granularity) error {
	return &unitoftime.ComponentError{
		Component: "granularity",
		Text:      f.String() + " " + g.String(),
		Err:       unitoftime.ErrOutOfRange,
	}
}

// checkUnused rejects components the granularity has no place for, so that
// {"granularity":"year","year":2017,"month":3} is not silently truncated.
func checkUnused(uj UnitJSON, g unitoftime.Granularity) error {
	used := map[string]bool{}
	switch g {
	case unitoftime.GranularityDay:
		used["year"], used["month"], used["day"] = true, true, true
	case unitoftime.GranularityMonth:
		used["year"], used["month"] = true, true
	case unitoftime.GranularityQuarter:
		used["year"], used["quarter"] = true, true
	case unitoftime.GranularityYear:
		used["year"] = true
	}

	components := []struct {
		name  string
		value int
	}{
		{"year", uj.Year},
		{"month", uj.Month},
		{"quarter", uj.Quarter},
		{"day", uj.Day},
	}
	for _, c := range components {
		if c.value != 0 && !used[c.name] {
			return &unitoftime.ComponentError{Component: c.name, Value: c.value, Err: unitoftime.ErrOutOfRange}
		}
	}
	return nil
}
