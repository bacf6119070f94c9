package unitoftime

import "fmt"

// =============================================================================
// GENERIC UNITS - Family-agnostic numbered periods
// =============================================================================

// GenericMonth is month n of a year that is neither calendar nor fiscal.
// Generic units stand in wherever either family is accepted.
type GenericMonth struct {
	year  int
	month MonthNumber
}

func NewGenericMonth(year int, month MonthNumber) (GenericMonth, error) {
	if err := checkYear(year); err != nil {
		return GenericMonth{}, err
	}
	if !month.Valid() {
		return GenericMonth{}, outOfRange("month", int(month))
	}
	return GenericMonth{year: year, month: month}, nil
}

func (m GenericMonth) Year() int          { return m.year }
func (m GenericMonth) Month() MonthNumber { return m.month }

func (GenericMonth) Family() Family           { return FamilyGeneric }
func (GenericMonth) Granularity() Granularity { return GranularityMonth }
func (GenericMonth) Kind() Kind               { return KindGenericMonth }
func (GenericMonth) genericUnit()             {}

func (m GenericMonth) SortableString() string { return fmt.Sprintf("g-%04d-%02d", m.year, m.month) }
func (m GenericMonth) String() string         { return m.SortableString() }
func (m GenericMonth) ordinal() int           { return m.year*100 + int(m.month) }

func (m GenericMonth) Plus(n int) (GenericMonth, error) {
	year, month, err := shift(m.year, int(m.month), 12, n)
	if err != nil {
		return GenericMonth{}, err
	}
	return GenericMonth{year: year, month: MonthNumber(month)}, nil
}

type GenericQuarter struct {
	year    int
	quarter QuarterNumber
}

func NewGenericQuarter(year int, quarter QuarterNumber) (GenericQuarter, error) {
	if err := checkYear(year); err != nil {
		return GenericQuarter{}, err
	}
	if !quarter.Valid() {
		return GenericQuarter{}, outOfRange("quarter", int(quarter))
	}
	return GenericQuarter{year: year, quarter: quarter}, nil
}

func (q GenericQuarter) Year() int              { return q.year }
func (q GenericQuarter) Quarter() QuarterNumber { return q.quarter }

func (GenericQuarter) Family() Family           { return FamilyGeneric }
func (GenericQuarter) Granularity() Granularity { return GranularityQuarter }
func (GenericQuarter) Kind() Kind               { return KindGenericQuarter }
func (GenericQuarter) genericUnit()             {}

func (q GenericQuarter) SortableString() string { return fmt.Sprintf("g-%04d-Q%d", q.year, q.quarter) }
func (q GenericQuarter) String() string         { return q.SortableString() }
func (q GenericQuarter) ordinal() int           { return q.year*10 + int(q.quarter) }

func (q GenericQuarter) Plus(n int) (GenericQuarter, error) {
	year, quarter, err := shift(q.year, int(q.quarter), 4, n)
	if err != nil {
		return GenericQuarter{}, err
	}
	return GenericQuarter{year: year, quarter: QuarterNumber(quarter)}, nil
}

type GenericYear struct {
	year int
}

func NewGenericYear(year int) (GenericYear, error) {
	if err := checkYear(year); err != nil {
		return GenericYear{}, err
	}
	return GenericYear{year: year}, nil
}

func (y GenericYear) Year() int { return y.year }

func (GenericYear) Family() Family           { return FamilyGeneric }
func (GenericYear) Granularity() Granularity { return GranularityYear }
func (GenericYear) Kind() Kind               { return KindGenericYear }
func (GenericYear) genericUnit()             {}

func (y GenericYear) SortableString() string { return fmt.Sprintf("g-%04d", y.year) }
func (y GenericYear) String() string         { return y.SortableString() }
func (y GenericYear) ordinal() int           { return y.year }

func (y GenericYear) Plus(n int) (GenericYear, error) {
	if err := checkSteps("years", n, 1); err != nil {
		return GenericYear{}, err
	}
	return NewGenericYear(y.year + n)
}

// GenericUnbounded stands for all time in the generic family.
type GenericUnbounded struct{}

func (GenericUnbounded) Family() Family           { return FamilyGeneric }
func (GenericUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (GenericUnbounded) Kind() Kind               { return KindGenericUnbounded }
func (GenericUnbounded) genericUnit()             {}
func (GenericUnbounded) SortableString() string   { return "g-unbounded" }
func (GenericUnbounded) String() string           { return "g-unbounded" }
func (GenericUnbounded) ordinal() int             { return 0 }
