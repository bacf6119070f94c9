package unitoftime

import "fmt"

// =============================================================================
// FISCAL UNITS - Numbered months and quarters of an opaque fiscal year
// =============================================================================

// FiscalMonth is month n of a fiscal year. Month 1 is the first month of
// the fiscal year, whichever calendar month that is.
type FiscalMonth struct {
	year  int
	month MonthNumber
}

func NewFiscalMonth(year int, month MonthNumber) (FiscalMonth, error) {
	if err := checkYear(year); err != nil {
		return FiscalMonth{}, err
	}
	if !month.Valid() {
		return FiscalMonth{}, outOfRange("month", int(month))
	}
	return FiscalMonth{year: year, month: month}, nil
}

func (m FiscalMonth) Year() int          { return m.year }
func (m FiscalMonth) Month() MonthNumber { return m.month }

func (FiscalMonth) Family() Family           { return FamilyFiscal }
func (FiscalMonth) Granularity() Granularity { return GranularityMonth }
func (FiscalMonth) Kind() Kind               { return KindFiscalMonth }
func (FiscalMonth) fiscalUnit()              {}

func (m FiscalMonth) SortableString() string { return fmt.Sprintf("f-%04d-%02d", m.year, m.month) }
func (m FiscalMonth) String() string         { return m.SortableString() }
func (m FiscalMonth) ordinal() int           { return m.year*100 + int(m.month) }

func (m FiscalMonth) Plus(n int) (FiscalMonth, error) {
	year, month, err := shift(m.year, int(m.month), 12, n)
	if err != nil {
		return FiscalMonth{}, err
	}
	return FiscalMonth{year: year, month: MonthNumber(month)}, nil
}

type FiscalQuarter struct {
	year    int
	quarter QuarterNumber
}

func NewFiscalQuarter(year int, quarter QuarterNumber) (FiscalQuarter, error) {
	if err := checkYear(year); err != nil {
		return FiscalQuarter{}, err
	}
	if !quarter.Valid() {
		return FiscalQuarter{}, outOfRange("quarter", int(quarter))
	}
	return FiscalQuarter{year: year, quarter: quarter}, nil
}

func (q FiscalQuarter) Year() int              { return q.year }
func (q FiscalQuarter) Quarter() QuarterNumber { return q.quarter }

func (FiscalQuarter) Family() Family           { return FamilyFiscal }
func (FiscalQuarter) Granularity() Granularity { return GranularityQuarter }
func (FiscalQuarter) Kind() Kind               { return KindFiscalQuarter }
func (FiscalQuarter) fiscalUnit()              {}

func (q FiscalQuarter) SortableString() string { return fmt.Sprintf("f-%04d-Q%d", q.year, q.quarter) }
func (q FiscalQuarter) String() string         { return q.SortableString() }
func (q FiscalQuarter) ordinal() int           { return q.year*10 + int(q.quarter) }

func (q FiscalQuarter) Plus(n int) (FiscalQuarter, error) {
	year, quarter, err := shift(q.year, int(q.quarter), 4, n)
	if err != nil {
		return FiscalQuarter{}, err
	}
	return FiscalQuarter{year: year, quarter: QuarterNumber(quarter)}, nil
}

type FiscalYear struct {
	year int
}

func NewFiscalYear(year int) (FiscalYear, error) {
	if err := checkYear(year); err != nil {
		return FiscalYear{}, err
	}
	return FiscalYear{year: year}, nil
}

func (y FiscalYear) Year() int { return y.year }

func (FiscalYear) Family() Family           { return FamilyFiscal }
func (FiscalYear) Granularity() Granularity { return GranularityYear }
func (FiscalYear) Kind() Kind               { return KindFiscalYear }
func (FiscalYear) fiscalUnit()              {}

func (y FiscalYear) SortableString() string { return fmt.Sprintf("f-%04d", y.year) }
func (y FiscalYear) String() string         { return y.SortableString() }
func (y FiscalYear) ordinal() int           { return y.year }

func (y FiscalYear) Plus(n int) (FiscalYear, error) {
	if err := checkSteps("years", n, 1); err != nil {
		return FiscalYear{}, err
	}
	return NewFiscalYear(y.year + n)
}

// FiscalUnbounded stands for all fiscal time. All values are equal.
type FiscalUnbounded struct{}

func (FiscalUnbounded) Family() Family           { return FamilyFiscal }
func (FiscalUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (FiscalUnbounded) Kind() Kind               { return KindFiscalUnbounded }
func (FiscalUnbounded) fiscalUnit()              {}
func (FiscalUnbounded) SortableString() string   { return "f-unbounded" }
func (FiscalUnbounded) String() string           { return "f-unbounded" }
func (FiscalUnbounded) ordinal() int             { return 0 }
