package unitoftime

import (
	"fmt"
	"time"

	"github.com/rickb777/date/v2"
)

// =============================================================================
// CALENDAR DAY
// =============================================================================

// CalendarDay is a single Gregorian date.
type CalendarDay struct {
	year  int
	month MonthOfYear
	day   DayOfMonth
}

// NewCalendarDay validates the date against the calendar, so February 29
// only exists in leap years.
func NewCalendarDay(year int, month MonthOfYear, day DayOfMonth) (CalendarDay, error) {
	if err := checkYear(year); err != nil {
		return CalendarDay{}, err
	}
	if !month.Valid() {
		return CalendarDay{}, outOfRange("month", int(month))
	}
	if !IsValidDate(year, month, day) {
		return CalendarDay{}, outOfRange("day", int(day))
	}
	return CalendarDay{year: year, month: month, day: day}, nil
}

// CalendarDayFromTime returns the calendar day of t in t's location.
func CalendarDayFromTime(t time.Time) (CalendarDay, error) {
	y, m, d := t.Date()
	return NewCalendarDay(y, MonthOfYear(m), DayOfMonth(d))
}

func (d CalendarDay) Year() int          { return d.year }
func (d CalendarDay) Month() MonthOfYear { return d.month }
func (d CalendarDay) Day() DayOfMonth    { return d.day }

func (CalendarDay) Family() Family           { return FamilyCalendar }
func (CalendarDay) Granularity() Granularity { return GranularityDay }
func (CalendarDay) Kind() Kind               { return KindCalendarDay }
func (CalendarDay) calendarUnit()            {}

func (d CalendarDay) SortableString() string {
	return fmt.Sprintf("c-%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d CalendarDay) String() string { return d.SortableString() }
func (d CalendarDay) ordinal() int   { return d.year*10000 + int(d.month)*100 + int(d.day) }

// Time returns midnight UTC of the day.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.year, d.month.Time(), int(d.day), 0, 0, 0, 0, time.UTC)
}

// Plus returns the day n days later (earlier when n is negative).
func (d CalendarDay) Plus(n int) (CalendarDay, error) {
	if err := checkSteps("days", n, 366); err != nil {
		return CalendarDay{}, err
	}
	shifted := date.New(d.year, d.month.Time(), int(d.day)+n)
	if err := checkYear(shifted.Year()); err != nil {
		return CalendarDay{}, err
	}
	return CalendarDay{year: shifted.Year(), month: MonthOfYear(shifted.Month()), day: DayOfMonth(shifted.Day())}, nil
}

// =============================================================================
// CALENDAR MONTH
// =============================================================================

type CalendarMonth struct {
	year  int
	month MonthOfYear
}

func NewCalendarMonth(year int, month MonthOfYear) (CalendarMonth, error) {
	if err := checkYear(year); err != nil {
		return CalendarMonth{}, err
	}
	if !month.Valid() {
		return CalendarMonth{}, outOfRange("month", int(month))
	}
	return CalendarMonth{year: year, month: month}, nil
}

func (m CalendarMonth) Year() int          { return m.year }
func (m CalendarMonth) Month() MonthOfYear { return m.month }

func (CalendarMonth) Family() Family           { return FamilyCalendar }
func (CalendarMonth) Granularity() Granularity { return GranularityMonth }
func (CalendarMonth) Kind() Kind               { return KindCalendarMonth }
func (CalendarMonth) calendarUnit()            {}

func (m CalendarMonth) SortableString() string { return fmt.Sprintf("c-%04d-%02d", m.year, m.month) }
func (m CalendarMonth) String() string         { return m.SortableString() }
func (m CalendarMonth) ordinal() int           { return m.year*100 + int(m.month) }

// FirstDay returns the first day of the month.
func (m CalendarMonth) FirstDay() CalendarDay {
	return CalendarDay{year: m.year, month: m.month, day: DayOne}
}

// LastDay returns the last day of the month, honouring leap years.
func (m CalendarMonth) LastDay() CalendarDay {
	return CalendarDay{year: m.year, month: m.month, day: DayOfMonth(DaysInMonth(m.year, m.month))}
}

func (m CalendarMonth) Plus(n int) (CalendarMonth, error) {
	year, month, err := shift(m.year, int(m.month), 12, n)
	if err != nil {
		return CalendarMonth{}, err
	}
	return CalendarMonth{year: year, month: MonthOfYear(month)}, nil
}

// =============================================================================
// CALENDAR QUARTER
// =============================================================================

type CalendarQuarter struct {
	year    int
	quarter QuarterNumber
}

func NewCalendarQuarter(year int, quarter QuarterNumber) (CalendarQuarter, error) {
	if err := checkYear(year); err != nil {
		return CalendarQuarter{}, err
	}
	if !quarter.Valid() {
		return CalendarQuarter{}, outOfRange("quarter", int(quarter))
	}
	return CalendarQuarter{year: year, quarter: quarter}, nil
}

func (q CalendarQuarter) Year() int              { return q.year }
func (q CalendarQuarter) Quarter() QuarterNumber { return q.quarter }

func (CalendarQuarter) Family() Family           { return FamilyCalendar }
func (CalendarQuarter) Granularity() Granularity { return GranularityQuarter }
func (CalendarQuarter) Kind() Kind               { return KindCalendarQuarter }
func (CalendarQuarter) calendarUnit()            {}

func (q CalendarQuarter) SortableString() string { return fmt.Sprintf("c-%04d-Q%d", q.year, q.quarter) }
func (q CalendarQuarter) String() string         { return q.SortableString() }
func (q CalendarQuarter) ordinal() int           { return q.year*10 + int(q.quarter) }

// FirstMonth returns January, April, July or October of the quarter's year.
func (q CalendarQuarter) FirstMonth() CalendarMonth {
	return CalendarMonth{year: q.year, month: MonthOfYear(int(q.quarter)*3 - 2)}
}

func (q CalendarQuarter) LastMonth() CalendarMonth {
	return CalendarMonth{year: q.year, month: MonthOfYear(int(q.quarter) * 3)}
}

func (q CalendarQuarter) Plus(n int) (CalendarQuarter, error) {
	year, quarter, err := shift(q.year, int(q.quarter), 4, n)
	if err != nil {
		return CalendarQuarter{}, err
	}
	return CalendarQuarter{year: year, quarter: QuarterNumber(quarter)}, nil
}

// =============================================================================
// CALENDAR YEAR
// =============================================================================

type CalendarYear struct {
	year int
}

func NewCalendarYear(year int) (CalendarYear, error) {
	if err := checkYear(year); err != nil {
		return CalendarYear{}, err
	}
	return CalendarYear{year: year}, nil
}

func (y CalendarYear) Year() int { return y.year }

func (CalendarYear) Family() Family           { return FamilyCalendar }
func (CalendarYear) Granularity() Granularity { return GranularityYear }
func (CalendarYear) Kind() Kind               { return KindCalendarYear }
func (CalendarYear) calendarUnit()            {}

func (y CalendarYear) SortableString() string { return fmt.Sprintf("c-%04d", y.year) }
func (y CalendarYear) String() string         { return y.SortableString() }
func (y CalendarYear) ordinal() int           { return y.year }

func (y CalendarYear) FirstDay() CalendarDay {
	return CalendarDay{year: y.year, month: January, day: DayOne}
}

func (y CalendarYear) LastDay() CalendarDay {
	return CalendarDay{year: y.year, month: December, day: DayThirtyOne}
}

func (y CalendarYear) Plus(n int) (CalendarYear, error) {
	if err := checkSteps("years", n, 1); err != nil {
		return CalendarYear{}, err
	}
	return NewCalendarYear(y.year + n)
}

// =============================================================================
// CALENDAR UNBOUNDED
// =============================================================================

// CalendarUnbounded stands for all calendar time. All values are equal.
type CalendarUnbounded struct{}

func (CalendarUnbounded) Family() Family           { return FamilyCalendar }
func (CalendarUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (CalendarUnbounded) Kind() Kind               { return KindCalendarUnbounded }
func (CalendarUnbounded) calendarUnit()            {}
func (CalendarUnbounded) SortableString() string   { return "c-unbounded" }
func (CalendarUnbounded) String() string           { return "c-unbounded" }
func (CalendarUnbounded) ordinal() int             { return 0 }

// =============================================================================
// SHARED ARITHMETIC
// =============================================================================

// shift moves index (1-based, perYear slots per year) by n slots.
func shift(year, index, perYear, n int) (int, int, error) {
	if err := checkSteps("steps", n, perYear); err != nil {
		return 0, 0, err
	}
	total := year*perYear + (index - 1) + n
	newYear := floorDiv(total, perYear)
	if err := checkYear(newYear); err != nil {
		return 0, 0, err
	}
	return newYear, total - newYear*perYear + 1, nil
}

// checkSteps rejects shifts longer than the supported year range before
// any arithmetic can overflow.
func checkSteps(component string, n, perYear int) error {
	limit := (MaxYear - MinYear + 1) * perYear
	if n > limit || n < -limit {
		return outOfRange(component, n)
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
