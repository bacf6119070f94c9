package unitoftime

import (
	"time"

	"github.com/rickb777/date/v2"
)

// =============================================================================
// COMPONENTS
// =============================================================================

const (
	MinYear = 1
	MaxYear = 9999
)

// MonthOfYear is a named calendar month.
type MonthOfYear int

const (
	January MonthOfYear = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

func (m MonthOfYear) Valid() bool      { return m >= January && m <= December }
func (m MonthOfYear) Time() time.Month { return time.Month(m) }
func (m MonthOfYear) String() string   { return time.Month(m).String() }

// DayOfMonth is a named day of a calendar month.
type DayOfMonth int

const (
	DayOne DayOfMonth = iota + 1
	DayTwo
	DayThree
	DayFour
	DayFive
	DaySix
	DaySeven
	DayEight
	DayNine
	DayTen
	DayEleven
	DayTwelve
	DayThirteen
	DayFourteen
	DayFifteen
	DaySixteen
	DaySeventeen
	DayEighteen
	DayNineteen
	DayTwenty
	DayTwentyOne
	DayTwentyTwo
	DayTwentyThree
	DayTwentyFour
	DayTwentyFive
	DayTwentySix
	DayTwentySeven
	DayTwentyEight
	DayTwentyNine
	DayThirty
	DayThirtyOne
)

func (d DayOfMonth) Valid() bool { return d >= DayOne && d <= DayThirtyOne }

// QuarterNumber is a quarter of a year, Q1 to Q4.
type QuarterNumber int

const (
	Q1 QuarterNumber = iota + 1
	Q2
	Q3
	Q4
)

func (q QuarterNumber) Valid() bool { return q >= Q1 && q <= Q4 }

// MonthNumber is the ordinal month of a fiscal or generic year. Month 1 is
// the first month of that year, not necessarily January.
type MonthNumber int

func (m MonthNumber) Valid() bool { return m >= 1 && m <= 12 }

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return outOfRange("year", year)
	}
	return nil
}

// =============================================================================
// CALENDAR ORACLE
// =============================================================================

// IsValidDate reports whether (year, month, day) names a real Gregorian date
// within the supported year range.
func IsValidDate(year int, month MonthOfYear, day DayOfMonth) bool {
	if checkYear(year) != nil || !month.Valid() || !day.Valid() {
		return false
	}
	// date.New normalises overflowing days into the next month.
	d := date.New(year, month.Time(), int(day))
	return d.Year() == year && d.Month() == month.Time() && d.Day() == int(day)
}

// DaysInMonth returns the number of days of a calendar month.
func DaysInMonth(year int, month MonthOfYear) int {
	// Day zero of the following month is the last day of this one.
	return date.New(year, month.Time()+1, 0).Day()
}

func quarterOfMonth(month int) QuarterNumber {
	return QuarterNumber((month-1)/3 + 1)
}
