package unitoftime_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/unitoftime"
)

func TestCompare_SameKind(t *testing.T) {
	a, err := unitoftime.Decode[unitoftime.FiscalQuarter]("f-2016-Q4")
	require.NoError(t, err)
	b, err := unitoftime.Decode[unitoftime.FiscalQuarter]("f-2017-Q1")
	require.NoError(t, err)

	c, err := unitoftime.Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = unitoftime.Compare(b, a)
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = unitoftime.Compare(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	assert.True(t, unitoftime.Before(a, b))
	assert.False(t, unitoftime.Before(b, a))
}

func TestCompare_DifferentKindsRejected(t *testing.T) {
	month, err := unitoftime.Decode[unitoftime.UnitOfTime]("c-2017-01")
	require.NoError(t, err)
	fiscal, err := unitoftime.Decode[unitoftime.UnitOfTime]("f-2017-01")
	require.NoError(t, err)

	_, err = unitoftime.Compare(month, fiscal)
	assert.ErrorIs(t, err, unitoftime.ErrKindMismatch)
	assert.False(t, unitoftime.Before(month, fiscal))

	_, err = unitoftime.Compare(month, nil)
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}

func TestCoarsen_WalksUpTheHierarchy(t *testing.T) {
	day, err := unitoftime.Decode[unitoftime.UnitOfTime]("c-2017-08-15")
	require.NoError(t, err)

	cases := []struct {
		g    unitoftime.Granularity
		want string
	}{
		{unitoftime.GranularityDay, "c-2017-08-15"},
		{unitoftime.GranularityMonth, "c-2017-08"},
		{unitoftime.GranularityQuarter, "c-2017-Q3"},
		{unitoftime.GranularityYear, "c-2017"},
		{unitoftime.GranularityUnbounded, "c-unbounded"},
	}
	for _, tc := range cases {
		got, err := unitoftime.Coarsen(day, tc.g)
		require.NoError(t, err, tc.g.String())
		assert.Equal(t, tc.want, unitoftime.Encode(got))
	}

	month, err := unitoftime.Decode[unitoftime.UnitOfTime]("g-2017-11")
	require.NoError(t, err)
	quarter, err := unitoftime.Coarsen(month, unitoftime.GranularityQuarter)
	require.NoError(t, err)
	assert.Equal(t, "g-2017-Q4", unitoftime.Encode(quarter))
}

func TestCoarsen_FinerGranularityRejected(t *testing.T) {
	quarter, err := unitoftime.Decode[unitoftime.UnitOfTime]("f-2017-Q2")
	require.NoError(t, err)

	_, err = unitoftime.Coarsen(quarter, unitoftime.GranularityMonth)
	assert.ErrorIs(t, err, unitoftime.ErrGranularityMismatch)

	_, err = unitoftime.Coarsen(quarter, unitoftime.GranularityInvalid)
	assert.ErrorIs(t, err, unitoftime.ErrInvalidGranularity)
}

func TestPlus_ShiftsAcrossYearBoundaries(t *testing.T) {
	cases := []struct {
		from string
		n    int
		want string
	}{
		{"c-2016-12-31", 1, "c-2017-01-01"},
		{"c-2016-03-01", -1, "c-2016-02-29"},
		{"c-2017-11", 3, "c-2018-02"},
		{"c-2017-01", -1, "c-2016-12"},
		{"f-2017-Q4", 1, "f-2018-Q1"},
		{"g-2017-Q1", -5, "g-2015-Q4"},
		{"c-2017", 10, "c-2027"},
		{"g-2017-06", 0, "g-2017-06"},
	}
	for _, tc := range cases {
		t.Run(tc.from, func(t *testing.T) {
			u, err := unitoftime.Decode[unitoftime.UnitOfTime](tc.from)
			require.NoError(t, err)
			got, err := unitoftime.Plus(u, tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, unitoftime.Encode(got))
		})
	}
}

func TestPlus_RangeAndUnbounded(t *testing.T) {
	last, err := unitoftime.Decode[unitoftime.UnitOfTime]("c-9999-12-31")
	require.NoError(t, err)
	_, err = unitoftime.Plus(last, 1)
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)

	first, err := unitoftime.Decode[unitoftime.UnitOfTime]("f-0001-01")
	require.NoError(t, err)
	_, err = unitoftime.Plus(first, -1)
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)

	_, err = unitoftime.Plus(unitoftime.CalendarUnbounded{}, 1)
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)

	// Shifts too long for any supported date fail instead of wrapping.
	for _, key := range []string{"c-2017-01-01", "c-2017-01", "c-2017-Q1", "c-2017", "f-2017-07", "f-2017-Q3", "f-2017", "g-2017-01", "g-2017-Q1", "g-2017"} {
		u, err := unitoftime.Decode[unitoftime.UnitOfTime](key)
		require.NoError(t, err)
		for _, n := range []int{math.MaxInt - 10, math.MinInt + 10, 10000 * 366} {
			_, err = unitoftime.Plus(u, n)
			assert.ErrorIs(t, err, unitoftime.ErrOutOfRange, "%s%+d", key, n)
		}
	}

	_, err = unitoftime.Plus(nil, 1)
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}

func TestCalendar_Oracle(t *testing.T) {
	assert.True(t, unitoftime.IsValidDate(2016, unitoftime.February, unitoftime.DayTwentyNine))
	assert.False(t, unitoftime.IsValidDate(2015, unitoftime.February, unitoftime.DayTwentyNine))
	assert.False(t, unitoftime.IsValidDate(1900, unitoftime.February, unitoftime.DayTwentyNine))
	assert.True(t, unitoftime.IsValidDate(2000, unitoftime.February, unitoftime.DayTwentyNine))
	assert.False(t, unitoftime.IsValidDate(2007, unitoftime.November, unitoftime.DayThirtyOne))
	assert.False(t, unitoftime.IsValidDate(0, unitoftime.January, unitoftime.DayOne))

	assert.Equal(t, 29, unitoftime.DaysInMonth(2016, unitoftime.February))
	assert.Equal(t, 28, unitoftime.DaysInMonth(2017, unitoftime.February))
	assert.Equal(t, 31, unitoftime.DaysInMonth(2017, unitoftime.December))
	assert.Equal(t, 30, unitoftime.DaysInMonth(2017, unitoftime.April))
}

func TestCalendar_Bounds(t *testing.T) {
	q, err := unitoftime.NewCalendarQuarter(2017, unitoftime.Q2)
	require.NoError(t, err)
	assert.Equal(t, "c-2017-04", q.FirstMonth().SortableString())
	assert.Equal(t, "c-2017-06", q.LastMonth().SortableString())

	m, err := unitoftime.NewCalendarMonth(2016, unitoftime.February)
	require.NoError(t, err)
	assert.Equal(t, "c-2016-02-01", m.FirstDay().SortableString())
	assert.Equal(t, "c-2016-02-29", m.LastDay().SortableString())

	y, err := unitoftime.NewCalendarYear(2017)
	require.NoError(t, err)
	assert.Equal(t, "c-2017-12-31", y.LastDay().SortableString())
}

func TestCalendarDay_TimeConversion(t *testing.T) {
	day, err := unitoftime.CalendarDayFromTime(time.Date(2017, time.March, 5, 23, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "c-2017-03-05", day.SortableString())
	assert.Equal(t, time.Date(2017, time.March, 5, 0, 0, 0, 0, time.UTC), day.Time())
}
