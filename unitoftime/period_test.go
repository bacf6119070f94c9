package unitoftime_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/unitoftime"
)

func mustDecode(t *testing.T, s string) unitoftime.UnitOfTime {
	t.Helper()
	u, err := unitoftime.DecodeAs(s, unitoftime.TargetUnitOfTime)
	require.NoError(t, err)
	return u
}

func TestReportingPeriod_BoundedContains(t *testing.T) {
	// GIVEN: calendar Q1 2017 expressed in months
	period, err := unitoftime.NewReportingPeriod(mustDecode(t, "c-2017-01"), mustDecode(t, "c-2017-03"))
	require.NoError(t, err)
	assert.Equal(t, unitoftime.GranularityMonth, period.Granularity())
	assert.Equal(t, unitoftime.FamilyCalendar, period.Family())

	cases := []struct {
		unit string
		want bool
	}{
		{"c-2017-01-01", true},
		{"c-2017-03-31", true},
		{"c-2017-02", true},
		{"c-2016-12-31", false},
		{"c-2017-04-01", false},
	}
	for _, tc := range cases {
		got, err := period.Contains(mustDecode(t, tc.unit))
		require.NoError(t, err, tc.unit)
		assert.Equal(t, tc.want, got, tc.unit)
	}

	// A coarser unit cannot be placed inside a monthly period.
	_, err = period.Contains(mustDecode(t, "c-2017-Q1"))
	assert.ErrorIs(t, err, unitoftime.ErrGranularityMismatch)

	// Nor can another family.
	_, err = period.Contains(mustDecode(t, "f-2017-01"))
	assert.ErrorIs(t, err, unitoftime.ErrKindMismatch)
}

func TestReportingPeriod_OpenEnds(t *testing.T) {
	onwards, err := unitoftime.NewReportingPeriod(mustDecode(t, "f-2016"), unitoftime.FiscalUnbounded{})
	require.NoError(t, err)
	assert.Equal(t, unitoftime.GranularityYear, onwards.Granularity())

	in, err := onwards.Contains(mustDecode(t, "f-2040-Q2"))
	require.NoError(t, err)
	assert.True(t, in)

	in, err = onwards.Contains(mustDecode(t, "f-2015-12"))
	require.NoError(t, err)
	assert.False(t, in)

	_, err = onwards.Units()
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)

	everything, err := unitoftime.NewReportingPeriod(unitoftime.GenericUnbounded{}, unitoftime.GenericUnbounded{})
	require.NoError(t, err)
	assert.Equal(t, unitoftime.GranularityUnbounded, everything.Granularity())
	in, err = everything.Contains(mustDecode(t, "g-0001-01"))
	require.NoError(t, err)
	assert.True(t, in)
}

func TestReportingPeriod_Validation(t *testing.T) {
	_, err := unitoftime.NewReportingPeriod(mustDecode(t, "c-2017-03"), mustDecode(t, "c-2017-01"))
	assert.ErrorIs(t, err, unitoftime.ErrInvalidPeriod)

	_, err = unitoftime.NewReportingPeriod(mustDecode(t, "c-2017-01"), mustDecode(t, "c-2017"))
	assert.ErrorIs(t, err, unitoftime.ErrKindMismatch)

	_, err = unitoftime.NewReportingPeriod(mustDecode(t, "c-2017"), mustDecode(t, "f-2017"))
	assert.ErrorIs(t, err, unitoftime.ErrKindMismatch)

	_, err = unitoftime.NewReportingPeriod(nil, mustDecode(t, "f-2017"))
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}

func TestReportingPeriod_ZeroValue(t *testing.T) {
	var zero unitoftime.ReportingPeriod

	assert.True(t, zero.IsZero())
	assert.Equal(t, unitoftime.FamilyInvalid, zero.Family())
	assert.Equal(t, unitoftime.GranularityInvalid, zero.Granularity())
	assert.Equal(t, "", zero.SortableString())

	_, err := zero.Contains(mustDecode(t, "c-2017-01"))
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
	_, err = zero.Units()
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
	_, err = zero.MarshalText()
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}

func TestReportingPeriod_Units(t *testing.T) {
	period, err := unitoftime.NewReportingPeriod(mustDecode(t, "g-2016-Q3"), mustDecode(t, "g-2017-Q2"))
	require.NoError(t, err)

	units, err := period.Units()
	require.NoError(t, err)

	keys := make([]string, len(units))
	for i, u := range units {
		keys[i] = unitoftime.Encode(u)
	}
	assert.Equal(t, []string{"g-2016-Q3", "g-2016-Q4", "g-2017-Q1", "g-2017-Q2"}, keys)
}

func TestReportingPeriod_TextRoundTrip(t *testing.T) {
	period, err := unitoftime.ParseReportingPeriod("c-2017-01-01,c-unbounded")
	require.NoError(t, err)
	assert.Equal(t, "c-2017-01-01,c-unbounded", period.SortableString())
	assert.Equal(t, "[c-2017-01-01, c-unbounded]", period.String())

	payload, err := json.Marshal(struct {
		Period unitoftime.ReportingPeriod `json:"period"`
	}{period})
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"c-2017-01-01,c-unbounded"}`, string(payload))

	var back struct {
		Period unitoftime.ReportingPeriod `json:"period"`
	}
	require.NoError(t, json.Unmarshal(payload, &back))
	assert.Equal(t, period, back.Period)

	_, err = unitoftime.ParseReportingPeriod("c-2017-01")
	assert.ErrorIs(t, err, unitoftime.ErrMalformed)

	_, err = unitoftime.ParseReportingPeriod(" ")
	assert.ErrorIs(t, err, unitoftime.ErrBlankInput)
}
