package unitoftime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/unitoftime"
)

func TestDecode_RecoversCompatibleTypes(t *testing.T) {
	const key = "c-2001-01-09"

	day, err := unitoftime.Decode[unitoftime.CalendarDay](key)
	require.NoError(t, err)
	assert.Equal(t, 2001, day.Year())
	assert.Equal(t, unitoftime.January, day.Month())
	assert.Equal(t, unitoftime.DayNine, day.Day())

	cal, err := unitoftime.Decode[unitoftime.CalendarUnitOfTime](key)
	require.NoError(t, err)
	assert.Equal(t, day, cal)

	root, err := unitoftime.Decode[unitoftime.UnitOfTime](key)
	require.NoError(t, err)
	assert.Equal(t, day, root)
}

func TestDecode_IncompatibleTypesMismatch(t *testing.T) {
	const key = "c-2001-01-09"

	_, err := unitoftime.Decode[unitoftime.CalendarMonth](key)
	assert.ErrorIs(t, err, unitoftime.ErrTypeMismatch)
	assert.ErrorIs(t, err, unitoftime.ErrInvalidOperation)

	_, err = unitoftime.Decode[unitoftime.FiscalUnitOfTime](key)
	assert.ErrorIs(t, err, unitoftime.ErrTypeMismatch)

	var de *unitoftime.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, unitoftime.KindCalendarDay, de.Kind)
	assert.Equal(t, unitoftime.TargetFiscalUnitOfTime, de.Target)
	assert.Contains(t, de.Error(), "CalendarDay")
}

func TestDecode_MalformedBeatsMismatch(t *testing.T) {
	// A malformed string reports malformed whatever type was requested.
	_, err := unitoftime.Decode[unitoftime.FiscalMonth]("c-2007-13-11")
	assert.ErrorIs(t, err, unitoftime.ErrMalformed)
	assert.NotErrorIs(t, err, unitoftime.ErrTypeMismatch)
}

var allTargets = []unitoftime.Target{
	unitoftime.TargetUnitOfTime,
	unitoftime.TargetCalendarUnitOfTime,
	unitoftime.TargetFiscalUnitOfTime,
	unitoftime.TargetGenericUnitOfTime,
	unitoftime.TargetCalendarDay,
	unitoftime.TargetCalendarMonth,
	unitoftime.TargetCalendarQuarter,
	unitoftime.TargetCalendarYear,
	unitoftime.TargetCalendarUnbounded,
	unitoftime.TargetFiscalMonth,
	unitoftime.TargetFiscalQuarter,
	unitoftime.TargetFiscalYear,
	unitoftime.TargetFiscalUnbounded,
	unitoftime.TargetGenericMonth,
	unitoftime.TargetGenericQuarter,
	unitoftime.TargetGenericYear,
	unitoftime.TargetGenericUnbounded,
}

// expectAccepts spells the compatibility table out independently of
// Target.Accepts.
func expectAccepts(target unitoftime.Target, k unitoftime.Kind) bool {
	switch target {
	case unitoftime.TargetUnitOfTime:
		return true
	case unitoftime.TargetCalendarUnitOfTime:
		return k.Family() == unitoftime.FamilyCalendar
	case unitoftime.TargetFiscalUnitOfTime:
		return k.Family() == unitoftime.FamilyFiscal
	case unitoftime.TargetGenericUnitOfTime:
		return k.Family() == unitoftime.FamilyGeneric
	default:
		return unitoftime.TargetOf(k) == target
	}
}

func TestDecodeAs_CompatibilityMatrix(t *testing.T) {
	for _, u := range oneOfEach(t) {
		key := unitoftime.Encode(u)
		for _, target := range allTargets {
			got, err := unitoftime.DecodeAs(key, target)
			if expectAccepts(target, u.Kind()) {
				require.NoError(t, err, "%s as %s", key, target)
				assert.Equal(t, u, got)
			} else {
				assert.ErrorIs(t, err, unitoftime.ErrTypeMismatch, "%s as %s", key, target)
				assert.Nil(t, got)
			}
		}
	}
}

func TestDecode_GenericAgreesWithTargets(t *testing.T) {
	type decoder struct {
		target unitoftime.Target
		decode func(string) error
	}
	decoders := []decoder{
		{unitoftime.TargetUnitOfTime, func(s string) error { _, err := unitoftime.Decode[unitoftime.UnitOfTime](s); return err }},
		{unitoftime.TargetCalendarUnitOfTime, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarUnitOfTime](s); return err }},
		{unitoftime.TargetFiscalUnitOfTime, func(s string) error { _, err := unitoftime.Decode[unitoftime.FiscalUnitOfTime](s); return err }},
		{unitoftime.TargetGenericUnitOfTime, func(s string) error { _, err := unitoftime.Decode[unitoftime.GenericUnitOfTime](s); return err }},
		{unitoftime.TargetCalendarDay, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarDay](s); return err }},
		{unitoftime.TargetCalendarMonth, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarMonth](s); return err }},
		{unitoftime.TargetCalendarQuarter, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarQuarter](s); return err }},
		{unitoftime.TargetCalendarYear, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarYear](s); return err }},
		{unitoftime.TargetCalendarUnbounded, func(s string) error { _, err := unitoftime.Decode[unitoftime.CalendarUnbounded](s); return err }},
		{unitoftime.TargetFiscalMonth, func(s string) error { _, err := unitoftime.Decode[unitoftime.FiscalMonth](s); return err }},
		{unitoftime.TargetFiscalQuarter, func(s string) error { _, err := unitoftime.Decode[unitoftime.FiscalQuarter](s); return err }},
		{unitoftime.TargetFiscalYear, func(s string) error { _, err := unitoftime.Decode[unitoftime.FiscalYear](s); return err }},
		{unitoftime.TargetFiscalUnbounded, func(s string) error { _, err := unitoftime.Decode[unitoftime.FiscalUnbounded](s); return err }},
		{unitoftime.TargetGenericMonth, func(s string) error { _, err := unitoftime.Decode[unitoftime.GenericMonth](s); return err }},
		{unitoftime.TargetGenericQuarter, func(s string) error { _, err := unitoftime.Decode[unitoftime.GenericQuarter](s); return err }},
		{unitoftime.TargetGenericYear, func(s string) error { _, err := unitoftime.Decode[unitoftime.GenericYear](s); return err }},
		{unitoftime.TargetGenericUnbounded, func(s string) error { _, err := unitoftime.Decode[unitoftime.GenericUnbounded](s); return err }},
	}
	require.Len(t, decoders, len(allTargets))

	for _, u := range oneOfEach(t) {
		key := unitoftime.Encode(u)
		for _, d := range decoders {
			_, viaTarget := unitoftime.DecodeAs(key, d.target)
			viaType := d.decode(key)
			assert.Equal(t, viaTarget == nil, viaType == nil, "%s as %s", key, d.target)
		}
	}
}

func TestResolve_NullUnit(t *testing.T) {
	_, err := unitoftime.Resolve(nil, unitoftime.TargetUnitOfTime)
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}

func TestParseTarget(t *testing.T) {
	target, err := unitoftime.ParseTarget("calendarunitoftime")
	require.NoError(t, err)
	assert.Equal(t, unitoftime.TargetCalendarUnitOfTime, target)

	target, err = unitoftime.ParseTarget("FiscalQuarter")
	require.NoError(t, err)
	assert.Equal(t, unitoftime.TargetFiscalQuarter, target)

	_, err = unitoftime.ParseTarget("Invalid")
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)

	_, err = unitoftime.ParseTarget("Week")
	assert.ErrorIs(t, err, unitoftime.ErrOutOfRange)
}

func TestKindOf(t *testing.T) {
	k, ok := unitoftime.KindOf(unitoftime.FamilyFiscal, unitoftime.GranularityQuarter)
	require.True(t, ok)
	assert.Equal(t, unitoftime.KindFiscalQuarter, k)

	_, ok = unitoftime.KindOf(unitoftime.FamilyGeneric, unitoftime.GranularityDay)
	assert.False(t, ok)

	for _, u := range oneOfEach(t) {
		k, ok := unitoftime.KindOf(u.Family(), u.Granularity())
		require.True(t, ok)
		assert.Equal(t, u.Kind(), k)
	}
}
