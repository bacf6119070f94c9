package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/factory"
	"github.com/warp/accounting-time/unitoftime"
)

func TestUnitFactory_ParseUnit(t *testing.T) {
	f := factory.NewUnitFactory()

	cases := []struct {
		json string
		want string
	}{
		{`{"family":"calendar","granularity":"day","year":2017,"month":1,"day":3}`, "c-2017-01-03"},
		{`{"family":"c","granularity":"month","year":2017,"month":1}`, "c-2017-01"},
		{`{"family":"fiscal","granularity":"quarter","year":2017,"quarter":3}`, "f-2017-Q3"},
		{`{"family":"g","granularity":"year","year":7}`, "g-0007"},
		{`{"family":"generic","granularity":"unbounded"}`, "g-unbounded"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			u, err := f.ParseUnit(tc.json)
			require.NoError(t, err)
			assert.Equal(t, tc.want, unitoftime.Encode(u))
		})
	}
}

func TestUnitFactory_RejectsBadComponents(t *testing.T) {
	f := factory.NewUnitFactory()

	cases := map[string]factory.UnitJSON{
		"leap day":            {Family: "calendar", Granularity: "day", Year: 2015, Month: 2, Day: 29},
		"fiscal day":          {Family: "fiscal", Granularity: "day", Year: 2015, Month: 2, Day: 1},
		"month thirteen":      {Family: "generic", Granularity: "month", Year: 2015, Month: 13},
		"quarter five":        {Family: "calendar", Granularity: "quarter", Year: 2015, Quarter: 5},
		"year zero":           {Family: "fiscal", Granularity: "year"},
		"unused month":        {Family: "calendar", Granularity: "year", Year: 2017, Month: 3},
		"unbounded year":      {Family: "calendar", Granularity: "unbounded", Year: 2017},
		"unknown family":      {Family: "lunar", Granularity: "year", Year: 2017},
		"unknown granularity": {Family: "calendar", Granularity: "week", Year: 2017},
	}

	for name, uj := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.FromJSON(uj)
			assert.ErrorIs(t, err, unitoftime.ErrInvalidArgument)
		})
	}

	_, err := f.ParseUnit(`{"family":`)
	assert.Error(t, err)
}

func TestUnitFactory_ToJSONRoundTrip(t *testing.T) {
	f := factory.NewUnitFactory()

	for _, key := range []string{"c-2017-01-03", "c-2017-11", "f-2017-Q3", "g-2017", "f-unbounded"} {
		u, err := unitoftime.DecodeAs(key, unitoftime.TargetUnitOfTime)
		require.NoError(t, err)

		back, err := f.FromJSON(f.ToJSON(u))
		require.NoError(t, err)
		assert.Equal(t, u, back, key)
	}
}

func TestUnitFactory_PeriodFromJSON(t *testing.T) {
	f := factory.NewUnitFactory()

	period, err := f.PeriodFromJSON(factory.PeriodJSON{
		Start: factory.UnitJSON{Family: "fiscal", Granularity: "month", Year: 2017, Month: 1},
		End:   factory.UnitJSON{Family: "fiscal", Granularity: "unbounded"},
	})
	require.NoError(t, err)
	assert.Equal(t, "f-2017-01,f-unbounded", period.SortableString())

	_, err = f.PeriodFromJSON(factory.PeriodJSON{
		Start: factory.UnitJSON{Family: "fiscal", Granularity: "year", Year: 2018},
		End:   factory.UnitJSON{Family: "fiscal", Granularity: "year", Year: 2017},
	})
	assert.ErrorIs(t, err, unitoftime.ErrInvalidPeriod)
}
