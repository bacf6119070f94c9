package unitoftime_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/accounting-time/unitoftime"
)

func TestUnit_JSON(t *testing.T) {
	type row struct {
		Unit unitoftime.Unit `json:"unit"`
	}

	for _, u := range oneOfEach(t) {
		payload, err := json.Marshal(row{Unit: unitoftime.Unit{UnitOfTime: u}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"unit":"`+unitoftime.Encode(u)+`"}`, string(payload))

		var back row
		require.NoError(t, json.Unmarshal(payload, &back))
		assert.Equal(t, u, back.Unit.UnitOfTime)
	}

	var bad row
	err := json.Unmarshal([]byte(`{"unit":"c-2015-02-29"}`), &bad)
	assert.ErrorIs(t, err, unitoftime.ErrMalformed)
}

func TestConcreteTypes_JSONRejectOtherKinds(t *testing.T) {
	var quarter struct {
		Q unitoftime.FiscalQuarter `json:"q"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"q":"f-2017-Q3"}`), &quarter))
	assert.Equal(t, unitoftime.Q3, quarter.Q.Quarter())

	err := json.Unmarshal([]byte(`{"q":"c-2017-Q3"}`), &quarter)
	assert.ErrorIs(t, err, unitoftime.ErrTypeMismatch)

	payload, err := json.Marshal(quarter.Q)
	require.NoError(t, err)
	assert.Equal(t, `"f-2017-Q3"`, string(payload))
}

func TestUnit_SQLScanAndValue(t *testing.T) {
	var u unitoftime.Unit
	require.NoError(t, u.Scan("g-2017-Q1"))
	assert.Equal(t, unitoftime.KindGenericQuarter, u.Kind())

	require.NoError(t, u.Scan([]byte("c-2017-01-09")))
	assert.Equal(t, unitoftime.KindCalendarDay, u.Kind())

	v, err := u.Value()
	require.NoError(t, err)
	assert.Equal(t, "c-2017-01-09", v)

	assert.ErrorIs(t, u.Scan(nil), unitoftime.ErrNullInput)
	assert.ErrorIs(t, u.Scan(42), unitoftime.ErrInvalidArgument)

	_, err = unitoftime.Unit{}.Value()
	assert.ErrorIs(t, err, unitoftime.ErrNullInput)
}
