package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_UnmarshalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p ProgressRoRoPayload
	require.NoError(t, json.Unmarshal([]byte(`{"SELL": 1000, "OTHER": null, "LINE": ["MSC", "HMM"]}`), &p))

	assert.True(t, p.Sell.Set)
	assert.True(t, p.Sell.Valid)
	assert.Equal(t, int64(1000), p.Sell.Value)

	assert.True(t, p.Other.Set)
	assert.False(t, p.Other.Valid)

	assert.False(t, p.Rate.Set)
	assert.False(t, p.Details.Set)
	assert.Equal(t, []string{"MSC", "HMM"}, p.Line.Value)
}

func TestField_ProfitKeysAreIgnored(t *testing.T) {
	var p ProgressRoRoPayload
	require.NoError(t, json.Unmarshal([]byte(`{"PROFIT_USD": 99999, "PROFIT_KRW": 1}`), &p))

	r := ProgressRoRo{ProfitUSD: 5, ProfitKRW: 6}
	p.ApplyTo(&r)
	assert.Equal(t, 5.0, r.ProfitUSD)
	assert.Equal(t, 6.0, r.ProfitKRW)
}

func TestPayload_ApplyToMergesOnlyPresentFields(t *testing.T) {
	sell := int64(500)
	rate := 1300.0
	shipper := "KOR Motors"
	r := ProgressRoRo{
		Shipper:   &shipper,
		Line:      []string{"MSC"},
		RoRoCosts: RoRoCosts{Sell: &sell, Rate: &rate},
	}

	var p ProgressRoRoPayload
	require.NoError(t, json.Unmarshal([]byte(`{"SMALL": 3, "SHIPPER": null, "LINE": null}`), &p))
	p.ApplyTo(&r)

	require.NotNil(t, r.Sell)
	assert.Equal(t, int64(500), *r.Sell)
	require.NotNil(t, r.Rate)
	assert.Equal(t, 1300.0, *r.Rate)
	require.NotNil(t, r.Small)
	assert.Equal(t, int64(3), *r.Small)
	assert.Nil(t, r.Shipper)
	assert.Nil(t, r.Line)
}

func TestDetailPayload_HasID(t *testing.T) {
	var rows []ProgressRoRoDetailPayload
	require.NoError(t, json.Unmarshal([]byte(`[{"id": 4, "MODEL": "K5"}, {"id": null}, {"id": 0}, {}]`), &rows))

	require.Len(t, rows, 4)
	assert.True(t, rows[0].HasID())
	assert.False(t, rows[1].HasID())
	assert.False(t, rows[2].HasID())
	assert.False(t, rows[3].HasID())

	d := ProgressRoRoDetail{ID: 4}
	rows[0].ApplyTo(&d)
	require.NotNil(t, d.Model)
	assert.Equal(t, "K5", *d.Model)
	assert.Nil(t, d.ChassisNo)
}

func TestPayload_DetailRows(t *testing.T) {
	var absent, null, empty ProgressRoRoPayload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"progress_detail_roro_detail": null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"progress_detail_roro_detail": []}`), &empty))

	assert.False(t, absent.Details.Set)
	assert.True(t, null.Details.Set)
	assert.True(t, empty.Details.Set)
	assert.Empty(t, null.DetailRows())
	assert.Empty(t, empty.DetailRows())
}
