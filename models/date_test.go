package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTripHasNoTime(t *testing.T) {
	d := NewDate(2025, time.March, 7)
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-07"`, string(out))
}

func TestDate_AcceptsTimestamp(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-07T15:04:05Z"`), &d))
	assert.Equal(t, "2025-03-07", d.String())

	assert.Error(t, json.Unmarshal([]byte(`"07/03/2025"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-02")))
	assert.Equal(t, "2024-01-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestNewPage_TotalPages(t *testing.T) {
	p := NewPage[int](nil, 21, 1, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.Items)

	assert.Equal(t, 0, NewPage([]int{}, 0, 1, 10).TotalPages)

	page, size := NormalizePaging(0, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}
