package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shippingerp/models"
)

func i64(v int64) *int64 { return &v }
func f64(v float64) *float64 { return &v }
func str(v string) *string { return &v }

func TestComputeProfit_Example(t *testing.T) {
	usd, krw, err := ComputeProfit(models.RoRoCosts{
		Small:    i64(10),
		BuySmall: i64(2),
		Sell:     i64(1000),
		Rate:     f64(1300),
		Other:    i64(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 930.0, usd)
	assert.Equal(t, 1274050.0, krw)
}

func TestComputeProfit_AllZero(t *testing.T) {
	usd, krw, err := ComputeProfit(models.RoRoCosts{})
	require.NoError(t, err)
	assert.Zero(t, usd)
	assert.Zero(t, krw)

	usd, krw, err = ComputeProfit(models.RoRoCosts{Rate: f64(0), HC: i64(0), CBM: f64(0)})
	require.NoError(t, err)
	assert.Zero(t, usd)
	assert.Zero(t, krw)
}

func TestComputeProfit_KRWChargesAreFlooredIntoUSD(t *testing.T) {
	c := models.RoRoCosts{
		SUV:        i64(2),
		BuySUV:     i64(300),
		CBM:        f64(12.5),
		BuyCBM:     f64(4),
		Sell:       i64(2000),
		HC:         i64(100000),
		WFG:        i64(30000),
		Security:   i64(0),
		Carrier:    i64(20000),
		PartnerFee: i64(10),
		Rate:       f64(1350),
	}
	// usd_cost = 600 + 50 = 650, other_krw = 150000 + 13500 = 163500
	// floor(163500 / 1350) = 121
	usd, krw, err := ComputeProfit(c)
	require.NoError(t, err)
	assert.Equal(t, 1350.0+121.0, usd)
	assert.Equal(t, 1350.0*1350.0+163500.0, krw)

	usd2, krw2, err := ComputeProfit(c)
	require.NoError(t, err)
	assert.Equal(t, usd, usd2)
	assert.Equal(t, krw, krw2)
}

func TestComputeProfit_ZeroRateSkipsConversion(t *testing.T) {
	usd, krw, err := ComputeProfit(models.RoRoCosts{Sell: i64(100), HC: i64(5000)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, usd)
	assert.Equal(t, 5000.0, krw)
}

func TestComputeProfit_NegativeRate(t *testing.T) {
	_, _, err := ComputeProfit(models.RoRoCosts{Rate: f64(-1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
