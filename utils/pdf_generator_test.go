package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shippingerp/models"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "1,274,050", money(decimal.NewFromInt(1274050)))
	assert.Equal(t, "930", money(decimal.NewFromInt(930)))
	assert.Equal(t, "-1,000.50", money(decimal.NewFromFloat(-1000.5)))
	assert.Equal(t, "12.25", money(decimal.NewFromFloat(12.25)))
	assert.Equal(t, "0", money(decimal.Zero))
}

func TestRenderRoRoStatement(t *testing.T) {
	small, buy, sell := int64(10), int64(2), int64(1000)
	rate := 1300.0
	bk := "BK<1>"
	model := "K5"
	el := true
	eta := models.NewDate(2025, time.May, 2)

	html, err := RenderRoRoStatement(&models.ProgressRoRo{
		ID:         3,
		ProgressID: 8,
		BKNo:       &bk,
		Line:       []string{"MSC", "HMM"},
		ETA:        &eta,
		RoRoCosts:  models.RoRoCosts{Small: &small, BuySmall: &buy, Sell: &sell, Rate: &rate},
		ProfitUSD:  930,
		ProfitKRW:  1274050,
		Creator:    &models.UserOut{Username: "staff1"},
		Details:    []models.ProgressRoRoDetail{{ID: 1, Model: &model, EL: &el}},
	}, time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "RoRo Statement #3")
	assert.Contains(t, out, "BK&lt;1&gt;")
	assert.Contains(t, out, "MSC, HMM")
	assert.Contains(t, out, "2025-05-02")
	assert.Contains(t, out, "Profit: USD 930 / KRW 1,274,050")
	assert.Contains(t, out, "Nine Hundred Thirty Dollars Only")
	assert.Contains(t, out, "<td>K5</td>")
	assert.Contains(t, out, "01-May-2025 09:30")
	assert.Contains(t, out, "by staff1")
}
