package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"shippingerp/models"
)

func intOr0(v *int64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(*v)
}

func floatOr0(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// ComputeProfit derives PROFIT_USD and PROFIT_KRW from the cost columns of a
// RoRo line. Missing values count as zero. A zero RATE drops the converted KRW
// charges from the USD profit; a negative RATE is rejected.
func ComputeProfit(c models.RoRoCosts) (float64, float64, error) {
	rate := floatOr0(c.Rate)
	if rate.IsNegative() {
		return 0, 0, fmt.Errorf("%w: RATE must not be negative", ErrValidation)
	}

	usdCost := intOr0(c.Small).Mul(intOr0(c.BuySmall)).
		Add(intOr0(c.SSUV).Mul(intOr0(c.BuySSUV))).
		Add(intOr0(c.SUV).Mul(intOr0(c.BuySUV))).
		Add(intOr0(c.RVCargo).Mul(intOr0(c.BuyRVCargo))).
		Add(intOr0(c.Special).Mul(intOr0(c.BuySpecial))).
		Add(floatOr0(c.CBM).Mul(floatOr0(c.BuyCBM)))

	otherKRW := intOr0(c.HC).
		Add(intOr0(c.WFG)).
		Add(intOr0(c.Security)).
		Add(intOr0(c.Carrier)).
		Add(intOr0(c.PartnerFee).Mul(rate))

	margin := intOr0(c.Sell).Sub(usdCost)
	other := intOr0(c.Other)

	usd := margin.Sub(other)
	if !rate.IsZero() {
		usd = usd.Add(otherKRW.Div(rate).Floor())
	}
	krw := margin.Mul(rate).Add(otherKRW).Add(other)

	return usd.InexactFloat64(), krw.InexactFloat64(), nil
}
