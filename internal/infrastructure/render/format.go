package render

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RatePercent formats a fractional rate as a percentage, "0.025" as "2.5%".
func RatePercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).String() + "%"
}
