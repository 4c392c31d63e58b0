package league

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

const (
	minMarkupPercent = 10
	maxMarkupPercent = 100
)

var oneHundred = decimal.NewFromInt(100)

// NextValue returns a player's value after a completed sale: the
// current value increased by a markup percentage drawn uniformly from
// [10, 100]. The result is always within [current, current*2].
func NextValue(current decimal.Decimal) decimal.Decimal {
	markup := int64(minMarkupPercent + rand.Intn(maxMarkupPercent-minMarkupPercent+1))
	return valueWithMarkup(current, markup)
}

// valueWithMarkup computes current * (100 + markup) / 100 in exact
// decimal arithmetic.
func valueWithMarkup(current decimal.Decimal, markup int64) decimal.Decimal {
	return current.Mul(oneHundred.Add(decimal.NewFromInt(markup))).Div(oneHundred)
}
