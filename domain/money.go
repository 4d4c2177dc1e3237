package domain

import "github.com/shopspring/decimal"

func init() {
	// The desktop shell reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// Percent returns value × pct/100.
func Percent(value decimal.Decimal, pct int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)
}
