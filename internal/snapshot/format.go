package snapshot

import "github.com/shopspring/decimal"

// FormatAmount renders an amount in reais with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}
