package cgd

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads a Portuguese-formatted amount ("1.234,56", "-588,74").
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(".", "", ",", ".", " ", "").Replace(s)

	return decimal.NewFromString(clean)
}
