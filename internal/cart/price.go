package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice extracts the numeric amount from a currency-formatted price
// string ("$120.00" -> 120.00) by stripping everything that is not a digit,
// a dot, or a minus sign. Unparseable remains are treated as zero.
func ParsePrice(price string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, price)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
