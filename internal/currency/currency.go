// Package currency formats monetary amounts for receipt display.
package currency

import (
	"math"
	"strconv"
	"strings"
)

var symbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "$",
	"AUD": "$",
	"CHF": "CHF",
	"CNY": "¥",
	"INR": "₹",
}

// Symbol maps a currency code to its display symbol. Unknown codes are
// echoed back as the symbol.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// Format renders an amount as symbol + thousands-grouped digits, e.g.
// Format(50000, "NGN") == "₦50,000". Amounts are rounded to two decimal
// places; a whole amount renders without a fraction. Pure and total.
func Format(amount float64, code string) string {
	return Symbol(code) + Group(amount)
}

// Group renders the amount with comma thousands separators.
func Group(amount float64) string {
	rounded := math.Round(amount*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
