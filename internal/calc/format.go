package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber renders v the way a JavaScript Number prints: shortest
// round-tripping digits, exponent form outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatFixed renders v with exactly places decimals, rounding half away
// from zero on the shortest decimal representation of v.
func FormatFixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
