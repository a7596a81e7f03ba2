package calc

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	spokenNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?(?:e[+-]\d+)?`)
	currencyCode = regexp.MustCompile(`\b[A-Z]{3}\b`)
	printer      = message.NewPrinter(language.AmericanEnglish)
)

// Speakable rewrites a result sentence into text a speech engine reads
// naturally: grouped digits, spelled signs and exponents, currency names.
func Speakable(text string, rates *RateTable) string {
	if rates == nil {
		rates = DefaultRates()
	}
	out := spokenNumber.ReplaceAllStringFunc(text, speakNumber)
	out = currencyCode.ReplaceAllStringFunc(out, func(code string) string {
		if c, ok := rates.Currency(code); ok {
			return c.Spoken
		}
		return code
	})
	return out
}

func speakNumber(num string) string {
	var prefix string
	if strings.HasPrefix(num, "-") {
		prefix = "minus "
		num = num[1:]
	}
	mantissa, exponent, hasExp := strings.Cut(num, "e")
	whole, frac, hasFrac := strings.Cut(mantissa, ".")
	spoken := whole
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		spoken = printer.Sprintf("%d", n)
	}
	if hasFrac {
		spoken += "." + frac
	}
	if hasExp {
		exponent = strings.TrimPrefix(exponent, "+")
		if strings.HasPrefix(exponent, "-") {
			exponent = "minus " + exponent[1:]
		}
		spoken += " times ten to the power of " + exponent
	}
	return prefix + spoken
}
