package calc

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// currencyGlyphs may prefix an amount ("$100") and are skipped when parsing.
const currencyGlyphs = "$€£¥₹"

// ParseNumber parses the longest numeric prefix of a token, the way
// JavaScript's parseFloat does: "7," is 7 and "5%" is 5.
func ParseNumber(token string) (float64, bool) {
	token = strings.TrimLeft(token, currencyGlyphs)
	m := leadingNumber.FindString(token)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractNumber finds a numeric parameter in free text. With a keyword it
// returns the number following the first token that contains the keyword;
// otherwise, or when that lookup fails, it returns the first number anywhere.
func ExtractNumber(input, keyword string) (float64, bool) {
	if keyword != "" {
		if v, ok := NumberAfter(input, keyword); ok {
			return v, true
		}
	}
	return firstNumber(strings.Fields(input))
}

// NumberAfter is the named lookup alone: the token right after the first
// token containing keyword, if it parses.
func NumberAfter(input, keyword string) (float64, bool) {
	words := strings.Fields(input)
	idx := indexContaining(words, keyword)
	if idx == -1 || idx >= len(words)-1 {
		return 0, false
	}
	return ParseNumber(words[idx+1])
}

// NumberBefore returns the number right before the first token containing
// keyword, for suffix phrasing such as "5 percent" or "2 years". A token that
// carries its own number ("5%") answers for itself.
func NumberBefore(input, keyword string) (float64, bool) {
	words := strings.Fields(input)
	idx := indexContaining(words, keyword)
	if idx == -1 {
		return 0, false
	}
	if v, ok := ParseNumber(words[idx]); ok {
		return v, true
	}
	if idx == 0 {
		return 0, false
	}
	return ParseNumber(words[idx-1])
}

// Numbers returns every numeric token in order.
func Numbers(input string) []float64 {
	var out []float64
	for _, w := range strings.Fields(input) {
		if v, ok := ParseNumber(w); ok {
			out = append(out, v)
		}
	}
	return out
}

func firstNumber(words []string) (float64, bool) {
	for _, w := range words {
		if v, ok := ParseNumber(w); ok {
			return v, true
		}
	}
	return 0, false
}

func indexContaining(words []string, keyword string) int {
	if keyword == "" {
		return -1
	}
	for i, w := range words {
		if strings.Contains(w, keyword) {
			return i
		}
	}
	return -1
}
