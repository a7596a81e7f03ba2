package calc

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rule rewrites one verbal phrase into expression syntax.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
	// NotBefore lists characters that suppress the rule when they follow the
	// match (after optional spaces). It keeps "round(" from becoming "round((".
	NotBefore string
}

// Apply rewrites every match of the rule in s.
func (r Rule) Apply(s string) string {
	matches := r.Pattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if r.NotBefore != "" && followedBy(s[m[1]:], r.NotBefore) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(r.Replacement)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func followedBy(rest, chars string) bool {
	rest = strings.TrimLeft(rest, " \t")
	return rest != "" && strings.ContainsRune(chars, rune(rest[0]))
}

// phrase compiles a whole-word, whitespace tolerant pattern for words.
func phrase(words string) *regexp.Regexp {
	parts := strings.Fields(words)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b` + strings.Join(parts, `\s+`) + `\b`)
}

func rule(name, words, replacement string) Rule {
	return Rule{Name: name, Pattern: phrase(words), Replacement: replacement}
}

// NormalizationRules is applied top to bottom. Longer and more specific
// phrases come first so that no rule rewrites text another rule produced.
var NormalizationRules = []Rule{
	// function phrases
	rule("sqrt", "square root of", "sqrt("),
	rule("cbrt", "cube root of", "cbrt("),
	rule("cbrt-alt", "cubic root of", "cbrt("),
	rule("ln-long", "natural logarithm of", "log("),
	rule("ln", "natural log of", "log("),
	rule("log10-long", "logarithm of", "log10("),
	rule("log10", "log of", "log10("),
	rule("asin", "arcsine of", "asin("),
	rule("acos", "arccosine of", "acos("),
	rule("atan", "arctangent of", "atan("),
	rule("csc", "cosecant of", "csc("),
	rule("cot", "cotangent of", "cot("),
	rule("sec", "secant of", "sec("),
	rule("sin", "sine of", "sin("),
	rule("cos", "cosine of", "cos("),
	rule("tan", "tangent of", "tan("),
	rule("factorial", "factorial of", "factorial("),
	rule("abs", "absolute value of", "abs("),
	rule("floor", "floor of", "floor("),
	rule("ceil", "ceiling of", "ceil("),
	rule("exp", "exponential of", "exp("),
	rule("round-of", "round of", "round("),
	{Name: "round", Pattern: phrase("round"), Replacement: "round(", NotBefore: "("},

	// multi-word operators
	rule("divide", "divided by", "/"),
	rule("multiply", "multiplied by", "*"),
	rule("raise-power", "raised to the power of", "^"),
	rule("power", "to the power of", "^"),
	rule("raise", "raised to", "^"),

	// single-word operators
	rule("plus", "plus", "+"),
	rule("minus", "minus", "-"),
	rule("negative", "negative", "-"),
	rule("times", "times", "*"),
	rule("over", "over", "/"),
	rule("modulo", "modulo", "%"),
	rule("mod", "mod", "%"),
	rule("squared", "squared", "^2"),
	rule("cubed", "cubed", "^3"),

	// digit words
	rule("zero", "zero", "0"),
	rule("one", "one", "1"),
	rule("two", "two", "2"),
	rule("three", "three", "3"),
	rule("four", "four", "4"),
	rule("five", "five", "5"),
	rule("six", "six", "6"),
	rule("seven", "seven", "7"),
	rule("eight", "eight", "8"),
	rule("nine", "nine", "9"),
	rule("ten", "ten", "10"),

	// mode markers
	{Name: "degrees", Pattern: regexp.MustCompile(`\bdegrees?\b`), Replacement: "deg"},
	{Name: "radians", Pattern: regexp.MustCompile(`\bradians?\b`), Replacement: "rad"},

	// constants
	rule("pi", "pi", "PI"),
}

var glyphReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"π", "pi",
	"√", "sqrt(",
)

// Normalize rewrites loosely phrased input into a candidate expression.
// Parentheses opened by function phrases are closed at the tail.
func Normalize(input string) string {
	s := norm.NFKC.String(input)
	s = strings.ToLower(strings.TrimSpace(s))
	s = glyphReplacer.Replace(s)
	for _, r := range NormalizationRules {
		s = r.Apply(s)
	}
	return closeParens(s)
}

func closeParens(s string) string {
	open := strings.Count(s, "(") - strings.Count(s, ")")
	if open > 0 {
		s += strings.Repeat(")", open)
	}
	return s
}
