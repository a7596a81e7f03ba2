package mathengine

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOpen
	tokClose
	tokOp
)

type token struct {
	kind tokenKind
	text string
}

var errMalformedPower = errors.New("power operator needs an operand on both sides")

// rewrite turns expr into something govaluate reads with ordinary math
// conventions: exponent literals become plain decimals, juxtaposition becomes
// multiplication, and ^ chains become right-nested pow calls so that -2^2 is
// -4 and 2^3^2 is 512. Tokens are joined by spaces so a sign after an
// operator is never lexed as part of it.
func rewrite(expr string) (string, error) {
	tokens := insertProducts(tokenize(expr))
	tokens, err := rewritePowers(tokens)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.text
	}
	return strings.Join(parts, " "), nil
}

func tokenize(s string) []token {
	var tokens []token
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isDigit(r) || (r == '.' && i+1 < len(runes) && isDigit(runes[i+1])):
			j := scanNumber(runes, i)
			tokens = append(tokens, token{kind: tokNumber, text: numberText(string(runes[i:j]))})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i + 1
			for j < len(runes) && (unicode.IsLetter(runes[j]) || isDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[i:j])})
			i = j
		case r == '(':
			tokens = append(tokens, token{kind: tokOpen, text: "("})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokClose, text: ")"})
			i++
		case r == '*' && i+1 < len(runes) && runes[i+1] == '*':
			tokens = append(tokens, token{kind: tokOp, text: "^"})
			i += 2
		case strings.ContainsRune("<>=!&|", r):
			j := i + 1
			for j < len(runes) && strings.ContainsRune("<>=!&|", runes[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokOp, text: string(runes[i:j])})
			i = j
		default:
			tokens = append(tokens, token{kind: tokOp, text: string(r)})
			i++
		}
	}
	return tokens
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber returns the end of the numeric literal starting at i, including
// an exponent part such as e3 or E-4.
func scanNumber(runes []rune, i int) int {
	j := i
	for j < len(runes) && (isDigit(runes[j]) || runes[j] == '.') {
		j++
	}
	if j < len(runes) && (runes[j] == 'e' || runes[j] == 'E') {
		k := j + 1
		if k < len(runes) && (runes[k] == '+' || runes[k] == '-') {
			k++
		}
		if k < len(runes) && isDigit(runes[k]) {
			for k < len(runes) && isDigit(runes[k]) {
				k++
			}
			return k
		}
	}
	return j
}

// numberText expands exponent literals, which govaluate cannot lex.
func numberText(lit string) string {
	if !strings.ContainsAny(lit, "eE") {
		return lit
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return lit
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// insertProducts adds * for 2 PI, 2(3+4), (1+2)(3) and (2)3.
func insertProducts(tokens []token) []token {
	out := make([]token, 0, len(tokens))
	for i, t := range tokens {
		if i > 0 && implicitProduct(tokens[i-1], t) {
			out = append(out, token{kind: tokOp, text: "*"})
		}
		out = append(out, t)
	}
	return out
}

func implicitProduct(prev, next token) bool {
	switch prev.kind {
	case tokNumber:
		return next.kind == tokIdent || next.kind == tokOpen
	case tokClose:
		return next.kind == tokNumber || next.kind == tokIdent || next.kind == tokOpen
	default:
		return false
	}
}

// rewritePowers replaces the rightmost ^ first, so chains nest to the right.
func rewritePowers(tokens []token) ([]token, error) {
	for {
		at := -1
		for i := len(tokens) - 1; i >= 0; i-- {
			if tokens[i].kind == tokOp && tokens[i].text == "^" {
				at = i
				break
			}
		}
		if at < 0 {
			return tokens, nil
		}
		start := baseStart(tokens, at)
		end := exponentEnd(tokens, at+1)
		if start < 0 || end < 0 {
			return nil, errMalformedPower
		}

		rebuilt := make([]token, 0, len(tokens)+3)
		rebuilt = append(rebuilt, tokens[:start]...)
		rebuilt = append(rebuilt, token{kind: tokIdent, text: "pow"}, token{kind: tokOpen, text: "("})
		rebuilt = append(rebuilt, tokens[start:at]...)
		rebuilt = append(rebuilt, token{kind: tokOp, text: ","})
		rebuilt = append(rebuilt, tokens[at+1:end]...)
		rebuilt = append(rebuilt, token{kind: tokClose, text: ")"})
		rebuilt = append(rebuilt, tokens[end:]...)
		tokens = rebuilt
	}
}

// baseStart finds the first token of the operand ending just before at.
// A leading sign is not part of the base.
func baseStart(tokens []token, at int) int {
	i := at - 1
	if i < 0 {
		return -1
	}
	switch tokens[i].kind {
	case tokNumber, tokIdent:
		return i
	case tokClose:
		open := matchingOpen(tokens, i)
		if open > 0 && tokens[open-1].kind == tokIdent {
			return open - 1
		}
		return open
	default:
		return -1
	}
}

// exponentEnd returns the index just past the signed operand starting at i.
func exponentEnd(tokens []token, i int) int {
	for i < len(tokens) && tokens[i].kind == tokOp && (tokens[i].text == "-" || tokens[i].text == "+") {
		i++
	}
	if i >= len(tokens) {
		return -1
	}
	switch tokens[i].kind {
	case tokNumber:
		return i + 1
	case tokIdent:
		if i+1 < len(tokens) && tokens[i+1].kind == tokOpen {
			if end := matchingClose(tokens, i+1); end >= 0 {
				return end + 1
			}
			return -1
		}
		return i + 1
	case tokOpen:
		if end := matchingClose(tokens, i); end >= 0 {
			return end + 1
		}
		return -1
	default:
		return -1
	}
}

func matchingOpen(tokens []token, closeAt int) int {
	depth := 0
	for i := closeAt; i >= 0; i-- {
		switch tokens[i].kind {
		case tokClose:
			depth++
		case tokOpen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchingClose(tokens []token, openAt int) int {
	depth := 0
	for i := openAt; i < len(tokens); i++ {
		switch tokens[i].kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
