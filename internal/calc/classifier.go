// Package calc implements the interpretation pipeline: domain classification,
// lexical normalization, staged expression evaluation, parameter extraction
// and the area and money calculators.
//
// Everything in this package is synchronous and free of shared mutable state.
// The math engine is the only collaborator and is injected through ports.
package calc

import (
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
)

type classifierRule struct {
	keywords []string
	domain   domain.Domain
}

// classifierRules are evaluated in order. Keyword checks are plain substring
// tests, so "squarely" is an Area input.
var classifierRules = []classifierRule{
	{keywords: []string{"area", "square", "rectangle", "circle", "triangle"}, domain: domain.DomainArea},
	{keywords: []string{"dollar", "euro", "pound", "yen", "money", "currency"}, domain: domain.DomainMoney},
}

// Classify routes an input to a calculation domain. It never fails.
func Classify(input string) domain.Domain {
	lower := strings.ToLower(input)
	for _, rule := range classifierRules {
		if containsAny(lower, rule.keywords) {
			return rule.domain
		}
	}
	return domain.DomainScientific
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
