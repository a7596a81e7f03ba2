package calc

import (
	"testing"

	"github.com/doeshing/saycalc/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Domain
	}{
		{"area of circle with radius 3", domain.DomainArea},
		{"AREA of a Triangle", domain.DomainArea},
		{"rectangle 4 by 5", domain.DomainArea},
		{"squarely", domain.DomainArea},
		{"square root of 16", domain.DomainArea},
		{"convert 100 dollars to euros", domain.DomainMoney},
		{"how much money is 5 pounds", domain.DomainMoney},
		{"currency", domain.DomainMoney},
		{"area in dollars", domain.DomainArea},
		{"2+3*4", domain.DomainScientific},
		{"interest on 1000 at 5 percent", domain.DomainScientific},
		{"", domain.DomainScientific},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
