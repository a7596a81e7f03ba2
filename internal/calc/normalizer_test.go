package calc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"square root of 16", "sqrt( 16)"},
		{"5 to the power of 3", "5 ^ 3"},
		{"2 raised to the power of 8", "2 ^ 8"},
		{"sine of 30 degrees", "sin( 30 deg)"},
		{"cosine of 1 radian", "cos( 1 rad)"},
		{"cube root of 27", "cbrt( 27)"},
		{"natural log of 5", "log( 5)"},
		{"log of 100", "log10( 100)"},
		{"Two PLUS Three", "2 + 3"},
		{"ten minus one", "10 - 1"},
		{"8 divided by 2 times 3", "8 / 2 * 3"},
		{"5 squared", "5 ^2"},
		{"pi times two", "PI * 2"},
		{"round 2.5", "round( 2.5)"},
		{"round(2.5)", "round(2.5)"},
		{"2 × 3 ÷ 4", "2 * 3 / 4"},
		{"√9", "sqrt(9)"},
		{"often", "often"},
		{"  17 mod 5  ", "17 % 5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotentOnSymbols(t *testing.T) {
	exprs := []string{
		"2+3*4",
		"sqrt(16)",
		"5^3",
		"(1+2)/3",
		"round(2.5)",
		"PI*2",
		"sin(30deg)",
		"10%3",
		"factorial(5)",
	}
	for _, expr := range exprs {
		once := Normalize(expr)
		if once != expr {
			t.Fatalf("Normalize(%q) = %q, want unchanged", expr, once)
		}
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize is not idempotent for %q: %q then %q", expr, once, twice)
		}
	}
}

func TestNormalizeIsIdempotentOnItsOutput(t *testing.T) {
	for _, input := range []string{"square root of 16", "sine of 30 degrees", "round 2.5", "pi times two"} {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("second pass changed %q into %q", once, twice)
		}
	}
}

func TestRuleNotBefore(t *testing.T) {
	r := NormalizationRules[len(NormalizationRules)-1]
	if r.Name != "pi" {
		t.Fatalf("last rule = %q, want pi", r.Name)
	}
	for _, rule := range NormalizationRules {
		if rule.Name != "round" {
			continue
		}
		if got := rule.Apply("round (2) and round 3"); got != "round (2) and round( 3" {
			t.Fatalf("Apply = %q", got)
		}
		return
	}
	t.Fatal("round rule not found")
}
