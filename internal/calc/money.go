package calc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
)

// MoneyKind tells which money sub-case produced a result.
type MoneyKind string

const (
	MoneyConversion MoneyKind = "conversion"
	MoneyInterest   MoneyKind = "interest"
	MoneyScientific MoneyKind = "scientific"
)

// MoneyResult is the output of the money calculator.
type MoneyResult struct {
	Text string
	Kind MoneyKind
	// From and To are set for conversions.
	From, To string
	// Evaluation is set when the input was delegated to the scientific path.
	Evaluation *Evaluation
}

// MoneyCalculator handles currency conversion and simple interest.
type MoneyCalculator struct {
	Rates *RateTable
	// Scientific evaluates inputs that are neither conversions nor interest.
	Scientific func(input string) (Evaluation, error)
}

// Calculate dispatches a money-domain input.
func (m *MoneyCalculator) Calculate(input string) (MoneyResult, error) {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "convert"):
		return m.convert(lower)
	case strings.Contains(lower, "interest"):
		return interest(lower)
	}
	if m.Scientific == nil {
		return MoneyResult{}, domain.NewCalcError(domain.ErrUnsupportedInput, domain.MsgUnsupported)
	}
	eval, err := m.Scientific(input)
	if err != nil {
		return MoneyResult{Kind: MoneyScientific, Evaluation: &eval}, err
	}
	return MoneyResult{Text: eval.Text, Kind: MoneyScientific, Evaluation: &eval}, nil
}

func (m *MoneyCalculator) convert(input string) (MoneyResult, error) {
	amount, ok := ExtractNumber(input, "")
	if !ok {
		return MoneyResult{Kind: MoneyConversion}, domain.NewCalcError(domain.ErrMoneyInput, domain.MsgConvertNeedsAmount)
	}
	rates := m.rates()
	from, to, ok := detectPair(input, rates.Currencies())
	if !ok {
		return MoneyResult{Kind: MoneyConversion}, domain.NewCalcError(domain.ErrMoneyInput, domain.MsgConvertCapability)
	}
	rate, ok := rates.Lookup(from, to)
	if !ok {
		return MoneyResult{Kind: MoneyConversion}, domain.NewCalcError(domain.ErrMoneyInput, domain.MsgConvertCapability)
	}
	text := fmt.Sprintf("%s %s is approximately %s %s",
		FormatNumber(amount), from, FormatFixed(amount*rate.Multiplier, rate.Precision), to)
	return MoneyResult{Text: text, Kind: MoneyConversion, From: from, To: to}, nil
}

func (m *MoneyCalculator) rates() *RateTable {
	if m.Rates == nil {
		return DefaultRates()
	}
	return m.Rates
}

type mention struct {
	code     string
	pos      int
	priority int
}

// detectPair picks the source as the earliest mentioned currency and the
// target as the next distinct one. Ties go to the fixed currency priority.
func detectPair(input string, currencies []Currency) (string, string, bool) {
	var mentions []mention
	for i, c := range currencies {
		pos := -1
		for _, alias := range c.Aliases {
			if idx := strings.Index(input, alias); idx != -1 && (pos == -1 || idx < pos) {
				pos = idx
			}
		}
		if pos != -1 {
			mentions = append(mentions, mention{code: c.Code, pos: pos, priority: i})
		}
	}
	if len(mentions) < 2 {
		return "", "", false
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].pos != mentions[j].pos {
			return mentions[i].pos < mentions[j].pos
		}
		return mentions[i].priority < mentions[j].priority
	})
	return mentions[0].code, mentions[1].code, true
}

func interest(input string) (MoneyResult, error) {
	principal, ok := NumberAfter(input, "principal")
	if !ok {
		principal, ok = ExtractNumber(input, "")
	}
	if !ok || principal <= 0 {
		return MoneyResult{Kind: MoneyInterest}, domain.NewCalcError(domain.ErrMoneyInput, domain.MsgInterestNeedsInput)
	}
	rate, ok := firstOf(input,
		func(s string) (float64, bool) { return NumberAfter(s, "rate") },
		func(s string) (float64, bool) { return NumberBefore(s, "percent") },
		func(s string) (float64, bool) { return NumberBefore(s, "%") },
	)
	if !ok || rate <= 0 {
		return MoneyResult{Kind: MoneyInterest}, domain.NewCalcError(domain.ErrMoneyInput, domain.MsgInterestNeedsInput)
	}
	years, ok := firstOf(input,
		func(s string) (float64, bool) { return NumberAfter(s, "time") },
		func(s string) (float64, bool) { return NumberBefore(s, "year") },
		func(s string) (float64, bool) { return NumberAfter(s, "year") },
	)
	if !ok || years <= 0 {
		years = 1
	}
	amount := principal * (rate / 100) * years
	text := fmt.Sprintf("Interest: %s, Total: %s", FormatFixed(amount, 2), FormatFixed(principal+amount, 2))
	return MoneyResult{Text: text, Kind: MoneyInterest}, nil
}

func firstOf(input string, lookups ...func(string) (float64, bool)) (float64, bool) {
	for _, lookup := range lookups {
		if v, ok := lookup(input); ok {
			return v, true
		}
	}
	return 0, false
}
