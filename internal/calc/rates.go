package calc

import (
	"fmt"
	"sort"

	"golang.org/x/text/currency"
)

// Currency is one supported ISO 4217 currency and the words that name it.
type Currency struct {
	Code    string
	Spoken  string
	Aliases []string
	Unit    currency.Unit
}

// Pair is an ordered (from, to) currency pair.
type Pair struct {
	From, To string
}

func (p Pair) String() string {
	return p.From + "/" + p.To
}

// Rate is the multiplier for a pair and the number of decimals its
// converted amount is shown with.
type Rate struct {
	Multiplier float64
	Precision  int32
}

// currencyPriority is the fixed order used to break ties between currencies
// mentioned at the same position.
var currencyPriority = []Currency{
	{Code: "USD", Spoken: "US dollars", Aliases: []string{"usd", "dollar", "$"}},
	{Code: "EUR", Spoken: "euros", Aliases: []string{"eur", "euro", "€"}},
	{Code: "INR", Spoken: "Indian rupees", Aliases: []string{"inr", "rupee", "₹"}},
	{Code: "CNY", Spoken: "Chinese yuan", Aliases: []string{"cny", "yuan", "renminbi", "rmb"}},
	{Code: "GBP", Spoken: "British pounds", Aliases: []string{"gbp", "pound", "sterling", "£"}},
	{Code: "JPY", Spoken: "Japanese yen", Aliases: []string{"jpy", "yen", "¥"}},
}

// The table is authored per direction and is deliberately not the inverse
// matrix: EUR->USD is 1.18 while 1/0.85 would be 1.176.
var defaultRateEntries = map[Pair]float64{
	{"USD", "EUR"}: 0.85, {"USD", "INR"}: 83.12, {"USD", "CNY"}: 7.24, {"USD", "GBP"}: 0.79, {"USD", "JPY"}: 149.50,
	{"EUR", "USD"}: 1.18, {"EUR", "INR"}: 90.35, {"EUR", "CNY"}: 7.87, {"EUR", "GBP"}: 0.86, {"EUR", "JPY"}: 162.45,
	{"INR", "USD"}: 0.012, {"INR", "EUR"}: 0.011, {"INR", "CNY"}: 0.087, {"INR", "GBP"}: 0.0095, {"INR", "JPY"}: 1.80,
	{"CNY", "USD"}: 0.14, {"CNY", "EUR"}: 0.13, {"CNY", "INR"}: 11.48, {"CNY", "GBP"}: 0.11, {"CNY", "JPY"}: 20.65,
	{"GBP", "USD"}: 1.27, {"GBP", "EUR"}: 1.17, {"GBP", "INR"}: 105.20, {"GBP", "CNY"}: 9.17, {"GBP", "JPY"}: 189.30,
	{"JPY", "USD"}: 0.0067, {"JPY", "EUR"}: 0.0062, {"JPY", "INR"}: 0.56, {"JPY", "CNY"}: 0.048, {"JPY", "GBP"}: 0.0053,
}

// RateTable is the read-only conversion table.
type RateTable struct {
	currencies []Currency
	rates      map[Pair]Rate
}

// NewRateTable validates entries against ISO 4217 and the known currencies.
// Pairs quoted from JPY carry four decimals, everything else two.
func NewRateTable(currencies []Currency, entries map[Pair]float64) (*RateTable, error) {
	known := make(map[string]bool, len(currencies))
	resolved := make([]Currency, len(currencies))
	for i, c := range currencies {
		unit, err := currency.ParseISO(c.Code)
		if err != nil {
			return nil, fmt.Errorf("currency %s: %w", c.Code, err)
		}
		c.Unit = unit
		resolved[i] = c
		known[c.Code] = true
	}
	rates := make(map[Pair]Rate, len(entries))
	for pair, multiplier := range entries {
		if !known[pair.From] || !known[pair.To] {
			return nil, fmt.Errorf("rate %s references an unknown currency", pair)
		}
		if pair.From == pair.To {
			return nil, fmt.Errorf("rate %s converts a currency to itself", pair)
		}
		if multiplier <= 0 {
			return nil, fmt.Errorf("rate %s must be positive, got %v", pair, multiplier)
		}
		precision := int32(2)
		if pair.From == "JPY" {
			precision = 4
		}
		rates[pair] = Rate{Multiplier: multiplier, Precision: precision}
	}
	return &RateTable{currencies: resolved, rates: rates}, nil
}

// DefaultRates returns the built-in table.
func DefaultRates() *RateTable {
	return defaultRates
}

var defaultRates = mustRateTable(currencyPriority, defaultRateEntries)

func mustRateTable(currencies []Currency, entries map[Pair]float64) *RateTable {
	t, err := NewRateTable(currencies, entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the rate for an ordered pair.
func (t *RateTable) Lookup(from, to string) (Rate, bool) {
	r, ok := t.rates[Pair{From: from, To: to}]
	return r, ok
}

// Currencies lists the supported currencies in priority order.
func (t *RateTable) Currencies() []Currency {
	out := make([]Currency, len(t.currencies))
	copy(out, t.currencies)
	return out
}

// Currency looks up a supported currency by code.
func (t *RateTable) Currency(code string) (Currency, bool) {
	for _, c := range t.currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Pairs returns every pair in priority order of source, then target.
func (t *RateTable) Pairs() []Pair {
	rank := make(map[string]int, len(t.currencies))
	for i, c := range t.currencies {
		rank[c.Code] = i
	}
	pairs := make([]Pair, 0, len(t.rates))
	for p := range t.rates {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].From != pairs[j].From {
			return rank[pairs[i].From] < rank[pairs[j].From]
		}
		return rank[pairs[i].To] < rank[pairs[j].To]
	})
	return pairs
}
