package calc

import (
	"math"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
)

// ShapeParams holds the resolved dimensions of one shape.
type ShapeParams map[string]float64

type shapeParam struct {
	name     string
	keywords []string
	// derive is tried after the named lookups and before the positional fallback.
	derive func(input string) (float64, bool)
}

type shape struct {
	name    string
	params  []shapeParam
	area    func(p ShapeParams) float64
	rounded bool
}

// shapes are matched in this order; the first keyword hit wins.
var shapes = []shape{
	{
		name:   "square",
		params: []shapeParam{{name: "side", keywords: []string{"side"}}},
		area:   func(p ShapeParams) float64 { return p["side"] * p["side"] },
	},
	{
		name: "rectangle",
		params: []shapeParam{
			{name: "length", keywords: []string{"length"}},
			{name: "width", keywords: []string{"width"}},
		},
		area: func(p ShapeParams) float64 { return p["length"] * p["width"] },
	},
	{
		name: "circle",
		params: []shapeParam{{
			name:     "radius",
			keywords: []string{"radius"},
			derive: func(input string) (float64, bool) {
				d, ok := NumberAfter(input, "diameter")
				return d / 2, ok
			},
		}},
		area:    func(p ShapeParams) float64 { return math.Pi * p["radius"] * p["radius"] },
		rounded: true,
	},
	{
		name: "triangle",
		params: []shapeParam{
			{name: "base", keywords: []string{"base"}},
			{name: "height", keywords: []string{"height"}},
		},
		area:    func(p ShapeParams) float64 { return 0.5 * p["base"] * p["height"] },
		rounded: true,
	},
	{
		name: "trapezoid",
		params: []shapeParam{
			{name: "a", keywords: []string{"a", "first"}},
			{name: "b", keywords: []string{"b", "second"}},
			{name: "height", keywords: []string{"height", "h"}},
		},
		area:    func(p ShapeParams) float64 { return 0.5 * (p["a"] + p["b"]) * p["height"] },
		rounded: true,
	},
	{
		name: "ellipse",
		params: []shapeParam{
			{name: "a", keywords: []string{"a", "semi-major"}},
			{name: "b", keywords: []string{"b", "semi-minor"}},
		},
		area:    func(p ShapeParams) float64 { return math.Pi * p["a"] * p["b"] },
		rounded: true,
	},
}

// CalculateArea computes the area of the first shape named in input.
func CalculateArea(input string) (string, error) {
	lower := strings.ToLower(input)
	for _, s := range shapes {
		if !strings.Contains(lower, s.name) {
			continue
		}
		params, ok := s.resolve(lower)
		if !ok {
			break
		}
		v := s.area(params)
		if s.rounded {
			return FormatFixed(v, 2) + " square units", nil
		}
		return FormatNumber(v) + " square units", nil
	}
	return "", domain.NewCalcError(domain.ErrArea, domain.MsgAreaFailure)
}

func (s shape) resolve(input string) (ShapeParams, bool) {
	params := make(ShapeParams, len(s.params))
	for _, p := range s.params {
		v, ok := p.lookup(input)
		if !ok || v <= 0 {
			return nil, false
		}
		params[p.name] = v
	}
	return params, true
}

func (p shapeParam) lookup(input string) (float64, bool) {
	for _, kw := range p.keywords {
		if v, ok := NumberAfter(input, kw); ok {
			return v, true
		}
	}
	if p.derive != nil {
		if v, ok := p.derive(input); ok {
			return v, true
		}
	}
	return ExtractNumber(input, "")
}
