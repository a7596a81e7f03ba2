// Package mathengine implements ports.MathEngine over Knetic/govaluate.
package mathengine

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/Knetic/govaluate"
)

var (
	modeMarker   = regexp.MustCompile(`deg|rad`)
	postfixFact  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*!`)
	maxFactorial = 170.0
)

// Engine evaluates candidate expressions. It is stateless between calls.
type Engine struct {
	// Degrees is the angle unit used when an expression carries no marker.
	Degrees bool
}

// New returns an engine with the given default angle unit.
func New(useDegrees bool) *Engine {
	return &Engine{Degrees: useDegrees}
}

// Evaluate parses and evaluates expr, returning a finite float64.
func (e *Engine) Evaluate(expr string) (float64, error) {
	degrees := e.Degrees
	if markers := modeMarker.FindAllString(expr, -1); len(markers) > 0 {
		degrees = markers[len(markers)-1] == "deg"
	}
	prepared, err := prepare(expr)
	if err != nil {
		return 0, fmt.Errorf("mathengine: %q: %w", expr, err)
	}
	if prepared == "" {
		return 0, errors.New("mathengine: empty expression")
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(prepared, functions(degrees))
	if err != nil {
		return 0, fmt.Errorf("mathengine: parse %q: %w", prepared, err)
	}
	raw, err := parsed.Evaluate(constants)
	if err != nil {
		return 0, fmt.Errorf("mathengine: evaluate %q: %w", prepared, err)
	}
	value, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("mathengine: %q is not numeric (%T)", prepared, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("mathengine: %q is not finite", prepared)
	}
	return value, nil
}

// prepare strips mode markers and rewrites syntax govaluate spells
// differently: postfix ! is unknown there and ^ is XOR.
func prepare(expr string) (string, error) {
	s := modeMarker.ReplaceAllString(expr, "")
	s = postfixFact.ReplaceAllString(s, "factorial($1)")
	return rewrite(s)
}

var constants = map[string]interface{}{
	"PI": math.Pi,
	"pi": math.Pi,
	"E":  math.E,
	"e":  math.E,
}

func functions(degrees bool) map[string]govaluate.ExpressionFunction {
	in := func(x float64) float64 { return x }
	out := func(x float64) float64 { return x }
	if degrees {
		in = func(x float64) float64 { return x * math.Pi / 180 }
		out = func(x float64) float64 { return x * 180 / math.Pi }
	}
	return map[string]govaluate.ExpressionFunction{
		"sin":       unary("sin", func(x float64) float64 { return math.Sin(in(x)) }),
		"cos":       unary("cos", func(x float64) float64 { return math.Cos(in(x)) }),
		"tan":       unary("tan", func(x float64) float64 { return math.Tan(in(x)) }),
		"csc":       unary("csc", func(x float64) float64 { return 1 / math.Sin(in(x)) }),
		"sec":       unary("sec", func(x float64) float64 { return 1 / math.Cos(in(x)) }),
		"cot":       unary("cot", func(x float64) float64 { return 1 / math.Tan(in(x)) }),
		"asin":      unary("asin", func(x float64) float64 { return out(math.Asin(x)) }),
		"acos":      unary("acos", func(x float64) float64 { return out(math.Acos(x)) }),
		"atan":      unary("atan", func(x float64) float64 { return out(math.Atan(x)) }),
		"sqrt":      unary("sqrt", math.Sqrt),
		"cbrt":      unary("cbrt", math.Cbrt),
		"log":       unary("log", math.Log),
		"ln":        unary("ln", math.Log),
		"log10":     unary("log10", math.Log10),
		"exp":       unary("exp", math.Exp),
		"abs":       unary("abs", math.Abs),
		"floor":     unary("floor", math.Floor),
		"ceil":      unary("ceil", math.Ceil),
		"round":     unary("round", math.Round),
		"factorial": factorial,
		"pow":       pow,
	}
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		x, err := single(name, args)
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func single(name string, args []interface{}) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	x, ok := args[0].(float64)
	if !ok {
		return 0, fmt.Errorf("%s expects a number, got %T", name, args[0])
	}
	return x, nil
}

func pow(args ...interface{}) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
	}
	base, ok := args[0].(float64)
	if !ok {
		return nil, fmt.Errorf("pow expects a number, got %T", args[0])
	}
	exp, ok := args[1].(float64)
	if !ok {
		return nil, fmt.Errorf("pow expects a number, got %T", args[1])
	}
	return math.Pow(base, exp), nil
}

func factorial(args ...interface{}) (interface{}, error) {
	n, err := single("factorial", args)
	if err != nil {
		return nil, err
	}
	if n < 0 || n != math.Trunc(n) {
		return nil, fmt.Errorf("factorial is defined for non-negative integers, got %v", n)
	}
	if n > maxFactorial {
		return nil, fmt.Errorf("factorial of %v overflows", n)
	}
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result, nil
}
