package calc

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// Evaluation is a successful (or exhausted) run of the evaluator.
type Evaluation struct {
	Value      float64
	Text       string
	Stage      domain.Stage
	Expression string
	Attempts   []Attempt
}

// Attempt records what one stage tried and why it failed.
type Attempt struct {
	Stage     domain.Stage
	Candidate string
	Err       error
}

var errEmptyCandidate = errors.New("empty candidate")

// mathTokens keeps digits, operators, parentheses, whitelisted function names
// and mode markers. Longer names precede their prefixes.
var mathTokens = regexp.MustCompile(
	`asin|acos|atan|log10|log|sqrt|cbrt|factorial|abs|floor|ceil|round|exp|sin|cos|tan|csc|sec|cot|PI|deg|rad|[+\-*/^%.\d()]`)

var nonMath = regexp.MustCompile(`[^+\-*/^%.\d()]`)

// nextStage is the transition taken when a stage fails.
var nextStage = map[domain.Stage]domain.Stage{
	domain.StageDirect:       domain.StageTokenExtract,
	domain.StageTokenExtract: domain.StageSanitize,
	domain.StageSanitize:     domain.StageFailed,
}

// ExtractTokens concatenates every math token found in expr.
func ExtractTokens(expr string) string {
	return strings.Join(mathTokens.FindAllString(expr, -1), "")
}

// Sanitize drops everything but digits, decimal points, operators and parentheses.
func Sanitize(expr string) string {
	return nonMath.ReplaceAllString(expr, "")
}

// Candidate returns the string a stage hands to the engine.
func Candidate(stage domain.Stage, expr string) string {
	switch stage {
	case domain.StageDirect:
		return strings.TrimSpace(expr)
	case domain.StageTokenExtract:
		return ExtractTokens(expr)
	case domain.StageSanitize:
		return Sanitize(expr)
	default:
		return ""
	}
}

// Evaluator runs the direct, token-extract and sanitize stages in order and
// stops at the first one that yields a finite number.
type Evaluator struct {
	Engine ports.MathEngine
}

// NewEvaluator builds an evaluator over engine.
func NewEvaluator(engine ports.MathEngine) *Evaluator {
	return &Evaluator{Engine: engine}
}

// Evaluate walks the stage machine for expr.
func (e *Evaluator) Evaluate(expr string) (Evaluation, error) {
	var attempts []Attempt
	for stage := domain.StageDirect; stage != domain.StageFailed; stage = nextStage[stage] {
		candidate := Candidate(stage, expr)
		value, err := e.EvaluateStage(stage, expr)
		if err == nil {
			return Evaluation{
				Value:      value,
				Text:       FormatNumber(value),
				Stage:      stage,
				Expression: candidate,
				Attempts:   attempts,
			}, nil
		}
		attempts = append(attempts, Attempt{Stage: stage, Candidate: candidate, Err: err})
	}
	return Evaluation{Stage: domain.StageFailed, Attempts: attempts},
		domain.NewCalcError(domain.ErrExpression, domain.MsgNoExpressionFound)
}

// EvaluateStage runs a single stage in isolation.
func (e *Evaluator) EvaluateStage(stage domain.Stage, expr string) (float64, error) {
	if e.Engine == nil {
		return 0, errors.New("calc: evaluator has no math engine")
	}
	candidate := Candidate(stage, expr)
	if candidate == "" {
		return 0, errEmptyCandidate
	}
	value, err := e.Engine.Evaluate(candidate)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("non-finite result for %q", candidate)
	}
	return value, nil
}
