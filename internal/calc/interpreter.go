package calc

import (
	"errors"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// Interpreter is the core entry point: it classifies, dispatches and turns
// every failure into a fixed user-facing sentence.
type Interpreter struct {
	Evaluator *Evaluator
	Money     *MoneyCalculator
	Rates     *RateTable
}

// NewInterpreter wires the calculators around a math engine.
func NewInterpreter(engine ports.MathEngine) *Interpreter {
	in := &Interpreter{
		Evaluator: NewEvaluator(engine),
		Rates:     DefaultRates(),
	}
	in.Money = &MoneyCalculator{Rates: in.Rates, Scientific: in.Scientific}
	return in
}

// Interpret handles one raw input. A hint comes from an explicit mode
// selector, so its presence marks the input as typed.
func (in *Interpreter) Interpret(raw string, hint *domain.Domain) domain.Outcome {
	return in.InterpretAs(raw, hint, hint != nil)
}

// InterpretAs handles one raw input with an explicit manual/voice flag, which
// only affects the wording of expression failures.
func (in *Interpreter) InterpretAs(raw string, hint *domain.Domain, isManual bool) domain.Outcome {
	if strings.TrimSpace(raw) == "" {
		return in.fail(domain.Outcome{}, domain.NewCalcError(domain.ErrUnsupportedInput, domain.MsgUnsupported), isManual)
	}

	d := Classify(raw)
	if hint != nil {
		d = *hint
	}
	outcome := domain.Outcome{Domain: d}

	switch d {
	case domain.DomainArea:
		text, err := CalculateArea(raw)
		if err != nil {
			return in.fail(outcome, err, isManual)
		}
		return in.succeed(outcome, text)

	case domain.DomainMoney:
		res, err := in.Money.Calculate(raw)
		if res.Evaluation != nil {
			outcome.Stage = res.Evaluation.Stage
			outcome.Expression = res.Evaluation.Expression
		}
		if err != nil {
			return in.fail(outcome, err, isManual)
		}
		return in.succeed(outcome, res.Text)

	case domain.DomainScientific:
		eval, err := in.Scientific(raw)
		outcome.Stage = eval.Stage
		outcome.Expression = eval.Expression
		if err != nil {
			return in.fail(outcome, err, isManual)
		}
		return in.succeed(outcome, eval.Text)

	default:
		return in.fail(outcome, domain.NewCalcError(domain.ErrUnsupportedInput, domain.MsgUnsupported), isManual)
	}
}

// Scientific normalizes raw and runs the staged evaluator on it.
func (in *Interpreter) Scientific(raw string) (Evaluation, error) {
	expr := Normalize(raw)
	eval, err := in.Evaluator.Evaluate(expr)
	if eval.Expression == "" {
		eval.Expression = expr
	}
	return eval, err
}

func (in *Interpreter) succeed(outcome domain.Outcome, text string) domain.Outcome {
	outcome.ResultText = text
	outcome.SpeakableText = Speakable(text, in.Rates)
	return outcome
}

func (in *Interpreter) fail(outcome domain.Outcome, err error, isManual bool) domain.Outcome {
	outcome.Err = err
	outcome.ResultText = failureMessage(err, isManual)
	outcome.SpeakableText = Speakable(outcome.ResultText, in.Rates)
	return outcome
}

func failureMessage(err error, isManual bool) string {
	switch {
	case errors.Is(err, domain.ErrExpression):
		if isManual {
			return domain.MsgManualFailure
		}
		return domain.MsgVoiceFailure
	case errors.Is(err, domain.ErrArea):
		return domain.MsgAreaFailure
	case errors.Is(err, domain.ErrMoneyInput):
		if msg, ok := domain.UserMessage(err); ok {
			return msg
		}
		return domain.MsgConvertCapability
	default:
		return domain.MsgUnsupported
	}
}
