package domain

import "errors"

// Error kinds raised by the interpretation core. Match with errors.Is.
var (
	ErrExpression       = errors.New("expression error")
	ErrArea             = errors.New("area error")
	ErrMoneyInput       = errors.New("money input error")
	ErrUnsupportedInput = errors.New("unsupported input")
)

// CalcError carries an error kind together with the sentence shown to the user.
type CalcError struct {
	Kind    error
	Message string
	Err     error
}

// NewCalcError builds a CalcError of the given kind.
func NewCalcError(kind error, message string) *CalcError {
	return &CalcError{Kind: kind, Message: message}
}

func (e *CalcError) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Is matches the error kind sentinel.
func (e *CalcError) Is(target error) bool {
	return target == e.Kind
}

func (e *CalcError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the user-facing sentence from a CalcError chain.
func UserMessage(err error) (string, bool) {
	var calcErr *CalcError
	if errors.As(err, &calcErr) {
		return calcErr.Message, true
	}
	return "", false
}

// Fixed user-facing sentences.
const (
	MsgVoiceFailure       = "I couldn't process that calculation. Please try rephrasing."
	MsgManualFailure      = "Invalid input. Please check your expression and try again."
	MsgAreaFailure        = "Couldn't calculate area. Please specify shape and dimensions."
	MsgUnsupported        = "Sorry, I can't handle that input."
	MsgNoExpressionFound  = "no mathematical expression found"
	MsgConvertNeedsAmount = `Please tell me how much you want to convert, for example "convert 100 dollars to euros".`
	MsgConvertCapability  = `I can convert between USD, EUR, INR, CNY, GBP and JPY. Try "convert 100 dollars to euros".`
	MsgInterestNeedsInput = `Please include a principal and a rate, for example "interest on principal 1000 at rate 5 for 2 years".`
)
