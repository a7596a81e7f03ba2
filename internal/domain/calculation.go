// Package domain defines core business entities and value objects for SAYCALC.
//
// This file contains the calculation vocabulary shared by the interpretation
// core, the application services and the presentation adapters. The domain
// layer is independent of infrastructure concerns.
package domain

import (
	"context"
	"fmt"
	"strings"
)

// Domain is the calculation category assigned to an input.
type Domain string

const (
	DomainScientific Domain = "scientific"
	DomainArea       Domain = "area"
	DomainMoney      Domain = "money"
)

// Domains lists every supported domain in display order.
var Domains = []Domain{DomainScientific, DomainArea, DomainMoney}

// ParseDomain converts a user supplied mode name into a Domain.
// "auto" and the empty string yield a nil hint.
func ParseDomain(value string) (*Domain, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", ModeAuto:
		return nil, nil
	case string(DomainScientific), "sci", "math":
		d := DomainScientific
		return &d, nil
	case string(DomainArea), "geometry":
		d := DomainArea
		return &d, nil
	case string(DomainMoney), "currency", "finance":
		d := DomainMoney
		return &d, nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want auto|scientific|area|money)", value)
	}
}

// ModeAuto lets the classifier pick the domain.
const ModeAuto = "auto"

// Stage identifies which tier of the expression evaluator produced a value.
type Stage string

const (
	StageNone         Stage = ""
	StageDirect       Stage = "direct"
	StageTokenExtract Stage = "token-extract"
	StageSanitize     Stage = "sanitize"
	StageFailed       Stage = "failed"
)

// Outcome is what the interpretation core publishes per invocation.
type Outcome struct {
	ResultText    string
	SpeakableText string
	Domain        Domain
	Stage         Stage
	// Expression is the candidate expression handed to the engine, if any.
	Expression string
	// Err holds the classified failure; ResultText already carries the
	// user-facing sentence for it.
	Err error
}

// Failed reports whether the invocation ended in a fixed error sentence.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// CalculationRequest captures one user invocation from any front end.
type CalculationRequest struct {
	Context  context.Context
	Input    string
	Hint     *Domain
	IsManual bool
	Speak    bool
}

// CalculationResponse is the canonical response propagated back to callers.
type CalculationResponse struct {
	Outcome
	Record CalculationRecord
}
