// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the calculation core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the interpretation pipeline to remain independent of
// specific implementations like math engines, databases, speech engines or CLI
// frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., MathEngine, Speaker)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/saycalc/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.saycalc/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// MathEngine evaluates a well-formed arithmetic expression.
// It fails on malformed syntax and never returns a non-finite value.
type MathEngine interface {
	Evaluate(expr string) (float64, error)
}

// Interpreter turns one raw input into an outcome. Failures are reported in
// the outcome, never as a panic.
type Interpreter interface {
	InterpretAs(raw string, hint *domain.Domain, isManual bool) domain.Outcome
}

// Speaker turns text into speech. Implementations are fire-and-forget from the
// core's point of view: the returned error is only logged.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Enabled() bool
}

// Clipboard receives a copy of a result on request.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

// TranscriptSource delivers one finalized transcript string per utterance.
// io.EOF signals that the source is exhausted.
type TranscriptSource interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// HistoryStore is the write side of calculation history persistence.
type HistoryStore interface {
	Save(domain.CalculationRecord) error
}

// HistoryRepository extends HistoryStore with inspection and maintenance.
type HistoryRepository interface {
	HistoryStore
	Records(limit int, search string) ([]domain.CalculationRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(days int) error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
