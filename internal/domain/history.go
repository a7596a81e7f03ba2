package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CalculationRecord captures one completed calculation attempt.
type CalculationRecord struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Result    string    `json:"result"`
	Timestamp string    `json:"timestamp"`
	IsManual  bool      `json:"is_manual"`
	Domain    Domain    `json:"domain,omitempty"`
	Stage     Stage     `json:"stage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// History is the append-only log of calculation records for one session.
// Records are never mutated or removed once appended.
type History struct {
	mu      sync.Mutex
	records []CalculationRecord
	now     func() time.Time
}

// NewHistory creates an empty history using the wall clock.
func NewHistory() *History {
	return &History{now: time.Now}
}

// NewHistoryWithClock creates an empty history with an injected clock.
func NewHistoryWithClock(now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{now: now}
}

// Record appends a new record and returns it.
func (h *History) Record(input, result string, isManual bool) CalculationRecord {
	return h.RecordOutcome(input, Outcome{ResultText: result}, isManual)
}

// RecordOutcome appends a record carrying the outcome's diagnostics.
func (h *History) RecordOutcome(input string, outcome Outcome, isManual bool) CalculationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.now == nil {
		h.now = time.Now
	}
	at := h.now()
	rec := CalculationRecord{
		ID:        uuid.NewString(),
		Input:     input,
		Result:    outcome.ResultText,
		Timestamp: at.Format(LocaleTimeFormat),
		IsManual:  isManual,
		Domain:    outcome.Domain,
		Stage:     outcome.Stage,
		CreatedAt: at,
	}
	h.records = append(h.records, rec)
	return rec
}

// Append adds an already built record, e.g. one restored from storage.
func (h *History) Append(rec CalculationRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
}

// Records returns a copy of all records in insertion order.
func (h *History) Records() []CalculationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]CalculationRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len reports how many records have been appended.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}
