package history

import (
	"sync"
	"time"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// MemoryStore keeps records in a domain.History for the life of the process.
type MemoryStore struct {
	mu      sync.Mutex
	history *domain.History
}

// NewMemoryStore wraps h, or a fresh history when h is nil.
func NewMemoryStore(h *domain.History) *MemoryStore {
	if h == nil {
		h = domain.NewHistory()
	}
	return &MemoryStore{history: h}
}

// History exposes the backing session history.
func (m *MemoryStore) History() *domain.History {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history
}

// Save appends record to the session history.
func (m *MemoryStore) Save(record domain.CalculationRecord) error {
	m.History().Append(record)
	return nil
}

// Records returns entries newest first.
func (m *MemoryStore) Records(limit int, search string) ([]domain.CalculationRecord, error) {
	return selectRecords(m.History().Records(), limit, search), nil
}

// Clear swaps in an empty history. Records already handed out are unaffected.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = domain.NewHistory()
	return nil
}

// ExportJSON writes the session to dest as jsonl.
func (m *MemoryStore) ExportJSON(dest string) error {
	return writeJSONL(dest, m.History().Records())
}

// PruneOlderThan rebuilds the history without entries older than N days.
func (m *MemoryStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	kept := domain.NewHistory()
	for _, rec := range m.history.Records() {
		if !rec.CreatedAt.Before(cutoff) {
			kept.Append(rec)
		}
	}
	m.history = kept
	return nil
}

// Path is empty: nothing is written to disk.
func (m *MemoryStore) Path() string {
	return ""
}

var _ ports.HistoryRepository = (*MemoryStore)(nil)
