package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// FileStore appends calculation records to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save implements ports.HistoryStore.
func (f *FileStore) Save(record domain.CalculationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.DataFilePermissions)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Records returns entries newest first, filtered by search and capped at limit.
func (f *FileStore) Records(limit int, search string) ([]domain.CalculationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return nil, err
	}
	return selectRecords(records, limit, search), nil
}

// readAll loads every parseable line in file order. Corrupt lines are skipped.
func (f *FileStore) readAll() ([]domain.CalculationRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.CalculationRecord
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec domain.CalculationRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// ExportJSON copies every record to dest as jsonl, oldest first.
func (f *FileStore) ExportJSON(dest string) error {
	f.mu.Lock()
	records, err := f.readAll()
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// PruneOlderThan removes entries older than N days.
func (f *FileStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	records, err := f.readAll()
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var buf bytes.Buffer
	for _, rec := range records {
		if rec.CreatedAt.Before(cutoff) {
			continue
		}
		data, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	return os.WriteFile(f.path, buf.Bytes(), domain.DataFilePermissions)
}

var _ ports.HistoryRepository = (*FileStore)(nil)
