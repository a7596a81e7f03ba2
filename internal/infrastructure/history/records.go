package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/pkg/filesystem"
	"github.com/doeshing/saycalc/internal/ports"
)

// DefaultPath returns the history location for a backend under ~/.saycalc.
func DefaultPath(backend string) string {
	name := "history.jsonl"
	if backend == domain.HistoryBackendSQLite {
		name = "history.db"
	}
	return filepath.Join(filesystem.AppDir(), "history", name)
}

// New builds the repository selected by the history settings.
// An unknown backend is treated as jsonl.
func New(settings domain.HistorySettings) ports.HistoryRepository {
	path := settings.Path
	switch settings.Backend {
	case domain.HistoryBackendMemory:
		return NewMemoryStore(nil)
	case domain.HistoryBackendSQLite, "":
		if path == "" {
			path = DefaultPath(domain.HistoryBackendSQLite)
		}
		return NewSQLiteStore(path, settings.RetentionDays)
	default:
		if path == "" {
			path = DefaultPath(domain.HistoryBackendJSONL)
		}
		return NewFileStore(path)
	}
}

// selectRecords orders records newest first, keeps the ones whose input or
// result contains search (case-insensitive) and caps the result at limit.
func selectRecords(records []domain.CalculationRecord, limit int, search string) []domain.CalculationRecord {
	needle := strings.ToLower(search)
	var out []domain.CalculationRecord
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if needle != "" &&
			!strings.Contains(strings.ToLower(rec.Input), needle) &&
			!strings.Contains(strings.ToLower(rec.Result), needle) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func writeJSONL(dest string, records []domain.CalculationRecord) error {
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
