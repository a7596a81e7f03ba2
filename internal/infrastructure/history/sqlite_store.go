package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// createdAtLayout is fixed width and UTC so that text comparison orders rows.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists history in a SQLite database. When the database cannot
// be opened it degrades to a jsonl file next to it.
type SQLiteStore struct {
	db            *sql.DB
	path          string
	fallback      *FileStore
	mu            sync.Mutex
	retentionDays int
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string, retentionDays int) *SQLiteStore {
	store := &SQLiteStore{path: path, retentionDays: retentionDays}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err == nil {
		store.db = db
		err = store.init()
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		store.db = nil
		store.fallback = NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	}
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		timestamp TEXT,
		input TEXT,
		result TEXT,
		domain TEXT,
		stage TEXT,
		is_manual INTEGER
	);`)
	if err != nil {
		return fmt.Errorf("create calculations table: %w", err)
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at)`)
	return err
}

// Degraded reports whether the store is writing to the jsonl fallback.
func (s *SQLiteStore) Degraded() bool {
	return s.db == nil
}

// Save inserts a new record and applies the retention window.
func (s *SQLiteStore) Save(record domain.CalculationRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.mu.Lock()
	_, err := s.db.Exec(`INSERT INTO calculations
		(id, created_at, timestamp, input, result, domain, stage, is_manual)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CreatedAt.UTC().Format(createdAtLayout),
		record.Timestamp,
		record.Input,
		record.Result,
		string(record.Domain),
		string(record.Stage),
		boolToInt(record.IsManual),
	)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	if s.retentionDays > 0 {
		return s.PruneOlderThan(s.retentionDays)
	}
	return nil
}

// Records returns history entries newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.CalculationRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, created_at, timestamp, input, result, domain, stage, is_manual FROM calculations")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE input LIKE ? OR result LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY created_at DESC, rowid DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.CalculationRecord
	for rows.Next() {
		var rec domain.CalculationRecord
		var createdAt, recDomain, stage string
		var manual int
		if err := rows.Scan(&rec.ID, &createdAt, &rec.Timestamp, &rec.Input, &rec.Result, &recDomain, &stage, &manual); err != nil {
			return nil, err
		}
		if t, err := time.Parse(createdAtLayout, createdAt); err == nil {
			rec.CreatedAt = t
		}
		rec.Domain = domain.Domain(recDomain)
		rec.Stage = domain.Stage(stage)
		rec.IsManual = manual == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM calculations")
	return err
}

// ExportJSON writes the table to a jsonl file, oldest first.
func (s *SQLiteStore) ExportJSON(dest string) error {
	if s.db == nil {
		return s.fallback.ExportJSON(dest)
	}
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return writeJSONL(dest, records)
}

// PruneOlderThan removes entries older than N days.
func (s *SQLiteStore) PruneOlderThan(days int) error {
	if days <= 0 {
		return nil
	}
	if s.db == nil {
		return s.fallback.PruneOlderThan(days)
	}
	cutoff := time.Now().AddDate(0, 0, -days).UTC().Format(createdAtLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM calculations WHERE created_at < ?", cutoff)
	return err
}

// Path returns the sqlite database path, or the fallback file when degraded.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
