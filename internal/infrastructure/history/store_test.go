package history

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

func record(id, input, result string, at time.Time) domain.CalculationRecord {
	return domain.CalculationRecord{
		ID:        id,
		Input:     input,
		Result:    result,
		Timestamp: at.Format(domain.LocaleTimeFormat),
		Domain:    domain.DomainScientific,
		Stage:     domain.StageDirect,
		CreatedAt: at,
	}
}

type storeCase struct {
	name string
	open func(t *testing.T) ports.HistoryRepository
}

func storeCases() []storeCase {
	return []storeCase{
		{name: "jsonl", open: func(t *testing.T) ports.HistoryRepository {
			return NewFileStore(filepath.Join(t.TempDir(), "history", "history.jsonl"))
		}},
		{name: "sqlite", open: func(t *testing.T) ports.HistoryRepository {
			store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"), 0)
			require.False(t, store.Degraded())
			t.Cleanup(func() { _ = store.Close() })
			return store
		}},
		{name: "memory", open: func(t *testing.T) ports.HistoryRepository {
			return NewMemoryStore(nil)
		}},
	}
}

func seed(t *testing.T, store ports.HistoryRepository, now time.Time) {
	t.Helper()
	require.NoError(t, store.Save(record("a", "2+2", "4", now.Add(-3*time.Minute))))
	require.NoError(t, store.Save(record("b", "convert 100 dollars to euros", "100 USD is approximately 85.00 EUR", now.Add(-2*time.Minute))))
	rec := record("c", "hello", domain.MsgVoiceFailure, now.Add(-time.Minute))
	rec.IsManual = true
	require.NoError(t, store.Save(rec))
}

func ids(records []domain.CalculationRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestStoresRecords(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.open(t)
			seed(t, store, time.Now())

			all, err := store.Records(0, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b", "a"}, ids(all))
			assert.True(t, all[0].IsManual)
			assert.Equal(t, domain.DomainScientific, all[0].Domain)
			assert.Equal(t, domain.StageDirect, all[0].Stage)

			limited, err := store.Records(2, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"c", "b"}, ids(limited))

			found, err := store.Records(0, "eur")
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, ids(found))

			require.NoError(t, store.Clear())
			empty, err := store.Records(0, "")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStoresPrune(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.open(t)
			now := time.Now()
			require.NoError(t, store.Save(record("old", "1+1", "2", now.AddDate(0, 0, -40))))
			require.NoError(t, store.Save(record("new", "2+2", "4", now)))

			require.NoError(t, store.PruneOlderThan(0))
			all, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, all, 2)

			require.NoError(t, store.PruneOlderThan(30))
			all, err = store.Records(0, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"new"}, ids(all))
		})
	}
}

func TestStoresExport(t *testing.T) {
	for _, tc := range storeCases() {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.open(t)
			seed(t, store, time.Now())

			dest := filepath.Join(t.TempDir(), "out", "export.jsonl")
			require.NoError(t, store.ExportJSON(dest))

			file, err := os.Open(dest)
			require.NoError(t, err)
			defer file.Close()
			var lines int
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				lines++
			}
			require.NoError(t, scanner.Err())
			assert.Equal(t, 3, lines)
		})
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	store := NewFileStore(path)
	require.NoError(t, store.Save(record("a", "1+1", "2", time.Now())))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, store.Save(record("b", "2+2", "4", time.Now())))
	all, err := store.Records(0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(all))
}

func TestSQLiteStoreFallsBackToJSONL(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewSQLiteStore(filepath.Join(blocker, "history.db"), 0)
	assert.True(t, store.Degraded())
	assert.Equal(t, filepath.Join(blocker, "history.jsonl"), store.Path())
	assert.Error(t, store.Save(record("a", "1+1", "2", time.Now())))
}

func TestMemoryStoreSharesSessionHistory(t *testing.T) {
	h := domain.NewHistory()
	store := NewMemoryStore(h)
	rec := h.Record("3*3", "9", false)

	all, err := store.Records(0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{rec.ID}, ids(all))
	assert.Empty(t, store.Path())
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	mem := New(domain.HistorySettings{Backend: domain.HistoryBackendMemory})
	assert.IsType(t, &MemoryStore{}, mem)

	jsonl := New(domain.HistorySettings{Backend: domain.HistoryBackendJSONL, Path: filepath.Join(dir, "h.jsonl")})
	assert.IsType(t, &FileStore{}, jsonl)
	assert.Equal(t, filepath.Join(dir, "h.jsonl"), jsonl.Path())

	sqlite := New(domain.HistorySettings{Backend: domain.HistoryBackendSQLite, Path: filepath.Join(dir, "h.db")})
	require.IsType(t, &SQLiteStore{}, sqlite)
	t.Cleanup(func() { _ = sqlite.(*SQLiteStore).Close() })
	assert.Equal(t, filepath.Join(dir, "h.db"), sqlite.Path())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "history.db", filepath.Base(DefaultPath(domain.HistoryBackendSQLite)))
	assert.Equal(t, "history.jsonl", filepath.Base(DefaultPath(domain.HistoryBackendJSONL)))
}
