package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// DataFilePermissions is the permission for history data files (rw-r--r--)
	DataFilePermissions = 0o644
)

// Processing delay constants
const (
	// DefaultVoiceDelay is the simulated processing time for voice transcripts
	DefaultVoiceDelay = 800 * time.Millisecond
	// DefaultManualDelay is the simulated processing time for typed input
	DefaultManualDelay = 400 * time.Millisecond
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
	// DefaultHistoryRetainDays is the default number of days to retain history
	DefaultHistoryRetainDays = 30
	// MaxHistoryAnalysisRecords is the maximum number of records to analyze
	MaxHistoryAnalysisRecords = 1000
)

// History backends
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendJSONL  = "jsonl"
	HistoryBackendMemory = "memory"
)

// Angle units
const (
	AngleRadians = "radians"
	AngleDegrees = "degrees"
)

// Speech constants
const (
	// DefaultSpeechRate is the words-per-minute rate passed to TTS commands
	DefaultSpeechRate = 175
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
	// LocaleTimeFormat mirrors the en-US toLocaleTimeString layout
	LocaleTimeFormat = "3:04:05 PM"
)
