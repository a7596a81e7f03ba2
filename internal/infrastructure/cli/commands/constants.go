package commands

import "github.com/doeshing/saycalc/internal/domain"

// History display defaults
const (
	DefaultHistoryLimit       = domain.DefaultHistoryLimit
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
	DefaultHistoryRetainDays  = domain.DefaultHistoryRetainDays
	MaxHistoryAnalysisRecords = domain.MaxHistoryAnalysisRecords
)

// Error messages
const (
	ErrCalculateServiceUnavailable = "calculate service unavailable"
	ErrConfigLoaderUnavailable     = "config loader unavailable"
	ErrDoctorServiceUnavailable    = "doctor service unavailable"
	ErrHistoryStoreUnavailable     = "history store unavailable"
	ErrKeyRequired                 = "--key is required"
	ErrQueryRequired               = "--query required"
	ErrInvalidRetainDays           = "--days must be > 0"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
)
