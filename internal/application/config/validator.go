package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/saycalc/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.ConfigFormatVersion != "" && cfg.ConfigFormatVersion != "1" {
		return fmt.Errorf("config_format_version %s is not supported", cfg.ConfigFormatVersion)
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateSpeech(cfg.Speech); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	return validateLogging(cfg.Logging)
}

func validatePreferences(prefs domain.Preferences) error {
	if _, err := domain.ParseDomain(prefs.DefaultMode); err != nil {
		return fmt.Errorf("preferences.default_mode: %w", err)
	}
	switch strings.ToLower(prefs.AngleUnit) {
	case "", domain.AngleRadians, domain.AngleDegrees:
	default:
		return fmt.Errorf("preferences.angle_unit must be radians|degrees, got %s", prefs.AngleUnit)
	}
	if err := validateDelay("preferences.voice_delay", prefs.VoiceDelay); err != nil {
		return err
	}
	return validateDelay("preferences.manual_delay", prefs.ManualDelay)
}

func validateDelay(field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s invalid: %w", field, err)
	}
	if d < 0 {
		return fmt.Errorf("%s must be >= 0", field)
	}
	return nil
}

func validateSpeech(speech domain.SpeechSettings) error {
	if speech.Rate < 0 {
		return fmt.Errorf("speech.rate must be >= 0")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch history.Backend {
	case "", domain.HistoryBackendSQLite, domain.HistoryBackendJSONL, domain.HistoryBackendMemory:
	default:
		return fmt.Errorf("history.backend must be sqlite|jsonl|memory, got %s", history.Backend)
	}
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	if history.DisplayLimit < 0 {
		return fmt.Errorf("history.display_limit must be >= 0")
	}
	return nil
}

func validateLogging(logging domain.LoggingSettings) error {
	switch strings.ToLower(logging.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", logging.Level)
	}
}
