package domain

import (
	"fmt"
	"time"
)

// ModeHint resolves the configured default mode into a classifier hint.
// A nil hint means the classifier decides.
func (c *Config) ModeHint() (*Domain, error) {
	return ParseDomain(c.Preferences.DefaultMode)
}

// UsesDegrees reports whether trigonometry defaults to degrees
func (c *Config) UsesDegrees() bool {
	return c.Preferences.AngleUnit == AngleDegrees
}

// ProcessingDelay returns the simulated processing time for an input source.
// Unparseable or empty values fall back to the built-in defaults.
func (c *Config) ProcessingDelay(isManual bool) time.Duration {
	raw, fallback := c.Preferences.VoiceDelay, DefaultVoiceDelay
	if isManual {
		raw, fallback = c.Preferences.ManualDelay, DefaultManualDelay
	}
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// ShouldSpeak checks if results should be spoken when the caller did not ask explicitly
func (c *Config) ShouldSpeak() bool {
	return c.Speech.Enabled && c.Preferences.SpeakResults
}

// IsHistoryEnabled checks if calculation records are persisted
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// GetHistoryBackend returns the configured backend, defaulting to sqlite
func (c *Config) GetHistoryBackend() string {
	if c.History.Backend == "" {
		return HistoryBackendSQLite
	}
	return c.History.Backend
}

// GetDisplayLimit returns how many history entries front ends should show
func (c *Config) GetDisplayLimit() int {
	if c.History.DisplayLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.History.DisplayLimit
}

// GetSpeechRate returns the configured words-per-minute rate
func (c *Config) GetSpeechRate() int {
	if c.Speech.Rate <= 0 {
		return DefaultSpeechRate
	}
	return c.Speech.Rate
}

// SetDefaultMode changes the default mode after validating it
func (c *Config) SetDefaultMode(mode string) error {
	if _, err := ParseDomain(mode); err != nil {
		return fmt.Errorf("cannot set default mode: %w", err)
	}
	if mode == "" {
		mode = ModeAuto
	}
	c.Preferences.DefaultMode = mode
	return nil
}
