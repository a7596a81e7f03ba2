package domain

// Config mirrors ~/.saycalc/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version" toml:"config_format_version" json:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences" toml:"preferences" json:"preferences"`
	Speech              SpeechSettings  `yaml:"speech" toml:"speech" json:"speech"`
	History             HistorySettings `yaml:"history" toml:"history" json:"history"`
	Logging             LoggingSettings `yaml:"logging" toml:"logging" json:"logging"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultMode  string `yaml:"default_mode" toml:"default_mode" json:"default_mode"`
	AngleUnit    string `yaml:"angle_unit" toml:"angle_unit" json:"angle_unit"`
	VoiceDelay   string `yaml:"voice_delay" toml:"voice_delay" json:"voice_delay"`
	ManualDelay  string `yaml:"manual_delay" toml:"manual_delay" json:"manual_delay"`
	SpeakResults bool   `yaml:"speak_results" toml:"speak_results" json:"speak_results"`
}

// SpeechSettings configures the text-to-speech adapter.
type SpeechSettings struct {
	Enabled bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Command string `yaml:"command" toml:"command" json:"command"`
	Rate    int    `yaml:"rate" toml:"rate" json:"rate"`
}

// HistorySettings configures history persistence.
type HistorySettings struct {
	Enabled       bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Backend       string `yaml:"backend" toml:"backend" json:"backend"`
	Path          string `yaml:"path" toml:"path" json:"path"`
	RetentionDays int    `yaml:"retention_days" toml:"retention_days" json:"retention_days"`
	DisplayLimit  int    `yaml:"display_limit" toml:"display_limit" json:"display_limit"`
}

// LoggingSettings controls the structured logger.
type LoggingSettings struct {
	Level string `yaml:"level" toml:"level" json:"level"`
}
