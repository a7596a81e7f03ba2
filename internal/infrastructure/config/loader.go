package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/saycalc/assets"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/pkg/filesystem"
	"github.com/doeshing/saycalc/internal/ports"
)

// EnvConfigPath overrides the config location.
const EnvConfigPath = "SAYCALC_CONFIG"

// FileLoader loads configuration from ~/.saycalc/config.yaml (overridable via
// SAYCALC_CONFIG). A path ending in .toml is read and written as TOML.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created with defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := l.Save(cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

// Path returns the resolved config path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes cfg in the format implied by the file extension.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.resolvePath()
	raw, err := encode(path, cfg)
	if err != nil {
		return err
	}
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset overwrites the config with defaults and returns the default snapshot.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func encode(path string, cfg domain.Config) ([]byte, error) {
	if !isTOML(path) {
		return yaml.Marshal(cfg)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return hydrateDefaults(domain.Config{
			History: domain.HistorySettings{Enabled: true},
		})
	}
	return hydrateDefaults(cfg)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultMode == "" {
		cfg.Preferences.DefaultMode = domain.ModeAuto
	}
	if cfg.Preferences.AngleUnit == "" {
		cfg.Preferences.AngleUnit = domain.AngleRadians
	}
	if cfg.Preferences.VoiceDelay == "" {
		cfg.Preferences.VoiceDelay = domain.DefaultVoiceDelay.String()
	}
	if cfg.Preferences.ManualDelay == "" {
		cfg.Preferences.ManualDelay = domain.DefaultManualDelay.String()
	}
	if cfg.Speech.Rate == 0 {
		cfg.Speech.Rate = domain.DefaultSpeechRate
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendSQLite
	}
	if cfg.History.DisplayLimit == 0 {
		cfg.History.DisplayLimit = domain.DefaultHistoryLimit
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
