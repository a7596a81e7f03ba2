package doctor

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/saycalc/internal/application/config"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// engineProbe is a known expression and its value used to smoke-test the engine.
const (
	engineProbe     = "2+3*4"
	engineProbeWant = 14.0
)

// Remediation hints shown under failing checks.
const (
	hintConfigReset = "saycalc config reset"
	hintEngine      = "reinstall saycalc, the bundled math engine failed its self test"
	hintHistoryDir  = "check that the history directory is writable (history.path)"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	HistoryStore   ports.HistoryRepository
	MathEngine     ports.MathEngine
	Speaker        ports.Speaker
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err), hintConfigReset))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error(), hintConfigReset))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, s.engineCheck())
	checks = append(checks, s.historyCheck(cfg))
	checks = append(checks, s.speechCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) engineCheck() domain.HealthCheck {
	if s.MathEngine == nil {
		return fail("Math engine", "not initialized", hintEngine)
	}
	got, err := s.MathEngine.Evaluate(engineProbe)
	if err != nil {
		return fail("Math engine", err.Error(), hintEngine)
	}
	if got != engineProbeWant {
		return fail("Math engine", fmt.Sprintf("%s evaluated to %v, want %v", engineProbe, got, engineProbeWant), hintEngine)
	}
	return ok("Math engine", fmt.Sprintf("%s = %v", engineProbe, got))
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsHistoryEnabled() {
		return warn("History", "disabled in config", "saycalc config set history.enabled true")
	}
	if s.HistoryStore == nil {
		return warn("History", "store not initialized", "")
	}
	if _, err := s.HistoryStore.Records(1, ""); err != nil {
		return fail("History", err.Error(), hintHistoryDir)
	}
	if d, isDegradable := s.HistoryStore.(interface{ Degraded() bool }); isDegradable && d.Degraded() {
		return warn("History", fmt.Sprintf("sqlite unavailable, using %s", s.HistoryStore.Path()), hintHistoryDir)
	}
	path := s.HistoryStore.Path()
	if path == "" {
		path = "in memory"
	}
	return ok("History", fmt.Sprintf("%s (%s)", cfg.GetHistoryBackend(), path))
}

func (s *Service) speechCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.Speech.Enabled {
		return warn("Speech", "disabled in config", "saycalc config set speech.enabled true")
	}
	if s.Speaker == nil || !s.Speaker.Enabled() {
		return warn("Speech", "no text-to-speech command found (say, espeak-ng, espeak)", "install espeak-ng or set speech.command")
	}
	return ok("Speech", "text-to-speech ready")
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details, hint string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details, Hint: hint}
}

func fail(name, details, hint string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details, Hint: hint}
}
