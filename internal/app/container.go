package app

import (
	"context"
	"errors"

	"github.com/doeshing/saycalc/internal/application/calculate"
	"github.com/doeshing/saycalc/internal/application/doctor"
	"github.com/doeshing/saycalc/internal/calc"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/infrastructure/config"
	"github.com/doeshing/saycalc/internal/infrastructure/history"
	"github.com/doeshing/saycalc/internal/infrastructure/mathengine"
	"github.com/doeshing/saycalc/internal/infrastructure/speech"
	"github.com/doeshing/saycalc/internal/pkg/logger"
	"github.com/doeshing/saycalc/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	CalculateService *calculate.Service
	Interpreter      *calc.Interpreter
	ConfigProvider   ports.ConfigProvider
	ConfigLoader     *config.FileLoader
	DoctorService    *doctor.Service
	HistoryStore     ports.HistoryRepository
	Speaker          *speech.CommandSpeaker
	Logger           *logger.ZapLogger
}

// BuildContainer constructs the dependency graph. An empty configPath uses
// the default location.
func BuildContainer(ctx context.Context, verbose bool, configPath string) (*Container, error) {
	cfgLoader := config.NewFileLoader(configPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logging.Level, verbose)
	if err != nil {
		return nil, err
	}

	engine := mathengine.New(cfg.UsesDegrees())
	interpreter := calc.NewInterpreter(engine)
	speaker := speech.NewCommandSpeaker(cfg.Speech)

	session := domain.NewHistory()
	var historyStore ports.HistoryRepository
	if cfg.GetHistoryBackend() == domain.HistoryBackendMemory {
		historyStore = history.NewMemoryStore(session)
	} else {
		historyStore = history.New(cfg.History)
	}
	if d, ok := historyStore.(interface{ Degraded() bool }); ok && d.Degraded() {
		log.Warn("sqlite history unavailable, using jsonl", map[string]interface{}{"path": historyStore.Path()})
	}

	calculateService := &calculate.Service{
		ConfigProvider: cfgLoader,
		Interpreter:    interpreter,
		History:        session,
		Store:          historyStore,
		Speaker:        speaker,
		Logger:         log,
	}
	// The memory backend already shares the session history.
	if cfg.GetHistoryBackend() == domain.HistoryBackendMemory {
		calculateService.Store = nil
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		HistoryStore:   historyStore,
		MathEngine:     engine,
		Speaker:        speaker,
	}

	return &Container{
		CalculateService: calculateService,
		Interpreter:      interpreter,
		ConfigProvider:   cfgLoader,
		ConfigLoader:     cfgLoader,
		DoctorService:    doctorService,
		HistoryStore:     historyStore,
		Speaker:          speaker,
		Logger:           log,
	}, nil
}

// Close waits for pending speech and releases the history store and logger.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.CalculateService != nil {
		c.CalculateService.Wait()
	}
	var errs []error
	if closer, ok := c.HistoryStore.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if c.Logger != nil {
		// Sync on stderr returns EINVAL on some platforms; ignore it.
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
