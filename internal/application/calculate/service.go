package calculate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// Service orchestrates one calculation end-to-end: interpret, record,
// persist and speak.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Interpreter    ports.Interpreter
	History        *domain.History
	Store          ports.HistoryStore
	Speaker        ports.Speaker
	Logger         ports.Logger

	speaking sync.WaitGroup
}

// Run processes a single input. Calculation failures are part of the
// response; the error is reserved for broken wiring or configuration.
func (s *Service) Run(req domain.CalculationRequest) (domain.CalculationResponse, error) {
	if s.ConfigProvider == nil || s.Interpreter == nil || s.History == nil || s.Logger == nil {
		return domain.CalculationResponse{}, errors.New("calculate.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.CalculationResponse{}, fmt.Errorf("load config: %w", err)
	}

	hint := req.Hint
	if hint == nil {
		if hint, err = cfg.ModeHint(); err != nil {
			s.Logger.Warn("ignoring configured default mode", map[string]interface{}{"error": err.Error()})
			hint = nil
		}
	}

	outcome := s.Interpreter.InterpretAs(req.Input, hint, req.IsManual)
	fields := map[string]interface{}{
		"domain": string(outcome.Domain),
		"stage":  string(outcome.Stage),
		"manual": req.IsManual,
	}
	if outcome.Err != nil {
		fields["error"] = outcome.Err.Error()
		s.Logger.Info("calculation failed", fields)
	} else {
		s.Logger.Debug("calculation done", fields)
	}

	record := s.History.RecordOutcome(req.Input, outcome, req.IsManual)

	if cfg.IsHistoryEnabled() && s.Store != nil {
		if err := s.Store.Save(record); err != nil {
			s.Logger.Error("history save failed", err, map[string]interface{}{"record": record.ID})
		}
	}

	if req.Speak || cfg.ShouldSpeak() {
		s.speak(ctx, outcome.SpeakableText)
	}

	return domain.CalculationResponse{Outcome: outcome, Record: record}, nil
}

// speak hands text to the speaker without waiting for it.
func (s *Service) speak(ctx context.Context, text string) {
	if s.Speaker == nil || !s.Speaker.Enabled() || text == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.speaking.Add(1)
	go func() {
		defer s.speaking.Done()
		if err := s.Speaker.Speak(ctx, text); err != nil {
			s.Logger.Warn("speech failed", map[string]interface{}{"error": err.Error()})
		}
	}()
}

// Wait blocks until every pending utterance has finished.
func (s *Service) Wait() {
	s.speaking.Wait()
}
