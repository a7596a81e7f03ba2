package calculate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/doeshing/saycalc/internal/domain"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type call struct {
	raw      string
	hint     *domain.Domain
	isManual bool
}

type stubInterpreter struct {
	outcome domain.Outcome
	calls   []call
}

func (s *stubInterpreter) InterpretAs(raw string, hint *domain.Domain, isManual bool) domain.Outcome {
	s.calls = append(s.calls, call{raw: raw, hint: hint, isManual: isManual})
	return s.outcome
}

type stubStore struct {
	saved []domain.CalculationRecord
	err   error
}

func (s *stubStore) Save(rec domain.CalculationRecord) error {
	s.saved = append(s.saved, rec)
	return s.err
}

type stubSpeaker struct {
	mu      sync.Mutex
	spoken  []string
	enabled bool
	err     error
}

func (s *stubSpeaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return s.err
}

func (s *stubSpeaker) Enabled() bool { return s.enabled }

func (s *stubSpeaker) said() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type stubLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *stubLogger) Debug(string, map[string]interface{}) {}
func (l *stubLogger) Info(string, map[string]interface{})  {}
func (l *stubLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}
func (l *stubLogger) Error(msg string, _ error, _ map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func enabledHistory() domain.Config {
	return domain.Config{History: domain.HistorySettings{Enabled: true}}
}

func TestServiceRunRecordsAndPersists(t *testing.T) {
	interp := &stubInterpreter{outcome: domain.Outcome{
		ResultText:    "14",
		SpeakableText: "14",
		Domain:        domain.DomainScientific,
		Stage:         domain.StageDirect,
	}}
	store := &stubStore{}
	history := domain.NewHistory()
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: enabledHistory()},
		Interpreter:    interp,
		History:        history,
		Store:          store,
		Logger:         &stubLogger{},
	}

	resp, err := svc.Run(domain.CalculationRequest{Input: "2+3*4", IsManual: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.ResultText != "14" || resp.Record.Result != "14" || !resp.Record.IsManual {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Record.Stage != domain.StageDirect || resp.Record.Domain != domain.DomainScientific {
		t.Fatalf("record diagnostics = %+v", resp.Record)
	}
	if history.Len() != 1 {
		t.Fatalf("history length = %d", history.Len())
	}
	if len(store.saved) != 1 || store.saved[0].ID != resp.Record.ID {
		t.Fatalf("store saved = %+v", store.saved)
	}
	if len(interp.calls) != 1 || interp.calls[0].hint != nil || !interp.calls[0].isManual {
		t.Fatalf("interpreter calls = %+v", interp.calls)
	}
}

func TestServiceRunUsesConfiguredMode(t *testing.T) {
	cfg := enabledHistory()
	cfg.Preferences.DefaultMode = "money"
	interp := &stubInterpreter{}
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: cfg},
		Interpreter:    interp,
		History:        domain.NewHistory(),
		Logger:         &stubLogger{},
	}

	if _, err := svc.Run(domain.CalculationRequest{Input: "5 + 5"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	area := domain.DomainArea
	if _, err := svc.Run(domain.CalculationRequest{Input: "5 + 5", Hint: &area}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := interp.calls[0].hint; got == nil || *got != domain.DomainMoney {
		t.Fatalf("configured hint = %v", got)
	}
	if got := interp.calls[1].hint; got == nil || *got != domain.DomainArea {
		t.Fatalf("request hint = %v", got)
	}
}

func TestServiceRunRecordsFailures(t *testing.T) {
	interp := &stubInterpreter{outcome: domain.Outcome{
		ResultText: domain.MsgVoiceFailure,
		Stage:      domain.StageFailed,
		Err:        domain.NewCalcError(domain.ErrExpression, domain.MsgNoExpressionFound),
	}}
	history := domain.NewHistory()
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: enabledHistory()},
		Interpreter:    interp,
		History:        history,
		Logger:         &stubLogger{},
	}

	resp, err := svc.Run(domain.CalculationRequest{Input: "hello"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !resp.Failed() || !errors.Is(resp.Err, domain.ErrExpression) {
		t.Fatalf("outcome = %+v", resp.Outcome)
	}
	if records := history.Records(); len(records) != 1 || records[0].Result != domain.MsgVoiceFailure {
		t.Fatalf("history = %+v", records)
	}
}

func TestServiceRunStoreFailureIsBestEffort(t *testing.T) {
	log := &stubLogger{}
	store := &stubStore{err: errors.New("disk full")}
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: enabledHistory()},
		Interpreter:    &stubInterpreter{outcome: domain.Outcome{ResultText: "4"}},
		History:        domain.NewHistory(),
		Store:          store,
		Logger:         log,
	}

	if _, err := svc.Run(domain.CalculationRequest{Input: "2+2"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(log.errors) != 1 {
		t.Fatalf("logged errors = %v", log.errors)
	}
}

func TestServiceRunSkipsStoreWhenHistoryDisabled(t *testing.T) {
	store := &stubStore{}
	svc := &Service{
		ConfigProvider: stubConfigProvider{},
		Interpreter:    &stubInterpreter{outcome: domain.Outcome{ResultText: "4"}},
		History:        domain.NewHistory(),
		Store:          store,
		Logger:         &stubLogger{},
	}
	if _, err := svc.Run(domain.CalculationRequest{Input: "2+2"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("store saved = %+v", store.saved)
	}
}

func TestServiceRunSpeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	speaker := &stubSpeaker{enabled: true, err: errors.New("no audio")}
	log := &stubLogger{}
	svc := &Service{
		ConfigProvider: stubConfigProvider{},
		Interpreter:    &stubInterpreter{outcome: domain.Outcome{ResultText: "1234", SpeakableText: "1,234"}},
		History:        domain.NewHistory(),
		Speaker:        speaker,
		Logger:         log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := svc.Run(domain.CalculationRequest{Context: ctx, Input: "1234", Speak: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	cancel()
	if _, err := svc.Run(domain.CalculationRequest{Input: "1234"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	svc.Wait()

	if got := speaker.said(); len(got) != 1 || got[0] != "1,234" {
		t.Fatalf("spoken = %v", got)
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.warns) != 1 {
		t.Fatalf("warnings = %v", log.warns)
	}
}

func TestServiceRunSilentWhenSpeakerDisabled(t *testing.T) {
	speaker := &stubSpeaker{}
	svc := &Service{
		ConfigProvider: stubConfigProvider{},
		Interpreter:    &stubInterpreter{outcome: domain.Outcome{SpeakableText: "4"}},
		History:        domain.NewHistory(),
		Speaker:        speaker,
		Logger:         &stubLogger{},
	}
	if _, err := svc.Run(domain.CalculationRequest{Input: "2+2", Speak: true}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	svc.Wait()
	if len(speaker.said()) != 0 {
		t.Fatalf("spoken = %v", speaker.said())
	}
}

func TestServiceRunErrors(t *testing.T) {
	if _, err := (&Service{}).Run(domain.CalculationRequest{Input: "1"}); err == nil {
		t.Fatal("expected wiring error")
	}

	svc := &Service{
		ConfigProvider: stubConfigProvider{err: errors.New("broken yaml")},
		Interpreter:    &stubInterpreter{},
		History:        domain.NewHistory(),
		Logger:         &stubLogger{},
	}
	if _, err := svc.Run(domain.CalculationRequest{Input: "1"}); err == nil {
		t.Fatal("expected config error")
	}
}
