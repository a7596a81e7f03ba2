// Package speech holds the voice adapters: a text-to-speech command runner
// and line-based transcript sources standing in for speech recognition.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/ports"
)

// knownEngines are probed in order when no command is configured.
var knownEngines = []string{"say", "espeak-ng", "espeak"}

// CommandSpeaker speaks by running the platform TTS command.
type CommandSpeaker struct {
	command string
	rate    int
	enabled bool
	run     func(ctx context.Context, name string, args ...string) error
}

// NewCommandSpeaker resolves the TTS command from settings. It is disabled
// when speech is off or no engine can be found.
func NewCommandSpeaker(settings domain.SpeechSettings) *CommandSpeaker {
	return newCommandSpeaker(settings, exec.LookPath)
}

func newCommandSpeaker(settings domain.SpeechSettings, lookPath func(string) (string, error)) *CommandSpeaker {
	s := &CommandSpeaker{rate: settings.Rate, run: runCommand}
	if s.rate <= 0 {
		s.rate = domain.DefaultSpeechRate
	}
	if !settings.Enabled {
		return s
	}
	candidates := knownEngines
	if settings.Command != "" {
		candidates = []string{settings.Command}
	}
	for _, name := range candidates {
		if path, err := lookPath(name); err == nil {
			s.command = path
			s.enabled = true
			break
		}
	}
	return s
}

// Enabled reports whether a TTS command was found.
func (s *CommandSpeaker) Enabled() bool {
	return s.enabled
}

// Command returns the resolved executable, empty when disabled.
func (s *CommandSpeaker) Command() string {
	return s.command
}

// Speak implements ports.Speaker.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if !s.enabled {
		return fmt.Errorf("speech disabled")
	}
	return s.run(ctx, s.command, s.args(text)...)
}

// args maps the rate flag per engine: say takes words per minute with -r,
// espeak takes the same unit with -s.
func (s *CommandSpeaker) args(text string) []string {
	rate := strconv.Itoa(s.rate)
	switch engineName(s.command) {
	case "say":
		return []string{"-r", rate, text}
	case "espeak", "espeak-ng":
		return []string{"-s", rate, text}
	default:
		return []string{text}
	}
}

func engineName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return strings.TrimSuffix(path, ".exe")
}

func runCommand(ctx context.Context, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", engineName(name), err, msg)
		}
		return fmt.Errorf("%s: %w", engineName(name), err)
	}
	return nil
}

var _ ports.Speaker = (*CommandSpeaker)(nil)
