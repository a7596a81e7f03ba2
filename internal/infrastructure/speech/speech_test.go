package speech

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/saycalc/internal/domain"
)

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestNewCommandSpeakerDetection(t *testing.T) {
	tests := []struct {
		name      string
		settings  domain.SpeechSettings
		available []string
		want      string
	}{
		{name: "disabled", settings: domain.SpeechSettings{Enabled: false}, available: []string{"say"}},
		{name: "prefers say", settings: domain.SpeechSettings{Enabled: true}, available: []string{"espeak", "say"}, want: "/usr/bin/say"},
		{name: "espeak-ng before espeak", settings: domain.SpeechSettings{Enabled: true}, available: []string{"espeak", "espeak-ng"}, want: "/usr/bin/espeak-ng"},
		{name: "configured command", settings: domain.SpeechSettings{Enabled: true, Command: "festival"}, available: []string{"say", "festival"}, want: "/usr/bin/festival"},
		{name: "configured command missing", settings: domain.SpeechSettings{Enabled: true, Command: "festival"}, available: []string{"say"}},
		{name: "nothing installed", settings: domain.SpeechSettings{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCommandSpeaker(tt.settings, lookPathFor(tt.available...))
			assert.Equal(t, tt.want, s.Command())
			assert.Equal(t, tt.want != "", s.Enabled())
		})
	}
}

func TestCommandSpeakerArgs(t *testing.T) {
	var gotName string
	var gotArgs []string
	s := newCommandSpeaker(domain.SpeechSettings{Enabled: true, Rate: 200}, lookPathFor("espeak"))
	s.run = func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		return nil
	}

	require.NoError(t, s.Speak(context.Background(), "1,234"))
	assert.Equal(t, "/usr/bin/espeak", gotName)
	assert.Equal(t, []string{"-s", "200", "1,234"}, gotArgs)

	s.command = "/usr/bin/say"
	require.NoError(t, s.Speak(context.Background(), "hi"))
	assert.Equal(t, []string{"-r", "200", "hi"}, gotArgs)

	s.command = "/opt/tts/custom"
	require.NoError(t, s.Speak(context.Background(), "hi"))
	assert.Equal(t, []string{"hi"}, gotArgs)
}

func TestCommandSpeakerDisabled(t *testing.T) {
	s := NewCommandSpeaker(domain.SpeechSettings{})
	assert.False(t, s.Enabled())
	assert.Error(t, s.Speak(context.Background(), "hi"))
}

func TestReaderTranscriber(t *testing.T) {
	src := NewReaderTranscriber(strings.NewReader("two plus two\n\n   \nconvert 100 dollars to euros\n"))
	ctx := context.Background()

	first, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two plus two", first)

	second, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "convert 100 dollars to euros", second)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, src.Close())
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestReaderTranscriberLeavesReaderOpen(t *testing.T) {
	in := &closeRecorder{Reader: strings.NewReader("1+1\n")}
	src := NewReaderTranscriber(in)

	line, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1+1", line)
	require.NoError(t, src.Close())
	assert.False(t, in.closed, "stdin-like readers must stay open after Close")
}

func TestReaderTranscriberHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReaderTranscriber(strings.NewReader("1+1\n")).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
