package speech

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/doeshing/saycalc/internal/ports"
)

// LineTranscriber reads one utterance per line from an interactive terminal,
// with line editing and in-session history.
type LineTranscriber struct {
	line   *liner.State
	prompt string
}

// NewLineTranscriber takes over the terminal until Close is called.
func NewLineTranscriber(prompt string) *LineTranscriber {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LineTranscriber{line: line, prompt: prompt}
}

// Next returns the next non-empty line. Ctrl+C and Ctrl+D end the stream with io.EOF.
func (t *LineTranscriber) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		input, err := t.line.Prompt(t.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		t.line.AppendHistory(input)
		return input, nil
	}
}

// Close restores the terminal.
func (t *LineTranscriber) Close() error {
	return t.line.Close()
}

// ReaderTranscriber reads utterances from a plain stream such as piped stdin.
type ReaderTranscriber struct {
	scanner *bufio.Scanner
}

// NewReaderTranscriber wraps r. The caller keeps ownership of r.
func NewReaderTranscriber(r io.Reader) *ReaderTranscriber {
	return &ReaderTranscriber{scanner: bufio.NewScanner(r)}
}

// Next returns the next non-empty line, or io.EOF.
func (t *ReaderTranscriber) Next(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		if line := strings.TrimSpace(t.scanner.Text()); line != "" {
			return line, nil
		}
	}
}

// Close is a no-op; the reader belongs to whoever passed it in.
func (t *ReaderTranscriber) Close() error {
	return nil
}

var (
	_ ports.TranscriptSource = (*LineTranscriber)(nil)
	_ ports.TranscriptSource = (*ReaderTranscriber)(nil)
)
