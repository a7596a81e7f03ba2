package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/infrastructure/cli/commands"
	"github.com/doeshing/saycalc/internal/infrastructure/speech"
	"github.com/doeshing/saycalc/internal/ports"
)

const listenPrompt = "saycalc> "

var quitWords = map[string]bool{"exit": true, "quit": true, "bye": true}

func newListenCommand(container *app.Container) *cobra.Command {
	var (
		mode  string
		speak bool
		stage bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Interactive loop treating each line as a voice transcript",
		Long: "listen reads one utterance per line (from a terminal or piped stdin),\n" +
			"evaluates it as a voice transcript and prints the result. Type exit to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			hint, err := domain.ParseDomain(mode)
			if err != nil {
				return err
			}
			source := newTranscriptSource(cmd.InOrStdin())
			defer source.Close()
			return runListenLoop(cmd, container, source, hint, speak, stage)
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Force a domain for every utterance")
	cmd.Flags().BoolVarP(&speak, "speak", "s", false, "Speak each result aloud")
	cmd.Flags().BoolVar(&stage, "stage", false, "Show domain, evaluation stage and expression")
	return cmd
}

// newTranscriptSource uses line editing on an interactive stdin and a plain
// scanner otherwise.
func newTranscriptSource(in io.Reader) ports.TranscriptSource {
	if f, ok := in.(*os.File); ok && f == os.Stdin && isatty.IsTerminal(f.Fd()) {
		return speech.NewLineTranscriber(listenPrompt)
	}
	return speech.NewReaderTranscriber(in)
}

func runListenLoop(cmd *cobra.Command, container *app.Container, source ports.TranscriptSource, hint *domain.Domain, speak, stage bool) error {
	if container.CalculateService == nil || container.ConfigProvider == nil {
		return errors.New(commands.ErrCalculateServiceUnavailable)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	spinner := NewSpinner(cmd.ErrOrStderr(), "Calculating...")

	for {
		utterance, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quitWords[strings.ToLower(utterance)] {
			return nil
		}

		if err := spinner.Hold(ctx, cfg.ProcessingDelay(false)); err != nil {
			return err
		}

		resp, err := container.CalculateService.Run(domain.CalculationRequest{
			Context:  ctx,
			Input:    utterance,
			Hint:     hint,
			IsManual: false,
			Speak:    speak,
		})
		if err != nil {
			return err
		}
		RenderResponse(out, resp, RenderOptions{ShowStage: stage, ShowSpeakable: stage})
	}
}
