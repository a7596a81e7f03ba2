package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/saycalc/internal/domain"
)

var (
	resultStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderOptions selects the optional diagnostic lines.
type RenderOptions struct {
	ShowStage     bool
	ShowSpeakable bool
}

// RenderResponse prints one calculation outcome.
func RenderResponse(out io.Writer, resp domain.CalculationResponse, opts RenderOptions) {
	if resp.Failed() {
		fmt.Fprintln(out, failStyle.Render(resp.ResultText))
	} else {
		fmt.Fprintln(out, resultStyle.Render(resp.ResultText))
	}

	if opts.ShowStage {
		line := fmt.Sprintf("domain: %s", displayOr(string(resp.Domain), "none"))
		if resp.Stage != domain.StageNone {
			line += fmt.Sprintf("  stage: %s", resp.Stage)
		}
		if resp.Expression != "" {
			line += fmt.Sprintf("  expression: %s", resp.Expression)
		}
		fmt.Fprintln(out, detailStyle.Render(line))
	}
	if opts.ShowSpeakable && resp.SpeakableText != resp.ResultText {
		fmt.Fprintln(out, detailStyle.Render("spoken: "+resp.SpeakableText))
	}
}

func displayOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
