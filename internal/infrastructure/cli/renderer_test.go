package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/doeshing/saycalc/internal/domain"
)

func TestRenderResponse(t *testing.T) {
	resp := domain.CalculationResponse{Outcome: domain.Outcome{
		ResultText:    "2+3 = 5",
		SpeakableText: "2 plus 3 equals 5",
		Domain:        domain.DomainScientific,
		Stage:         domain.StageDirect,
		Expression:    "2+3",
	}}

	var plain bytes.Buffer
	RenderResponse(&plain, resp, RenderOptions{})
	if got := plain.String(); !strings.Contains(got, "2+3 = 5") || strings.Contains(got, "stage") {
		t.Fatalf("plain render = %q", got)
	}

	var verbose bytes.Buffer
	RenderResponse(&verbose, resp, RenderOptions{ShowStage: true, ShowSpeakable: true})
	got := verbose.String()
	for _, want := range []string{"domain: scientific", "stage: direct", "expression: 2+3", "spoken: 2 plus 3 equals 5"} {
		if !strings.Contains(got, want) {
			t.Errorf("render missing %q in %q", want, got)
		}
	}
}

func TestRenderResponseFailure(t *testing.T) {
	resp := domain.CalculationResponse{Outcome: domain.Outcome{
		ResultText:    domain.MsgUnsupported,
		SpeakableText: domain.MsgUnsupported,
		Err:           domain.ErrUnsupportedInput,
	}}
	var out bytes.Buffer
	RenderResponse(&out, resp, RenderOptions{ShowStage: true, ShowSpeakable: true})
	got := out.String()
	if !strings.Contains(got, domain.MsgUnsupported) || !strings.Contains(got, "domain: none") {
		t.Fatalf("render = %q", got)
	}
	if strings.Contains(got, "spoken:") {
		t.Fatalf("identical speakable text should not repeat: %q", got)
	}
}
