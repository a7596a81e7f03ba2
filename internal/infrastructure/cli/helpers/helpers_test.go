package helpers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/saycalc/internal/domain"
)

func TestNestedMapHelpers(t *testing.T) {
	root := map[string]interface{}{
		"preferences": map[string]interface{}{"default_mode": "auto"},
		"logging":     "flat",
	}

	if !SetNestedMapValue(root, []string{"preferences", "default_mode"}, "money") {
		t.Fatal("set failed")
	}
	if !SetNestedMapValue(root, []string{"logging", "level"}, "debug") {
		t.Fatal("set over scalar failed")
	}
	if SetNestedMapValue(root, nil, "x") {
		t.Fatal("empty key path should fail")
	}

	got, ok := TraverseNestedMap(root, []string{"preferences", "default_mode"})
	if !ok || got != "money" {
		t.Fatalf("traverse = %v, %v", got, ok)
	}
	if got, ok := TraverseNestedMap(root, []string{"logging", "level"}); !ok || got != "debug" {
		t.Fatalf("traverse = %v, %v", got, ok)
	}
	if _, ok := TraverseNestedMap(root, []string{"speech", "rate"}); ok {
		t.Fatal("missing key reported as found")
	}
}

func TestParseYAMLValue(t *testing.T) {
	tests := []struct {
		input string
		want  interface{}
	}{
		{"true", true},
		{"175", 175},
		{"money", "money"},
		{"800ms", "800ms"},
	}
	for _, tt := range tests {
		got, err := ParseYAMLValue(tt.input)
		if err != nil {
			t.Fatalf("ParseYAMLValue(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseYAMLValue(%q) = %#v, want %#v", tt.input, got, tt.want)
		}
	}
}

func TestAnalyzeRecords(t *testing.T) {
	records := []domain.CalculationRecord{
		{Input: "2+2", Result: "2+2 = 4", Domain: domain.DomainScientific, Stage: domain.StageDirect, IsManual: true},
		{Input: "2+2 ", Result: "2+2 = 4", Domain: domain.DomainScientific, Stage: domain.StageDirect},
		{Input: "hello", Result: domain.MsgVoiceFailure, Domain: domain.DomainScientific, Stage: domain.StageFailed},
		{Input: "circle radius 3", Result: "28.27 square units", Domain: domain.DomainArea},
		{Input: "", Result: domain.MsgUnsupported, IsManual: true},
	}

	stats := AnalyzeRecords(records)
	want := HistoryStats{
		Total:    5,
		Manual:   2,
		Voice:    3,
		Failed:   2,
		ByDomain: map[domain.Domain]int{domain.DomainScientific: 3, domain.DomainArea: 1},
		ByStage:  map[domain.Stage]int{domain.StageDirect: 2, domain.StageFailed: 1},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("AnalyzeRecords mismatch (-want +got):\n%s", diff)
	}

	top := CalculateTopInputs(records, 2)
	wantTop := []InputStatistic{{Input: "2+2", Count: 2}, {Input: "", Count: 1}}
	if diff := cmp.Diff(wantTop, top); diff != "" {
		t.Fatalf("CalculateTopInputs mismatch (-want +got):\n%s", diff)
	}

	if got := Percentage(1, 4); got != 25 {
		t.Fatalf("Percentage = %v", got)
	}
	if got := Percentage(1, 0); got != 0 {
		t.Fatalf("Percentage(_, 0) = %v", got)
	}
}
