package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`config_format_version: "1"
history:
  enabled: true
  backend: jsonl
  path: %s
logging:
  level: error
`, filepath.Join(dir, "history.jsonl"))
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	root, err := NewRootCmd(context.Background(), Options{})
	if err != nil {
		t.Fatalf("NewRootCmd() error = %v", err)
	}
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config", writeTestConfig(t)}, args...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return out.String()
}

func TestRootRunsFreeFormInput(t *testing.T) {
	got := executeRoot(t, "--stage", "what", "is", "2", "plus", "3")
	for _, want := range []string{"5", "domain: scientific"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestRootSubcommands(t *testing.T) {
	if got := executeRoot(t, "calc", "--mode", "money", "convert", "50", "euros", "to", "dollars"); !strings.Contains(got, "59.00 USD") {
		t.Errorf("calc output = %q", got)
	}
	if got := executeRoot(t, "rates"); !strings.Contains(got, "1 EUR = 1.18 USD") {
		t.Errorf("rates output = %q", got)
	}
	if got := executeRoot(t, "version"); !strings.Contains(got, "SAYCALC version") {
		t.Errorf("version output = %q", got)
	}
}
