package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/domain"
)

func newTestContainer(t *testing.T) (*app.Container, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf(`config_format_version: "1"
history:
  enabled: true
  backend: jsonl
  path: %s
logging:
  level: error
`, filepath.Join(dir, "history.jsonl"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	container, err := app.BuildContainer(context.Background(), false, cfgPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })
	return container, cfgPath
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func calculate(t *testing.T, container *app.Container, input string, manual bool) {
	t.Helper()
	_, err := container.CalculateService.Run(domain.CalculationRequest{
		Context:  context.Background(),
		Input:    input,
		IsManual: manual,
	})
	require.NoError(t, err)
}

func TestHistoryCommands(t *testing.T) {
	container, _ := newTestContainer(t)

	out, err := run(t, NewHistoryCommand(container), "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistoryRecorded)

	calculate(t, container, "2 + 3", true)
	calculate(t, container, "circle with radius 3", false)
	calculate(t, container, "convert 100 dollars to euros", true)

	out, err = run(t, NewHistoryCommand(container), "list", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "convert 100 dollars to euros")
	assert.Contains(t, lines[0], "money")
	assert.Contains(t, lines[1], "voice")

	out, err = run(t, NewHistoryCommand(container), "search", "--query", "RADIUS")
	require.NoError(t, err)
	assert.Contains(t, out, "28.27 square units")
	assert.NotContains(t, out, "dollars")

	_, err = run(t, NewHistoryCommand(container), "search")
	assert.EqualError(t, err, ErrQueryRequired)

	out, err = run(t, NewHistoryCommand(container), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries analyzed: 3")
	assert.Contains(t, out, "Manual: 2  Voice: 1")
	assert.Contains(t, out, "area: 1")

	export := filepath.Join(t.TempDir(), "out", "history.jsonl")
	_, err = run(t, NewHistoryCommand(container), "export", export)
	require.NoError(t, err)
	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))

	_, err = run(t, NewHistoryCommand(container), "clear")
	require.NoError(t, err)
	records, err := container.HistoryStore.Records(0, "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRetainUpdatesConfig(t *testing.T) {
	container, _ := newTestContainer(t)

	_, err := run(t, NewHistoryCommand(container), "retain", "--days", "0")
	assert.EqualError(t, err, ErrInvalidRetainDays)

	out, err := run(t, NewHistoryCommand(container), "retain", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Retained last 7 days")

	cfg, err := container.ConfigProvider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.RetentionDays)
}

func TestConfigCommands(t *testing.T) {
	container, cfgPath := newTestContainer(t)

	out, err := run(t, NewConfigCommand(container), "get", "--key", "preferences.default_mode")
	require.NoError(t, err)
	assert.Equal(t, "auto\n", out)

	_, err = run(t, NewConfigCommand(container), "set", "preferences.default_mode", "money")
	require.NoError(t, err)
	out, err = run(t, NewConfigCommand(container), "get", "preferences.default_mode")
	require.NoError(t, err)
	assert.Equal(t, "money\n", out)

	_, err = run(t, NewConfigCommand(container), "set", "preferences.angle_unit", "gradians")
	assert.ErrorContains(t, err, "angle_unit")

	_, err = run(t, NewConfigCommand(container), "set", "preferences.colour", "blue")
	assert.ErrorContains(t, err, "not found")

	out, err = run(t, NewConfigCommand(container), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "money")

	out, err = run(t, NewConfigCommand(container), "validate")
	require.NoError(t, err)
	assert.Contains(t, out, MsgConfigurationValid)

	out, err = run(t, NewConfigCommand(container), "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)

	out, err = run(t, NewConfigCommand(container), "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Previous configuration saved to")

	out, err = run(t, NewConfigCommand(container), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoDifferencesFromDefault)
}

func TestRatesCommand(t *testing.T) {
	container, _ := newTestContainer(t)
	out, err := run(t, NewRatesCommand(container))
	require.NoError(t, err)
	assert.Contains(t, out, "1 USD = 0.85 EUR")
	assert.Contains(t, out, "1 JPY = 0.0053 GBP")
	assert.Contains(t, out, "Japanese yen")
}

func TestDoctorCommand(t *testing.T) {
	container, _ := newTestContainer(t)
	out, err := run(t, NewDoctorCommand(container))
	require.NoError(t, err)
	assert.Contains(t, out, "Math engine - 2+3*4 = 14")
	assert.Contains(t, out, "History - jsonl")
	assert.Contains(t, out, "Speech - disabled in config")
	assert.Contains(t, out, "fix: saycalc config set speech.enabled true")
	assert.Contains(t, out, "Overall: warn")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "SAYCALC version dev")
}
