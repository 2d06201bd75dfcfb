package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"featprep/internal/infrastructure"
	"featprep/internal/shared/testutil"
	"featprep/pkg/contracts"
	"featprep/pkg/contracts/domain"
)

// writeConfig writes a config that keeps logs and outputs inside dir
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`logging:
  level: warn
  output: console
paths:
  output_dir: %q
  logs_dir: %q
telemetry:
  trace_exporter: none
`, filepath.Join(dir, "out"), filepath.Join(dir, "logs"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sampleData(t *testing.T, dir string) string {
	rows := [][]string{{"num", "cat", "label"}}
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{fmt.Sprint(i), []string{"a", "b"}[i%2], fmt.Sprint(i % 2)})
	}
	return testutil.WriteCSVFixture(t, dir, "data.csv", rows)
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "featprep v"+contracts.Version)

	out, err = runCmd(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, contracts.Version, info["version"])
	assert.Contains(t, info, "go_version")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"run", "describe", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "log-level", "log-file", "trace"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRunCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	data := sampleData(t, dir)
	out := filepath.Join(dir, "custom")
	trace := filepath.Join(dir, "trace.json")

	stdout, err := runCmd(t, "run", "--config", cfg, "--data", data, "--target", "label", "--out", out, "--trace", trace)
	require.NoError(t, err)

	assert.Contains(t, stdout, "train")
	assert.Contains(t, stdout, "6 rows")
	assert.FileExists(t, filepath.Join(out, "train.csv"))
	assert.FileExists(t, filepath.Join(out, "feature_summary.csv"))

	spans, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Contains(t, string(spans), "featprep.fit")
}

func TestRunCmd_RequiresData(t *testing.T) {
	_, err := runCmd(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data")
}

func TestDescribeCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	data := sampleData(t, dir)

	stdout, err := runCmd(t, "describe", "--config", cfg, "--data", data, "--target", "label")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "COLUMN"))
	assert.Contains(t, lines[2], "classes=a,b fallback=a")

	stdout, err = runCmd(t, "describe", "--config", cfg, "--data", data, "--target", "label", "--json")
	require.NoError(t, err)
	var summary []domain.ColumnSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	require.Len(t, summary, 2)
	assert.Equal(t, domain.KindNumeric, summary[0].Kind)
	assert.InDelta(t, 4.5, summary[0].Mean, 1e-12)
}

func TestExecuteExitCodes(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	bad := filepath.Join(dir, "data.parquet")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0644))

	assert.Equal(t, 1, execute([]string{"describe", "--config", cfg, "--data", bad}))
	assert.Equal(t, 0, execute([]string{"version"}))
}
