// internal/app/app_test.go
package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branesim/pkg/api"
)

func runApp(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(argv, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRunSmoothTSV(t *testing.T) {
	code, out, _ := runApp(t,
		"-scenario", "smooth", "-grid", "64", "-duration", "0.2",
		"-dt", "0.005", "-report-interval", "0.1", "-output", "tsv", "-quiet")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3) // header + baseline + periodic reports
	assert.True(t, strings.HasPrefix(lines[0], "time\t"))
}

func TestRunJSONLWithSummary(t *testing.T) {
	code, out, _ := runApp(t,
		"-scenario", "cliff", "-grid", "64", "-duration", "0.2",
		"-dt", "0.005", "-report-interval", "0.1",
		"-output", "jsonl", "-summary", "-quiet")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	// All but the last line are reports; the last is the summary.
	var rep api.ReportV1
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rep))

	var sum api.SummaryV1
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &sum))
	assert.Equal(t, "cliff", sum.Scenario)
	assert.NotEmpty(t, sum.RunID)
	assert.Greater(t, sum.FinalEntropy, 0.0)
	assert.NotEmpty(t, sum.OrbitClass)
}

func TestRunUsageErrors(t *testing.T) {
	code, _, errOut := runApp(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "scenario")

	code, _, _ = runApp(t, "-scenario", "smooth", "-output", "xml")
	assert.Equal(t, 2, code)
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runApp(t, "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "branesim version")
}

func TestRunHelp(t *testing.T) {
	code, out, _ := runApp(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of branesim")
}

func TestRunConfigFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"scenario: smooth\ngrid: 64\nduration: 0.1\ndt: 0.005\n"), 0o644))

	// Flag overrides the file's duration; everything else merges in.
	code, out, _ := runApp(t,
		"-config", path, "-duration", "0.2", "-output", "jsonl", "-quiet")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var last api.ReportV1
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.InDelta(t, 0.2, last.Time, 1e-9)
}

func TestRunConfigFileMissing(t *testing.T) {
	code, _, errOut := runApp(t, "-config", "/nonexistent/run.yaml")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, errOut)
}
