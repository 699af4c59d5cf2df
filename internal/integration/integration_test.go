// internal/integration/integration_test.go
// End-to-end CLI runs: both named scenarios through the real app
// entrypoint, checking the contrast the engine exists to measure.

package integration

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"branesim/internal/app"
	"branesim/pkg/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runJSONL(t *testing.T, name string) ([]api.ReportV1, api.SummaryV1) {
	t.Helper()
	var out, errb bytes.Buffer
	code := app.Run([]string{
		"-scenario", name, "-grid", "96", "-length", "10",
		"-duration", "0.5", "-dt", "0.005", "-report-interval", "0.1",
		"-output", "jsonl", "-summary", "-quiet",
	}, &out, &errb)
	require.Equal(t, 0, code, "stderr: %s", errb.String())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	reports := make([]api.ReportV1, 0, len(lines)-1)
	for _, l := range lines[:len(lines)-1] {
		var r api.ReportV1
		require.NoError(t, json.Unmarshal([]byte(l), &r), "line %q", l)
		reports = append(reports, r)
	}
	var sum api.SummaryV1
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &sum))
	return reports, sum
}

func TestSmoothAgainstCliffEndToEnd(t *testing.T) {
	smoothReports, smoothSum := runJSONL(t, "smooth")
	cliffReports, cliffSum := runJSONL(t, "cliff")

	// Smooth regime conserves energy to 1%.
	first, last := smoothReports[0], smoothReports[len(smoothReports)-1]
	require.NotZero(t, first.TotalEnergy)
	drift := (last.TotalEnergy - first.TotalEnergy) / first.TotalEnergy
	if drift < 0 {
		drift = -drift
	}
	assert.Less(t, drift, 0.01)

	// Entropy is monotone in both regimes.
	for _, reports := range [][]api.ReportV1{smoothReports, cliffReports} {
		for i := 1; i < len(reports); i++ {
			assert.GreaterOrEqual(t, reports[i].Entropy, reports[i-1].Entropy-1e-6)
		}
	}

	// The coercive run announces itself in the signature stats.
	assert.Greater(t, cliffSum.PeakAccel, 10*smoothSum.PeakAccel)
	assert.Greater(t, cliffSum.FinalEntropy, smoothSum.FinalEntropy)
	assert.NotEqual(t, smoothSum.RunID, cliffSum.RunID)
}

func TestConcurrentScenarioRuns(t *testing.T) {
	// Step functions are pure, so independent runs may share nothing
	// and still race-detect clean.
	done := make(chan int, 4)
	for i := 0; i < 4; i++ {
		go func() {
			var out, errb bytes.Buffer
			done <- app.Run([]string{
				"-scenario", "smooth", "-grid", "64", "-duration", "0.1",
				"-dt", "0.005", "-output", "tsv", "-quiet",
			}, &out, &errb)
		}()
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, <-done)
	}
}
