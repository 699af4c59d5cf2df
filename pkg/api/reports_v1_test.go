// pkg/api/reports_v1_test.go
package api

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A superluminal transient reports residual +Inf, which JSON cannot
// carry; it must encode as null without losing the rest of the report.
func TestReportV1MarshalNonFiniteResidual(t *testing.T) {
	r := ReportV1{
		Time:             0.2,
		TotalEnergy:      -2.5,
		Entropy:          1.01,
		JunctionResidual: math.Inf(1),
	}
	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"junction_residual":null`)

	var back ReportV1
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.InDelta(t, -2.5, back.TotalEnergy, 1e-12)
	assert.InDelta(t, 1.01, back.Entropy, 1e-12)
	assert.Zero(t, back.JunctionResidual) // null leaves the zero value
	assert.False(t, back.JunctionSatisfied)
}

func TestReportV1MarshalFiniteResidual(t *testing.T) {
	raw, err := json.Marshal(ReportV1{JunctionResidual: 0.25, JunctionSatisfied: true})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"junction_residual":0.25`)

	raw, err = json.Marshal(ReportV1{JunctionResidual: math.NaN()})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"junction_residual":null`)
}
