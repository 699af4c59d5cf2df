// pkg/api/reports_v1.go
package api

import (
	"encoding/json"
	"math"
)

// ReportV1 is the stable JSON/JSONL schema for conservation reports.
// Keep fields, names, and types stable. Add new fields only with
// ",omitempty".
type ReportV1 struct {
	Time                 float64 `json:"time"`
	TotalEnergy          float64 `json:"total_energy"`
	EnergyDelta          float64 `json:"energy_delta"`
	Entropy              float64 `json:"entropy"`
	EntropyRate          float64 `json:"entropy_rate"`
	SecondLawViolation   bool    `json:"second_law_violation"`
	JunctionResidual     float64 `json:"junction_residual"`
	JunctionSatisfied    bool    `json:"junction_satisfied"`
	ConservationResidual float64 `json:"conservation_residual"`
	Conserved            bool    `json:"conserved"`
}

// MarshalJSON encodes a non-finite junction residual as null. The
// monitor reports +Inf when a superluminal transient leaves no valid
// membrane frame; JSON has no representation for it, and the residual
// carries no information beyond JunctionSatisfied=false in that case.
func (r ReportV1) MarshalJSON() ([]byte, error) {
	type plain ReportV1
	if !math.IsInf(r.JunctionResidual, 0) && !math.IsNaN(r.JunctionResidual) {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		JunctionResidual *float64 `json:"junction_residual"`
	}{plain: plain(r)})
}

// SummaryV1 is the stable schema for per-run aggregates.
type SummaryV1 struct {
	RunID        string  `json:"run_id"`
	Scenario     string  `json:"scenario"`
	Steps        int     `json:"steps"`
	FinalTime    float64 `json:"final_time"`
	FinalEnergy  float64 `json:"final_energy"`
	EnergyDrift  float64 `json:"energy_drift"`
	FinalEntropy float64 `json:"final_entropy"`
	PeakAccel    float64 `json:"peak_accel"`
	OrbitClass   string  `json:"orbit_class"`
	Violations   int     `json:"violations"`
	ProperTime   float64 `json:"proper_time"`
}
