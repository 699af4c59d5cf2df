// internal/output/rows.go
package output

import (
	"branesim-core/conservation"
	"branesim/pkg/api"
)

// FromReport maps a core report onto the stable wire schema.
func FromReport(r conservation.Report) api.ReportV1 {
	return api.ReportV1{
		Time:                 r.Time,
		TotalEnergy:          r.TotalEnergy,
		EnergyDelta:          r.EnergyDelta,
		Entropy:              r.Entropy,
		EntropyRate:          r.EntropyRate,
		SecondLawViolation:   r.SecondLawViolation,
		JunctionResidual:     r.JunctionResidual,
		JunctionSatisfied:    r.JunctionSatisfied,
		ConservationResidual: r.ConservationResidual,
		Conserved:            r.Conserved,
	}
}

// FromReports maps a whole report slice.
func FromReports(rs []conservation.Report) []api.ReportV1 {
	out := make([]api.ReportV1, len(rs))
	for i, r := range rs {
		out[i] = FromReport(r)
	}
	return out
}
