// internal/output/writers.go
// Report writers for the four CLI formats. Text and TSV share one
// tabular path; JSON buffers the array, JSONL streams line by line.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"branesim/pkg/api"
)

var columns = []string{
	"time", "total_energy", "energy_delta", "entropy", "entropy_rate",
	"second_law_violation", "junction_residual", "junction_satisfied",
	"conservation_residual", "conserved",
}

// WriteTable prints one row per report, tab-separated. Used for both
// text and tsv formats; header is optional.
func WriteTable(w io.Writer, reports []api.ReportV1, header bool) error {
	if header {
		if err := writeRow(w, columns); err != nil {
			return err
		}
	}
	for _, r := range reports {
		row := []string{
			num(r.Time), num(r.TotalEnergy), num(r.EnergyDelta),
			num(r.Entropy), num(r.EntropyRate),
			strconv.FormatBool(r.SecondLawViolation),
			num(r.JunctionResidual),
			strconv.FormatBool(r.JunctionSatisfied),
			num(r.ConservationResidual),
			strconv.FormatBool(r.Conserved),
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string) error {
	for i, c := range cells {
		sep := "\t"
		if i == len(cells)-1 {
			sep = "\n"
		}
		if _, err := io.WriteString(w, c+sep); err != nil {
			return err
		}
	}
	return nil
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }

// WriteJSON emits the report array as one indented document.
func WriteJSON(w io.Writer, reports []api.ReportV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// WriteJSONL streams one JSON object per line.
func WriteJSONL(w io.Writer, reports []api.ReportV1) error {
	enc := json.NewEncoder(w)
	for _, r := range reports {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary appends the run summary in the requested format. For
// tabular formats it is a labelled block after the rows.
func WriteSummary(w io.Writer, s api.SummaryV1, format string) error {
	switch format {
	case "json", "jsonl":
		return json.NewEncoder(w).Encode(s)
	default:
		_, err := fmt.Fprintf(w,
			"# run %s scenario=%s steps=%d t=%s E=%s drift=%s s=%s peak=%s class=%s violations=%d tau=%s\n",
			s.RunID, s.Scenario, s.Steps, num(s.FinalTime), num(s.FinalEnergy),
			num(s.EnergyDrift), num(s.FinalEntropy), num(s.PeakAccel),
			s.OrbitClass, s.Violations, num(s.ProperTime))
		return err
	}
}
