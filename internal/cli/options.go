// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"branesim-core/scenario"
	"branesim/internal/version"
)

// Output formats.
const (
	FormatText  = "text"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Scenario selection
	Scenario   string
	ConfigFile string // optional YAML run file; flags override it

	// Discretization
	N              int
	DomainLength   float64
	Duration       float64
	Dt             float64
	ReportInterval float64

	// Coupling overrides; negative means "keep the scenario default"
	Lambda    float64
	Kappa     float64
	TSigma    float64
	Stiffness float64

	// Output
	Output  string
	Header  bool // true unless --no-header
	Summary bool

	// Logging
	Quiet    bool
	LogLevel string

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: two-manifold coupled dilaton-gravity simulator

Integrates two 1+1D scalar-tensor bulks joined by a dissipative
membrane worldline and audits conservation laws along the way.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Scenario
	fs.StringVar(&opt.Scenario, "scenario", "", "named scenario: smooth | cliff [*]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run file (flags override its values)")

	// Discretization
	fs.IntVar(&opt.N, "grid", 256, "spatial grid points [256]")
	fs.Float64Var(&opt.DomainLength, "length", 10, "domain length L [10]")
	fs.Float64Var(&opt.Duration, "duration", 1.0, "simulated time span [1.0]")
	fs.Float64Var(&opt.Dt, "dt", 0.002, "fixed integrator step [0.002]")
	fs.Float64Var(&opt.ReportInterval, "report-interval", 0.1, "time between conservation reports [0.1]")

	// Coupling constants
	fs.Float64Var(&opt.Lambda, "lambda", -1, "flux-to-force coupling λ (-1 = default)")
	fs.Float64Var(&opt.Kappa, "kappa", -1, "entropy dissipation κ (-1 = default)")
	fs.Float64Var(&opt.TSigma, "t-sigma", -1, "interface temperature T_Σ (-1 = default)")
	fs.Float64Var(&opt.Stiffness, "stiffness", -1, "junction penalty stiffness (-1 = default)")

	// Output
	fs.StringVar(&opt.Output, "output", FormatText, "output format: text | tsv | json | jsonl [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Summary, "summary", false, "append the run summary (orbit class, peaks) [false]")

	// Logging
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	if opt.Scenario == "" && opt.ConfigFile == "" {
		return opt, errors.New("provide --scenario or --config")
	}
	if opt.Scenario != "" {
		if err := knownScenario(opt.Scenario); err != nil {
			return opt, err
		}
	}
	if opt.N < 4 {
		return opt, errors.New("--grid must be ≥ 4")
	}
	if opt.DomainLength <= 0 {
		return opt, errors.New("--length must be > 0")
	}
	if opt.Duration <= 0 {
		return opt, errors.New("--duration must be > 0")
	}
	if opt.Dt <= 0 {
		return opt, errors.New("--dt must be > 0")
	}
	if opt.ReportInterval < 0 {
		return opt, errors.New("--report-interval must be ≥ 0")
	}
	switch opt.Output {
	case FormatText, FormatTSV, FormatJSON, FormatJSONL:
	default:
		return opt, fmt.Errorf("unknown --output format %q", opt.Output)
	}
	return opt, nil
}

func knownScenario(name string) error {
	for _, n := range scenario.Names() {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("unknown --scenario %q (known: %v)", name, scenario.Names())
}
