// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"branesim-core/integrate"
	"branesim-core/scenario"
	"branesim-core/spectral"
	"branesim/internal/cli"
	"branesim/internal/logging"
	"branesim/internal/output"
	"branesim/internal/scenariofile"
	"branesim/internal/version"
	"branesim/pkg/api"
)

// Orbit classification thresholds for the run summary. Tunable per
// study; these match the signature analysis the scenarios were
// calibrated against.
const (
	classifyLow  = 20.0
	classifyHigh = 50.0
)

// Run parses argv, runs the simulation, and writes reports to stdout.
// Exit codes: 0 ok, 1 runtime failure, 2 usage error, 3 output error.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext is Run with a caller-supplied context.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("branesim")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if opts.Version {
		fmt.Fprintf(outw, "branesim version %s\n", version.Version)
		return 0
	}

	// Flags explicitly given on the command line win over the config
	// file; everything else falls back to the file, then defaults.
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if opts.ConfigFile != "" {
		rf, err := scenariofile.Load(opts.ConfigFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		mergeRunFile(&opts, rf, explicit)
	}
	if err := validateMerged(opts); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logLevel := opts.LogLevel
	if opts.Quiet {
		logLevel = "error"
	}
	log, err := logging.New(stderr, logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	code := run(parent, opts, outw, log)
	if err := outw.Flush(); err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	return code
}

func run(ctx context.Context, opts cli.Options, outw io.Writer, log *zap.Logger) int {
	runID := uuid.NewString()
	log.Info("initializing scenario",
		zap.String("run_id", runID),
		zap.String("scenario", opts.Scenario),
		zap.Int("grid", opts.N),
		zap.Float64("length", opts.DomainLength),
		zap.Float64("duration", opts.Duration),
		zap.Float64("dt", opts.Dt),
	)

	state, err := scenario.Initialize(opts.Scenario, opts.N, opts.DomainLength)
	if err != nil {
		log.Error("initialization failed", zap.Error(err))
		return 1
	}
	applyCouplings(&state, opts)

	traj, simErr := scenario.Simulate(state, opts.Duration, opts.Dt, opts.ReportInterval)
	if simErr != nil && !errors.Is(simErr, scenario.ErrUnstable) {
		log.Error("simulation failed", zap.Error(simErr))
		return 1
	}
	if ctx.Err() != nil {
		log.Error("canceled", zap.Error(ctx.Err()))
		return 1
	}

	warnOnFindings(traj, log)

	rows := output.FromReports(traj.Reports)
	var werr error
	switch opts.Output {
	case cli.FormatJSON:
		werr = output.WriteJSON(outw, rows)
	case cli.FormatJSONL:
		werr = output.WriteJSONL(outw, rows)
	default:
		werr = output.WriteTable(outw, rows, opts.Header)
	}
	if werr != nil {
		log.Error("write failed", zap.Error(werr))
		return 3
	}

	if opts.Summary {
		if err := output.WriteSummary(outw, summarize(runID, opts, traj), opts.Output); err != nil {
			log.Error("write failed", zap.Error(err))
			return 3
		}
	}

	if simErr != nil {
		// Unstable runs still emit their partial trajectory above.
		log.Error("simulation diverged", zap.Error(simErr))
		return 1
	}
	log.Info("run complete",
		zap.String("run_id", runID),
		zap.Int("steps", len(traj.States)-1),
		zap.Int("reports", len(traj.Reports)),
	)
	return 0
}

func warnOnFindings(traj scenario.Trajectory, log *zap.Logger) {
	for _, r := range traj.Reports {
		if r.SecondLawViolation {
			log.Warn("second-law violation",
				zap.Float64("t", r.Time),
				zap.Float64("entropy_rate", r.EntropyRate))
		}
		if !r.Conserved {
			log.Warn("conservation residual above tolerance",
				zap.Float64("t", r.Time),
				zap.Float64("residual", r.ConservationResidual))
		}
		if !r.JunctionSatisfied {
			log.Debug("junction condition unsatisfied",
				zap.Float64("t", r.Time),
				zap.Float64("residual", r.JunctionResidual))
		}
	}
}

func summarize(runID string, opts cli.Options, traj scenario.Trajectory) api.SummaryV1 {
	last := traj.Reports[len(traj.Reports)-1]
	first := traj.Reports[0]
	peak := spectral.Peak(spectral.Acceleration(traj.States, 2))
	violations := 0
	for _, r := range traj.Reports {
		if r.SecondLawViolation {
			violations++
		}
	}
	final := traj.States[len(traj.States)-1]
	return api.SummaryV1{
		RunID:        runID,
		Scenario:     opts.Scenario,
		Steps:        len(traj.States) - 1,
		FinalTime:    final.T,
		FinalEnergy:  last.TotalEnergy,
		EnergyDrift:  math.Abs(last.TotalEnergy - first.TotalEnergy),
		FinalEntropy: last.Entropy,
		PeakAccel:    peak,
		OrbitClass:   string(spectral.Classify(math.Abs(last.TotalEnergy), peak, classifyLow, classifyHigh)),
		Violations:   violations,
		ProperTime:   final.Sigma.Tau,
	}
}

func applyCouplings(s *integrate.State, opts cli.Options) {
	if opts.Lambda >= 0 {
		s.Params.Lambda = opts.Lambda
	}
	if opts.Kappa >= 0 {
		s.Params.Kappa = opts.Kappa
	}
	if opts.TSigma >= 0 {
		s.Params.TSigma = opts.TSigma
	}
	if opts.Stiffness >= 0 {
		s.Params.Stiffness = opts.Stiffness
	}
}

func mergeRunFile(opts *cli.Options, rf scenariofile.RunFile, explicit map[string]bool) {
	if !explicit["scenario"] && rf.Scenario != "" {
		opts.Scenario = rf.Scenario
	}
	if !explicit["grid"] && rf.Grid != nil {
		opts.N = *rf.Grid
	}
	if !explicit["length"] && rf.Length != nil {
		opts.DomainLength = *rf.Length
	}
	if !explicit["duration"] && rf.Duration != nil {
		opts.Duration = *rf.Duration
	}
	if !explicit["dt"] && rf.Dt != nil {
		opts.Dt = *rf.Dt
	}
	if !explicit["report-interval"] && rf.ReportInterval != nil {
		opts.ReportInterval = *rf.ReportInterval
	}
	if !explicit["lambda"] && rf.Coupling.Lambda != nil {
		opts.Lambda = *rf.Coupling.Lambda
	}
	if !explicit["kappa"] && rf.Coupling.Kappa != nil {
		opts.Kappa = *rf.Coupling.Kappa
	}
	if !explicit["t-sigma"] && rf.Coupling.TSigma != nil {
		opts.TSigma = *rf.Coupling.TSigma
	}
	if !explicit["stiffness"] && rf.Coupling.Stiffness != nil {
		opts.Stiffness = *rf.Coupling.Stiffness
	}
}

func validateMerged(opts cli.Options) error {
	found := false
	for _, n := range scenario.Names() {
		if n == opts.Scenario {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("unknown scenario %q (known: %v)", opts.Scenario, scenario.Names())
	}
	return nil
}
