// core/scenario/scenario.go
// Named initial conditions and the simulation driver. "smooth" is a
// quiet Gaussian matter pulse at rest; "cliff" is a driven sinusoidal
// matter field with kinetic energy and pre-existing interface entropy,
// the coercive counterpart the signature diagnostics discriminate.

package scenario

import (
	"errors"
	"fmt"
	"math"

	"branesim-core/bulk"
	"branesim-core/conservation"
	"branesim-core/integrate"
	"branesim-core/worldline"
)

// Scenario names.
const (
	Smooth = "smooth"
	Cliff  = "cliff"
)

// ErrUnstable reports that the state diverged (NaN/Inf) mid-run. The
// trajectory up to the failing step is still returned.
var ErrUnstable = errors.New("scenario: simulation unstable (state diverged)")

// Names lists the known scenarios.
func Names() []string { return []string{Smooth, Cliff} }

// Initialize builds the coupled initial state for a named scenario on
// an n-point grid over [0, length).
func Initialize(name string, n int, length float64) (integrate.State, error) {
	g, err := bulk.NewGrid(n, length)
	if err != nil {
		return integrate.State{}, err
	}

	s := integrate.State{
		Grid:   g,
		Phys:   bulk.NewState(g),
		Shadow: bulk.NewState(g),
		Params: worldline.DefaultParams(),
	}

	switch name {
	case Smooth:
		// Gaussian matter pulse at rest, small enough that the run
		// stays in the conserving regime.
		const amp = 0.005
		center := length / 2
		width := length / 16
		for i := 0; i < n; i++ {
			d := g.X(i) - center
			s.Phys.Psi[i] = amp * math.Exp(-d*d/(2*width*width))
		}
		s.Sigma = worldline.State{Pos: length / 4}

	case Cliff:
		// Driven sinusoidal matter with nonzero kinetic energy and a
		// membrane that already carries entropy.
		const (
			amp  = 0.8
			mode = 3
		)
		k := 2 * math.Pi * float64(mode) / length
		for i := 0; i < n; i++ {
			x := g.X(i)
			s.Phys.Psi[i] = amp * math.Sin(k*x)
			s.Phys.PsiDot[i] = amp * k * math.Cos(k*x)
		}
		s.Sigma = worldline.State{Pos: length / 2, Vel: 0.1, Entropy: 0.5}

	default:
		return integrate.State{}, fmt.Errorf("scenario: unknown name %q (known: %v)", name, Names())
	}

	s.Sigma = s.Sigma.Normalize(g)
	return s, nil
}

// Step advances a coupled state by one fixed step. Thin veneer over
// the integrator so library callers need only this package.
func Step(s integrate.State, dt float64) integrate.State {
	return integrate.Step(s, dt)
}

// Trajectory is a completed (or aborted) run.
type Trajectory struct {
	States  []integrate.State
	Reports []conservation.Report
}

// Simulate runs the fixed-step loop for duration, collecting every
// state and a conservation report every reportInterval time units
// (plus the t=0 baseline). On divergence it returns the trajectory so
// far and ErrUnstable.
func Simulate(initial integrate.State, duration, dt, reportInterval float64) (Trajectory, error) {
	return SimulateWithPolicy(initial, duration, integrate.FixedStep(dt), reportInterval)
}

// SimulateWithPolicy is Simulate with an externally supplied step-size
// policy, the hook adaptive schemes plug into.
func SimulateWithPolicy(initial integrate.State, duration float64, policy integrate.StepPolicy, reportInterval float64) (Trajectory, error) {
	if duration <= 0 {
		return Trajectory{}, fmt.Errorf("scenario: duration must be positive, got %g", duration)
	}

	mon := conservation.NewMonitor()
	traj := Trajectory{
		States:  []integrate.State{initial},
		Reports: []conservation.Report{mon.Snapshot(initial, initial)},
	}

	cur := initial
	lastReported := initial
	nextReport := reportInterval

	for cur.T < duration-1e-12 {
		dt := policy.Next(cur)
		if dt <= 0 {
			return traj, fmt.Errorf("scenario: step policy returned dt=%g at t=%g", dt, cur.T)
		}
		if rem := duration - cur.T; dt > rem {
			dt = rem
		}
		cur = integrate.Step(cur, dt)
		traj.States = append(traj.States, cur)

		if !cur.Valid() {
			return traj, fmt.Errorf("%w at t=%g", ErrUnstable, cur.T)
		}

		if reportInterval > 0 && cur.T+1e-12 >= nextReport {
			traj.Reports = append(traj.Reports, mon.Snapshot(lastReported, cur))
			lastReported = cur
			nextReport += reportInterval
		}
	}

	// Closing report so every run ends with a fresh audit — unless the
	// last periodic report already fired at the final time.
	if lastReported.T != cur.T {
		traj.Reports = append(traj.Reports, mon.Snapshot(lastReported, cur))
	}
	return traj, nil
}
