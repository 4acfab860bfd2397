package gnc

import (
	"errors"
	"fmt"
	"math"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/gaussnewton"
)

// Sentinel errors returned by the GNC optimizer.
var (
	// ErrNilGraph indicates that a nil *factor.Graph was passed to New.
	ErrNilGraph = errors.New("gnc: graph is nil")

	// ErrUnsupportedLoss indicates a loss kernel without an implementation
	// (truncated least squares, or an unknown enum value). GNC fails fast on
	// it at every dispatch point rather than approximating.
	ErrUnsupportedLoss = errors.New("gnc: unsupported loss type")

	// ErrNonGaussianNoise indicates a factor whose noise model is neither
	// Gaussian nor Robust-wrapping-Gaussian. At construction this is a user
	// error; inside the loop it is an internal invariant violation.
	ErrNonGaussianNoise = errors.New("gnc: factor noise model is not Gaussian")

	// ErrWeightsSize indicates a weight vector whose length differs from the
	// graph size.
	ErrWeightsSize = errors.New("gnc: weight vector length does not match graph size")

	// ErrBadMaxIterations indicates MaxIterations < 1.
	ErrBadMaxIterations = errors.New("gnc: MaxIterations must be positive")

	// ErrBadInlierThreshold indicates BarcSq <= 0.
	ErrBadInlierThreshold = errors.New("gnc: BarcSq must be positive")

	// ErrBadMuStep indicates MuStep <= 1; the continuation must shrink mu.
	ErrBadMuStep = errors.New("gnc: MuStep must be greater than 1")
)

// muEpsilon bounds |mu − 1| in the continuation convergence check.
const muEpsilon = 1e-9

// defaultMaxIterations is the recommended continuation budget; deviating
// from it surfaces an advisory (see SetMaxIterations).
const defaultMaxIterations = 100

// LossType selects the robust loss kernel driving the continuation.
type LossType int

const (
	// GemanMcClureLoss is the Geman-McClure kernel — the implemented default.
	GemanMcClureLoss LossType = iota

	// TruncatedLSLoss is truncated least squares. Declared, deliberately
	// unimplemented: any use fails with ErrUnsupportedLoss.
	TruncatedLSLoss
)

// String names the kernel for diagnostics.
func (l LossType) String() string {
	switch l {
	case GemanMcClureLoss:
		return "GemanMcClure"
	case TruncatedLSLoss:
		return "TruncatedLS"
	default:
		return fmt.Sprintf("LossType(%d)", int(l))
	}
}

// Verbosity grades the diagnostic volume routed to the Trace hook. It never
// affects numerics.
type Verbosity int

const (
	// VerbositySilent emits nothing.
	VerbositySilent Verbosity = iota

	// VerbositySummary emits the final iteration count, mu and weights.
	VerbositySummary

	// VerbosityValues additionally emits mu and weights every iteration.
	VerbosityValues
)

// BaseSolver is the capability GNC needs from the underlying nonlinear
// least-squares solver: one deterministic, blocking solve.
type BaseSolver interface {
	Solve() (factor.Values, error)
}

// BaseSolverFactory builds a fresh base solver for one weighted graph,
// always from the original initial estimate. A nil factory on Params selects
// Gauss-Newton with Params.Base.
type BaseSolverFactory func(g *factor.Graph, initial factor.Values) (BaseSolver, error)

// Params configures the GNC optimizer. The zero value is not meaningful;
// start from DefaultParams.
type Params struct {
	// Base configures the embedded base solver.
	Base gaussnewton.Params

	// LossType selects the robust kernel (only Geman-McClure is implemented).
	LossType LossType

	// MaxIterations caps the continuation iterations.
	MaxIterations int

	// BarcSq is the inlier threshold on factor error, in whitened
	// squared-residual units: errors below it are presumed inliers.
	BarcSq float64

	// MuStep is the division factor applied to mu each iteration; must
	// exceed 1.
	MuStep float64

	// Verbosity gates the Trace hook.
	Verbosity Verbosity

	// KnownInliers lists graph slot indices exempt from re-weighting; their
	// weights stay pinned at 1. Order does not matter; membership is what
	// counts. Replace it with SetKnownInliers rather than appending.
	KnownInliers []int

	// Trace receives diagnostics gated by Verbosity. Nil means silent.
	// Excluded from Equals.
	Trace func(level Verbosity, msg string)

	// Solver overrides the base-solver factory. Nil selects Gauss-Newton
	// built from Base. Excluded from Equals.
	Solver BaseSolverFactory
}

// DefaultParams returns the paper's configuration: Geman-McClure loss, 100
// iterations, BarcSq 1, MuStep 1.4, silent.
func DefaultParams() Params {
	return Params{
		Base:          gaussnewton.DefaultParams(),
		LossType:      GemanMcClureLoss,
		MaxIterations: defaultMaxIterations,
		BarcSq:        1.0,
		MuStep:        1.4,
		Verbosity:     VerbositySilent,
	}
}

// Validate checks the configuration ranges. Kernel support is checked
// separately, at every kernel dispatch.
func (p Params) Validate() error {
	if err := p.Base.Validate(); err != nil {
		return err
	}
	if p.MaxIterations < 1 {
		return ErrBadMaxIterations
	}
	if p.BarcSq <= 0 {
		return ErrBadInlierThreshold
	}
	if p.MuStep <= 1 {
		return ErrBadMuStep
	}

	return nil
}

// SetLossType selects the robust kernel.
func (p *Params) SetLossType(t LossType) { p.LossType = t }

// SetMaxIterations changes the continuation budget. Deviating from the
// default can cut the continuation short and degrade accuracy, so an
// advisory is sent through the Trace hook (regardless of Verbosity) whenever
// one is installed.
func (p *Params) SetMaxIterations(n int) {
	if n != defaultMaxIterations && p.Trace != nil {
		p.Trace(VerbositySummary,
			"SetMaxIterations: changing the iteration cap may yield less accurate solutions and is not recommended")
	}
	p.MaxIterations = n
}

// SetInlierThreshold sets BarcSq, the inlier error threshold.
func (p *Params) SetInlierThreshold(barcSq float64) { p.BarcSq = barcSq }

// SetMuStep sets the continuation rate.
func (p *Params) SetMuStep(step float64) { p.MuStep = step }

// SetVerbosity sets the diagnostic level.
func (p *Params) SetVerbosity(v Verbosity) { p.Verbosity = v }

// SetKnownInliers replaces — never appends to — the known-inlier slot set.
func (p *Params) SetKnownInliers(slots []int) {
	p.KnownInliers = append([]int(nil), slots...)
}

// Equals reports whether two configurations match, floats within tol. The
// embedded base-solver configuration participates; the Trace and Solver
// hooks do not.
func (p Params) Equals(other Params, tol float64) bool {
	if !p.Base.Equals(other.Base, tol) {
		return false
	}
	if p.LossType != other.LossType || p.MaxIterations != other.MaxIterations ||
		p.Verbosity != other.Verbosity {
		return false
	}
	if math.Abs(p.BarcSq-other.BarcSq) > tol || math.Abs(p.MuStep-other.MuStep) > tol {
		return false
	}
	if len(p.KnownInliers) != len(other.KnownInliers) {
		return false
	}
	for i := range p.KnownInliers {
		if p.KnownInliers[i] != other.KnownInliers[i] {
			return false
		}
	}

	return true
}

// String renders the configuration, base-solver part included.
func (p Params) String() string {
	return fmt.Sprintf(
		"gnc.Params{LossType: %s, MaxIterations: %d, BarcSq: %g, MuStep: %g, Verbosity: %d, KnownInliers: %v, Base: %s}",
		p.LossType, p.MaxIterations, p.BarcSq, p.MuStep, p.Verbosity, p.KnownInliers, p.Base)
}
