package gaussnewton

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the Gauss-Newton solver.
var (
	// ErrNilGraph indicates that a nil *factor.Graph was passed to New.
	ErrNilGraph = errors.New("gaussnewton: graph is nil")

	// ErrBadMaxIterations indicates MaxIterations < 1.
	ErrBadMaxIterations = errors.New("gaussnewton: MaxIterations must be positive")

	// ErrBadTolerance indicates a negative convergence tolerance.
	ErrBadTolerance = errors.New("gaussnewton: tolerances must be non-negative")

	// ErrIndefiniteSystem indicates that the assembled normal equations have
	// no Cholesky factor, typically because some variable is unconstrained.
	ErrIndefiniteSystem = errors.New("gaussnewton: normal equations are not positive definite")
)

// Params configures one Gauss-Newton solve.
//
// Convergence follows the classical error-decrease rule: the iteration stops
// once the total graph error falls to ErrorTol, or once the absolute
// (respectively relative) decrease between consecutive iterations drops to
// AbsoluteErrorTol (RelativeErrorTol) — including the degenerate case of a
// non-decreasing error, which also stops the iteration.
type Params struct {
	// MaxIterations caps the number of linearize/solve/retract rounds.
	MaxIterations int

	// RelativeErrorTol stops the iteration when the relative error decrease
	// falls to this value.
	RelativeErrorTol float64

	// AbsoluteErrorTol stops the iteration when the absolute error decrease
	// falls to this value.
	AbsoluteErrorTol float64

	// ErrorTol stops the iteration as soon as the total error falls to this
	// value. Zero disables the check for any positive error.
	ErrorTol float64
}

// DefaultParams returns the standard configuration: 100 iterations,
// relative and absolute tolerances of 1e-5, no hard error target.
func DefaultParams() Params {
	return Params{
		MaxIterations:    100,
		RelativeErrorTol: 1e-5,
		AbsoluteErrorTol: 1e-5,
		ErrorTol:         0,
	}
}

// Validate checks the configuration ranges.
func (p Params) Validate() error {
	if p.MaxIterations < 1 {
		return ErrBadMaxIterations
	}
	if p.RelativeErrorTol < 0 || p.AbsoluteErrorTol < 0 || p.ErrorTol < 0 {
		return ErrBadTolerance
	}

	return nil
}

// Equals reports whether two configurations match, tolerances within tol.
func (p Params) Equals(other Params, tol float64) bool {
	return p.MaxIterations == other.MaxIterations &&
		math.Abs(p.RelativeErrorTol-other.RelativeErrorTol) <= tol &&
		math.Abs(p.AbsoluteErrorTol-other.AbsoluteErrorTol) <= tol &&
		math.Abs(p.ErrorTol-other.ErrorTol) <= tol
}

// String renders the configuration for diagnostics.
func (p Params) String() string {
	return fmt.Sprintf(
		"gaussnewton.Params{MaxIterations: %d, RelativeErrorTol: %g, AbsoluteErrorTol: %g, ErrorTol: %g}",
		p.MaxIterations, p.RelativeErrorTol, p.AbsoluteErrorTol, p.ErrorTol)
}

// checkConvergence applies the error-decrease stopping rule.
func (p Params) checkConvergence(prevErr, newErr float64) bool {
	if newErr <= p.ErrorTol {
		return true
	}

	absoluteDecrease := prevErr - newErr
	if absoluteDecrease <= p.AbsoluteErrorTol {
		return true
	}
	if prevErr > 0 && absoluteDecrease/prevErr <= p.RelativeErrorTol {
		return true
	}

	return false
}
