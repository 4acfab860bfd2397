package gaussnewton_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/gaussnewton"
	"github.com/dlee640/gtsam/noise"
)

var x1 = factor.Symbol('x', 1)

// outlierGraph is the canonical linear fixture: three priors at the origin
// and one at (1,0), all sigma 0.1.
func outlierGraph(t *testing.T) *factor.Graph {
	t.Helper()

	m := noise.MustIsotropic(2, 0.1)
	inlier := factor.MustPrior(x1, factor.Point2(0, 0), m)
	outlier := factor.MustPrior(x1, factor.Point2(1, 0), m)

	return factor.NewGraph(inlier, inlier, inlier, outlier)
}

// values builds a single-variable estimate at (x, y).
func values(x, y float64) factor.Values {
	v := factor.NewValues()
	v.Insert(x1, factor.Point2(x, y))

	return v
}

// TestSolve_LinearProblemIsExact: on a purely linear graph Gauss-Newton
// lands on the least-squares optimum — the mean (0.25, 0) — regardless of
// the starting point.
func TestSolve_LinearProblemIsExact(t *testing.T) {
	o, err := gaussnewton.New(outlierGraph(t), values(1, 0), gaussnewton.DefaultParams())
	require.NoError(t, err)

	result, err := o.Solve()
	require.NoError(t, err)

	x, _ := result.At(x1)
	assert.InDelta(t, 0.25, x.AtVec(0), 1e-3)
	assert.InDelta(t, 0.0, x.AtVec(1), 1e-3)
}

// TestSolve_RobustIRLSLocalMinimum: the same graph wrapped in Geman-McClure
// losses, started at (1,0), sticks to the local minimum near (0.9997, 0).
func TestSolve_RobustIRLSLocalMinimum(t *testing.T) {
	base := noise.MustIsotropic(2, 0.1)
	robust := noise.NewRobust(noise.MustGemanMcClure(1.0), base)
	inlier := factor.MustPrior(x1, factor.Point2(0, 0), robust)
	outlier := factor.MustPrior(x1, factor.Point2(1, 0), robust)
	g := factor.NewGraph(inlier, inlier, inlier, outlier)

	o, err := gaussnewton.New(g, values(1, 0), gaussnewton.DefaultParams())
	require.NoError(t, err)

	result, err := o.Solve()
	require.NoError(t, err)

	x, _ := result.At(x1)
	assert.InDelta(t, 0.999706, x.AtVec(0), 1e-3)
	assert.InDelta(t, 0.0, x.AtVec(1), 1e-3)
}

// TestSolve_NonlinearFixture drives the cos/sin unary factor to zero error
// from the far-away start (3,3).
func TestSolve_NonlinearFixture(t *testing.T) {
	m := noise.MustIsotropic(2, 0.1)
	fn := func(v factor.Values) (*mat.VecDense, error) {
		p, ok := v.At(x1)
		if !ok {
			return nil, factor.ErrMissingVariable
		}

		return mat.NewVecDense(2, []float64{
			math.Cos(p.AtVec(0)) - 1,
			math.Sin(p.AtVec(1)),
		}), nil
	}
	f, err := factor.NewResidual([]factor.Key{x1}, m, fn)
	require.NoError(t, err)
	g := factor.NewGraph(f)

	o, err := gaussnewton.New(g, values(3, 3), gaussnewton.DefaultParams())
	require.NoError(t, err)

	result, err := o.Solve()
	require.NoError(t, err)

	final, err := g.Error(result)
	require.NoError(t, err)
	assert.Less(t, final, 1e-5, "nonlinear fixture must be driven to (near) zero error")
}

// TestSolve_DoesNotMutateInputs checks the private-copy contract.
func TestSolve_DoesNotMutateInputs(t *testing.T) {
	initial := values(1, 0)
	o, err := gaussnewton.New(outlierGraph(t), initial, gaussnewton.DefaultParams())
	require.NoError(t, err)

	_, err = o.Solve()
	require.NoError(t, err)

	x, _ := initial.At(x1)
	assert.Equal(t, 1.0, x.AtVec(0), "caller's initial estimate must stay put")
}

// TestSolve_UnconstrainedVariableFails: a variable with no factor makes the
// normal equations singular.
func TestSolve_UnconstrainedVariableFails(t *testing.T) {
	zero := noise.MustIsotropic(2, 0.1)
	discounted, err := zero.Scale(0)
	require.NoError(t, err)

	f, err := factor.MustPrior(x1, factor.Point2(0, 0), zero).WithNoise(discounted)
	require.NoError(t, err)
	g := factor.NewGraph(f)

	o, err := gaussnewton.New(g, values(1, 0), gaussnewton.DefaultParams())
	require.NoError(t, err)

	_, err = o.Solve()
	assert.ErrorIs(t, err, gaussnewton.ErrIndefiniteSystem)
}

// TestNew_Validation covers the constructor sentinels.
func TestNew_Validation(t *testing.T) {
	_, err := gaussnewton.New(nil, values(0, 0), gaussnewton.DefaultParams())
	assert.ErrorIs(t, err, gaussnewton.ErrNilGraph)

	_, err = gaussnewton.New(outlierGraph(t), factor.NewValues(), gaussnewton.DefaultParams())
	assert.ErrorIs(t, err, factor.ErrMissingVariable)

	bad := gaussnewton.DefaultParams()
	bad.MaxIterations = 0
	_, err = gaussnewton.New(outlierGraph(t), values(0, 0), bad)
	assert.ErrorIs(t, err, gaussnewton.ErrBadMaxIterations)

	bad = gaussnewton.DefaultParams()
	bad.RelativeErrorTol = -1
	_, err = gaussnewton.New(outlierGraph(t), values(0, 0), bad)
	assert.ErrorIs(t, err, gaussnewton.ErrBadTolerance)
}

// TestParams_EqualsAndString covers configuration comparison and printing.
func TestParams_EqualsAndString(t *testing.T) {
	a := gaussnewton.DefaultParams()
	b := gaussnewton.DefaultParams()
	assert.True(t, a.Equals(b, 1e-9))

	b.RelativeErrorTol = 1e-3
	assert.False(t, a.Equals(b, 1e-9))

	assert.Contains(t, a.String(), "MaxIterations: 100")
}
