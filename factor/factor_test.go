package factor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/noise"
)

var x1 = factor.Symbol('x', 1)

// TestSymbol_String covers the "x1" naming convention and plain keys.
func TestSymbol_String(t *testing.T) {
	assert.Equal(t, "x1", factor.Symbol('x', 1).String())
	assert.Equal(t, "L42", factor.Symbol('L', 42).String())
	assert.Equal(t, "7", factor.Key(7).String())
}

// TestValues_CopyIsDeep verifies that mutating a copy leaves the original
// untouched and that Retract produces a fresh estimate.
func TestValues_CopyIsDeep(t *testing.T) {
	v := factor.NewValues()
	v.Insert(x1, factor.Point2(1, 2))

	cp := v.Copy()
	xc, _ := cp.At(x1)
	xc.SetVec(0, 99)

	x, _ := v.At(x1)
	assert.Equal(t, 1.0, x.AtVec(0), "copy must be deep")

	moved := v.Retract(map[factor.Key]*mat.VecDense{x1: factor.Point2(0.5, -2)})
	xm, _ := moved.At(x1)
	assert.InDelta(t, 1.5, xm.AtVec(0), 1e-12)
	assert.InDelta(t, 0.0, xm.AtVec(1), 1e-12)
	assert.Equal(t, 1.0, x.AtVec(0), "retract must not mutate the source")
}

// TestPrior_Error reproduces the canonical outlier error: a prior at (1,0)
// with sigma 0.1 evaluated at (0,0) has error 0.5·(1/σ²)·‖r‖² = 50.
func TestPrior_Error(t *testing.T) {
	f := factor.MustPrior(x1, factor.Point2(1, 0), noise.MustIsotropic(2, 0.1))

	v := factor.NewValues()
	v.Insert(x1, factor.Point2(0, 0))

	e, err := f.Error(v)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, e, 1e-9)
}

// TestResidual_MissingVariable verifies evaluation over incomplete Values.
func TestResidual_MissingVariable(t *testing.T) {
	f := factor.MustPrior(x1, factor.Point2(0, 0), noise.MustIsotropic(2, 1))

	_, err := f.Error(factor.NewValues())
	assert.ErrorIs(t, err, factor.ErrMissingVariable)

	_, err = f.Linearize(factor.NewValues())
	assert.ErrorIs(t, err, factor.ErrMissingVariable)
}

// TestNewResidual_Validation covers constructor sentinels.
func TestNewResidual_Validation(t *testing.T) {
	fn := func(factor.Values) (*mat.VecDense, error) { return factor.Point2(0, 0), nil }
	m := noise.MustIsotropic(2, 1)

	_, err := factor.NewResidual(nil, m, fn)
	assert.ErrorIs(t, err, factor.ErrNoKeys)

	_, err = factor.NewResidual([]factor.Key{x1}, nil, fn)
	assert.ErrorIs(t, err, factor.ErrNilNoise)

	_, err = factor.NewResidual([]factor.Key{x1}, m, nil)
	assert.ErrorIs(t, err, factor.ErrNilResidual)
}

// TestWithNoise_PreservesStructure checks that swapping the noise model
// keeps keys and residual behavior, and rejects dimension mismatches.
func TestWithNoise_PreservesStructure(t *testing.T) {
	f := factor.MustPrior(x1, factor.Point2(1, 0), noise.MustIsotropic(2, 0.1))

	g, err := f.WithNoise(noise.MustIsotropic(2, 1))
	require.NoError(t, err)
	assert.Equal(t, f.Keys(), g.Keys(), "keys must be preserved")

	v := factor.NewValues()
	v.Insert(x1, factor.Point2(0, 0))
	e, err := g.Error(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, e, 1e-12, "sigma 1 turns error 50 into 0.5")

	_, err = f.WithNoise(noise.MustIsotropic(3, 1))
	assert.ErrorIs(t, err, noise.ErrDimensionMismatch)
}

// TestNumericalJacobian_MatchesAnalytic compares central differences against
// the closed form on the nonlinear residual h(p) = (cos p.x, sin p.y) − z.
func TestNumericalJacobian_MatchesAnalytic(t *testing.T) {
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

	numeric, err := factor.NewResidual([]factor.Key{x1}, m, fn)
	require.NoError(t, err)

	jac := func(v factor.Values) ([]*mat.Dense, error) {
		p, _ := v.At(x1)

		return []*mat.Dense{mat.NewDense(2, 2, []float64{
			-math.Sin(p.AtVec(0)), 0,
			0, math.Cos(p.AtVec(1)),
		})}, nil
	}
	analytic, err := factor.NewResidual([]factor.Key{x1}, m, fn, factor.WithJacobian(jac))
	require.NoError(t, err)

	v := factor.NewValues()
	v.Insert(x1, factor.Point2(3, 3))

	ln, err := numeric.Linearize(v)
	require.NoError(t, err)
	la, err := analytic.Linearize(v)
	require.NoError(t, err)

	assert.True(t, mat.EqualApprox(ln.A[0], la.A[0], 1e-6),
		"central differences must match the closed form")
	assert.True(t, mat.EqualApprox(ln.B, la.B, 1e-12))
}

// TestLinearize_RobustScalesSystem verifies the IRLS scaling: at whitened
// norm 10 under Geman-McClure c=1, the whitened system shrinks by
// sqrt((1/101)²) = 1/101.
func TestLinearize_RobustScalesSystem(t *testing.T) {
	base := noise.MustIsotropic(2, 0.1)
	plain := factor.MustPrior(x1, factor.Point2(0, 0), base)
	robust := factor.MustPrior(x1, factor.Point2(0, 0),
		noise.NewRobust(noise.MustGemanMcClure(1.0), base))

	v := factor.NewValues()
	v.Insert(x1, factor.Point2(1, 0))

	lp, err := plain.Linearize(v)
	require.NoError(t, err)
	lr, err := robust.Linearize(v)
	require.NoError(t, err)

	scale := 1.0 / 101.0
	scaledB := mat.NewVecDense(2, nil)
	scaledB.ScaleVec(scale, lp.B)
	assert.True(t, mat.EqualApprox(scaledB, lr.B, 1e-12))

	scaledA := mat.NewDense(2, 2, nil)
	scaledA.Scale(scale, lp.A[0])
	assert.True(t, mat.EqualApprox(scaledA, lr.A[0], 1e-12))
}
