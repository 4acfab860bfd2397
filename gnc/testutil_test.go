package gnc_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/noise"
)

// Shared fixtures mirroring the classic small-example graphs: a linear
// outlier graph and a genuinely nonlinear unary factor.

var x1 = factor.Symbol('x', 1)

// pointValues builds a single-variable estimate at (x, y).
func pointValues(x, y float64) factor.Values {
	v := factor.NewValues()
	v.Insert(x1, factor.Point2(x, y))

	return v
}

// nonRobustGraphWithOutliers builds four unary priors on x1 with sigma 0.1:
// three measurements at the origin (inliers) and one at (1,0) (the outlier,
// error 50 when evaluated at the origin).
func nonRobustGraphWithOutliers(t *testing.T) *factor.Graph {
	t.Helper()

	m := noise.MustIsotropic(2, 0.1)
	inlier := factor.MustPrior(x1, factor.Point2(0, 0), m)
	outlier := factor.MustPrior(x1, factor.Point2(1, 0), m)

	return factor.NewGraph(inlier, inlier, inlier, outlier)
}

// robustGraphWithOutliers is the same graph with every factor wrapped in a
// Geman-McClure loss (c = 1).
func robustGraphWithOutliers(t *testing.T) *factor.Graph {
	t.Helper()

	m := noise.NewRobust(noise.MustGemanMcClure(1.0), noise.MustIsotropic(2, 0.1))
	inlier := factor.MustPrior(x1, factor.Point2(0, 0), m)
	outlier := factor.MustPrior(x1, factor.Point2(1, 0), m)

	return factor.NewGraph(inlier, inlier, inlier, outlier)
}

// nonlinearGraphWithSigma builds the one-factor nonlinear fixture with
// residual (cos x − 1, sin y) and the given sigma. Evaluated at (3,3) with
// sigma 0.1 its error is 198.999.
func nonlinearGraphWithSigma(t *testing.T, sigma float64) *factor.Graph {
	t.Helper()

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

	f, err := factor.NewResidual([]factor.Key{x1}, noise.MustIsotropic(2, sigma), fn)
	if err != nil {
		t.Fatalf("building nonlinear fixture: %v", err)
	}

	return factor.NewGraph(f)
}

// reallyNonlinearGraph is the nonlinear fixture at sigma 0.1.
func reallyNonlinearGraph(t *testing.T) *factor.Graph {
	t.Helper()

	return nonlinearGraphWithSigma(t, 0.1)
}
