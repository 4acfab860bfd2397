package noise

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gaussian is a zero-mean Gaussian noise model held in sqrt-information
// form: the whitener R satisfies Information = Rᵀ·R, so whitening a residual
// r yields R·r and ‖R·r‖² is the squared Mahalanobis distance.
//
// Gaussian values are immutable after construction; Scale and Whiten return
// fresh objects and never mutate the receiver.
type Gaussian struct {
	dim int
	r   *mat.Dense // the whitener R; dim x dim
}

// Information builds a Gaussian model from a full information matrix
// (inverse covariance). The matrix must be square, symmetric within a small
// structural tolerance, and positive definite.
//
// Errors: ErrBadInformation on shape/symmetry violations,
// ErrNotPositiveDefinite if the Cholesky factorization fails.
//
// Complexity: O(n³) for the factorization.
func Information(info mat.Matrix) (*Gaussian, error) {
	n, c := info.Dims()
	if n == 0 || n != c {
		return nil, ErrBadInformation
	}
	if !mat.EqualApprox(info, info.T(), symTol) {
		return nil, ErrBadInformation
	}

	// Symmetrize explicitly so tiny asymmetries within tolerance do not leak
	// into the factorization.
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(info.At(i, j)+info.At(j, i)))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrNotPositiveDefinite
	}
	u := mat.NewTriDense(n, mat.Upper, nil)
	chol.UTo(u)

	r := mat.NewDense(n, n, nil)
	r.Copy(u)

	return &Gaussian{dim: n, r: r}, nil
}

// Sigmas builds a diagonal Gaussian model with per-dimension standard
// deviations. Every sigma must be strictly positive.
func Sigmas(sigmas ...float64) (*Gaussian, error) {
	n := len(sigmas)
	if n == 0 {
		return nil, ErrBadInformation
	}

	r := mat.NewDense(n, n, nil)
	for i, s := range sigmas {
		if s <= 0 {
			return nil, ErrNonPositiveSigma
		}
		r.Set(i, i, 1/s)
	}

	return &Gaussian{dim: n, r: r}, nil
}

// Isotropic builds a Gaussian model with the same sigma on every dimension.
func Isotropic(dim int, sigma float64) (*Gaussian, error) {
	if dim <= 0 {
		return nil, ErrBadInformation
	}
	if sigma <= 0 {
		return nil, ErrNonPositiveSigma
	}

	sigmas := make([]float64, dim)
	for i := range sigmas {
		sigmas[i] = sigma
	}

	return Sigmas(sigmas...)
}

// MustIsotropic is Isotropic that panics on invalid arguments.
// Intended for fixtures and examples with constant arguments.
func MustIsotropic(dim int, sigma float64) *Gaussian {
	g, err := Isotropic(dim, sigma)
	if err != nil {
		panic(err)
	}

	return g
}

// Unit builds a Gaussian model with identity information (sigma 1 everywhere).
func Unit(dim int) (*Gaussian, error) {
	return Isotropic(dim, 1)
}

// Dim reports the residual dimension of the model.
func (g *Gaussian) Dim() int { return g.dim }

// Whiten returns R·r. Returns ErrDimensionMismatch if r has the wrong length.
func (g *Gaussian) Whiten(r *mat.VecDense) (*mat.VecDense, error) {
	if r.Len() != g.dim {
		return nil, ErrDimensionMismatch
	}

	out := mat.NewVecDense(g.dim, nil)
	out.MulVec(g.r, r)

	return out, nil
}

// WhitenMatrix returns R·a, the whitened form of a Jacobian block with
// g.Dim() rows. Returns ErrDimensionMismatch on a row-count mismatch.
func (g *Gaussian) WhitenMatrix(a mat.Matrix) (*mat.Dense, error) {
	rows, cols := a.Dims()
	if rows != g.dim {
		return nil, ErrDimensionMismatch
	}

	out := mat.NewDense(g.dim, cols, nil)
	out.Mul(g.r, a)

	return out, nil
}

// SquaredMahalanobis returns rᵀ·Ω·r = ‖R·r‖².
func (g *Gaussian) SquaredMahalanobis(r *mat.VecDense) (float64, error) {
	w, err := g.Whiten(r)
	if err != nil {
		return 0, err
	}

	return mat.Dot(w, w), nil
}

// InformationMatrix reconstructs the information matrix Rᵀ·R as a fresh
// dense matrix. Callers own the result.
func (g *Gaussian) InformationMatrix() *mat.Dense {
	info := mat.NewDense(g.dim, g.dim, nil)
	info.Mul(g.r.T(), g.r)

	return info
}

// Scale returns a new Gaussian whose information matrix is w times the
// receiver's, realized by scaling the whitener by sqrt(w). The weight must be
// non-negative; w == 1 reproduces the receiver's information bit-for-bit and
// w == 0 yields a zero-information (fully discounted) model.
func (g *Gaussian) Scale(w float64) (*Gaussian, error) {
	if w < 0 || math.IsNaN(w) {
		return nil, ErrNegativeWeight
	}

	r := mat.NewDense(g.dim, g.dim, nil)
	r.Scale(math.Sqrt(w), g.r)

	return &Gaussian{dim: g.dim, r: r}, nil
}

// Equals reports whether two Gaussian models have the same dimension and
// information matrices equal within tol.
func (g *Gaussian) Equals(other *Gaussian, tol float64) bool {
	if other == nil || g.dim != other.dim {
		return false
	}

	return mat.EqualApprox(g.InformationMatrix(), other.InformationMatrix(), tol)
}
