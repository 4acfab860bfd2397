package factor

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/noise"
)

// Factor is a single measurement term over a fixed set of keys.
//
// Contracts:
//   - Keys is fixed at construction and never changes.
//   - Error is non-negative: 0.5·‖whitened residual‖² under Gaussian noise,
//     the kernel loss of the whitened norm under Robust noise.
//   - WithNoise returns a structure- and key-preserving copy; only the noise
//     model differs.
type Factor interface {
	// Keys lists the variable keys the factor references.
	Keys() []Key

	// Error evaluates the factor error at v.
	Error(v Values) (float64, error)

	// Noise returns the factor's noise model.
	Noise() noise.Model

	// WithNoise returns a copy of the factor carrying m instead of the
	// current noise model. The replacement must have the same dimension.
	WithNoise(m noise.Model) (Factor, error)

	// Linearize evaluates the whitened Jacobian system at v.
	Linearize(v Values) (*Linearized, error)
}

// Linearized is a whitened local least-squares system
// min ‖Σ A[k]·δ_k − B‖², with Jacobian blocks aligned to Keys.
type Linearized struct {
	Keys []Key
	A    []*mat.Dense
	B    *mat.VecDense
}

// ResidualFunc evaluates the unwhitened residual at the given estimate.
type ResidualFunc func(v Values) (*mat.VecDense, error)

// JacobianFunc evaluates the unwhitened Jacobian blocks at the given
// estimate, one block per factor key, in key order.
type JacobianFunc func(v Values) ([]*mat.Dense, error)

// Option configures a Residual factor.
type Option func(*Residual)

// WithJacobian installs a closed-form Jacobian, replacing the default
// central-difference approximation.
func WithJacobian(jac JacobianFunc) Option {
	return func(f *Residual) { f.jac = jac }
}

// Residual is the concrete Factor over a caller-supplied residual function.
type Residual struct {
	keys  []Key
	model noise.Model
	fn    ResidualFunc
	jac   JacobianFunc // nil means numerical differentiation
}

var _ Factor = (*Residual)(nil)

// NewResidual builds a factor over keys with the given noise model and
// residual function.
//
// Errors: ErrNoKeys, ErrNilNoise, ErrNilResidual, and ErrUnsupportedNoise if
// the model is neither *noise.Gaussian nor *noise.Robust.
func NewResidual(keys []Key, model noise.Model, fn ResidualFunc, opts ...Option) (*Residual, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	if model == nil {
		return nil, ErrNilNoise
	}
	if fn == nil {
		return nil, ErrNilResidual
	}
	switch model.(type) {
	case *noise.Gaussian, *noise.Robust:
	default:
		return nil, ErrUnsupportedNoise
	}

	f := &Residual{
		keys:  append([]Key(nil), keys...),
		model: model,
		fn:    fn,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Keys lists the factor's variable keys. Callers must not mutate the result.
func (f *Residual) Keys() []Key { return f.keys }

// Noise returns the factor's noise model.
func (f *Residual) Noise() noise.Model { return f.model }

// WithNoise returns a copy of the factor with m as its noise model.
// Keys, residual function and Jacobian are shared with the receiver.
func (f *Residual) WithNoise(m noise.Model) (Factor, error) {
	if m == nil {
		return nil, ErrNilNoise
	}
	switch m.(type) {
	case *noise.Gaussian, *noise.Robust:
	default:
		return nil, ErrUnsupportedNoise
	}
	if m.Dim() != f.model.Dim() {
		return nil, noise.ErrDimensionMismatch
	}

	clone := *f
	clone.model = m

	return &clone, nil
}

// Error evaluates the factor error at v: half the squared Mahalanobis
// distance for Gaussian noise, the kernel loss of the whitened norm for
// Robust noise.
func (f *Residual) Error(v Values) (float64, error) {
	r, err := f.residual(v)
	if err != nil {
		return 0, err
	}

	switch m := f.model.(type) {
	case *noise.Gaussian:
		m2, err := m.SquaredMahalanobis(r)
		if err != nil {
			return 0, err
		}

		return 0.5 * m2, nil
	case *noise.Robust:
		m2, err := m.Unwrap().SquaredMahalanobis(r)
		if err != nil {
			return 0, err
		}

		return m.Kernel().Loss(math.Sqrt(m2)), nil
	default:
		return 0, ErrUnsupportedNoise
	}
}

// Linearize evaluates the whitened system at v. Robust models scale the
// whitened Jacobians and right-hand side by sqrt(weight(‖R·r‖)), the IRLS
// convention, so a base solver iterating Linearize/solve/retract performs
// iteratively re-weighted least squares.
func (f *Residual) Linearize(v Values) (*Linearized, error) {
	r, err := f.residual(v)
	if err != nil {
		return nil, err
	}

	blocks, err := f.jacobians(v, r.Len())
	if err != nil {
		return nil, err
	}

	var (
		gauss *noise.Gaussian
		scale = 1.0
	)
	switch m := f.model.(type) {
	case *noise.Gaussian:
		gauss = m
	case *noise.Robust:
		gauss = m.Unwrap()
		wr, werr := gauss.Whiten(r)
		if werr != nil {
			return nil, werr
		}
		scale = math.Sqrt(m.Kernel().Weight(mat.Norm(wr, 2)))
	default:
		return nil, ErrUnsupportedNoise
	}

	b, err := gauss.Whiten(r)
	if err != nil {
		return nil, err
	}
	b.ScaleVec(-scale, b)

	a := make([]*mat.Dense, len(blocks))
	for i, blk := range blocks {
		wa, werr := gauss.WhitenMatrix(blk)
		if werr != nil {
			return nil, werr
		}
		wa.Scale(scale, wa)
		a[i] = wa
	}

	return &Linearized{Keys: f.keys, A: a, B: b}, nil
}

// residual evaluates the residual function after checking key coverage.
func (f *Residual) residual(v Values) (*mat.VecDense, error) {
	for _, k := range f.keys {
		if !v.Has(k) {
			return nil, ErrMissingVariable
		}
	}

	return f.fn(v)
}

// jacobians returns the unwhitened Jacobian blocks at v, via the installed
// closed form or central differences.
func (f *Residual) jacobians(v Values, rdim int) ([]*mat.Dense, error) {
	if f.jac != nil {
		return f.jac(v)
	}

	return f.numericalJacobians(v, rdim)
}

// numericalJacobians approximates each block by central differences,
// perturbing one coordinate of one keyed variable at a time.
func (f *Residual) numericalJacobians(v Values, rdim int) ([]*mat.Dense, error) {
	work := v.Copy()
	blocks := make([]*mat.Dense, len(f.keys))

	for ki, key := range f.keys {
		x, _ := work.At(key)
		dim := x.Len()
		block := mat.NewDense(rdim, dim, nil)

		for j := 0; j < dim; j++ {
			orig := x.AtVec(j)

			x.SetVec(j, orig+numericalStep)
			plus, err := f.fn(work)
			if err != nil {
				return nil, err
			}

			x.SetVec(j, orig-numericalStep)
			minus, err := f.fn(work)
			if err != nil {
				return nil, err
			}

			x.SetVec(j, orig)
			for i := 0; i < rdim; i++ {
				block.Set(i, j, (plus.AtVec(i)-minus.AtVec(i))/(2*numericalStep))
			}
		}
		blocks[ki] = block
	}

	return blocks, nil
}
