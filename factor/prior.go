package factor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/noise"
)

// NewPrior builds a unary factor anchoring key to the measurement z with
// residual r = x − z and an identity Jacobian. The model dimension must
// match len(z).
func NewPrior(key Key, z *mat.VecDense, model noise.Model) (*Residual, error) {
	if model != nil && model.Dim() != z.Len() {
		return nil, noise.ErrDimensionMismatch
	}

	meas := mat.VecDenseCopyOf(z)
	dim := meas.Len()

	fn := func(v Values) (*mat.VecDense, error) {
		x, ok := v.At(key)
		if !ok {
			return nil, ErrMissingVariable
		}

		r := mat.NewVecDense(dim, nil)
		r.SubVec(x, meas)

		return r, nil
	}

	jac := func(Values) ([]*mat.Dense, error) {
		eye := mat.NewDense(dim, dim, nil)
		for i := 0; i < dim; i++ {
			eye.Set(i, i, 1)
		}

		return []*mat.Dense{eye}, nil
	}

	return NewResidual([]Key{key}, model, fn, WithJacobian(jac))
}

// MustPrior is NewPrior that panics on invalid arguments. Intended for
// fixtures and examples with constant arguments.
func MustPrior(key Key, z *mat.VecDense, model noise.Model) *Residual {
	f, err := NewPrior(key, z, model)
	if err != nil {
		panic(err)
	}

	return f
}
