package factor

import "gonum.org/v1/gonum/mat"

// Values maps variable keys to their current estimates. Estimates live on a
// vector manifold: Retract is plain addition. Values is the only state a
// solver mutates, and solvers do so on their own copies.
type Values map[Key]*mat.VecDense

// NewValues returns an empty estimate.
func NewValues() Values {
	return make(Values)
}

// Insert stores a copy of x under k, replacing any previous estimate.
func (v Values) Insert(k Key, x *mat.VecDense) {
	v[k] = mat.VecDenseCopyOf(x)
}

// At returns the estimate stored under k. The second result is false when
// the key is absent. Callers must not mutate the returned vector.
func (v Values) At(k Key) (*mat.VecDense, bool) {
	x, ok := v[k]

	return x, ok
}

// Has reports whether k has an estimate.
func (v Values) Has(k Key) bool {
	_, ok := v[k]

	return ok
}

// Keys returns all keys in ascending order.
func (v Values) Keys() []Key {
	keys := make([]Key, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}

	return sortKeys(keys)
}

// Copy returns a deep copy; mutating the copy never touches the original.
func (v Values) Copy() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = mat.VecDenseCopyOf(x)
	}

	return out
}

// Retract returns a new estimate with delta added to each keyed variable.
// Keys absent from delta are copied unchanged; keys present in delta but not
// in v are ignored.
func (v Values) Retract(delta map[Key]*mat.VecDense) Values {
	out := v.Copy()
	for k, d := range delta {
		x, ok := out[k]
		if !ok {
			continue
		}
		x.AddVec(x, d)
	}

	return out
}

// Equals reports whether both estimates cover the same keys with vectors
// equal within tol.
func (v Values) Equals(other Values, tol float64) bool {
	if len(v) != len(other) {
		return false
	}
	for k, x := range v {
		y, ok := other[k]
		if !ok || x.Len() != y.Len() {
			return false
		}
		if !mat.EqualApprox(x, y, tol) {
			return false
		}
	}

	return true
}

// Point2 builds a 2-vector estimate, the workhorse of the examples.
func Point2(x, y float64) *mat.VecDense {
	return mat.NewVecDense(2, []float64{x, y})
}
