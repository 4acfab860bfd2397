package factor

import (
	"github.com/dlee640/gtsam/noise"
)

// Graph is an ordered, fixed-identity sequence of factor slots. Slot index
// is the stable identity of a measurement: removing a factor leaves a nil
// slot that evaluation skips but every structural operation preserves.
//
// Graph is not safe for concurrent mutation; solvers take their own copies.
type Graph struct {
	slots []Factor
}

// NewGraph builds a graph over the given factors, in order. Nil entries are
// legal and stay nil.
func NewGraph(factors ...Factor) *Graph {
	g := &Graph{slots: make([]Factor, 0, len(factors))}
	g.slots = append(g.slots, factors...)

	return g
}

// Size reports the number of slots, nil slots included.
func (g *Graph) Size() int { return len(g.slots) }

// Add appends a factor (or a nil slot) to the graph.
func (g *Graph) Add(f Factor) { g.slots = append(g.slots, f) }

// At returns the factor in slot i. Returns ErrSlotOutOfRange when i is
// outside [0, Size).
func (g *Graph) At(i int) (Factor, error) {
	if i < 0 || i >= len(g.slots) {
		return nil, ErrSlotOutOfRange
	}

	return g.slots[i], nil
}

// Set replaces slot i, keeping size and order. A nil factor removes the
// measurement while preserving the slot.
func (g *Graph) Set(i int, f Factor) error {
	if i < 0 || i >= len(g.slots) {
		return ErrSlotOutOfRange
	}
	g.slots[i] = f

	return nil
}

// Resize grows or truncates the slot sequence to n, filling new slots with
// nil. Negative n is treated as zero.
func (g *Graph) Resize(n int) {
	if n < 0 {
		n = 0
	}
	for len(g.slots) < n {
		g.slots = append(g.slots, nil)
	}
	g.slots = g.slots[:n]
}

// Clone returns a graph sharing the factors but owning its slot sequence.
// Factors are immutable, so sharing them is safe.
func (g *Graph) Clone() *Graph {
	return NewGraph(g.slots...)
}

// Error sums factor errors over all non-nil slots at v.
func (g *Graph) Error(v Values) (float64, error) {
	total := 0.0
	for _, f := range g.slots {
		if f == nil {
			continue
		}
		e, err := f.Error(v)
		if err != nil {
			return 0, err
		}
		total += e
	}

	return total, nil
}

// MaxError reports the largest factor error over all non-nil slots at v,
// zero for a graph with no live factors.
func (g *Graph) MaxError(v Values) (float64, error) {
	maxErr := 0.0
	for _, f := range g.slots {
		if f == nil {
			continue
		}
		e, err := f.Error(v)
		if err != nil {
			return 0, err
		}
		if e > maxErr {
			maxErr = e
		}
	}

	return maxErr, nil
}

// Keys returns the sorted union of keys referenced by non-nil factors.
func (g *Graph) Keys() []Key {
	seen := make(map[Key]struct{})
	for _, f := range g.slots {
		if f == nil {
			continue
		}
		for _, k := range f.Keys() {
			seen[k] = struct{}{}
		}
	}

	keys := make([]Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}

	return sortKeys(keys)
}

// Equals reports structural equality: same size, same nil pattern, and per
// slot the same keys and equivalent noise models (information matrices equal
// within tol; robust wrappers must carry the same kernel name and equal base
// models). Residual functions are assumed equal when the structure matches.
func (g *Graph) Equals(other *Graph, tol float64) bool {
	if other == nil || len(g.slots) != len(other.slots) {
		return false
	}
	for i, f := range g.slots {
		o := other.slots[i]
		if (f == nil) != (o == nil) {
			return false
		}
		if f == nil {
			continue
		}
		if !keysEqual(f.Keys(), o.Keys()) {
			return false
		}
		if !noiseEquals(f.Noise(), o.Noise(), tol) {
			return false
		}
	}

	return true
}

// keysEqual compares key slices element-wise.
func keysEqual(a, b []Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// noiseEquals compares two noise models of the same variant.
func noiseEquals(a, b noise.Model, tol float64) bool {
	switch am := a.(type) {
	case *noise.Gaussian:
		bm, ok := b.(*noise.Gaussian)

		return ok && am.Equals(bm, tol)
	case *noise.Robust:
		bm, ok := b.(*noise.Robust)

		return ok && am.Kernel().Name() == bm.Kernel().Name() &&
			am.Unwrap().Equals(bm.Unwrap(), tol)
	default:
		return false
	}
}
