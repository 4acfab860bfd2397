package gaussnewton

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dlee640/gtsam/factor"
)

// Optimizer runs Gauss-Newton on one problem instance. Build it with New;
// the zero value is not usable. An Optimizer is single-shot state: it owns
// private copies of the graph and the initial estimate and is not safe for
// concurrent Solve calls.
type Optimizer struct {
	graph   *factor.Graph
	initial factor.Values
	params  Params
}

// New builds a solver over private copies of graph and initial.
//
// Preconditions: graph non-nil, params valid, and initial covering every key
// referenced by the graph (factor.ErrMissingVariable otherwise).
func New(graph *factor.Graph, initial factor.Values, params Params) (*Optimizer, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for _, k := range graph.Keys() {
		if !initial.Has(k) {
			return nil, factor.ErrMissingVariable
		}
	}

	return &Optimizer{
		graph:   graph.Clone(),
		initial: initial.Copy(),
		params:  params,
	}, nil
}

// Params returns the solver configuration.
func (o *Optimizer) Params() Params { return o.params }

// Solve iterates linearize/solve/retract until convergence or the iteration
// cap and returns the final estimate. Steps are accepted unconditionally;
// the stopping rule is the error-decrease check in Params.
func (o *Optimizer) Solve() (factor.Values, error) {
	current := o.initial.Copy()

	keys := o.graph.Keys()
	if len(keys) == 0 {
		// Nothing to optimize over.
		return current, nil
	}

	prevErr, err := o.graph.Error(current)
	if err != nil {
		return nil, err
	}

	for iter := 0; iter < o.params.MaxIterations; iter++ {
		delta, err := o.step(current, keys)
		if err != nil {
			return nil, err
		}

		current = current.Retract(delta)
		newErr, err := o.graph.Error(current)
		if err != nil {
			return nil, err
		}

		if o.params.checkConvergence(prevErr, newErr) {
			break
		}
		prevErr = newErr
	}

	return current, nil
}

// step assembles and solves the normal equations at the current estimate,
// returning the update per key.
func (o *Optimizer) step(current factor.Values, keys []factor.Key) (map[factor.Key]*mat.VecDense, error) {
	offsets, total, err := ordering(current, keys)
	if err != nil {
		return nil, err
	}

	h := mat.NewDense(total, total, nil)
	g := mat.NewVecDense(total, nil)

	for i := 0; i < o.graph.Size(); i++ {
		f, _ := o.graph.At(i)
		if f == nil {
			continue
		}

		lin, err := f.Linearize(current)
		if err != nil {
			return nil, err
		}
		accumulate(h, g, lin, offsets)
	}

	// The assembly is symmetric by construction; hand the upper triangle to
	// the Cholesky factorization.
	sym := mat.NewSymDense(total, nil)
	for i := 0; i < total; i++ {
		for j := i; j < total; j++ {
			sym.SetSym(i, j, h.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrIndefiniteSystem
	}

	delta := mat.NewVecDense(total, nil)
	if err := chol.SolveVecTo(delta, g); err != nil {
		return nil, ErrIndefiniteSystem
	}

	out := make(map[factor.Key]*mat.VecDense, len(keys))
	for _, k := range keys {
		off := offsets[k]
		x, _ := current.At(k)
		seg := mat.NewVecDense(x.Len(), nil)
		for j := 0; j < x.Len(); j++ {
			seg.SetVec(j, delta.AtVec(off+j))
		}
		out[k] = seg
	}

	return out, nil
}

// ordering assigns each key a column offset in the stacked system and
// reports the total dimension.
func ordering(current factor.Values, keys []factor.Key) (map[factor.Key]int, int, error) {
	offsets := make(map[factor.Key]int, len(keys))
	total := 0
	for _, k := range keys {
		x, ok := current.At(k)
		if !ok {
			return nil, 0, factor.ErrMissingVariable
		}
		offsets[k] = total
		total += x.Len()
	}

	return offsets, total, nil
}

// accumulate folds one whitened linearization into H = ΣAᵀA and g = ΣAᵀb.
func accumulate(h *mat.Dense, g *mat.VecDense, lin *factor.Linearized, offsets map[factor.Key]int) {
	for i, ki := range lin.Keys {
		ai := lin.A[i]
		_, di := ai.Dims()
		oi := offsets[ki]

		// Gradient block: Aᵢᵀ·b.
		gi := mat.NewVecDense(di, nil)
		gi.MulVec(ai.T(), lin.B)
		for r := 0; r < di; r++ {
			g.SetVec(oi+r, g.AtVec(oi+r)+gi.AtVec(r))
		}

		// Hessian blocks: Aᵢᵀ·Aⱼ for every key pair.
		for j, kj := range lin.Keys {
			aj := lin.A[j]
			_, dj := aj.Dims()
			oj := offsets[kj]

			blk := mat.NewDense(di, dj, nil)
			blk.Mul(ai.T(), aj)
			for r := 0; r < di; r++ {
				for c := 0; c < dj; c++ {
					h.Set(oi+r, oj+c, h.At(oi+r, oj+c)+blk.At(r, c))
				}
			}
		}
	}
}
