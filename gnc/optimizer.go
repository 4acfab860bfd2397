package gnc

import (
	"fmt"

	"github.com/dlee640/gtsam/factor"
	"github.com/dlee640/gtsam/gaussnewton"
	"github.com/dlee640/gtsam/noise"
)

// Optimizer runs the graduated non-convexity loop over one problem. Build it
// with New. An Optimizer owns private copies of the (normalized) graph, the
// initial estimate and the configuration; it is not safe for concurrent
// Optimize calls on the same instance.
type Optimizer struct {
	graph   *factor.Graph // normalized: every live slot carries Gaussian noise
	initial factor.Values
	params  Params
	weights []float64 // last computed weight vector; nil before Optimize
}

// New builds a GNC optimizer over graph, initial and params.
//
// Every live slot's noise model is normalized to Gaussian: Robust wrappers
// are stripped down to their base model (the kernel's job moves into the
// continuation loop), plain Gaussian factors pass through, nil slots stay
// nil. Any other noise model is a construction-time error wrapping
// ErrNonGaussianNoise.
func New(graph *factor.Graph, initial factor.Values, params Params) (*Optimizer, error) {
	if graph == nil {
		return nil, ErrNilGraph
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	normalized, err := normalize(graph)
	if err != nil {
		return nil, err
	}
	for _, k := range normalized.Keys() {
		if !initial.Has(k) {
			return nil, factor.ErrMissingVariable
		}
	}

	return &Optimizer{
		graph:   normalized,
		initial: initial.Copy(),
		params:  params,
	}, nil
}

// Factors returns the optimizer's normalized graph. The result shares
// factors with the optimizer but owns its slot sequence.
func (o *Optimizer) Factors() *factor.Graph { return o.graph.Clone() }

// State returns a copy of the stored initial estimate.
func (o *Optimizer) State() factor.Values { return o.initial.Copy() }

// Params returns the configuration.
func (o *Optimizer) Params() Params { return o.params }

// Weights returns a copy of the last weight vector computed by Optimize,
// aligned with graph slots — useful for diagnosing which measurements were
// judged outliers. Nil before the first Optimize call.
func (o *Optimizer) Weights() []float64 {
	if o.weights == nil {
		return nil
	}

	return append([]float64(nil), o.weights...)
}

// Optimize runs the continuation loop and returns the final estimate.
//
// The weight vector is reallocated fresh for this call; mu is initialized
// once and evolves only inside it. Exhausting MaxIterations before mu
// reaches 1 is a soft stop returning the last result without error; every
// other failure — unsupported kernel, invariant violation, base-solver
// failure — aborts immediately.
func (o *Optimizer) Optimize() (factor.Values, error) {
	// Reject unsupported kernels before any solving happens; the standalone
	// steps below re-check on every dispatch.
	if _, err := kernelFor(o.params.LossType); err != nil {
		return nil, err
	}

	// Start by assuming every measurement is an inlier.
	o.weights = make([]float64, o.graph.Size())
	for i := range o.weights {
		o.weights[i] = 1.0
	}

	result, err := o.baseSolve(o.graph)
	if err != nil {
		return nil, err
	}

	mu, err := o.InitializeMu()
	if err != nil {
		return nil, err
	}

	for iter := 0; iter < o.params.MaxIterations; iter++ {
		o.tracef(VerbosityValues, "iteration %d: mu=%g weights=%v", iter, mu, o.weights)

		weights, err := o.CalculateWeights(result, mu)
		if err != nil {
			return nil, err
		}
		o.weights = weights

		weighted, err := o.MakeWeightedGraph(weights)
		if err != nil {
			return nil, err
		}

		// Always re-solve fresh from the original initial estimate; the
		// continuation, not warm starting, carries the progress.
		result, err = o.baseSolve(weighted)
		if err != nil {
			return nil, err
		}

		done, err := o.CheckMuConvergence(mu)
		if err != nil {
			return nil, err
		}
		if done {
			o.tracef(VerbositySummary, "converged: iterations=%d mu=%g weights=%v", iter, mu, o.weights)

			return result, nil
		}

		mu, err = o.UpdateMu(mu)
		if err != nil {
			return nil, err
		}
	}

	// Soft stop: the continuation budget ran out before mu reached 1.
	o.tracef(VerbositySummary, "iteration budget exhausted: mu=%g weights=%v", mu, o.weights)

	return result, nil
}

// InitializeMu computes the starting shape parameter from the largest factor
// error at the stored initial estimate.
func (o *Optimizer) InitializeMu() (float64, error) {
	kern, err := kernelFor(o.params.LossType)
	if err != nil {
		return 0, err
	}

	rmaxSq, err := o.graph.MaxError(o.initial)
	if err != nil {
		return 0, err
	}

	return kern.initialMu(rmaxSq, o.params.BarcSq), nil
}

// UpdateMu advances the shape parameter one continuation step.
func (o *Optimizer) UpdateMu(mu float64) (float64, error) {
	kern, err := kernelFor(o.params.LossType)
	if err != nil {
		return 0, err
	}

	return kern.updateMu(mu, o.params.MuStep), nil
}

// CheckMuConvergence reports whether the surrogate loss has reached the true
// robust loss.
func (o *Optimizer) CheckMuConvergence(mu float64) (bool, error) {
	kern, err := kernelFor(o.params.LossType)
	if err != nil {
		return false, err
	}

	return kern.converged(mu), nil
}

// CalculateWeights evaluates the per-slot inlier weights at the given
// estimate and shape parameter. Slots listed in KnownInliers stay pinned at
// 1 regardless of their error; nil slots keep weight 1 as a neutral
// placeholder. The result length always equals the graph size.
func (o *Optimizer) CalculateWeights(estimate factor.Values, mu float64) ([]float64, error) {
	kern, err := kernelFor(o.params.LossType)
	if err != nil {
		return nil, err
	}

	known := make(map[int]struct{}, len(o.params.KnownInliers))
	for _, slot := range o.params.KnownInliers {
		known[slot] = struct{}{}
	}

	weights := make([]float64, o.graph.Size())
	for i := range weights {
		weights[i] = 1.0

		if _, pinned := known[i]; pinned {
			continue
		}
		f, _ := o.graph.At(i)
		if f == nil {
			continue
		}

		u2, err := f.Error(estimate)
		if err != nil {
			return nil, err
		}
		weights[i] = kern.weight(u2, mu, o.params.BarcSq)
	}

	return weights, nil
}

// MakeWeightedGraph builds a graph of identical structure whose Gaussian
// information matrices are scaled by the given weights. A live slot that is
// not Gaussian at this point violates the construction-time normalization
// and is a fatal inconsistency.
func (o *Optimizer) MakeWeightedGraph(weights []float64) (*factor.Graph, error) {
	if len(weights) != o.graph.Size() {
		return nil, ErrWeightsSize
	}

	out := factor.NewGraph()
	out.Resize(o.graph.Size())

	for i := 0; i < o.graph.Size(); i++ {
		f, _ := o.graph.At(i)
		if f == nil {
			continue
		}

		gauss, ok := f.Noise().(*noise.Gaussian)
		if !ok {
			return nil, fmt.Errorf("%w: slot %d after normalization", ErrNonGaussianNoise, i)
		}

		scaled, err := gauss.Scale(weights[i])
		if err != nil {
			return nil, err
		}
		weightedFactor, err := f.WithNoise(scaled)
		if err != nil {
			return nil, err
		}
		if err := out.Set(i, weightedFactor); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// baseSolve builds a fresh base solver over g and the original initial
// estimate, and runs it. Base-solver failures are fatal to the whole
// Optimize call.
func (o *Optimizer) baseSolve(g *factor.Graph) (factor.Values, error) {
	newSolver := o.params.Solver
	if newSolver == nil {
		newSolver = func(g *factor.Graph, initial factor.Values) (BaseSolver, error) {
			return gaussnewton.New(g, initial, o.params.Base)
		}
	}

	solver, err := newSolver(g, o.initial)
	if err != nil {
		return nil, fmt.Errorf("gnc: base solver: %w", err)
	}
	result, err := solver.Solve()
	if err != nil {
		return nil, fmt.Errorf("gnc: base solver: %w", err)
	}

	return result, nil
}

// tracef routes a diagnostic line through the Trace hook when the configured
// verbosity admits it.
func (o *Optimizer) tracef(level Verbosity, format string, args ...any) {
	if o.params.Trace == nil || o.params.Verbosity < level {
		return
	}
	o.params.Trace(level, fmt.Sprintf(format, args...))
}

// normalize strips Robust wrappers down to their Gaussian base, slot by
// slot, preserving order, keys and nil slots.
func normalize(graph *factor.Graph) (*factor.Graph, error) {
	out := factor.NewGraph()
	out.Resize(graph.Size())

	for i := 0; i < graph.Size(); i++ {
		f, _ := graph.At(i)
		if f == nil {
			continue
		}

		var (
			normalized factor.Factor
			err        error
		)
		switch m := f.Noise().(type) {
		case *noise.Gaussian:
			normalized = f
		case *noise.Robust:
			normalized, err = f.WithNoise(m.Unwrap())
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: slot %d", ErrNonGaussianNoise, i)
		}

		if err := out.Set(i, normalized); err != nil {
			return nil, err
		}
	}

	return out, nil
}
