package noise

// Kernel is an M-estimator: a robust loss over the whitened residual norm x,
// together with the IRLS weight it induces.
//
// Contracts:
//   - Loss(0) == 0 and Loss is non-decreasing in |x|.
//   - Weight(x) ∈ [0,1], Weight(0) == 1.
//   - Both are evaluated on the whitened norm, i.e. x = ‖R·r‖.
type Kernel interface {
	// Loss evaluates the robust loss at whitened residual norm x.
	Loss(x float64) float64

	// Weight evaluates the IRLS weight at whitened residual norm x.
	Weight(x float64) float64

	// Name identifies the kernel for diagnostics and printing.
	Name() string
}

// GemanMcClure is the Geman-McClure M-estimator with scale c:
//
//	Loss(x)   = 0.5·c²·x² / (c² + x²)
//	Weight(x) = ( c² / (c² + x²) )²
//
// The loss saturates at 0.5·c² for large residuals, which is what makes it
// robust — and non-convex.
type GemanMcClure struct {
	c2 float64 // c squared; invariant: c2 > 0
}

// NewGemanMcClure builds a Geman-McClure kernel with scale c.
// Returns ErrNonPositiveScale if c <= 0.
func NewGemanMcClure(c float64) (*GemanMcClure, error) {
	if c <= 0 {
		return nil, ErrNonPositiveScale
	}

	return &GemanMcClure{c2: c * c}, nil
}

// MustGemanMcClure is NewGemanMcClure that panics on invalid scale.
// Intended for package-level fixtures and examples with constant arguments.
func MustGemanMcClure(c float64) *GemanMcClure {
	k, err := NewGemanMcClure(c)
	if err != nil {
		panic(err)
	}

	return k
}

// Loss evaluates the Geman-McClure loss at whitened norm x.
func (k *GemanMcClure) Loss(x float64) float64 {
	x2 := x * x

	return 0.5 * k.c2 * x2 / (k.c2 + x2)
}

// Weight evaluates the Geman-McClure IRLS weight at whitened norm x.
func (k *GemanMcClure) Weight(x float64) float64 {
	w := k.c2 / (k.c2 + x*x)

	return w * w
}

// Name reports "GemanMcClure".
func (k *GemanMcClure) Name() string { return "GemanMcClure" }
