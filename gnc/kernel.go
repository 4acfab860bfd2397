package gnc

import "math"

// lossKernel is the strategy a loss type must implement to drive the
// continuation: shape initialization, the per-measurement weight rule, the
// shape schedule, and its convergence test. Kernels lacking a full
// implementation are never registered; kernelFor fails fast instead.
type lossKernel interface {
	// initialMu computes the starting shape parameter from the largest
	// factor error at the initial estimate.
	initialMu(rmaxSq, barcSq float64) float64

	// weight computes the inlier weight for a factor with error u2 at the
	// current shape parameter.
	weight(u2, mu, barcSq float64) float64

	// updateMu advances the shape parameter one continuation step.
	updateMu(mu, step float64) float64

	// converged reports whether the surrogate has reached the true loss.
	converged(mu float64) bool
}

// kernelFor resolves the strategy for a loss type. Every unimplemented
// selection — truncated least squares included — returns ErrUnsupportedLoss;
// this is the single place future kernels plug in.
func kernelFor(t LossType) (lossKernel, error) {
	switch t {
	case GemanMcClureLoss:
		return gemanMcClureKernel{}, nil
	default:
		return nil, ErrUnsupportedLoss
	}
}

// gemanMcClureKernel is the Geman-McClure continuation of the GNC paper:
// eq. (12) for the weights, remark 5 for mu₀, and a schedule that divides mu
// by MuStep until it saturates at 1, where the surrogate equals the true
// Geman-McClure loss.
type gemanMcClureKernel struct{}

func (gemanMcClureKernel) initialMu(rmaxSq, barcSq float64) float64 {
	return 2 * rmaxSq / barcSq
}

func (gemanMcClureKernel) weight(u2, mu, barcSq float64) float64 {
	w := mu * barcSq / (u2 + mu*barcSq)

	return w * w
}

func (gemanMcClureKernel) updateMu(mu, step float64) float64 {
	// Reduce mu, but saturate at 1.
	return math.Max(1.0, mu/step)
}

func (gemanMcClureKernel) converged(mu float64) bool {
	// mu == 1 recovers the original Geman-McClure loss.
	return math.Abs(mu-1.0) < muEpsilon
}
