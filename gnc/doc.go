// Package gnc implements graduated non-convexity (GNC), the robust
// estimation loop of Yang, Antonante, Tzoumas & Carlone, "Graduated
// Non-Convexity for Robust Spatial Perception" (RA-L 2020).
//
// The idea: solving nonlinear least squares under a robust (non-convex)
// loss directly tends to get stuck near the initial guess. GNC instead
// continues a family of surrogate losses, parameterized by a shape value mu,
// from a near-convex shape down to the true robust loss. At each step the
// surrogate induces a per-measurement weight in [0,1]; the weighted problem
// is handed to a base least-squares solver, and the resulting estimate
// drives the next weight update.
//
// Algorithm outline (Geman-McClure kernel):
//  1. Solve once with all weights at 1 from the stored initial estimate.
//  2. mu₀ = 2·rmax²/barcSq, rmax² the largest factor error at the initial
//     estimate (remark 5 of the paper: the surrogate is approximately convex).
//  3. Repeat up to MaxIterations:
//     weights[i] = (mu·barcSq / (u²ᵢ + mu·barcSq))² for each slot not in
//     KnownInliers (those stay pinned at 1), u²ᵢ the factor error at the
//     current result; rebuild the graph with information matrices scaled by
//     the weights; re-solve from the original initial estimate; stop once
//     |mu − 1| < 1e-9, else mu ← max(1, mu/MuStep).
//  4. Exhausting the budget is a soft stop: the last result is returned
//     without error.
//
// Kernels are a strategy set {initial mu, weight, mu update, convergence}.
// Only Geman-McClure is implemented; selecting truncated least squares (or
// any unknown value) fails fast with ErrUnsupportedLoss at every dispatch
// point — never a silent approximation.
//
// Concurrency: an Optimizer owns its graph copy, estimate and weight vector
// outright. Distinct instances are independent; a single instance must not
// run Optimize concurrently.
//
// Errors (sentinel):
//
//	– ErrNilGraph           if the graph is nil.
//	– ErrUnsupportedLoss    if the loss kernel has no implementation.
//	– ErrNonGaussianNoise   if a factor's noise cannot be normalized to Gaussian.
//	– ErrWeightsSize        if a weight vector does not match the graph size.
//	– ErrBadMaxIterations   if MaxIterations < 1.
//	– ErrBadInlierThreshold if BarcSq <= 0.
//	– ErrBadMuStep          if MuStep <= 1.
package gnc
