// Package factor defines the measurement primitives of the library: keyed
// variables (Key, Values), residual factors with noise models, and the
// ordered factor Graph they live in.
//
// Data model:
//
//   - Key — a 64-bit variable identifier; Symbol('x', 1) gives the
//     conventional "x1" naming.
//   - Values — the estimate: a map from Key to a vector on the (vector)
//     manifold. Only solvers are expected to move it, via Retract.
//   - Factor — a single measurement term: a fixed key set, a residual
//     function, and a noise model (Gaussian or Robust). Error reports
//     0.5·‖whitened residual‖² for Gaussian noise and the kernel loss for
//     Robust noise.
//   - Graph — a fixed-order sequence of factor slots. Slot index is a stable
//     identity: removed factors leave a nil slot that every operation skips
//     but preserves positionally.
//
// Linearization contract:
//
//	Linearize returns whitened Jacobian blocks A_k per key and the whitened
//	right-hand side b = −R·r, so that the local least-squares problem is
//	min ‖Σ A_k·δ_k − b‖². Robust models additionally scale the whitened
//	system by sqrt(Kernel.Weight(‖R·r‖)) — the IRLS convention.
//
// Jacobians default to central finite differences (step 1e-5); factors with
// closed-form derivatives can install them with WithJacobian.
//
// Errors (sentinel):
//
//	– ErrNoKeys            if a factor is built with an empty key set.
//	– ErrNilResidual       if a factor is built without a residual function.
//	– ErrNilNoise          if a factor is built without a noise model.
//	– ErrMissingVariable   if evaluation hits a key absent from Values.
//	– ErrSlotOutOfRange    if a graph slot index is out of bounds.
//	– ErrUnsupportedNoise  if a noise model is neither Gaussian nor Robust.
package factor
