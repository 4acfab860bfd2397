// Package noise defines measurement-noise models for factor graphs and the
// M-estimator kernels used to robustify them.
//
// Two model variants exist:
//
//   - Gaussian — classical zero-mean Gaussian noise, held in sqrt-information
//     form: the whitener R satisfies Information = Rᵀ·R. Constructors accept
//     a full information matrix, per-dimension sigmas, or an isotropic sigma.
//   - Robust — a Gaussian base model wrapped in a robust kernel (an
//     M-estimator). The kernel down-weights large whitened residuals; the
//     base Gaussian remains recoverable via Unwrap.
//
// Whitening contract:
//
//	Whiten(r) = R·r, so that the squared Mahalanobis distance rᵀ·Ω·r equals
//	‖Whiten(r)‖². Factor errors are 0.5·‖Whiten(r)‖² for Gaussian models and
//	Kernel.Loss(‖Whiten(r)‖) for Robust ones; the 0.5 is baked into the
//	kernel losses too, so the two conventions agree at the unit kernel.
//
// Errors (sentinel):
//
//	– ErrNonPositiveSigma   if any sigma is zero or negative.
//	– ErrBadInformation     if an information matrix is non-square or asymmetric.
//	– ErrNotPositiveDefinite if an information matrix has no Cholesky factor.
//	– ErrDimensionMismatch  if a vector does not match the model dimension.
//	– ErrNonPositiveScale   if a Kernel scale parameter is not positive.
//
// Example usage:
//
//	m, err := noise.Isotropic(2, 0.1)           // sigma 0.1 on both axes
//	if err != nil { ... }
//	robust := noise.NewRobust(noise.NewGemanMcClure(1.0), m)
//	base := robust.Unwrap()                     // the Gaussian inside
package noise
