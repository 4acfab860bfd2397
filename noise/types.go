package noise

import "errors"

// Sentinel errors returned by noise-model constructors and operations.
var (
	// ErrNonPositiveSigma indicates a standard deviation that is zero or
	// negative; every sigma must be strictly positive.
	ErrNonPositiveSigma = errors.New("noise: sigma must be positive")

	// ErrBadInformation indicates an information matrix that is non-square
	// or not symmetric within tolerance.
	ErrBadInformation = errors.New("noise: information matrix must be square and symmetric")

	// ErrNotPositiveDefinite indicates an information matrix whose Cholesky
	// factorization failed; Gaussian models require positive definiteness.
	ErrNotPositiveDefinite = errors.New("noise: information matrix is not positive definite")

	// ErrDimensionMismatch indicates a residual vector whose length does not
	// match the model dimension.
	ErrDimensionMismatch = errors.New("noise: vector dimension does not match model dimension")

	// ErrNonPositiveScale indicates a kernel scale parameter that is zero or
	// negative.
	ErrNonPositiveScale = errors.New("noise: kernel scale must be positive")

	// ErrNegativeWeight indicates an information-scaling weight below zero
	// (or NaN); weights live in [0, 1].
	ErrNegativeWeight = errors.New("noise: scaling weight must be non-negative")
)

// symTol bounds the allowed asymmetry when accepting an information matrix.
// It is structural (matrix well-formedness), not statistical.
const symTol = 1e-9

// Model is the variant set of measurement-noise models. Concrete
// implementations are *Gaussian and *Robust; consumers discriminate by type
// switch and must treat any other implementation as a fatal inconsistency.
type Model interface {
	// Dim reports the dimension of residual vectors the model accepts.
	Dim() int
}
