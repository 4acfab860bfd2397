package factor

import "errors"

// Sentinel errors returned by factor and graph operations.
var (
	// ErrNoKeys indicates a factor constructed with an empty key set.
	ErrNoKeys = errors.New("factor: key set must be non-empty")

	// ErrNilResidual indicates a factor constructed without a residual function.
	ErrNilResidual = errors.New("factor: residual function must be non-nil")

	// ErrNilNoise indicates a factor constructed without a noise model.
	ErrNilNoise = errors.New("factor: noise model must be non-nil")

	// ErrMissingVariable indicates an evaluation over Values that lack one of
	// the factor's keys.
	ErrMissingVariable = errors.New("factor: variable key not present in values")

	// ErrSlotOutOfRange indicates a graph slot index outside [0, Size).
	ErrSlotOutOfRange = errors.New("factor: slot index out of range")

	// ErrUnsupportedNoise indicates a noise model outside the supported
	// variant set {Gaussian, Robust}.
	ErrUnsupportedNoise = errors.New("factor: noise model must be Gaussian or Robust")
)

// numericalStep is the central-difference step used for default Jacobians.
const numericalStep = 1e-5
