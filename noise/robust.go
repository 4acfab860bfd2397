package noise

// Robust wraps a base Gaussian model in an M-estimator kernel. The base
// model whitens residuals exactly as before; the kernel re-weights the
// whitened norm, turning the quadratic loss into a robust one.
//
// Robust models exist to be unwrapped: an outer robust optimizer (see the
// gnc package) takes over the kernel's job and runs the base solver on the
// plain Gaussian inside.
type Robust struct {
	base   *Gaussian
	kernel Kernel
}

// NewRobust wraps base in kernel. Both arguments must be non-nil; a nil
// argument is a programming error and panics, matching the package rule that
// only user inputs get sentinel errors.
func NewRobust(kernel Kernel, base *Gaussian) *Robust {
	if kernel == nil || base == nil {
		panic("noise: NewRobust requires a kernel and a base model")
	}

	return &Robust{base: base, kernel: kernel}
}

// Dim reports the residual dimension of the wrapped Gaussian.
func (r *Robust) Dim() int { return r.base.Dim() }

// Unwrap returns the Gaussian model inside the robust wrapper.
func (r *Robust) Unwrap() *Gaussian { return r.base }

// Kernel returns the M-estimator attached to the model.
func (r *Robust) Kernel() Kernel { return r.kernel }
