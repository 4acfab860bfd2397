// Package gtsam is a Go take on the robust-estimation core of factor-graph
// smoothing and mapping: nonlinear least squares over measurement factors,
// made resistant to outliers by graduated non-convexity (GNC).
//
// What lives here?
//
//	A compact, dependency-light library that brings together:
//		• Noise models: Gaussian (information / sqrt-information form) and
//		  Robust (a Gaussian wrapped in an M-estimator kernel)
//		• Factors & graphs: residual factors over keyed variables, with
//		  ordered, nil-aware factor slots
//		• Gauss-Newton: a deterministic base solver over whitened
//		  linearizations (normal equations + Cholesky)
//		• GNC: the graduated non-convexity continuation loop of
//		  Yang, Antonante, Tzoumas & Carlone (RA-L 2020), re-weighting
//		  measurements per iteration until the surrogate loss matches the
//		  true Geman-McClure loss
//
// Why this layout?
//
//   - One concern per package - noise, factor, gaussnewton, gnc - each with
//     its own sentinels, options and tests
//   - Strict failure semantics - unsupported kernels and malformed noise
//     models fail fast; exhausting the continuation budget is a soft stop
//   - Pure Go numerics on top of gonum/mat - no cgo, no hidden state
//
// Quick sketch:
//
//	g := factor.NewGraph()
//	g.Add(factor.NewPrior(x1, z, noise.MustIsotropic(2, 0.1)))
//	opt, _ := gnc.New(g, initial, gnc.DefaultParams())
//	result, err := opt.Optimize()
//
// Under the hood, everything is organized under four subpackages:
//
//	noise/       — noise models (Gaussian, Robust) & M-estimator kernels
//	factor/      — Key, Values, Factor, Graph primitives
//	gaussnewton/ — the base nonlinear least-squares solver
//	gnc/         — the graduated non-convexity optimizer
//
// Dive into each package's doc.go for contracts, complexity notes and
// worked examples.
//
//	go get github.com/dlee640/gtsam
package gtsam
