// Package gaussnewton implements the base nonlinear least-squares solver:
// plain Gauss-Newton over a factor graph.
//
// Algorithm outline:
//  1. Linearize every non-nil factor at the current estimate, obtaining
//     whitened Jacobian blocks A_k and right-hand sides b.
//  2. Assemble the normal equations H·δ = g with H = ΣAᵀA, g = ΣAᵀb over a
//     deterministic (sorted-key) variable ordering.
//  3. Solve by Cholesky factorization and retract: x ← x ⊕ δ.
//  4. Stop when the total graph error stops decreasing meaningfully
//     (absolute or relative decrease below tolerance, or error below
//     ErrorTol), or after MaxIterations.
//
// Contracts:
//   - Deterministic: identical graph, estimate and params give identical
//     results; the variable ordering is sorted, never map order.
//   - The solver owns private copies of the graph and the initial estimate;
//     callers' inputs are never mutated.
//   - No step damping or line search: steps are accepted unconditionally,
//     exactly like the classical Gauss-Newton iteration. Robust noise models
//     participate through their IRLS linearization (see package factor).
//
// Complexity per iteration: O(Σ factor linearizations) + O(n³) for the
// dense Cholesky solve, n the summed variable dimension.
//
// Errors (sentinel):
//
//	– ErrNilGraph          if the graph is nil.
//	– ErrBadMaxIterations  if MaxIterations < 1.
//	– ErrBadTolerance      if any tolerance is negative.
//	– ErrIndefiniteSystem  if the normal equations are not positive definite.
package gaussnewton
