// Package estimate computes weighted means and covariances over
// particle populations: scalars, fixed-dimension vectors, planar poses
// (SE2), spatial poses (SE3) and, through the Manifold contract,
// arbitrary Lie groups.
//
// All estimators share the same weighting convention: weights are
// normalized to sum to one, means are the weighted sample means, and
// covariances use the effective-sample-size corrected denominator
// 1 - sum(w^2) so that independent draws yield unbiased estimates.
// Passing nil weights treats every sample as weight one. Degenerate
// inputs (fewer than two samples, zero total weight, all weight on one
// sample) are reported as errors rather than silently producing NaN.
package estimate
