// Package particles implements the particle set underlying the filter:
// a fixed schema of parallel columns (state, importance weight, cluster
// tag) kept at a single shared length.
//
// The columnar layout is deliberate. Weighting and resampling sweep one
// field across the whole population, and keeping each field contiguous
// lets those passes run over plain slices; the column accessors return
// views that alias the backing arrays, so bulk algorithms and
// per-particle access observe the same storage. Rows provides the
// row-oriented view over the same columns for code that wants whole
// particles.
package particles
