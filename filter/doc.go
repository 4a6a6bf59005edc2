// Package filter runs the Monte Carlo localization loop over the core
// packages: it owns a particle container, advances states through a
// motion model, weights them in parallel with a sensor model's
// weighting function, resamples by importance weight and reports the
// fused pose estimate.
//
// The population size after resampling is decided by a Limiter: Fixed
// keeps it constant, KLD adapts it to how concentrated the cloud is.
// When recovery is enabled, resampling injects fresh particles from a
// pose prior at a rate driven by the fast/slow average-weight filters,
// which pulls the filter out of a converged-but-wrong state. All
// randomness flows from the seed in the configuration.
package filter
