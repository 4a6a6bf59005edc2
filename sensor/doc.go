// Package sensor converts raw range measurements into importance
// weights for particle states. Each model is constructed once per map
// and turns a measurement set into a pure weighting function over
// candidate poses, so the per-measurement precomputation is shared
// across every particle evaluation of an update cycle.
//
// Two models are provided: BeamModel, which ray-casts an expected
// range per beam and scores the measurement against a four-term
// mixture of hit, short, random and max-range phenomena, and
// LikelihoodFieldModel, which precomputes a per-cell likelihood from
// the map's nearest-obstacle distances and scores measurement
// endpoints directly. Both expose UpdateMap to swap the map used by
// subsequently built weighting functions; swapping during an in-flight
// evaluation is the caller's responsibility to synchronize.
package sensor
