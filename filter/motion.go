package filter

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/mcl/geom"
)

// MotionModel advances one particle state between sensor updates. The
// supplied source is the caller's; implementations draw all their
// randomness from it so runs stay reproducible under a seed.
type MotionModel interface {
	Apply(rng *rand.Rand, pose geom.SE2) geom.SE2
}

// Stationary models a robot that is not moving: each update composes
// the pose with a small zero-mean normal perturbation in heading and
// translation, which keeps the population from collapsing onto
// duplicate states between resampling rounds.
type Stationary struct {
	// Sigma is the standard deviation of the heading and translation
	// perturbations.
	Sigma float64
}

// NewStationary returns the stationary model with the stock
// perturbation scale.
func NewStationary() Stationary { return Stationary{Sigma: 0.02} }

// Apply perturbs the pose.
func (s Stationary) Apply(rng *rand.Rand, pose geom.SE2) geom.SE2 {
	noise := distuv.Normal{Mu: 0, Sigma: s.Sigma, Src: rng}
	step := geom.NewSE2(noise.Rand(), geom.Vec2{X: noise.Rand(), Y: noise.Rand()})
	return pose.Compose(step)
}
