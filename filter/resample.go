package filter

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/mcl/geom"
)

// Limiter decides how many particles resampling emits. Resampling
// calls Reset once per pass, Add for every emitted particle, and stops
// as soon as Enough reports true.
type Limiter interface {
	Reset()
	Add(pose geom.SE2)
	Enough(n int) bool
}

// Fixed keeps the population at a constant size.
type Fixed int

// Reset is a no-op; the target does not depend on the emitted states.
func (Fixed) Reset() {}

// Add is a no-op.
func (Fixed) Add(geom.SE2) {}

// Enough reports whether n particles have been emitted.
func (f Fixed) Enough(n int) bool { return n >= int(f) }

// KLD adapts the population size to the spread of the emitted
// particles using the KLD-sampling bound: particles are binned into a
// spatial histogram and the required size grows with the number of
// occupied bins, so concentrated clouds resample small and dispersed
// ones grow toward Max. Construct with NewKLD.
type KLD struct {
	// Min and Max bound the population size.
	Min, Max int
	// Epsilon is the allowed KL divergence between the sampled and
	// true distributions.
	Epsilon float64
	// XYResolution and ThetaResolution set the histogram bin sizes.
	XYResolution, ThetaResolution float64

	z       float64
	buckets map[[3]int32]struct{}
}

// NewKLD returns a limiter for the (1-delta) upper quantile of the
// KLD bound. Typical values: epsilon 0.05, delta 0.05 and bins a few
// times the map resolution.
func NewKLD(min, max int, epsilon, delta, xyResolution, thetaResolution float64) *KLD {
	return &KLD{
		Min:             min,
		Max:             max,
		Epsilon:         epsilon,
		XYResolution:    xyResolution,
		ThetaResolution: thetaResolution,
		z:               distuv.UnitNormal.Quantile(1 - delta),
		buckets:         make(map[[3]int32]struct{}),
	}
}

// Reset clears the histogram for a new resampling pass.
func (k *KLD) Reset() {
	clear(k.buckets)
}

// Add bins the emitted pose.
func (k *KLD) Add(pose geom.SE2) {
	key := [3]int32{
		int32(math.Floor(pose.T.X / k.XYResolution)),
		int32(math.Floor(pose.T.Y / k.XYResolution)),
		int32(math.Floor(pose.Angle() / k.ThetaResolution)),
	}
	k.buckets[key] = struct{}{}
}

// Enough applies the KLD bound to the occupied bin count. The bound is
// undefined below two bins, so at least Min particles are always
// drawn.
func (k *KLD) Enough(n int) bool {
	if n >= k.Max {
		return true
	}
	if n < k.Min {
		return false
	}
	return float64(n) >= k.bound(len(k.buckets))
}

// bound is the Fox KLD-sampling population bound for kBins occupied
// histogram bins.
func (k *KLD) bound(kBins int) float64 {
	if kBins < 2 {
		return float64(k.Min)
	}
	common := 2 / (9 * float64(kBins-1))
	base := 1 - common + math.Sqrt(common)*k.z
	return float64(kBins-1) / (2 * k.Epsilon) * base * base * base
}
