package sensor

import "github.com/banshee-data/mcl/geom"

// StateWeightFunc maps a candidate pose to a non-negative importance
// weight for a fixed measurement set. Implementations are pure: they
// read only the measurements and map captured at construction, so one
// function may be evaluated from many goroutines at once.
type StateWeightFunc func(pose geom.SE2) float64

// RangeCaster is the map query the beam model needs: the expected
// range from a pose along a bearing. Implementations report maxRange
// for rays that leave the map or meet no obstacle, never an error.
type RangeCaster interface {
	CastRay(pose geom.SE2, bearing, maxRange float64) float64
}

// DistanceMap is the map query the likelihood field model needs:
// cell-level addressing plus the nearest-obstacle distance transform.
// grid.StaticGrid satisfies it.
type DistanceMap interface {
	Width() int
	Height() int
	Resolution() float64
	CellAt(p geom.Vec2) (ix, iy int, ok bool)
	DistanceTransform(maxDistance float64) []float64
}
