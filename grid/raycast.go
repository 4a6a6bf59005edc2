package grid

import (
	"math"

	"github.com/banshee-data/mcl/geom"
)

// CastRay walks the grid from the pose's position along the pose
// heading plus bearing and returns the distance to the first occupied
// cell, measured between cell indices and scaled by the resolution.
// Rays that leave the grid or reach maxRange without touching an
// obstacle return maxRange.
func (g *StaticGrid) CastRay(pose geom.SE2, bearing, maxRange float64) float64 {
	start := g.ToGridFrame(pose.T)
	dir := g.originInv.R.Apply(pose.R.Mul(geom.NewRot2(bearing)).Apply(geom.Vec2{X: 1}))
	end := start.Add(dir.Scale(maxRange))

	x0 := int(math.Floor(start.X / g.resolution))
	y0 := int(math.Floor(start.Y / g.resolution))
	x1 := int(math.Floor(end.X / g.resolution))
	y1 := int(math.Floor(end.Y / g.resolution))

	if ix, iy, hit := g.bresenham(x0, y0, x1, y1); hit {
		dx := float64(ix - x0)
		dy := float64(iy - y0)
		return math.Min(math.Hypot(dx, dy)*g.resolution, maxRange)
	}
	return maxRange
}

// bresenham walks the integer line from (x0, y0) to (x1, y1) and
// returns the first occupied cell. The walk stops as soon as it is
// outside the grid: from inside a rectangular map a ray cannot
// re-enter, and a walk that starts outside reports no hit.
func (g *StaticGrid) bresenham(x0, y0, x1, y1 int) (ix, iy int, hit bool) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	x, y := x0, y0
	for {
		if !g.Contains(x, y) {
			return 0, 0, false
		}
		if g.cells[y*g.width+x] {
			return x, y, true
		}
		if x == x1 && y == y1 {
			return 0, 0, false
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
