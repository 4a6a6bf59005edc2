package grid

import (
	"fmt"
	"math"

	"github.com/banshee-data/mcl/geom"
)

// StaticGrid is an immutable occupancy grid. Construct with
// NewStaticGrid; the zero value is empty and unusable.
type StaticGrid struct {
	cells      []bool
	width      int
	height     int
	resolution float64
	origin     geom.SE2
	originInv  geom.SE2
}

// NewStaticGrid builds a grid from row-major cells (true = occupied).
// The origin maps grid-frame coordinates into the world frame.
func NewStaticGrid(cells []bool, width, height int, resolution float64, origin geom.SE2) (*StaticGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("cell count %d does not match %dx%d", len(cells), width, height)
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %v", resolution)
	}
	owned := make([]bool, len(cells))
	copy(owned, cells)
	return &StaticGrid{
		cells:      owned,
		width:      width,
		height:     height,
		resolution: resolution,
		origin:     origin,
		originInv:  origin.Inverse(),
	}, nil
}

// Width returns the number of columns.
func (g *StaticGrid) Width() int { return g.width }

// Height returns the number of rows.
func (g *StaticGrid) Height() int { return g.height }

// Resolution returns the cell edge length in world units.
func (g *StaticGrid) Resolution() float64 { return g.resolution }

// Origin returns the transform from the grid frame to the world frame.
func (g *StaticGrid) Origin() geom.SE2 { return g.origin }

// Contains reports whether (ix, iy) addresses a cell.
func (g *StaticGrid) Contains(ix, iy int) bool {
	return ix >= 0 && ix < g.width && iy >= 0 && iy < g.height
}

// Occupied reports whether cell (ix, iy) holds an obstacle. Cells
// outside the grid are reported free.
func (g *StaticGrid) Occupied(ix, iy int) bool {
	return g.Contains(ix, iy) && g.cells[iy*g.width+ix]
}

// ToGridFrame maps a world-frame point into the grid frame.
func (g *StaticGrid) ToGridFrame(p geom.Vec2) geom.Vec2 {
	return g.originInv.Apply(p)
}

// CellAt returns the cell containing the world-frame point p and
// whether it lies inside the grid.
func (g *StaticGrid) CellAt(p geom.Vec2) (ix, iy int, ok bool) {
	q := g.ToGridFrame(p)
	ix = int(math.Floor(q.X / g.resolution))
	iy = int(math.Floor(q.Y / g.resolution))
	return ix, iy, g.Contains(ix, iy)
}
