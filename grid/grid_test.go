package grid

import (
	"fmt"
	"math"
	"testing"

	"github.com/banshee-data/mcl/geom"
)

func near(t *testing.T, name string, got, want, tolerance float64) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, want, got)
	}
}

// centerObstacle is a 5x5 grid with a single obstacle at cell (2, 2).
func centerObstacle(t *testing.T) *StaticGrid {
	t.Helper()
	cells := make([]bool, 25)
	cells[2*5+2] = true
	g, err := NewStaticGrid(cells, 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	return g
}

func TestNewStaticGridValidation(t *testing.T) {
	cases := []struct {
		name          string
		cells         int
		width, height int
		resolution    float64
	}{
		{"zero width", 0, 0, 5, 0.5},
		{"negative height", 25, 5, -5, 0.5},
		{"cell count mismatch", 24, 5, 5, 0.5},
		{"zero resolution", 25, 5, 5, 0},
		{"negative resolution", 25, 5, 5, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewStaticGrid(make([]bool, c.cells), c.width, c.height, c.resolution, geom.IdentitySE2())
			if err == nil {
				t.Errorf("expected constructor error")
			}
		})
	}
}

func TestOccupied(t *testing.T) {
	g := centerObstacle(t)
	if !g.Occupied(2, 2) {
		t.Errorf("cell (2,2) should be occupied")
	}
	if g.Occupied(0, 0) {
		t.Errorf("cell (0,0) should be free")
	}
	// Out-of-range cells read as free.
	if g.Occupied(-1, 0) || g.Occupied(5, 0) || g.Occupied(0, 17) {
		t.Errorf("out-of-range cells should read as free")
	}
}

func TestCellAt(t *testing.T) {
	g := centerObstacle(t)

	ix, iy, ok := g.CellAt(geom.Vec2{X: 1.25, Y: 1.25})
	if !ok || ix != 2 || iy != 2 {
		t.Errorf("expected cell (2,2), got (%d,%d) ok=%v", ix, iy, ok)
	}

	if _, _, ok := g.CellAt(geom.Vec2{X: -50, Y: 50}); ok {
		t.Errorf("expected out-of-map point to miss")
	}
}

func TestCellAtOffsetOrigin(t *testing.T) {
	cells := make([]bool, 25)
	cells[4*5+4] = true
	g, err := NewStaticGrid(cells, 5, 5, 2.0, geom.NewSE2(0, geom.Vec2{X: -5, Y: -5}))
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	ix, iy, ok := g.CellAt(geom.Vec2{X: 4.5, Y: 4.5})
	if !ok || ix != 4 || iy != 4 {
		t.Errorf("expected cell (4,4), got (%d,%d) ok=%v", ix, iy, ok)
	}
}

func TestCellAtRotatedOrigin(t *testing.T) {
	cells := make([]bool, 25)
	cells[4*5+4] = true
	g, err := NewStaticGrid(cells, 5, 5, 2.0, geom.NewSE2(math.Pi/2, geom.Vec2{}))
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	ix, iy, ok := g.CellAt(geom.Vec2{X: -9.5, Y: 9.5})
	if !ok || ix != 4 || iy != 4 {
		t.Errorf("expected cell (4,4), got (%d,%d) ok=%v", ix, iy, ok)
	}
}

func TestCastRayDiagonalHit(t *testing.T) {
	g := centerObstacle(t)
	got := g.CastRay(geom.IdentitySE2(), math.Pi/4, 60)
	near(t, "diagonal range", got, 2*math.Sqrt2*0.5, 1e-12)
}

func TestCastRayAxisAlignedHit(t *testing.T) {
	cells := make([]bool, 25)
	cells[0*5+3] = true
	g, err := NewStaticGrid(cells, 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	near(t, "axis range", g.CastRay(geom.IdentitySE2(), 0, 60), 1.5, 1e-12)
}

func TestCastRayShallowAngleHit(t *testing.T) {
	cells := make([]bool, 25)
	cells[1*5+2] = true
	g, err := NewStaticGrid(cells, 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	got := g.CastRay(geom.IdentitySE2(), math.Atan2(1, 2), 3)
	near(t, "shallow range", got, math.Sqrt(5)*0.5, 1e-12)
}

func TestCastRayMissesReturnMaxRange(t *testing.T) {
	g := centerObstacle(t)

	// Pointing away from the map.
	near(t, "leaving ray", g.CastRay(geom.IdentitySE2(), -3*math.Pi/4, 60), 60, 0)

	// Crossing the map without touching the obstacle.
	near(t, "missing ray", g.CastRay(geom.IdentitySE2(), 0, 60), 60, 0)

	// Empty map.
	empty, err := NewStaticGrid(make([]bool, 25), 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	near(t, "empty map", empty.CastRay(geom.IdentitySE2(), math.Pi/4, 60), 60, 0)
}

func TestCastRayHonorsPoseHeading(t *testing.T) {
	g := centerObstacle(t)
	// The pose already faces the diagonal; a zero bearing must hit.
	pose := geom.NewSE2(math.Pi/4, geom.Vec2{})
	near(t, "heading range", g.CastRay(pose, 0, 60), 2*math.Sqrt2*0.5, 1e-12)
}

// antiDiagonal is the 5x5 grid with obstacles on the anti-diagonal.
func antiDiagonal(t *testing.T) *StaticGrid {
	t.Helper()
	cells := []bool{
		false, false, false, false, true,
		false, false, false, true, false,
		false, false, true, false, false,
		false, true, false, false, false,
		true, false, false, false, false,
	}
	g, err := NewStaticGrid(cells, 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	return g
}

func TestDistanceTransformAntiDiagonal(t *testing.T) {
	g := antiDiagonal(t)
	got := g.DistanceTransform(2.0)

	d1 := 0.5
	d2 := math.Sqrt2 * 0.5
	d5 := math.Sqrt(5) * 0.5
	d8 := math.Sqrt(8) * 0.5
	want := []float64{
		d8, d5, d2, d1, 0,
		d5, d2, d1, 0, d1,
		d2, d1, 0, d1, d2,
		d1, 0, d1, d2, d5,
		0, d1, d2, d5, d8,
	}
	for i := range want {
		near(t, "distance", got[i], want[i], 1e-12)
	}
}

func TestDistanceTransformCap(t *testing.T) {
	g := antiDiagonal(t)
	got := g.DistanceTransform(1.0)
	near(t, "capped corner", got[0], 1.0, 1e-12)
	near(t, "inner cell", got[1*5+1], math.Sqrt2*0.5, 1e-12)
}

func TestDistanceTransformNoObstacles(t *testing.T) {
	g, err := NewStaticGrid(make([]bool, 25), 5, 5, 0.5, geom.IdentitySE2())
	if err != nil {
		t.Fatalf("NewStaticGrid: %v", err)
	}
	for i, d := range g.DistanceTransform(2.0) {
		near(t, fmt.Sprintf("cell %d", i), d, 2.0, 1e-12)
	}
}

func TestDistanceTransformSingleObstacle(t *testing.T) {
	g := centerObstacle(t)
	got := g.DistanceTransform(5.0)
	near(t, "corner (0,0)", got[0], math.Sqrt(8)*0.5, 1e-12)
	near(t, "corner (4,4)", got[4*5+4], math.Sqrt(8)*0.5, 1e-12)
	near(t, "obstacle", got[2*5+2], 0, 0)
	near(t, "adjacent", got[2*5+3], 0.5, 1e-12)
}
