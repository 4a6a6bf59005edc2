package filter

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/banshee-data/mcl/geom"
)

// Prior draws pose hypotheses for initialization and for recovery
// injection during resampling.
type Prior interface {
	Sample(rng *rand.Rand) geom.SE2
}

// UniformPrior draws poses uniformly over the free cells of an
// occupancy grid, with uniform heading. Construct with
// NewUniformPrior.
type UniformPrior struct {
	grid       freeSpaceGrid
	free       []int32 // row-major indices of free cells
	width      int
	resolution float64
}

// freeSpaceGrid is the map surface UniformPrior needs; grid.StaticGrid
// satisfies it.
type freeSpaceGrid interface {
	Width() int
	Height() int
	Resolution() float64
	Occupied(ix, iy int) bool
	Origin() geom.SE2
}

// NewUniformPrior indexes the grid's free cells. Grids without any
// free cell are rejected.
func NewUniformPrior(g freeSpaceGrid) (*UniformPrior, error) {
	w, h := g.Width(), g.Height()
	free := make([]int32, 0, w*h)
	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			if !g.Occupied(ix, iy) {
				free = append(free, int32(iy*w+ix))
			}
		}
	}
	if len(free) == 0 {
		return nil, fmt.Errorf("grid has no free cells")
	}
	return &UniformPrior{grid: g, free: free, width: w, resolution: g.Resolution()}, nil
}

// Sample draws a pose in a uniformly chosen free cell.
func (u *UniformPrior) Sample(rng *rand.Rand) geom.SE2 {
	idx := int(u.free[rng.IntN(len(u.free))])
	ix, iy := idx%u.width, idx/u.width
	p := geom.Vec2{
		X: (float64(ix) + rng.Float64()) * u.resolution,
		Y: (float64(iy) + rng.Float64()) * u.resolution,
	}
	theta := rng.Float64()*2*math.Pi - math.Pi
	return geom.NewSE2(theta, u.grid.Origin().Apply(p))
}

// NormalPrior draws poses from a multivariate normal over [x, y,
// theta]. Construct with NewNormalPrior.
type NormalPrior struct {
	mean []float64
	chol mat.Cholesky
}

// NewNormalPrior factors the covariance once; non positive definite
// covariances are rejected.
func NewNormalPrior(mean geom.SE2, cov *mat.SymDense) (*NormalPrior, error) {
	if r, c := cov.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("pose covariance must be 3x3, got %dx%d", r, c)
	}
	p := &NormalPrior{mean: []float64{mean.T.X, mean.T.Y, mean.Angle()}}
	if ok := p.chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("pose covariance is not positive definite")
	}
	return p, nil
}

// Sample draws one pose.
func (p *NormalPrior) Sample(rng *rand.Rand) geom.SE2 {
	x := distmv.NormalRand(nil, p.mean, &p.chol, rng)
	return geom.NewSE2(geom.NormalizeAngle(x[2]), geom.Vec2{X: x[0], Y: x[1]})
}
