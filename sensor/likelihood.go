package sensor

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/banshee-data/mcl/geom"
)

// LikelihoodFieldConfig holds the likelihood field model parameters.
type LikelihoodFieldConfig struct {
	// MaxObstacleDistance caps the nearest-obstacle distance used in
	// the field precomputation.
	MaxObstacleDistance float64
	// MaxLaserDistance is the sensor's maximum range, the support of
	// the uniform noise floor.
	MaxLaserDistance float64
	// ZHit weights the Gaussian term around zero obstacle distance.
	ZHit float64
	// ZRand weights the uniform noise floor.
	ZRand float64
	// SigmaHit is the standard deviation of the hit term.
	SigmaHit float64
}

// DefaultLikelihoodFieldConfig returns the stock likelihood field
// parameters.
func DefaultLikelihoodFieldConfig() LikelihoodFieldConfig {
	return LikelihoodFieldConfig{
		MaxObstacleDistance: 2.0,
		MaxLaserDistance:    20.0,
		ZHit:                0.5,
		ZRand:               0.5,
		SigmaHit:            0.2,
	}
}

// Validate checks the parameter ranges.
func (c LikelihoodFieldConfig) Validate() error {
	if c.MaxObstacleDistance <= 0 {
		return fmt.Errorf("max_obstacle_distance must be positive, got %v", c.MaxObstacleDistance)
	}
	if c.MaxLaserDistance <= 0 {
		return fmt.Errorf("max_laser_distance must be positive, got %v", c.MaxLaserDistance)
	}
	if c.ZHit < 0 || c.ZHit > 1 {
		return fmt.Errorf("z_hit must be in [0, 1], got %v", c.ZHit)
	}
	if c.ZRand < 0 || c.ZRand > 1 {
		return fmt.Errorf("z_rand must be in [0, 1], got %v", c.ZRand)
	}
	if c.SigmaHit <= 0 {
		return fmt.Errorf("sigma_hit must be positive, got %v", c.SigmaHit)
	}
	return nil
}

// likelihoodField is the precomputed per-map state: the grid and its
// per-cell likelihood amplitudes, stored already cubed so evaluation
// is a lookup and an add.
type likelihoodField struct {
	grid  DistanceMap
	cells []float64
}

// LikelihoodFieldModel scores measurement endpoints against a
// precomputed field of nearest-obstacle likelihoods. Construct with
// NewLikelihoodFieldModel.
type LikelihoodFieldModel struct {
	cfg   LikelihoodFieldConfig
	floor float64 // cubed ambient amplitude for out-of-map endpoints
	field atomic.Pointer[likelihoodField]
}

// NewLikelihoodFieldModel validates the configuration, binds the model
// to a map and precomputes its likelihood field.
func NewLikelihoodFieldModel(cfg LikelihoodFieldConfig, m DistanceMap) (*LikelihoodFieldModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("likelihood field config: %w", err)
	}
	floor := cfg.ZRand / cfg.MaxLaserDistance
	l := &LikelihoodFieldModel{cfg: cfg, floor: floor * floor * floor}
	l.field.Store(l.precompute(m))
	return l, nil
}

// precompute builds the cubed likelihood amplitude per cell from the
// map's exact nearest-obstacle distances.
func (l *LikelihoodFieldModel) precompute(m DistanceMap) *likelihoodField {
	distances := m.DistanceTransform(l.cfg.MaxObstacleDistance)
	gaussNorm := 1 / (l.cfg.SigmaHit * math.Sqrt(2*math.Pi))
	twoSigmaSq := 2 * l.cfg.SigmaHit * l.cfg.SigmaHit
	cells := make([]float64, len(distances))
	for i, d := range distances {
		amp := l.cfg.ZHit*gaussNorm*math.Exp(-d*d/twoSigmaSq) + l.cfg.ZRand/l.cfg.MaxLaserDistance
		cells[i] = amp * amp * amp
	}
	return &likelihoodField{grid: m, cells: cells}
}

// UpdateMap replaces the map and recomputes the field. Weighting
// functions built before the call keep the field they captured; the
// caller synchronizes the swap against in-flight evaluations.
func (l *LikelihoodFieldModel) UpdateMap(m DistanceMap) {
	l.field.Store(l.precompute(m))
}

// Field returns the current cubed per-cell likelihood amplitudes in
// row-major order.
func (l *LikelihoodFieldModel) Field() []float64 {
	return l.field.Load().cells
}

// Weighting returns the importance weight function for one measurement
// set. Points are beam endpoints in the sensor frame; each is mapped
// into the map frame by the candidate pose and scored by the field
// cell it lands in. Endpoints outside the map contribute the ambient
// noise floor only.
func (l *LikelihoodFieldModel) Weighting(points []geom.Vec2) StateWeightFunc {
	f := l.field.Load()
	local := make([]geom.Vec2, len(points))
	copy(local, points)
	width := f.grid.Width()
	floor := l.floor
	return func(pose geom.SE2) float64 {
		w := 1.0
		for _, p := range local {
			ix, iy, ok := f.grid.CellAt(pose.Apply(p))
			if ok {
				w += f.cells[iy*width+ix]
			} else {
				w += floor
			}
		}
		return w
	}
}
