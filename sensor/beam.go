package sensor

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/banshee-data/mcl/geom"
)

// BeamModelConfig holds the mixture parameters of the beam model. The
// four Z weights conventionally sum to one but are not forced to.
type BeamModelConfig struct {
	// ZHit weights the Gaussian term around the expected range.
	ZHit float64
	// ZShort weights the exponential term for readings truncated by
	// unmapped obstacles in front of the expected range.
	ZShort float64
	// ZMax weights the max-range term for no-return readings.
	ZMax float64
	// ZRand weights the uniform noise floor over the sensor range.
	ZRand float64
	// SigmaHit is the standard deviation of the hit term.
	SigmaHit float64
	// LambdaShort is the decay rate of the short term.
	LambdaShort float64
	// BeamMaxRange is the sensor's maximum range.
	BeamMaxRange float64
}

// DefaultBeamModelConfig returns the stock beam model parameters.
func DefaultBeamModelConfig() BeamModelConfig {
	return BeamModelConfig{
		ZHit:         0.5,
		ZShort:       0.05,
		ZMax:         0.05,
		ZRand:        0.5,
		SigmaHit:     0.2,
		LambdaShort:  0.1,
		BeamMaxRange: 60,
	}
}

// Validate checks the parameter ranges.
func (c BeamModelConfig) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"z_hit", c.ZHit},
		{"z_short", c.ZShort},
		{"z_max", c.ZMax},
		{"z_rand", c.ZRand},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", p.name, p.value)
		}
	}
	if c.SigmaHit <= 0 {
		return fmt.Errorf("sigma_hit must be positive, got %v", c.SigmaHit)
	}
	if c.LambdaShort <= 0 {
		return fmt.Errorf("lambda_short must be positive, got %v", c.LambdaShort)
	}
	if c.BeamMaxRange <= 0 {
		return fmt.Errorf("beam_max_range must be positive, got %v", c.BeamMaxRange)
	}
	return nil
}

// BeamModel scores range measurements against the map with the
// four-term beam mixture. Construct with NewBeamModel.
type BeamModel struct {
	cfg BeamModelConfig
	// 1/(sigma*sqrt(2*pi)), the hit term's normalization constant.
	gaussNorm float64
	grid      atomic.Pointer[RangeCaster]
}

// NewBeamModel validates the configuration and binds the model to a
// map.
func NewBeamModel(cfg BeamModelConfig, m RangeCaster) (*BeamModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("beam model config: %w", err)
	}
	b := &BeamModel{
		cfg:       cfg,
		gaussNorm: 1 / (cfg.SigmaHit * math.Sqrt(2*math.Pi)),
	}
	b.grid.Store(&m)
	return b, nil
}

// UpdateMap replaces the map used by weighting functions built after
// the call. Functions already built keep the map they captured; the
// caller synchronizes the swap against in-flight evaluations.
func (b *BeamModel) UpdateMap(m RangeCaster) {
	b.grid.Store(&m)
}

// beam is one measurement reduced to the polar form evaluation needs.
type beam struct {
	r       float64
	bearing float64
}

// Weighting returns the importance weight function for one measurement
// set. Points are beam endpoints in the sensor frame.
//
// Per beam the measured range is scored against the expected range
// from a ray cast at the candidate pose: a Gaussian around the
// expected range, an exponential for readings short of it, a uniform
// floor below the sensor range, and a point mass at the sensor range.
// Per-beam densities are raised to the third power before multiplying,
// which tempers the independence assumption between beams; the product
// is accumulated in the log domain.
func (b *BeamModel) Weighting(points []geom.Vec2) StateWeightFunc {
	g := *b.grid.Load()
	beams := make([]beam, len(points))
	for i, p := range points {
		beams[i] = beam{r: p.Norm(), bearing: math.Atan2(p.Y, p.X)}
	}
	cfg := b.cfg
	gaussNorm := b.gaussNorm
	return func(pose geom.SE2) float64 {
		var logw float64
		for _, bm := range beams {
			zMean := g.CastRay(pose, bm.bearing, cfg.BeamMaxRange)

			d := bm.r - zMean
			p := cfg.ZHit * gaussNorm * math.Exp(-d*d/(2*cfg.SigmaHit*cfg.SigmaHit))
			if bm.r < zMean {
				// Renormalized over [0, zMean]: the short term only
				// spends mass in front of the expected obstacle.
				eta := 1 / (1 - math.Exp(-cfg.LambdaShort*zMean))
				p += cfg.ZShort * eta * cfg.LambdaShort * math.Exp(-cfg.LambdaShort*bm.r)
			}
			if bm.r < cfg.BeamMaxRange {
				p += cfg.ZRand / cfg.BeamMaxRange
			} else {
				p += cfg.ZMax
			}
			logw += 3 * math.Log(p)
		}
		return math.Exp(logw)
	}
}
