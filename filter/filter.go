package filter

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/mcl/estimate"
	"github.com/banshee-data/mcl/geom"
	"github.com/banshee-data/mcl/monitor"
	"github.com/banshee-data/mcl/particles"
	"github.com/banshee-data/mcl/sensor"
)

// WeightingModel is the sensor-model surface the filter consumes; both
// sensor.BeamModel and sensor.LikelihoodFieldModel satisfy it.
type WeightingModel interface {
	Weighting(points []geom.Vec2) sensor.StateWeightFunc
}

// Config assembles a filter. Motion, Sensor, Limiter and Prior are
// required; the prior seeds the initial population and feeds recovery
// injection.
type Config struct {
	Motion  MotionModel
	Sensor  WeightingModel
	Limiter Limiter
	Prior   Prior

	// Workers bounds the goroutines used for the parallel predict and
	// correct passes. Zero means GOMAXPROCS.
	Workers int

	// AlphaSlow and AlphaFast are the decay rates of the average
	// weight filters driving recovery injection. Both zero disables
	// recovery. When enabled, AlphaFast must exceed AlphaSlow.
	AlphaSlow, AlphaFast float64

	// Seed feeds every random draw the filter makes.
	Seed uint64
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Motion == nil {
		return fmt.Errorf("motion model is required")
	}
	if c.Sensor == nil {
		return fmt.Errorf("sensor model is required")
	}
	if c.Limiter == nil {
		return fmt.Errorf("limiter is required")
	}
	if c.Prior == nil {
		return fmt.Errorf("prior is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.AlphaSlow < 0 || c.AlphaFast < 0 {
		return fmt.Errorf("recovery decay rates must be non-negative, got slow %v fast %v", c.AlphaSlow, c.AlphaFast)
	}
	if c.AlphaFast > 0 && c.AlphaFast <= c.AlphaSlow {
		return fmt.Errorf("alpha_fast %v must exceed alpha_slow %v", c.AlphaFast, c.AlphaSlow)
	}
	return nil
}

// CycleStats summarizes one Update for logging and recording.
type CycleStats struct {
	Cycle         int
	Particles     int
	TotalWeight   float64
	MaxWeight     float64
	EffectiveSize float64
	Predict       time.Duration
	Correct       time.Duration
	Resample      time.Duration
}

// Filter is a Monte Carlo localization loop. Construct with New; the
// methods are not safe for concurrent use with each other.
type Filter struct {
	cfg       Config
	particles *particles.Container[geom.SE2]
	scratch   *particles.Container[geom.SE2]
	rng       *rand.Rand
	workers   int
	cycle     int

	wSlow, wFast float64
}

// New builds a filter and draws the initial population of n particles
// from the prior.
func New(cfg Config, n int) (*Filter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("filter config: %w", err)
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least two particles, got %d", n)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	f := &Filter{
		cfg:       cfg,
		particles: particles.New[geom.SE2](0),
		scratch:   particles.New[geom.SE2](0),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		workers:   workers,
	}
	f.Reinitialize(n)
	return f, nil
}

// Particles exposes the filter's population. Callers may read it
// freely between cycles; the filter mutates it in place during them.
func (f *Filter) Particles() *particles.Container[geom.SE2] { return f.particles }

// Len returns the current population size.
func (f *Filter) Len() int { return f.particles.Len() }

// Reinitialize discards the population and draws n fresh particles
// from the prior with unit weights.
func (f *Filter) Reinitialize(n int) {
	f.particles.Clear()
	f.particles.Reserve(n)
	for i := 0; i < n; i++ {
		f.particles.Append(f.cfg.Prior.Sample(f.rng), 1, 0)
	}
	f.wSlow, f.wFast = 0, 0
}

// Predict advances every particle state through the motion model, in
// parallel over disjoint index ranges.
func (f *Filter) Predict() {
	states := f.particles.States()
	f.parallel(len(states), func(lo, hi int, rng *rand.Rand) {
		for i := lo; i < hi; i++ {
			states[i] = f.cfg.Motion.Apply(rng, states[i])
		}
	})
}

// Correct builds the weighting function for the scan once and applies
// it to every particle, writing the weight column in parallel over
// disjoint index ranges.
func (f *Filter) Correct(scan []geom.Vec2) {
	weight := f.cfg.Sensor.Weighting(scan)
	states := f.particles.States()
	weights := f.particles.Weights()
	f.parallel(len(states), func(lo, hi int, _ *rand.Rand) {
		for i := lo; i < hi; i++ {
			weights[i] = weight(states[i])
		}
	})

	if f.cfg.AlphaFast > 0 {
		var total float64
		for _, w := range weights {
			total += w
		}
		avg := total / float64(len(weights))
		if f.wSlow == 0 {
			f.wSlow, f.wFast = avg, avg
			return
		}
		f.wSlow += f.cfg.AlphaSlow * (avg - f.wSlow)
		f.wFast += f.cfg.AlphaFast * (avg - f.wFast)
	}
}

// Resample replaces the population with draws proportional to the
// importance weights, resetting every weight to one. The limiter
// decides the output size; when recovery is enabled, a fraction
// max(0, 1 - wFast/wSlow) of the draws come from the prior instead of
// the weighted population.
func (f *Filter) Resample() error {
	weights := f.particles.Weights()
	states := f.particles.States()
	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	if total == 0 {
		return fmt.Errorf("resample: %w", estimate.ErrZeroTotalWeight)
	}

	var pRecover float64
	if f.cfg.AlphaFast > 0 && f.wSlow > 0 {
		pRecover = 1 - f.wFast/f.wSlow
		if pRecover < 0 {
			pRecover = 0
		}
	}

	f.scratch.Clear()
	f.cfg.Limiter.Reset()
	for n := 0; !f.cfg.Limiter.Enough(n); n++ {
		var s geom.SE2
		if pRecover > 0 && f.rng.Float64() < pRecover {
			s = f.cfg.Prior.Sample(f.rng)
		} else {
			u := f.rng.Float64() * total
			i := sort.SearchFloat64s(cum, u)
			if i >= len(states) {
				i = len(states) - 1
			}
			s = states[i]
		}
		f.scratch.Append(s, 1, 0)
		f.cfg.Limiter.Add(s)
	}
	f.particles, f.scratch = f.scratch, f.particles
	return nil
}

// Update runs one full cycle: predict, correct against the scan,
// resample. It logs and returns the cycle summary.
func (f *Filter) Update(scan []geom.Vec2) (CycleStats, error) {
	start := time.Now()
	f.Predict()
	predicted := time.Now()
	f.Correct(scan)
	corrected := time.Now()

	stats := CycleStats{
		Cycle:     f.cycle,
		Particles: f.particles.Len(),
		Predict:   predicted.Sub(start),
		Correct:   corrected.Sub(predicted),
	}
	var sumSq float64
	for _, w := range f.particles.Weights() {
		stats.TotalWeight += w
		sumSq += w * w
		if w > stats.MaxWeight {
			stats.MaxWeight = w
		}
	}
	if sumSq > 0 {
		stats.EffectiveSize = stats.TotalWeight * stats.TotalWeight / sumSq
	}

	if err := f.Resample(); err != nil {
		return stats, err
	}
	stats.Resample = time.Since(corrected)
	f.cycle++
	monitor.Logf("cycle %d: %d particles, total weight %.4g, ess %.1f",
		stats.Cycle, stats.Particles, stats.TotalWeight, stats.EffectiveSize)
	return stats, nil
}

// Estimate fuses the weighted population into a pose and covariance.
// Call it after Correct and before Resample, while the weights still
// carry the last scan.
func (f *Filter) Estimate() (geom.SE2, *mat.SymDense, error) {
	return estimate.SE2(f.particles.States(), f.particles.Weights())
}

// parallel splits [0, n) into one contiguous range per worker and runs
// fn on each, handing every worker its own deterministically seeded
// source.
func (f *Filter) parallel(n int, fn func(lo, hi int, rng *rand.Rand)) {
	workers := f.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n, f.rng)
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		rng := rand.New(rand.NewPCG(f.rng.Uint64(), f.rng.Uint64()))
		wg.Add(1)
		go func(lo, hi int, rng *rand.Rand) {
			defer wg.Done()
			fn(lo, hi, rng)
		}(lo, hi, rng)
	}
	wg.Wait()
}
