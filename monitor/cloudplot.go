package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/mcl/geom"
	"github.com/banshee-data/mcl/grid"
	"github.com/banshee-data/mcl/particles"
)

// CloudPlotter renders particle cloud snapshots to PNG files, one per
// cycle, for inspecting a localization run after the fact.
type CloudPlotter struct {
	mu        sync.Mutex
	enabled   bool
	outputDir string
	cycle     int
}

// NewCloudPlotter returns a disabled plotter. Call Start to begin
// writing snapshots.
func NewCloudPlotter() *CloudPlotter { return &CloudPlotter{} }

// Start enables the plotter, writing snapshots into outputDir.
func (cp *CloudPlotter) Start(outputDir string) error {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	cp.outputDir = outputDir
	cp.enabled = true
	cp.cycle = 0
	return nil
}

// Stop disables snapshot writing.
func (cp *CloudPlotter) Stop() {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	cp.enabled = false
}

// IsEnabled reports whether the plotter is currently writing.
func (cp *CloudPlotter) IsEnabled() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.enabled
}

// Snapshot renders the current population over the map: occupied cells
// as black squares, particles shaded by weight, and the estimated pose
// as a red marker. Files are named cycle_NNNN.png in the output
// directory. Calls while the plotter is stopped are no-ops.
func (cp *CloudPlotter) Snapshot(c *particles.Container[geom.SE2], est geom.SE2, g *grid.StaticGrid) error {
	cp.mu.Lock()
	defer cp.mu.Unlock()

	if !cp.enabled {
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("cycle %d, %d particles", cp.cycle, c.Len())
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	if g != nil {
		obstacles := make(plotter.XYs, 0)
		res := g.Resolution()
		for iy := 0; iy < g.Height(); iy++ {
			for ix := 0; ix < g.Width(); ix++ {
				if !g.Occupied(ix, iy) {
					continue
				}
				center := g.Origin().Apply(geom.Vec2{
					X: (float64(ix) + 0.5) * res,
					Y: (float64(iy) + 0.5) * res,
				})
				obstacles = append(obstacles, plotter.XY{X: center.X, Y: center.Y})
			}
		}
		if len(obstacles) > 0 {
			sc, err := plotter.NewScatter(obstacles)
			if err != nil {
				return fmt.Errorf("obstacle scatter: %w", err)
			}
			sc.GlyphStyle.Shape = draw.BoxGlyph{}
			sc.GlyphStyle.Color = color.Black
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
		}
	}

	states := c.States()
	weights := c.Weights()
	var maxWeight float64
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	cloud := make(plotter.XYs, len(states))
	for i, s := range states {
		cloud[i] = plotter.XY{X: s.T.X, Y: s.T.Y}
	}
	if len(cloud) > 0 {
		sc, err := plotter.NewScatter(cloud)
		if err != nil {
			return fmt.Errorf("particle scatter: %w", err)
		}
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			// Darker means heavier.
			shade := uint8(200)
			if maxWeight > 0 {
				shade = uint8(200 - 170*(weights[i]/maxWeight))
			}
			return draw.GlyphStyle{
				Shape:  draw.CircleGlyph{},
				Color:  color.Gray{Y: shade},
				Radius: vg.Points(1.5),
			}
		}
		p.Add(sc)
	}

	mean, err := plotter.NewScatter(plotter.XYs{{X: est.T.X, Y: est.T.Y}})
	if err != nil {
		return fmt.Errorf("estimate scatter: %w", err)
	}
	mean.GlyphStyle.Shape = draw.CrossGlyph{}
	mean.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	mean.GlyphStyle.Radius = vg.Points(4)
	p.Add(mean)

	file := filepath.Join(cp.outputDir, fmt.Sprintf("cycle_%04d.png", cp.cycle))
	if err := p.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("failed to save %s: %w", file, err)
	}
	cp.cycle++
	Logf("wrote particle cloud snapshot %s", file)
	return nil
}
