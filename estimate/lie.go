package estimate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/mcl/geom"
)

// MeanFunc computes the weighted mean of group samples. The weights it
// receives are already normalized to sum to one.
type MeanFunc[G any] func(states []G, weights []float64) (G, error)

// Lie returns the weighted mean and tangent-space covariance of
// samples on an arbitrary Lie group. The mean is delegated to the
// supplied MeanFunc because averaging is group-specific; the
// covariance is then accumulated from the tangent vectors of the
// deviations mean^-1 * g_i, with the same bias-corrected denominator
// the Euclidean estimators use. A nil weights slice weights every
// sample equally.
func Lie[G any](m geom.Manifold[G], states []G, weights []float64, mean MeanFunc[G]) (G, *mat.SymDense, error) {
	var zero G
	wt, err := newWeighting(weights, len(states))
	if err != nil {
		return zero, nil, err
	}
	mu, err := mean(states, wt.w)
	if err != nil {
		return zero, nil, fmt.Errorf("group mean: %w", err)
	}

	muInv := m.Inverse(mu)
	dim := m.Dim()
	cov := mat.NewSymDense(dim, nil)
	tangent := make([]float64, dim)
	for i, g := range states {
		m.Log(tangent, m.Compose(muInv, g))
		w := wt.w[i]
		for j := 0; j < dim; j++ {
			for k := j; k < dim; k++ {
				cov.SetSym(j, k, cov.At(j, k)+w*tangent[j]*tangent[k])
			}
		}
	}
	for j := 0; j < dim; j++ {
		for k := j; k < dim; k++ {
			cov.SetSym(j, k, cov.At(j, k)/wt.denom)
		}
	}
	return mu, cov, nil
}
