package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGroup is the additive group of real numbers, the simplest
// manifold the general estimator can run on. Its tangent space is the
// group itself, so Lie must agree exactly with the scalar estimator.
type lineGroup struct{}

func (lineGroup) Dim() int                     { return 1 }
func (lineGroup) Compose(a, b float64) float64 { return a + b }
func (lineGroup) Inverse(a float64) float64    { return -a }
func (lineGroup) Exp(tangent []float64) float64 {
	return tangent[0]
}
func (lineGroup) Log(dst []float64, a float64) {
	dst[0] = a
}

func lineMean(states []float64, weights []float64) (float64, error) {
	var m float64
	for i, s := range states {
		m += weights[i] * s
	}
	return m, nil
}

func TestLieMatchesScalarOnTheLine(t *testing.T) {
	values := []float64{4.5, 1.2, 3.7, 6.1, 2.9}
	weights := []float64{1, 3, 2, 0.5, 1.5}

	mean, cov, err := Lie[float64](lineGroup{}, values, weights, lineMean)
	require.NoError(t, err)
	wantMean, wantVar, err := Scalar(values, weights)
	require.NoError(t, err)

	assert.InDelta(t, wantMean, mean, 1e-12)
	assert.InDelta(t, wantVar, cov.At(0, 0), 1e-12)
}

func TestLiePropagatesPreconditions(t *testing.T) {
	_, _, err := Lie[float64](lineGroup{}, []float64{1}, nil, lineMean)
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, _, err = Lie[float64](lineGroup{}, []float64{1, 2}, []float64{0, 0}, lineMean)
	assert.ErrorIs(t, err, ErrZeroTotalWeight)
}
