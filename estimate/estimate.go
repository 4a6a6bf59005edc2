package estimate

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooFewSamples reports an estimate over fewer than two samples.
	ErrTooFewSamples = errors.New("need at least two samples")

	// ErrZeroTotalWeight reports weights that sum to zero.
	ErrZeroTotalWeight = errors.New("total weight is zero")

	// ErrDegenerateWeights reports weights that concentrate all mass on
	// a single sample, which makes the bias-corrected covariance
	// denominator vanish.
	ErrDegenerateWeights = errors.New("weights concentrate on a single sample")
)

// weighting holds normalized weights and the bias-corrected covariance
// denominator shared by every estimator in the package.
type weighting struct {
	w     []float64
	denom float64 // 1 - sum(w^2)
}

// newWeighting validates weights against n samples and normalizes
// them. A nil weights slice means uniform weighting.
func newWeighting(weights []float64, n int) (weighting, error) {
	if n < 2 {
		return weighting{}, fmt.Errorf("%w: got %d", ErrTooFewSamples, n)
	}
	w := make([]float64, n)
	if weights == nil {
		uniform := 1 / float64(n)
		for i := range w {
			w[i] = uniform
		}
		return weighting{w: w, denom: 1 - uniform}, nil
	}
	if len(weights) != n {
		return weighting{}, fmt.Errorf("mismatched lengths: %d samples, %d weights", n, len(weights))
	}
	var total float64
	for i, v := range weights {
		if v < 0 {
			return weighting{}, fmt.Errorf("negative weight %v at index %d", v, i)
		}
		total += v
	}
	if total == 0 {
		return weighting{}, ErrZeroTotalWeight
	}
	var sumSq float64
	for i, v := range weights {
		w[i] = v / total
		sumSq += w[i] * w[i]
	}
	denom := 1 - sumSq
	if denom <= 0 {
		return weighting{}, ErrDegenerateWeights
	}
	return weighting{w: w, denom: denom}, nil
}

// Scalar returns the weighted mean and variance of values. A nil
// weights slice weights every value equally.
func Scalar(values, weights []float64) (mean, variance float64, err error) {
	wt, err := newWeighting(weights, len(values))
	if err != nil {
		return 0, 0, err
	}
	for i, v := range values {
		mean += wt.w[i] * v
	}
	var ss float64
	for i, v := range values {
		d := v - mean
		ss += wt.w[i] * d * d
	}
	return mean, ss / wt.denom, nil
}

// Vector returns the weighted mean and covariance of fixed-dimension
// samples. Every row of states must have the same length. A nil
// weights slice weights every sample equally.
func Vector(states [][]float64, weights []float64) (mean []float64, cov *mat.SymDense, err error) {
	wt, err := newWeighting(weights, len(states))
	if err != nil {
		return nil, nil, err
	}
	dim := len(states[0])
	if dim == 0 {
		return nil, nil, fmt.Errorf("zero-dimensional samples")
	}
	for i, row := range states {
		if len(row) != dim {
			return nil, nil, fmt.Errorf("mismatched dimensions: sample 0 has %d, sample %d has %d", dim, i, len(row))
		}
	}

	mean = make([]float64, dim)
	for i, row := range states {
		for j, v := range row {
			mean[j] += wt.w[i] * v
		}
	}

	cov = mat.NewSymDense(dim, nil)
	d := make([]float64, dim)
	for i, row := range states {
		for j := range d {
			d[j] = row[j] - mean[j]
		}
		for j := 0; j < dim; j++ {
			for k := j; k < dim; k++ {
				cov.SetSym(j, k, cov.At(j, k)+wt.w[i]*d[j]*d[k])
			}
		}
	}
	for j := 0; j < dim; j++ {
		for k := j; k < dim; k++ {
			cov.SetSym(j, k, cov.At(j, k)/wt.denom)
		}
	}
	return mean, cov, nil
}
