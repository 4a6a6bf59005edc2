package estimate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/banshee-data/mcl/geom"
)

// QuaternionMean returns the weighted average of unit quaternions: the
// normalized weighted sum of their coefficients, with every sample
// sign-aligned to the first sample's hemisphere before it enters the
// sum. q and -q encode the same rotation, so without the alignment
// nearby rotations sitting on opposite covers of the rotation group
// would cancel instead of reinforce. A nil weights slice weights every
// quaternion equally.
func QuaternionMean(qs []quat.Number, weights []float64) (quat.Number, error) {
	if len(qs) == 0 {
		return quat.Number{}, fmt.Errorf("no quaternions to average")
	}
	if weights != nil && len(weights) != len(qs) {
		return quat.Number{}, fmt.Errorf("mismatched lengths: %d quaternions, %d weights", len(qs), len(weights))
	}
	first := qs[0]
	var sum quat.Number
	for i, q := range qs {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		if q.Real*first.Real+q.Imag*first.Imag+q.Jmag*first.Jmag+q.Kmag*first.Kmag < 0 {
			q = quat.Scale(-1, q)
		}
		sum = quat.Add(sum, quat.Scale(w, q))
	}
	norm := quat.Abs(sum)
	if norm == 0 || math.IsNaN(norm) {
		return quat.Number{}, fmt.Errorf("quaternion average vanishes")
	}
	return quat.Scale(1/norm, sum), nil
}

// SE3 returns the weighted mean pose and 6x6 covariance of spatial
// poses, ordered [x, y, z, wx, wy, wz] with the rotation vector in the
// last three components. The translation mean is Euclidean, the
// rotation mean is the weighted quaternion average, and the covariance
// is accumulated in the tangent space at the mean. A nil weights slice
// weights every pose equally.
func SE3(poses []geom.SE3, weights []float64) (geom.SE3, *mat.SymDense, error) {
	return Lie(geom.R3SO3{}, poses, weights, se3Mean)
}

// se3Mean averages translations and rotations independently; weights
// arrive normalized from the Lie estimator.
func se3Mean(poses []geom.SE3, weights []float64) (geom.SE3, error) {
	var t geom.Vec3
	qs := make([]quat.Number, len(poses))
	for i, p := range poses {
		t = t.Add(p.T.Scale(weights[i]))
		qs[i] = p.R.Q
	}
	q, err := QuaternionMean(qs, weights)
	if err != nil {
		return geom.SE3{}, err
	}
	return geom.SE3{R: geom.Rot3{Q: q}, T: t}, nil
}
