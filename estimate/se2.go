package estimate

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/mcl/geom"
)

// SE2 returns the weighted mean pose and 3x3 covariance of planar
// poses, ordered [x, y, theta]. A nil weights slice weights every pose
// equally.
//
// Translation statistics are Euclidean. The rotation mean is the
// argument of the weighted resultant of the unit-complex rotations,
// and the rotation variance is the circular variance -2*ln|R| of that
// resultant: it is zero when all rotations agree and grows without
// bound as they disperse, reaching +Inf when the resultant vanishes
// (as it does for two opposing headings). Translation and rotation
// blocks are uncorrelated in the result.
func SE2(poses []geom.SE2, weights []float64) (geom.SE2, *mat.SymDense, error) {
	wt, err := newWeighting(weights, len(poses))
	if err != nil {
		return geom.SE2{}, nil, err
	}

	var mx, my, re, im float64
	for i, p := range poses {
		w := wt.w[i]
		mx += w * p.T.X
		my += w * p.T.Y
		re += w * p.R.Cos
		im += w * p.R.Sin
	}
	resultant := math.Hypot(re, im)
	mean := geom.NewSE2(math.Atan2(im, re), geom.Vec2{X: mx, Y: my})

	var sxx, sxy, syy float64
	for i, p := range poses {
		w := wt.w[i]
		dx := p.T.X - mx
		dy := p.T.Y - my
		sxx += w * dx * dx
		sxy += w * dx * dy
		syy += w * dy * dy
	}

	cov := mat.NewSymDense(3, nil)
	cov.SetSym(0, 0, sxx/wt.denom)
	cov.SetSym(0, 1, sxy/wt.denom)
	cov.SetSym(1, 1, syy/wt.denom)
	// -2*ln(0) is +Inf, which is the honest answer for fully
	// cancelling rotations.
	cov.SetSym(2, 2, -2*math.Log(resultant))
	return mean, cov, nil
}
