package grid

import "math"

// DistanceTransform returns, for every cell, the exact Euclidean
// distance between cell indices to the nearest occupied cell, scaled
// by the resolution and capped at maxDistance. Grids without any
// obstacle yield maxDistance everywhere.
//
// The transform runs the Felzenszwalb-Huttenlocher lower-envelope
// algorithm on squared distances, one pass over rows and one over
// columns, so the result is the true nearest-obstacle distance rather
// than a wavefront approximation.
func (g *StaticGrid) DistanceTransform(maxDistance float64) []float64 {
	w, h := g.width, g.height
	// Finite stand-in for "no obstacle": larger than any squared
	// index distance, small enough to keep the envelope arithmetic
	// finite.
	far := float64(w*w + h*h + 1)

	sq := make([]float64, w*h)
	for i, occupied := range g.cells {
		if occupied {
			sq[i] = 0
		} else {
			sq[i] = far
		}
	}

	maxDim := w
	if h > maxDim {
		maxDim = h
	}
	f := make([]float64, maxDim)
	d := make([]float64, maxDim)
	v := make([]int, maxDim)
	z := make([]float64, maxDim+1)

	// Rows first, then columns over the row results.
	for y := 0; y < h; y++ {
		row := sq[y*w : (y+1)*w]
		copy(f[:w], row)
		edt1d(f[:w], d[:w], v[:w], z[:w+1])
		copy(row, d[:w])
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			f[y] = sq[y*w+x]
		}
		edt1d(f[:h], d[:h], v[:h], z[:h+1])
		for y := 0; y < h; y++ {
			sq[y*w+x] = d[y]
		}
	}

	out := make([]float64, w*h)
	for i, s := range sq {
		out[i] = math.Min(math.Sqrt(s)*g.resolution, maxDistance)
	}
	return out
}

// edt1d computes the 1D squared-distance transform of f into d using
// the lower envelope of the parabolas q -> f[q] + (x-q)^2.
func edt1d(f, d []float64, v []int, z []float64) {
	n := len(f)
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := intersect(f, q, v[k])
		for s <= z[k] {
			k--
			s = intersect(f, q, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabolas rooted at q and p
// cross.
func intersect(f []float64, q, p int) float64 {
	fq := float64(q)
	fp := float64(p)
	return (f[q] + fq*fq - f[p] - fp*fp) / (2*fq - 2*fp)
}
