package geom

// Manifold describes a Lie group G through the operations weighted
// estimation needs: composition, inversion, and the exponential and
// logarithm maps between the group and its tangent space at the
// identity.
type Manifold[G any] interface {
	// Dim returns the tangent-space dimension.
	Dim() int
	// Compose returns a * b.
	Compose(a, b G) G
	// Inverse returns the group inverse of a.
	Inverse(a G) G
	// Exp maps a tangent vector of length Dim to a group element.
	Exp(tangent []float64) G
	// Log writes the tangent vector of a into dst, which must have
	// length Dim.
	Log(dst []float64, a G)
}

// R3SO3 is the direct product of R^3 and SO3 over SE3 values: its
// composition combines translations additively and rotations
// multiplicatively. This is the manifold structure pose averaging
// operates on; it is not the SE3 group composition, which couples
// translation to rotation.
//
// Tangent layout: [tx, ty, tz, wx, wy, wz] with the rotation vector in
// the last three components.
type R3SO3 struct{}

// Dim returns 6.
func (R3SO3) Dim() int { return 6 }

// Compose combines translations additively and rotations
// multiplicatively.
func (R3SO3) Compose(a, b SE3) SE3 {
	return SE3{R: a.R.Mul(b.R), T: a.T.Add(b.T)}
}

// Inverse inverts both factors independently.
func (R3SO3) Inverse(a SE3) SE3 {
	return SE3{R: a.R.Inverse(), T: a.T.Scale(-1)}
}

// Exp maps [tx ty tz wx wy wz] to a pose.
func (R3SO3) Exp(tangent []float64) SE3 {
	return SE3{
		R: Exp(Vec3{X: tangent[3], Y: tangent[4], Z: tangent[5]}),
		T: Vec3{X: tangent[0], Y: tangent[1], Z: tangent[2]},
	}
}

// Log writes [tx ty tz wx wy wz] into dst.
func (R3SO3) Log(dst []float64, a SE3) {
	w := a.R.Log()
	dst[0], dst[1], dst[2] = a.T.X, a.T.Y, a.T.Z
	dst[3], dst[4], dst[5] = w.X, w.Y, w.Z
}
