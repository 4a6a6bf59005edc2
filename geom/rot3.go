package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Rot3 is a spatial rotation stored as a unit quaternion. The zero
// value is not a valid rotation; use NewRot3, Exp, RotZ or
// IdentityRot3.
type Rot3 struct {
	Q quat.Number
}

// NewRot3 returns the rotation for q, normalized to unit length.
func NewRot3(q quat.Number) Rot3 {
	return Rot3{Q: quat.Scale(1/quat.Abs(q), q)}
}

// IdentityRot3 returns the identity rotation.
func IdentityRot3() Rot3 { return Rot3{Q: quat.Number{Real: 1}} }

// RotZ returns the rotation by theta radians about the Z axis.
func RotZ(theta float64) Rot3 {
	return Rot3{Q: quat.Number{Real: math.Cos(theta / 2), Kmag: math.Sin(theta / 2)}}
}

// Exp returns the rotation for the rotation vector w (axis scaled by
// angle in radians).
func Exp(w Vec3) Rot3 {
	return Rot3{Q: quat.Exp(quat.Number{Imag: w.X / 2, Jmag: w.Y / 2, Kmag: w.Z / 2})}
}

// Log returns the rotation vector of r, with angle in [0, pi]. The
// antipodal representation -q maps to the same rotation and yields the
// same result.
func (r Rot3) Log() Vec3 {
	q := r.Q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	l := quat.Log(q)
	return Vec3{X: 2 * l.Imag, Y: 2 * l.Jmag, Z: 2 * l.Kmag}
}

// Mul returns the composition r * s (first s, then r).
func (r Rot3) Mul(s Rot3) Rot3 {
	return Rot3{Q: quat.Mul(r.Q, s.Q)}
}

// Inverse returns the inverse rotation.
func (r Rot3) Inverse() Rot3 {
	return Rot3{Q: quat.Conj(r.Q)}
}

// Apply rotates v.
func (r Rot3) Apply(v Vec3) Vec3 {
	p := quat.Mul(quat.Mul(r.Q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(r.Q))
	return Vec3{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}
