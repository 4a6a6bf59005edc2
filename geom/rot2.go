package geom

import "math"

// Rot2 is a planar rotation stored as a unit complex number. Storing
// the cosine and sine instead of the bare angle keeps repeated Apply
// calls free of trigonometry; the pair must stay on the unit circle,
// so the zero value is not a valid rotation.
type Rot2 struct {
	Cos, Sin float64
}

// NewRot2 returns the rotation by theta radians.
func NewRot2(theta float64) Rot2 {
	return Rot2{Cos: math.Cos(theta), Sin: math.Sin(theta)}
}

// IdentityRot2 returns the identity rotation.
func IdentityRot2() Rot2 { return Rot2{Cos: 1} }

// Angle returns the rotation angle in (-pi, pi].
func (r Rot2) Angle() float64 { return math.Atan2(r.Sin, r.Cos) }

// Mul returns the composition r * s (first s, then r).
func (r Rot2) Mul(s Rot2) Rot2 {
	return Rot2{
		Cos: r.Cos*s.Cos - r.Sin*s.Sin,
		Sin: r.Sin*s.Cos + r.Cos*s.Sin,
	}
}

// Inverse returns the inverse rotation.
func (r Rot2) Inverse() Rot2 { return Rot2{Cos: r.Cos, Sin: -r.Sin} }

// Apply rotates v.
func (r Rot2) Apply(v Vec2) Vec2 {
	return Vec2{
		X: r.Cos*v.X - r.Sin*v.Y,
		Y: r.Sin*v.X + r.Cos*v.Y,
	}
}

// NormalizeAngle wraps a to the interval (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	switch {
	case a <= -math.Pi:
		a += 2 * math.Pi
	case a > math.Pi:
		a -= 2 * math.Pi
	}
	return a
}
