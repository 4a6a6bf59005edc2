package geom

// SE2 is a proper rigid transform in the plane: a rotation followed by
// a translation. It maps points from the local frame into the parent
// frame. The zero value carries an invalid rotation; use NewSE2 or
// IdentitySE2.
type SE2 struct {
	R Rot2
	T Vec2
}

// NewSE2 returns the transform with rotation theta and translation t.
func NewSE2(theta float64, t Vec2) SE2 {
	return SE2{R: NewRot2(theta), T: t}
}

// IdentitySE2 returns the identity transform.
func IdentitySE2() SE2 { return SE2{R: IdentityRot2()} }

// Compose returns g * h, the transform that applies h first and then g.
func (g SE2) Compose(h SE2) SE2 {
	return SE2{
		R: g.R.Mul(h.R),
		T: g.T.Add(g.R.Apply(h.T)),
	}
}

// Inverse returns the inverse transform.
func (g SE2) Inverse() SE2 {
	rInv := g.R.Inverse()
	return SE2{R: rInv, T: rInv.Apply(g.T).Scale(-1)}
}

// Apply maps a local-frame point into the parent frame.
func (g SE2) Apply(v Vec2) Vec2 {
	return g.R.Apply(v).Add(g.T)
}

// Angle returns the rotation angle in (-pi, pi].
func (g SE2) Angle() float64 { return g.R.Angle() }
