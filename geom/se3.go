package geom

// SE3 is a proper rigid transform in space: a rotation followed by a
// translation. The zero value carries an invalid rotation; use NewSE3
// or IdentitySE3.
type SE3 struct {
	R Rot3
	T Vec3
}

// NewSE3 returns the transform with rotation r and translation t.
func NewSE3(r Rot3, t Vec3) SE3 { return SE3{R: r, T: t} }

// IdentitySE3 returns the identity transform.
func IdentitySE3() SE3 { return SE3{R: IdentityRot3()} }

// Compose returns g * h, the transform that applies h first and then g.
func (g SE3) Compose(h SE3) SE3 {
	return SE3{
		R: g.R.Mul(h.R),
		T: g.T.Add(g.R.Apply(h.T)),
	}
}

// Inverse returns the inverse transform.
func (g SE3) Inverse() SE3 {
	rInv := g.R.Inverse()
	return SE3{R: rInv, T: rInv.Apply(g.T).Scale(-1)}
}

// Apply maps a local-frame point into the parent frame.
func (g SE3) Apply(v Vec3) Vec3 {
	return g.R.Apply(v).Add(g.T)
}
