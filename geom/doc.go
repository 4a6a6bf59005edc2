// Package geom provides the planar and spatial rigid-motion types the
// localization pipeline is built on: 2D/3D vectors, rotations stored as
// unit complex numbers (Rot2) and unit quaternions (Rot3), and the
// proper rigid transforms SE2 and SE3 composed from them.
//
// All types are small value types. Rotation zero values are not valid
// rotations; construct them through NewRot2, NewRot3, Exp or the
// identity constructors. The package has no dependencies on the rest of
// the module and performs no allocation in any transform operation.
package geom
