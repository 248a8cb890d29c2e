package kinematics

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// gimbalEpsilon bounds |cos(beta)| below which alpha and gamma are not
// separable.
const gimbalEpsilon = 1e-9

// Euler holds orientation angles in radians for R = Rz(Gamma)·Ry(Beta)·Rx(Alpha).
// When Degenerate is set only Beta is meaningful and Alpha and Gamma are NaN.
type Euler struct {
	Alpha      float64
	Beta       float64
	Gamma      float64
	Degenerate bool
}

// EulerFromDegrees builds Euler angles from degrees.
func EulerFromDegrees(alpha, beta, gamma float64) Euler {
	return Euler{Alpha: Radians(alpha), Beta: Radians(beta), Gamma: Radians(gamma)}
}

// Pose is a position in millimeters plus an orientation.
type Pose struct {
	Position r3.Vec
	Rotation Rotation
}

// NewPose builds a pose from a position and Euler angles.
func NewPose(position r3.Vec, e Euler) Pose {
	return Pose{Position: position, Rotation: RotationFromEuler(e)}
}

// Euler decomposes the pose orientation. See Decompose.
func (p Pose) Euler() (Euler, error) {
	return Decompose(p.Rotation)
}

// Transform returns the pose as a homogeneous transform.
func (p Pose) Transform() Transform {
	return NewTransform(p.Rotation, p.Position)
}

// RotX returns a rotation about x.
func RotX(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	}
}

// RotY returns a rotation about y.
func RotY(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	}
}

// RotZ returns a rotation about z.
func RotZ(a float64) Rotation {
	s, c := math.Sincos(a)
	return Rotation{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// RotationFromEuler composes Rz(gamma)·Ry(beta)·Rx(alpha).
func RotationFromEuler(e Euler) Rotation {
	return RotZ(e.Gamma).Mul(RotY(e.Beta)).Mul(RotX(e.Alpha))
}

// Decompose extracts Euler angles from r. Near cos(beta) = 0 it returns a
// *GimbalLockError together with a degenerate Euler carrying beta only.
func Decompose(r Rotation) (Euler, error) {
	beta := math.Atan2(-r[2][0], math.Hypot(r[2][1], r[2][2]))
	cb := math.Cos(beta)
	if scalar.EqualWithinAbs(cb, 0, gimbalEpsilon) {
		return Euler{
			Alpha:      math.NaN(),
			Beta:       beta,
			Gamma:      math.NaN(),
			Degenerate: true,
		}, &GimbalLockError{Beta: beta}
	}
	return Euler{
		Alpha: math.Atan2(r[2][1]/cb, r[2][2]/cb),
		Beta:  beta,
		Gamma: math.Atan2(r[1][0]/cb, r[0][0]/cb),
	}, nil
}
