package kinematics

import "gonum.org/v1/gonum/spatial/r3"

// Rotation is a 3×3 rotation matrix indexed [row][col].
type Rotation [3][3]float64

// Transform is a 4×4 homogeneous transform indexed [row][col].
type Transform [4][4]float64

// IdentityRotation returns the 3×3 identity.
func IdentityRotation() Rotation {
	return Rotation{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Identity returns the 4×4 identity transform.
func Identity() Transform {
	return Transform{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns r × b.
func (r Rotation) Mul(b Rotation) Rotation {
	var m Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = r[i][0]*b[0][j] + r[i][1]*b[1][j] + r[i][2]*b[2][j]
		}
	}
	return m
}

// Col returns column j as a vector. Columns 0, 1 and 2 are the normal,
// sliding and approach vectors of a frame.
func (r Rotation) Col(j int) r3.Vec {
	return r3.Vec{X: r[0][j], Y: r[1][j], Z: r[2][j]}
}

// Apply rotates v.
func (r Rotation) Apply(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: r[0][0]*v.X + r[0][1]*v.Y + r[0][2]*v.Z,
		Y: r[1][0]*v.X + r[1][1]*v.Y + r[1][2]*v.Z,
		Z: r[2][0]*v.X + r[2][1]*v.Y + r[2][2]*v.Z,
	}
}

// NewTransform builds an affine transform from a rotation and translation.
func NewTransform(r Rotation, t r3.Vec) Transform {
	return Transform{
		{r[0][0], r[0][1], r[0][2], t.X},
		{r[1][0], r[1][1], r[1][2], t.Y},
		{r[2][0], r[2][1], r[2][2], t.Z},
		{0, 0, 0, 1},
	}
}

// Mul returns t × b.
func (t Transform) Mul(b Transform) Transform {
	var m Transform
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = t[i][0]*b[0][j] + t[i][1]*b[1][j] +
				t[i][2]*b[2][j] + t[i][3]*b[3][j]
		}
	}
	return m
}

// Apply transforms a point (w=1).
func (t Transform) Apply(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: t[0][0]*p.X + t[0][1]*p.Y + t[0][2]*p.Z + t[0][3],
		Y: t[1][0]*p.X + t[1][1]*p.Y + t[1][2]*p.Z + t[1][3],
		Z: t[2][0]*p.X + t[2][1]*p.Y + t[2][2]*p.Z + t[2][3],
	}
}

// Rotation returns the upper-left 3×3 block.
func (t Transform) Rotation() Rotation {
	return Rotation{
		{t[0][0], t[0][1], t[0][2]},
		{t[1][0], t[1][1], t[1][2]},
		{t[2][0], t[2][1], t[2][2]},
	}
}

// Translation returns the origin of the frame.
func (t Transform) Translation() r3.Vec {
	return r3.Vec{X: t[0][3], Y: t[1][3], Z: t[2][3]}
}
