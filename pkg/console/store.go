package console

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/armkin/pkg/kinematics"
)

// NumJoints is the joint count of the reduced diagnostic arm.
const NumJoints = 4

// DefaultLimits are the reduced arm's joint ranges in degrees. Joint 4 is
// pinned at zero.
var DefaultLimits = kinematics.Limits{
	{Min: -150, Max: 150},
	{Min: -150, Max: 150},
	{Min: -150, Max: 150},
	{Min: 0, Max: 0},
}

// reducedLayout is twist, zero offset and direction per joint.
var reducedLayout = [NumJoints]struct {
	quarterTurns int
	offset       float64
	reversed     bool
}{
	{1, 0, false},
	{0, -math.Pi / 2, true},
	{1, 0, false},
	{0, 0, false},
}

// Store holds the parameters edited by the console. Angles are degrees,
// lengths millimeters.
type Store struct {
	Theta [NumJoints]int
	D     [NumJoints]int
	A     [NumJoints]int
	P     [3]int
}

// Geometry builds the reduced arm from the current link constants.
func (s Store) Geometry() (*kinematics.Geometry, error) {
	links := make([]kinematics.Link, NumJoints)
	for i, j := range reducedLayout {
		sa, ca := kinematics.Twist(j.quarterTurns)
		links[i] = kinematics.Link{
			A:        float64(s.A[i]),
			D:        float64(s.D[i]),
			SinAlpha: sa,
			CosAlpha: ca,
			Offset:   j.offset,
			Reversed: j.reversed,
		}
	}
	return kinematics.NewGeometry(links, 0)
}

// Angles returns the joint angles in radians.
func (s Store) Angles() kinematics.JointAngles {
	angles := make(kinematics.JointAngles, NumJoints)
	for i, deg := range s.Theta {
		angles[i] = kinematics.Radians(float64(deg))
	}
	return angles
}

// Point returns the point being moved.
func (s Store) Point() r3.Vec {
	return r3.Vec{X: float64(s.P[0]), Y: float64(s.P[1]), Z: float64(s.P[2])}
}

// field returns a pointer to the named parameter and, for angles, its
// 0-based joint index.
func (s *Store) field(name string) (ptr *int, joint int, ok bool) {
	if len(name) < 2 {
		return nil, 0, false
	}
	switch name {
	case "px":
		return &s.P[0], -1, true
	case "py":
		return &s.P[1], -1, true
	case "pz":
		return &s.P[2], -1, true
	}

	prefix, idx := name[:len(name)-1], int(name[len(name)-1]-'1')
	if idx < 0 || idx >= NumJoints {
		return nil, 0, false
	}
	switch prefix {
	case "theta":
		return &s.Theta[idx], idx, true
	case "d":
		return &s.D[idx], -1, true
	case "a":
		return &s.A[idx], -1, true
	}
	return nil, 0, false
}
