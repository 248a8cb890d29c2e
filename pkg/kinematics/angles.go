package kinematics

import "math"

// JointAngles are joint positions in radians, ordered from the base.
type JointAngles []float64

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// AnglesFromDegrees converts a list of degrees to JointAngles.
func AnglesFromDegrees(deg ...float64) JointAngles {
	angles := make(JointAngles, len(deg))
	for i, d := range deg {
		angles[i] = Radians(d)
	}
	return angles
}

// Degrees returns the angles in degrees.
func (j JointAngles) Degrees() []float64 {
	deg := make([]float64, len(j))
	for i, a := range j {
		deg[i] = Degrees(a)
	}
	return deg
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
