package kinematics

import (
	"fmt"
	"math"
)

// Limit is an inclusive joint range in degrees. Min == Max pins the joint.
type Limit struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Contains reports whether angle (radians) lies within the limit.
func (l Limit) Contains(angle float64) bool {
	return angle >= Radians(l.Min) && angle <= Radians(l.Max)
}

// Limits holds one Limit per joint, ordered from the base.
type Limits []Limit

// UniformLimits returns n joints limited to [-deg, deg].
func UniformLimits(n int, deg float64) Limits {
	l := make(Limits, n)
	for i := range l {
		l[i] = Limit{Min: -deg, Max: deg}
	}
	return l
}

// Validate checks every angle against its limit and returns a
// *JointLimitError for the first joint out of range.
func (l Limits) Validate(angles JointAngles) error {
	if len(angles) != len(l) {
		return fmt.Errorf("%w: got %d angles for %d limits", ErrAngleCount, len(angles), len(l))
	}
	for i, a := range angles {
		lim := l[i]
		if a < Radians(lim.Min) {
			return &JointLimitError{Joint: i + 1, Angle: a, Bound: Radians(lim.Min)}
		}
		if a > Radians(lim.Max) {
			return &JointLimitError{Joint: i + 1, Angle: a, Bound: Radians(lim.Max)}
		}
	}
	return nil
}

// Fit returns the representative angle + 2πk that lies within the limit,
// preferring angle itself, and reports whether one exists.
func (l Limit) Fit(angle float64) (float64, bool) {
	if l.Contains(angle) {
		return angle, true
	}
	lo, hi := Radians(l.Min), Radians(l.Max)
	// Smallest representative not below the lower bound.
	k := math.Ceil((lo - angle) / (2 * math.Pi))
	fitted := angle + 2*math.Pi*k
	if fitted <= hi {
		return fitted, true
	}
	return angle, false
}

// Fit maps every angle onto a representative within its limit. It returns
// a *JointLimitError for the first joint where no turn of the angle fits.
func (l Limits) Fit(angles JointAngles) (JointAngles, error) {
	if len(angles) != len(l) {
		return nil, fmt.Errorf("%w: got %d angles for %d limits", ErrAngleCount, len(angles), len(l))
	}
	fitted := make(JointAngles, len(angles))
	for i, a := range angles {
		f, ok := l[i].Fit(a)
		if !ok {
			bound := Radians(l[i].Max)
			if a < Radians(l[i].Min) {
				bound = Radians(l[i].Min)
			}
			return nil, &JointLimitError{Joint: i + 1, Angle: a, Bound: bound}
		}
		fitted[i] = f
	}
	return fitted, nil
}

// Normalize maps angle into [-100, 100] across the limit, 0 at the center.
// A pinned joint normalizes to 0.
func (l Limit) Normalize(angle float64) float64 {
	span := l.Max - l.Min
	if span == 0 {
		return 0
	}
	return (Degrees(angle)-l.Min)/span*200 - 100
}
