package kinematics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// unitSlack is how far a cosine may overshoot ±1 from rounding and still be
// treated as on the workspace boundary.
const unitSlack = 1e-9

// Selector picks one of the closed-form branches. Each flag is +1 or -1.
type Selector struct {
	Arm   int `json:"arm" mapstructure:"arm"`
	Elbow int `json:"elbow" mapstructure:"elbow"`
	Hand  int `json:"hand" mapstructure:"hand"`
}

// DefaultSelector is right shoulder, elbow above, flipped wrist.
var DefaultSelector = Selector{Arm: 1, Elbow: 1, Hand: 1}

// Valid reports whether every flag is ±1.
func (s Selector) Valid() bool {
	return isSign(s.Arm) && isSign(s.Elbow) && isSign(s.Hand)
}

func (s Selector) String() string {
	return fmt.Sprintf("arm=%+d elbow=%+d hand=%+d", s.Arm, s.Elbow, s.Hand)
}

func isSign(v int) bool { return v == 1 || v == -1 }

// AllSelectors returns the eight branch selectors.
func AllSelectors() []Selector {
	selectors := make([]Selector, 0, 8)
	for _, arm := range []int{1, -1} {
		for _, elbow := range []int{1, -1} {
			for _, hand := range []int{1, -1} {
				selectors = append(selectors, Selector{Arm: arm, Elbow: elbow, Hand: hand})
			}
		}
	}
	return selectors
}

// Solver computes joint angles for a six-axis spherical-wrist arm. A Solver
// holds no mutable state and may be shared between goroutines.
type Solver struct {
	geometry *Geometry
	limits   Limits
}

// NewSolver checks that g has the spherical-wrist layout and that limits
// cover every joint.
func NewSolver(g *Geometry, limits Limits) (*Solver, error) {
	if err := g.checkSixAxis(); err != nil {
		return nil, err
	}
	if len(limits) != g.NumJoints() {
		return nil, fmt.Errorf("%w: got %d limits for %d joints", ErrAngleCount, len(limits), g.NumJoints())
	}
	return &Solver{
		geometry: g,
		limits:   append(Limits(nil), limits...),
	}, nil
}

// Geometry returns the arm the solver works on.
func (s *Solver) Geometry() *Geometry {
	return s.geometry
}

// Limits returns a copy of the joint limits.
func (s *Solver) Limits() Limits {
	return append(Limits(nil), s.limits...)
}

// Solve returns the joint angles placing the tool at target on the branch
// chosen by sel. Each angle is the turn of the solution that lies within its
// limit, the one in (-π, π] when that fits.
func (s *Solver) Solve(target Pose, sel Selector) (JointAngles, error) {
	if !sel.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSelector, sel)
	}

	g := s.geometry
	var (
		a1 = g.links[0].A
		d1 = g.links[0].D
		a2 = g.links[1].A
		a3 = g.links[2].A
		d4 = g.links[3].D
		d6 = g.links[5].D + g.tool
	)
	arm, elbow, hand := float64(sel.Arm), float64(sel.Elbow), float64(sel.Hand)

	rot := target.Rotation
	n, o, a := rot.Col(0), rot.Col(1), rot.Col(2)

	// Wrist center: back off from the tool along the approach vector.
	wc := r3.Sub(target.Position, r3.Scale(d6, a))

	theta1 := math.Atan2(arm*wc.Y, arm*wc.X)

	// Shoulder-to-wrist triangle in the arm plane. The radial distance is
	// signed so the backward-reaching branch measures from the same side.
	radial := arm * math.Hypot(wc.X, wc.Y)
	l3 := math.Hypot(a3, d4)
	dz, dr := wc.Z-d1, radial-a1
	q := math.Hypot(dz, dr)

	unreachable := &UnreachableError{Distance: q, Min: math.Abs(a2 - l3), Max: a2 + l3}
	// With the wrist center on the shoulder axis the shoulder angle is
	// indeterminate, so q == 0 is unreachable even when a2 == l3 puts it on
	// the inner boundary.
	if q == 0 {
		return nil, unreachable
	}
	cosShoulder, ok := clampUnit((a2*a2 + q*q - l3*l3) / (2 * a2 * q))
	if !ok {
		return nil, unreachable
	}
	cosElbow, ok := clampUnit((l3*l3 + a2*a2 - q*q) / (2 * l3 * a2))
	if !ok {
		return nil, unreachable
	}

	theta2 := math.Pi/2 - math.Atan2(dz, dr) - elbow*math.Acos(cosShoulder)
	// atan2(d4, a3) is the forearm's angular offset from the elbow axis.
	theta3 := -elbow*math.Acos(cosElbow) - math.Atan2(d4, a3) + 3*math.Pi/2

	s1, c1 := math.Sincos(theta1)
	s23, c23 := math.Sincos(theta2 + theta3)

	theta4 := math.Atan2(
		hand*(-a.X*s1+a.Y*c1),
		hand*(a.X*c1*c23+a.Y*s1*c23-a.Z*s23),
	)
	s4, c4 := math.Sincos(theta4)

	theta5 := math.Atan2(
		a.X*(c1*c23*c4-s1*s4)+a.Y*(s1*c23*c4+c1*s4)-a.Z*s23*c4,
		a.X*c1*s23+a.Y*s1*s23+a.Z*c23,
	)

	// y axis of the frame after joint 4, in base coordinates.
	y4 := r3.Vec{
		X: -c1*c23*s4 - s1*c4,
		Y: -s1*c23*s4 + c1*c4,
		Z: s23 * s4,
	}
	theta6 := math.Atan2(r3.Dot(n, y4), r3.Dot(o, y4))

	angles := JointAngles{theta1, theta2, theta3, theta4, theta5, theta6}
	for i := range angles {
		angles[i] = wrapAngle(angles[i])
	}

	return s.limits.Fit(angles)
}

// Solution is one branch that solved and passed the limits.
type Solution struct {
	Selector Selector
	Angles   JointAngles
}

// SolveAll tries every selector and returns the distinct solutions in
// selector order. When no branch succeeds the joined branch errors are
// returned.
func (s *Solver) SolveAll(target Pose) ([]Solution, error) {
	var (
		solutions []Solution
		errs      []error
	)
	for _, sel := range AllSelectors() {
		angles, err := s.Solve(target, sel)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sel, err))
			continue
		}
		if containsAngles(solutions, angles) {
			continue
		}
		solutions = append(solutions, Solution{Selector: sel, Angles: angles})
	}
	if len(solutions) == 0 {
		return nil, errors.Join(errs...)
	}
	return solutions, nil
}

func containsAngles(solutions []Solution, angles JointAngles) bool {
	for _, sol := range solutions {
		same := true
		for i := range angles {
			if math.Abs(wrapAngle(sol.Angles[i]-angles[i])) > 1e-9 {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// clampUnit folds values within unitSlack of ±1 onto ±1 and reports
// whether v is a valid cosine.
func clampUnit(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return v, false
	case v > 1:
		return 1, v <= 1+unitSlack
	case v < -1:
		return -1, v >= -1-unitSlack
	}
	return v, true
}

// Solve is a one-shot NewSolver followed by Solver.Solve.
func Solve(target Pose, sel Selector, g *Geometry, limits Limits) (JointAngles, error) {
	s, err := NewSolver(g, limits)
	if err != nil {
		return nil, err
	}
	return s.Solve(target, sel)
}
