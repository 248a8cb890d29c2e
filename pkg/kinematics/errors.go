package kinematics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry    = errors.New("invalid geometry")
	ErrUnreachable        = errors.New("target unreachable")
	ErrJointLimitExceeded = errors.New("joint limit exceeded")
	ErrGimbalLock         = errors.New("gimbal lock")
	ErrInvalidSelector    = errors.New("invalid configuration selector")
	ErrAngleCount         = errors.New("joint angle count mismatch")
)

// GeometryError reports a link that violates a geometry constraint.
// Joint is 1-based; zero means the tool offset or the table as a whole.
type GeometryError struct {
	Joint  int
	Reason string
}

func (e *GeometryError) Error() string {
	if e.Joint == 0 {
		return fmt.Sprintf("invalid geometry: %s", e.Reason)
	}
	return fmt.Sprintf("invalid geometry: joint %d: %s", e.Joint, e.Reason)
}

func (e *GeometryError) Is(target error) bool { return target == ErrInvalidGeometry }

// UnreachableError reports a wrist center outside the annulus the upper arm
// and forearm can span. Distances are in millimeters.
type UnreachableError struct {
	Distance float64
	Min      float64
	Max      float64
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("target unreachable: wrist distance %.3f mm outside [%.3f, %.3f]", e.Distance, e.Min, e.Max)
}

func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

// JointLimitError reports the first joint whose angle falls outside its
// limit. Joint is 1-based, Angle and Bound are radians.
type JointLimitError struct {
	Joint int
	Angle float64
	Bound float64
}

func (e *JointLimitError) Error() string {
	return fmt.Sprintf("joint %d angle %.3f° exceeds bound %.3f°", e.Joint, Degrees(e.Angle), Degrees(e.Bound))
}

func (e *JointLimitError) Is(target error) bool { return target == ErrJointLimitExceeded }

// GimbalLockError is returned by Decompose when cos(beta) vanishes. Only
// Beta is meaningful.
type GimbalLockError struct {
	Beta float64
}

func (e *GimbalLockError) Error() string {
	return fmt.Sprintf("gimbal lock at beta %.3f°: alpha and gamma are indeterminate", Degrees(e.Beta))
}

func (e *GimbalLockError) Is(target error) bool { return target == ErrGimbalLock }
