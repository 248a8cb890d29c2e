// Package robot connects the kinematics of a six-axis arm to its servos:
// joint naming, servo calibration, configuration and the serial bus.
package robot

// JointName identifies a joint in the arm.
type JointName string

// Joint names for the six-axis arm, base first.
const (
	Base        JointName = "base"
	Shoulder    JointName = "shoulder"
	Elbow       JointName = "elbow"
	ForearmRoll JointName = "forearm_roll"
	WristBend   JointName = "wrist_bend"
	FlangeRoll  JointName = "flange_roll"
)

// AllJoints returns all joint names in order (matching servo IDs 1-6).
func AllJoints() []JointName {
	return []JointName{
		Base,
		Shoulder,
		Elbow,
		ForearmRoll,
		WristBend,
		FlangeRoll,
	}
}
