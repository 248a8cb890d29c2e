package robot

import (
	"context"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/armkin/pkg/kinematics"
)

// Arm represents a robot arm with one servo per joint.
type Arm struct {
	bus         *feetech.Bus
	group       *feetech.ServoGroup
	calibration Calibration
}

// NewArm creates and initializes an arm connection.
func NewArm(port string, cal Calibration) (*Arm, error) {
	if !cal.Complete() {
		return nil, fmt.Errorf("calibration covers %d of %d joints", len(cal), len(AllJoints()))
	}

	// Open serial bus
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: BaudRate,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	// Create servo group from calibration IDs
	group := feetech.NewServoGroupByIDs(bus, cal.ServoIDs()...)

	return &Arm{
		bus:         bus,
		group:       group,
		calibration: cal,
	}, nil
}

// Close closes the arm's bus connection.
func (a *Arm) Close() error {
	return a.bus.Close()
}

// Enable enables torque on all servos.
func (a *Arm) Enable(ctx context.Context) error {
	return a.group.EnableAll(ctx)
}

// Disable disables torque on all servos.
func (a *Arm) Disable(ctx context.Context) error {
	return a.group.DisableAll(ctx)
}

// ReadJoints reads the current joint angles in radians, base first.
func (a *Arm) ReadJoints(ctx context.Context) (kinematics.JointAngles, error) {
	// Read raw positions using sync read
	rawPositions, err := a.group.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	byName := make(map[JointName]float64, len(rawPositions))
	for id, raw := range rawPositions {
		name, cal, ok := a.calibration.ByID(id)
		if !ok {
			continue
		}
		byName[name] = cal.Angle(raw)
	}

	angles := make(kinematics.JointAngles, len(AllJoints()))
	for i, name := range AllJoints() {
		angle, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("read positions: no reading for %s", name)
		}
		angles[i] = angle
	}
	return angles, nil
}

// WriteJoints moves every joint to the given angle in radians, base first.
func (a *Arm) WriteJoints(ctx context.Context, angles kinematics.JointAngles) error {
	joints := AllJoints()
	if len(angles) != len(joints) {
		return fmt.Errorf("write positions: got %d angles for %d joints", len(angles), len(joints))
	}

	rawPositions := make(feetech.PositionMap, len(joints))
	for i, name := range joints {
		cal := a.calibration[name]
		rawPositions[cal.ID] = cal.Raw(angles[i])
	}

	// Write using sync write
	if err := a.group.SetPositions(ctx, rawPositions); err != nil {
		return fmt.Errorf("write positions: %w", err)
	}

	return nil
}
