package robot

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

const (
	// TicksPerTurn is the resolution of an STS servo.
	TicksPerTurn = 4096
	// CenterTick is the raw position of a servo at joint angle zero before
	// the homing offset is applied.
	CenterTick = TicksPerTurn / 2
)

// JointCalibration holds calibration data for a single joint servo.
type JointCalibration struct {
	ID           int `json:"id" mapstructure:"id"`
	DriveMode    int `json:"drive_mode" mapstructure:"drive_mode"`
	HomingOffset int `json:"homing_offset" mapstructure:"homing_offset"`
	RangeMin     int `json:"range_min" mapstructure:"range_min"`
	RangeMax     int `json:"range_max" mapstructure:"range_max"`
}

// Calibration holds calibration data for all joints, keyed by joint name.
type Calibration map[JointName]JointCalibration

// LoadCalibration loads calibration data from a JSON file.
func LoadCalibration(path string) (Calibration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	var raw map[string]JointCalibration
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse calibration JSON: %w", err)
	}

	cal := make(Calibration, len(raw))
	for name, jc := range raw {
		cal[JointName(name)] = jc
	}

	return cal, nil
}

// DefaultCalibration maps joint i to servo ID i+1 with no offset and the
// full tick range.
func DefaultCalibration() Calibration {
	cal := make(Calibration)
	for i, name := range AllJoints() {
		cal[name] = JointCalibration{
			ID:       i + 1,
			RangeMin: 0,
			RangeMax: TicksPerTurn - 1,
		}
	}
	return cal
}

// Angle converts a raw servo position to a joint angle in radians.
func (c JointCalibration) Angle(raw int) float64 {
	a := float64(raw-CenterTick-c.HomingOffset) * 2 * math.Pi / TicksPerTurn
	if c.DriveMode != 0 {
		return -a
	}
	return a
}

// Raw converts a joint angle in radians to a raw servo position, clamped to
// the calibrated range.
func (c JointCalibration) Raw(angle float64) int {
	if c.DriveMode != 0 {
		angle = -angle
	}
	raw := int(math.Round(angle*TicksPerTurn/(2*math.Pi))) + CenterTick + c.HomingOffset
	if c.RangeMax > c.RangeMin {
		raw = max(c.RangeMin, min(c.RangeMax, raw))
	}
	return raw
}

// ServoIDs returns the servo IDs for all joints in the calibration.
func (c Calibration) ServoIDs() []int {
	ids := make([]int, 0, len(c))
	// Use AllJoints() to ensure consistent ordering
	for _, name := range AllJoints() {
		if jc, ok := c[name]; ok {
			ids = append(ids, jc.ID)
		}
	}
	return ids
}

// ByID returns joint name and calibration for a given servo ID.
func (c Calibration) ByID(id int) (JointName, JointCalibration, bool) {
	for name, jc := range c {
		if jc.ID == id {
			return name, jc, true
		}
	}
	return "", JointCalibration{}, false
}

// Complete reports whether every joint of the arm is calibrated.
func (c Calibration) Complete() bool {
	for _, name := range AllJoints() {
		if _, ok := c[name]; !ok {
			return false
		}
	}
	return true
}
