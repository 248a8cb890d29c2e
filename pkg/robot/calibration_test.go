package robot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointCalibration_Angle(t *testing.T) {
	cal := JointCalibration{HomingOffset: 100}

	tests := []struct {
		raw      int
		expected float64
	}{
		{2148, 0}, // center + offset
		{3172, math.Pi / 2},
		{1124, -math.Pi / 2},
		{100, -math.Pi},
		{2148 + 512, math.Pi / 4},
	}

	for _, tt := range tests {
		got := cal.Angle(tt.raw)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("Angle(%d) = %f, want %f", tt.raw, got, tt.expected)
		}
	}
}

func TestJointCalibration_DriveMode(t *testing.T) {
	cal := JointCalibration{DriveMode: 1}

	assert.InDelta(t, -math.Pi/2, cal.Angle(CenterTick+1024), 1e-9)
	assert.Equal(t, CenterTick-1024, cal.Raw(math.Pi/2))
}

func TestJointCalibration_Raw(t *testing.T) {
	cal := JointCalibration{
		RangeMin: 1000,
		RangeMax: 3000,
	}

	tests := []struct {
		angle    float64
		expected int
	}{
		{0, 2048},
		{math.Pi / 4, 2560},
		{-math.Pi / 4, 1536},
		{math.Pi, 3000},  // clamped to max
		{-math.Pi, 1000}, // clamped to min
	}

	for _, tt := range tests {
		got := cal.Raw(tt.angle)
		if got != tt.expected {
			t.Errorf("Raw(%f) = %d, want %d", tt.angle, got, tt.expected)
		}
	}
}

func TestJointCalibration_RoundTrip(t *testing.T) {
	cal := JointCalibration{
		HomingOffset: -37,
		RangeMin:     823,
		RangeMax:     3540,
	}

	// Test round-trip: raw -> angle -> raw
	for raw := cal.RangeMin; raw <= cal.RangeMax; raw += 100 {
		angle := cal.Angle(raw)
		back := cal.Raw(angle)
		if back != raw {
			t.Errorf("Round-trip failed: %d -> %f -> %d", raw, angle, back)
		}
	}
}

func TestCalibration_ServoIDs(t *testing.T) {
	cal := Calibration{
		Base:        JointCalibration{ID: 1},
		Shoulder:    JointCalibration{ID: 2},
		Elbow:       JointCalibration{ID: 3},
		ForearmRoll: JointCalibration{ID: 4},
		WristBend:   JointCalibration{ID: 5},
		FlangeRoll:  JointCalibration{ID: 6},
	}

	ids := cal.ServoIDs()
	expected := []int{1, 2, 3, 4, 5, 6}

	if len(ids) != len(expected) {
		t.Fatalf("ServoIDs returned %d IDs, want %d", len(ids), len(expected))
	}

	for i, id := range ids {
		if id != expected[i] {
			t.Errorf("ServoIDs()[%d] = %d, want %d", i, id, expected[i])
		}
	}
	assert.True(t, cal.Complete())
}

func TestCalibration_ByID(t *testing.T) {
	cal := Calibration{
		Base:       JointCalibration{ID: 1, RangeMin: 100, RangeMax: 200},
		FlangeRoll: JointCalibration{ID: 6, RangeMin: 300, RangeMax: 400},
	}

	// Test finding existing ID
	name, jc, ok := cal.ByID(1)
	if !ok {
		t.Fatal("ByID(1) returned false")
	}
	if name != Base {
		t.Errorf("ByID(1) returned name %s, want base", name)
	}
	if jc.RangeMin != 100 {
		t.Errorf("ByID(1) returned wrong calibration: %+v", jc)
	}

	// Test non-existing ID
	_, _, ok = cal.ByID(99)
	if ok {
		t.Error("ByID(99) should return false")
	}
	assert.False(t, cal.Complete())
}

func TestLoadCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.json")
	data := `{"base": {"id": 1, "drive_mode": 1, "homing_offset": 12, "range_min": 500, "range_max": 3500}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cal, err := LoadCalibration(path)
	require.NoError(t, err)
	assert.Equal(t, JointCalibration{ID: 1, DriveMode: 1, HomingOffset: 12, RangeMin: 500, RangeMax: 3500}, cal[Base])

	_, err = LoadCalibration(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
