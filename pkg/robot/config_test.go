package robot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/armkin/pkg/kinematics"
)

func TestLoadConfigFrom_Missing(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "armkin.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armkin.json")

	cfg := DefaultConfig()
	cfg.Geometry.Tool = 42
	cfg.Limits[2] = kinematics.Limit{Min: -120, Max: 135}
	cfg.Selector.Elbow = -1
	cfg.Arm.Port = "/dev/ttyACM0"
	cfg.Arm.Calibration = DefaultCalibration()
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.True(t, loaded.Arm.IsCalibrated())
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armkin.json")
	require.NoError(t, DefaultConfig().SaveTo(path))

	t.Setenv("ARMKIN_GEOMETRY_D6", "120")
	t.Setenv("ARMKIN_ARM_PORT", "/dev/ttyUSB3")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Geometry.D6)
	assert.Equal(t, "/dev/ttyUSB3", cfg.Arm.Port)
	assert.Equal(t, kinematics.ReferenceDimensions.A2, cfg.Geometry.A2)
}

func TestConfig_Solver(t *testing.T) {
	s, err := DefaultConfig().Solver()
	require.NoError(t, err)
	assert.Equal(t, 6, s.Geometry().NumJoints())

	cfg := DefaultConfig()
	cfg.Geometry.A2 = -1
	_, err = cfg.Solver()
	assert.ErrorIs(t, err, kinematics.ErrInvalidGeometry)

	cfg = DefaultConfig()
	cfg.Limits = cfg.Limits[:3]
	_, err = cfg.Solver()
	assert.ErrorIs(t, err, kinematics.ErrAngleCount)
}
