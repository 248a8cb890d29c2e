package kinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimits_Validate(t *testing.T) {
	limits := Limits{{-150, 150}, {-150, 150}, {-150, 150}, {0, 0}}

	tests := []struct {
		name  string
		deg   []float64
		joint int
	}{
		{"all within", []float64{0, 10, -20, 0}, 0},
		{"inclusive bounds", []float64{150, -150, 150, 0}, 0},
		{"first over", []float64{151, 0, 0, 0}, 1},
		{"third under", []float64{0, 0, -151, 0}, 3},
		{"pinned joint moved", []float64{0, 0, 0, 1}, 4},
		{"first violation wins", []float64{0, 200, -200, 5}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limits.Validate(AnglesFromDegrees(tt.deg...))
			if tt.joint == 0 {
				assert.NoError(t, err)
				return
			}
			var limitErr *JointLimitError
			require.ErrorAs(t, err, &limitErr)
			assert.Equal(t, tt.joint, limitErr.Joint)
		})
	}
}

func TestLimits_ValidateCount(t *testing.T) {
	err := UniformLimits(6, 180).Validate(JointAngles{0})
	assert.ErrorIs(t, err, ErrAngleCount)
}

func TestLimits_PerturbSolvedAngle(t *testing.T) {
	limits := UniformLimits(6, 175)
	s, err := NewSolver(referenceArm(t), limits)
	require.NoError(t, err)

	angles, err := s.Solve(fixturePose(), DefaultSelector)
	require.NoError(t, err)
	require.NoError(t, limits.Validate(angles))

	for i := range angles {
		for _, bound := range []float64{limits[i].Max, limits[i].Min} {
			perturbed := append(JointAngles(nil), angles...)
			perturbed[i] = Radians(bound) + math.Copysign(1e-6, bound)

			var limitErr *JointLimitError
			require.ErrorAs(t, limits.Validate(perturbed), &limitErr)
			assert.Equal(t, i+1, limitErr.Joint)
			assert.Equal(t, Radians(bound), limitErr.Bound)
		}
	}
}

func TestLimit_Fit(t *testing.T) {
	tests := []struct {
		name  string
		limit Limit
		deg   float64
		want  float64
		ok    bool
	}{
		{"inside", Limit{Min: -180, Max: 180}, 170, 170, true},
		{"next turn up", Limit{Min: 0, Max: 360}, -160, 200, true},
		{"next turn down", Limit{Min: -360, Max: 0}, 90, -270, true},
		{"two turns", Limit{Min: 0, Max: 360}, -700, 20, true},
		{"no turn fits", Limit{Min: -90, Max: 90}, 135, 135, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.limit.Fit(Radians(tt.deg))
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, Degrees(got), 1e-9)
		})
	}
}

func TestLimits_Fit(t *testing.T) {
	limits := UniformLimits(3, 180)
	limits[2] = Limit{Min: 0, Max: 360}

	got, err := limits.Fit(AnglesFromDegrees(10, -20, -90))
	require.NoError(t, err)
	assert.InDelta(t, 270, Degrees(got[2]), 1e-9)
	assert.NoError(t, limits.Validate(got))

	limits[1] = Limit{Min: -10, Max: 10}
	_, err = limits.Fit(AnglesFromDegrees(10, -20, -90))
	var limitErr *JointLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 2, limitErr.Joint)
	assert.InDelta(t, Radians(-10), limitErr.Bound, 1e-12)

	_, err = limits.Fit(JointAngles{0})
	assert.ErrorIs(t, err, ErrAngleCount)
}

func TestLimit_Normalize(t *testing.T) {
	lim := Limit{Min: -90, Max: 90}

	tests := []struct {
		deg      float64
		expected float64
	}{
		{-90, -100},
		{90, 100},
		{0, 0},
		{45, 50},
	}
	for _, tt := range tests {
		got := lim.Normalize(Radians(tt.deg))
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("Normalize(%v°) = %f, want %f", tt.deg, got, tt.expected)
		}
	}

	assert.Zero(t, Limit{}.Normalize(1))
}
