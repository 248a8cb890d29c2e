package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/armkin/pkg/kinematics"
)

type fakeReader struct {
	angles kinematics.JointAngles
	err    error
}

func (f *fakeReader) ReadJoints(context.Context) (kinematics.JointAngles, error) {
	return f.angles, f.err
}

func newController(t *testing.T, r JointReader, limits kinematics.Limits) *Controller {
	t.Helper()
	g, err := kinematics.NewSixAxis(kinematics.ReferenceDimensions)
	require.NoError(t, err)
	c, err := NewController(Config{Reader: r, Geometry: g, Limits: limits, Hz: 200})
	require.NoError(t, err)
	return c
}

func TestSample(t *testing.T) {
	angles := kinematics.AnglesFromDegrees(-20, 20, 80, -75, 60, 100)
	c := newController(t, &fakeReader{angles: angles}, kinematics.UniformLimits(6, 180))

	state := c.Sample(context.Background())
	require.NoError(t, state.Error)
	assert.True(t, state.InLimits)
	assert.InDelta(t, 438.79, state.Pose.Position.X, 0.05)
	assert.InDelta(t, -235.37, state.Pose.Position.Y, 0.05)
	assert.InDelta(t, 643.39, state.Pose.Position.Z, 0.05)
	assert.InDelta(t, kinematics.Radians(70.18), state.Euler.Beta, 1e-3)
}

func TestSample_OutOfLimits(t *testing.T) {
	angles := kinematics.AnglesFromDegrees(0, 0, 100, 0, 0, 0)
	c := newController(t, &fakeReader{angles: angles}, kinematics.UniformLimits(6, 90))

	state := c.Sample(context.Background())
	require.NoError(t, state.Error)
	assert.False(t, state.InLimits)
}

func TestSample_ReadError(t *testing.T) {
	readErr := errors.New("bus timeout")
	c := newController(t, &fakeReader{err: readErr}, kinematics.UniformLimits(6, 180))

	state := c.Sample(context.Background())
	assert.ErrorIs(t, state.Error, readErr)
	assert.Contains(t, <-c.Logs(), "bus timeout")
}

func TestStart_PublishesUntilCanceled(t *testing.T) {
	c := newController(t, &fakeReader{angles: make(kinematics.JointAngles, 6)}, kinematics.UniformLimits(6, 180))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	select {
	case state := <-c.States():
		assert.InDelta(t, 935, state.Pose.Position.Z, 1e-6)
	case <-time.After(2 * time.Second):
		t.Fatal("no state published")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("controller did not stop")
	}
}

func TestNewController_Validates(t *testing.T) {
	g, err := kinematics.NewSixAxis(kinematics.ReferenceDimensions)
	require.NoError(t, err)

	_, err = NewController(Config{Geometry: g, Limits: kinematics.UniformLimits(6, 180)})
	assert.Error(t, err)

	_, err = NewController(Config{Reader: &fakeReader{}, Geometry: g, Limits: kinematics.UniformLimits(3, 180)})
	assert.ErrorIs(t, err, kinematics.ErrAngleCount)

	c, err := NewController(Config{Reader: &fakeReader{}, Geometry: g, Limits: kinematics.UniformLimits(6, 180)})
	require.NoError(t, err)
	assert.Equal(t, 30, c.Hz())
}
