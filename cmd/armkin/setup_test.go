package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

type fakeServo struct {
	positions  []int
	moveErr    error
	disableErr error
	disabled   bool
}

func (f *fakeServo) SetPositionWithTime(ctx context.Context, position, timeMs int) error {
	f.positions = append(f.positions, position)
	return f.moveErr
}

func (f *fakeServo) Disable(ctx context.Context) error {
	f.disabled = true
	return f.disableErr
}

func TestWiggle(t *testing.T) {
	var buf bytes.Buffer
	servo := &fakeServo{}

	wiggle(context.Background(), servo, 2048, 30, 0, log.New(&buf))

	assert.Equal(t, []int{2078, 2018, 2048}, servo.positions)
	assert.True(t, servo.disabled)
	assert.Empty(t, buf.String())
}

func TestWiggle_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	servo := &fakeServo{
		moveErr:    errors.New("bus timeout"),
		disableErr: errors.New("no ack"),
	}

	wiggle(context.Background(), servo, 2048, 30, 0, log.New(&buf).With("port", "/dev/ttyACM0"))

	out := buf.String()
	assert.Len(t, servo.positions, 3, "keeps going after a failed move")
	assert.True(t, servo.disabled)
	assert.Contains(t, out, "Move servo failed")
	assert.Contains(t, out, "bus timeout")
	assert.Contains(t, out, "Disable servo failed")
	assert.Contains(t, out, "no ack")
	assert.Contains(t, out, "/dev/ttyACM0")
}
