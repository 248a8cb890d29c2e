// Package track follows a physical arm: it polls joint angles, runs forward
// kinematics and publishes the resulting tool pose.
package track

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gwillem/armkin/pkg/kinematics"
)

// JointReader supplies the current joint angles in radians.
type JointReader interface {
	ReadJoints(ctx context.Context) (kinematics.JointAngles, error)
}

// State represents one tracked sample.
type State struct {
	Angles    kinematics.JointAngles
	Pose      kinematics.Pose
	Euler     kinematics.Euler
	InLimits  bool
	Timestamp time.Time
	Error     error
}

// Controller manages the tracking loop.
type Controller struct {
	reader   JointReader
	geometry *kinematics.Geometry
	limits   kinematics.Limits
	hz       int

	mu      sync.Mutex
	running bool
	stateCh chan State
	logCh   chan string
}

// Config holds configuration for the controller.
type Config struct {
	Reader   JointReader
	Geometry *kinematics.Geometry
	Limits   kinematics.Limits
	Hz       int
}

// NewController creates a new tracking controller.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Reader == nil {
		return nil, fmt.Errorf("no joint reader")
	}
	if cfg.Geometry == nil {
		return nil, fmt.Errorf("no geometry")
	}
	if len(cfg.Limits) != cfg.Geometry.NumJoints() {
		return nil, fmt.Errorf("%w: got %d limits for %d joints", kinematics.ErrAngleCount, len(cfg.Limits), cfg.Geometry.NumJoints())
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}

	return &Controller{
		reader:   cfg.Reader,
		geometry: cfg.Geometry,
		limits:   cfg.Limits,
		hz:       cfg.Hz,
		stateCh:  make(chan State, 1),
		logCh:    make(chan string, 10),
	}, nil
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the polling frequency.
func (c *Controller) Hz() int {
	return c.hz
}

// Limits returns the joint limits states are checked against.
func (c *Controller) Limits() kinematics.Limits {
	return c.limits
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the tracking loop until ctx is done.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	c.log("Tracking started at %d Hz", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log("Tracking stopped")
			return ctx.Err()
		case <-ticker.C:
			c.sendState(c.Sample(ctx))
		}
	}
}

// Sample reads the arm once and evaluates its pose.
func (c *Controller) Sample(ctx context.Context) State {
	now := time.Now()

	angles, err := c.reader.ReadJoints(ctx)
	if err != nil {
		c.log("Read error: %v", err)
		return State{Error: err, Timestamp: now}
	}

	pose, err := kinematics.ForwardPose(angles, c.geometry)
	if err != nil {
		c.log("Forward kinematics error: %v", err)
		return State{Angles: angles, Error: err, Timestamp: now}
	}

	state := State{
		Angles:    angles,
		Pose:      pose,
		InLimits:  true,
		Timestamp: now,
	}
	if err := c.limits.Validate(angles); err != nil {
		c.log("%v", err)
		state.InLimits = false
	}
	// A locked wrist still reports beta; the degenerate flag carries the rest.
	state.Euler, _ = pose.Euler()
	return state
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
