package kinematics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Chain holds the cumulative frames of one forward evaluation. Frames[i] is
// the transform from the base to the frame after joint i+1.
type Chain struct {
	Frames []Transform
	Tool   Transform
}

// ForwardChain composes the link transforms for the given joint angles.
func ForwardChain(angles JointAngles, g *Geometry) (Chain, error) {
	if len(angles) != len(g.links) {
		return Chain{}, fmt.Errorf("%w: got %d angles for %d joints", ErrAngleCount, len(angles), len(g.links))
	}

	frames := make([]Transform, len(g.links))
	t := Identity()
	for i, l := range g.links {
		t = t.Mul(l.Transform(angles[i]))
		frames[i] = t
	}

	tool := Identity()
	tool[2][3] = g.tool

	return Chain{
		Frames: frames,
		Tool:   t.Mul(tool),
	}, nil
}

// Point maps p, given in the frame after joint n (1-based), to the base
// frame. n == 0 returns p unchanged.
func (c Chain) Point(n int, p r3.Vec) r3.Vec {
	if n == 0 {
		return p
	}
	return c.Frames[n-1].Apply(p)
}

// Origins returns the base-frame origin of every joint frame followed by
// the tool center point.
func (c Chain) Origins() []r3.Vec {
	origins := make([]r3.Vec, 0, len(c.Frames)+1)
	for _, f := range c.Frames {
		origins = append(origins, f.Translation())
	}
	return append(origins, c.Tool.Translation())
}

// Pose returns the tool pose.
func (c Chain) Pose() Pose {
	return Pose{
		Position: c.Tool.Translation(),
		Rotation: c.Tool.Rotation(),
	}
}

// ForwardPose evaluates the tool pose reached by angles.
func ForwardPose(angles JointAngles, g *Geometry) (Pose, error) {
	c, err := ForwardChain(angles, g)
	if err != nil {
		return Pose{}, err
	}
	return c.Pose(), nil
}
