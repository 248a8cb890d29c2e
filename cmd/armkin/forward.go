package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

type ForwardCommand struct {
	Angles string `long:"angles" required:"true" description:"Comma separated joint angles in degrees, base first"`
}

func (c *ForwardCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := kinematics.NewSixAxis(cfg.Geometry)
	if err != nil {
		return err
	}

	deg, err := parseDegrees(c.Angles)
	if err != nil {
		return err
	}
	angles := kinematics.AnglesFromDegrees(deg...)

	chain, err := kinematics.ForwardChain(angles, g)
	if err != nil {
		return err
	}

	// Origins lists the frame after each joint, then the tool point
	origins := chain.Origins()
	rows := make([][]string, 0, len(origins))
	for i, o := range origins {
		name := "tool"
		if i < len(chain.Frames) {
			name = fmt.Sprintf("%d %s", i+1, robot.AllJoints()[i])
		}
		rows = append(rows, []string{name, fmt.Sprintf("%.3f", o.X), fmt.Sprintf("%.3f", o.Y), fmt.Sprintf("%.3f", o.Z)})
	}
	pose := chain.Pose()
	fmt.Println(newTable([]string{"Frame", "x", "y", "z"}, rows, nil).Render())

	e, err := pose.Euler()
	switch {
	case errors.Is(err, kinematics.ErrGimbalLock):
		fmt.Printf("β %s %s\n", formatDeg(e.Beta), dimStyle.Render("(gimbal lock, α and γ undefined)"))
	case err != nil:
		return err
	default:
		fmt.Printf("α %s  β %s  γ %s\n", formatDeg(e.Alpha), formatDeg(e.Beta), formatDeg(e.Gamma))
	}

	if err := cfg.Limits.Validate(angles); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
	}
	return nil
}

// parseDegrees parses a comma separated list of numbers.
func parseDegrees(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	deg := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("angle %q: %w", p, err)
		}
		deg = append(deg, v)
	}
	return deg, nil
}
