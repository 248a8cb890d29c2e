package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gwillem/armkin/internal/logger"
	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

type SolveCommand struct {
	X     float64 `long:"x" required:"true" description:"Tool x position (mm)"`
	Y     float64 `long:"y" required:"true" description:"Tool y position (mm)"`
	Z     float64 `long:"z" required:"true" description:"Tool z position (mm)"`
	Alpha float64 `long:"alpha" description:"Rotation about x (degrees)"`
	Beta  float64 `long:"beta" description:"Rotation about y (degrees)"`
	Gamma float64 `long:"gamma" description:"Rotation about z (degrees)"`

	Arm   int `long:"arm" description:"Shoulder branch, 1 or -1 (default from config)"`
	Elbow int `long:"elbow" description:"Elbow branch, 1 or -1 (default from config)"`
	Hand  int `long:"hand" description:"Wrist branch, 1 or -1 (default from config)"`

	All    bool          `long:"all" description:"List the solutions of every branch"`
	Move   bool          `long:"move" description:"Drive the configured arm to the solution"`
	Port   string        `long:"port" description:"Serial port of the arm (default from config)"`
	Settle time.Duration `long:"settle" default:"2s" description:"Wait after moving before releasing the bus"`
}

func (c *SolveCommand) Execute(args []string) error {
	log := logger.New("solve")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	solver, err := cfg.Solver()
	if err != nil {
		return err
	}

	target := kinematics.NewPose(
		r3.Vec{X: c.X, Y: c.Y, Z: c.Z},
		kinematics.EulerFromDegrees(c.Alpha, c.Beta, c.Gamma),
	)

	if c.All {
		if c.Move {
			return fmt.Errorf("--move needs a single branch, drop --all")
		}
		solutions, err := solver.SolveAll(target)
		if err != nil {
			return err
		}
		fmt.Println(renderSolutions(solver, target, solutions))
		return nil
	}

	sel := c.selector(cfg.Selector)
	angles, err := solver.Solve(target, sel)
	if err != nil {
		var lim *kinematics.JointLimitError
		if errors.As(err, &lim) {
			log.Debug("Branch rejected", "selector", sel, "joint", lim.Joint, "angle", kinematics.Degrees(lim.Angle))
		}
		return err
	}
	log.Debug("Solved", "selector", sel, "angles", angles.Degrees())
	fmt.Println(renderSolutions(solver, target, []kinematics.Solution{{Selector: sel, Angles: angles}}))

	if !c.Move {
		return nil
	}
	port := c.Port
	if port == "" {
		port = cfg.Arm.Port
	}
	if port == "" || !cfg.Arm.IsCalibrated() {
		return fmt.Errorf("arm not configured, run 'armkin setup' first")
	}
	return moveArm(port, cfg.Arm.Calibration, angles, c.Settle)
}

// selector fills unset branch flags from the configured default.
func (c *SolveCommand) selector(def kinematics.Selector) kinematics.Selector {
	sel := def
	if c.Arm != 0 {
		sel.Arm = c.Arm
	}
	if c.Elbow != 0 {
		sel.Elbow = c.Elbow
	}
	if c.Hand != 0 {
		sel.Hand = c.Hand
	}
	return sel
}

// renderSolutions renders one row per solution with the joint angles and the
// position error of re-evaluating them.
func renderSolutions(solver *kinematics.Solver, target kinematics.Pose, solutions []kinematics.Solution) string {
	headers := []string{"Branch"}
	for _, name := range robot.AllJoints() {
		headers = append(headers, string(name))
	}
	headers = append(headers, "Error (mm)")

	rows := make([][]string, 0, len(solutions))
	for _, s := range solutions {
		row := []string{s.Selector.String()}
		for _, a := range s.Angles {
			row = append(row, formatDeg(a))
		}
		residual := "-"
		if pose, err := kinematics.ForwardPose(s.Angles, solver.Geometry()); err == nil {
			residual = fmt.Sprintf("%.2e", r3.Norm(r3.Sub(pose.Position, target.Position)))
		}
		row = append(row, residual)
		rows = append(rows, row)
	}

	return newTable(headers, rows, nil).Render()
}

func moveArm(port string, cal robot.Calibration, angles kinematics.JointAngles, settle time.Duration) error {
	log := logger.New("solve")

	arm, err := robot.NewArm(port, cal)
	if err != nil {
		return fmt.Errorf("connect to arm: %w", err)
	}
	defer arm.Close()

	ctx := context.Background()
	if err := arm.Enable(ctx); err != nil {
		return fmt.Errorf("enable torque: %w", err)
	}
	if err := arm.WriteJoints(ctx, angles); err != nil {
		return err
	}
	log.Info("Moving arm", "port", port, "angles", angles.Degrees())

	time.Sleep(settle)

	reached, err := arm.ReadJoints(ctx)
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Arm moved."))
	for i, name := range robot.AllJoints() {
		fmt.Printf("  %-13s %s %s\n", name, formatDeg(reached[i]), dimStyle.Render("target "+formatDeg(angles[i])))
	}
	return nil
}
