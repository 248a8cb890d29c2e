package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/armkin/internal/logger"
	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

type SetupCommand struct {
	SkipArm bool `long:"skip-arm" description:"Only enter the geometry, do not look for an arm"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("armkin Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━"))
	fmt.Println()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	// Step 1: Geometry
	fmt.Println(subHeaderStyle.Render("━━━ Arm Geometry ━━━"))
	fmt.Println()
	dim, err := askDimensions(config.Geometry)
	if err != nil {
		return err
	}
	if _, err := kinematics.NewSixAxis(dim); err != nil {
		return err
	}
	config.Geometry = dim

	// Save before touching the bus
	if err := config.SaveTo(opts.Config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if !c.SkipArm {
		// Step 2: Find the arm
		fmt.Println()
		fmt.Println(subHeaderStyle.Render("━━━ Servo Bus ━━━"))
		fmt.Println()
		port, err := selectArm()
		if err != nil {
			return err
		}

		// Step 3: Calibrate
		if port != "" {
			config.Arm.Port = port
			fmt.Println()
			fmt.Println(subHeaderStyle.Render("━━━ Calibrating Arm ━━━"))
			fmt.Println()
			if err := calibrateArm(&config.Arm); err != nil {
				return err
			}
			if err := config.SaveTo(opts.Config); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
		}
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Try: " + headerStyle.Render("armkin explore"))

	return nil
}

// askDimensions prompts for the six-axis constants, prefilled with cur.
func askDimensions(cur kinematics.Dimensions) (kinematics.Dimensions, error) {
	fields := []struct {
		title string
		desc  string
		value *float64
	}{
		{"a1", "Base axis to shoulder axis, horizontal (mm)", &cur.A1},
		{"d1", "Floor to shoulder axis, vertical (mm)", &cur.D1},
		{"a2", "Upper arm length (mm)", &cur.A2},
		{"a3", "Elbow axis to forearm axis offset (mm)", &cur.A3},
		{"d4", "Forearm length up to the wrist center (mm)", &cur.D4},
		{"d6", "Wrist center to flange (mm)", &cur.D6},
		{"tool", "Flange to tool point (mm)", &cur.Tool},
	}

	text := make([]string, len(fields))
	inputs := make([]huh.Field, len(fields))
	for i, f := range fields {
		text[i] = strconv.FormatFloat(*f.value, 'f', -1, 64)
		inputs[i] = huh.NewInput().
			Title(f.title).
			Description(f.desc).
			Value(&text[i]).
			Validate(func(s string) error {
				_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				return err
			})
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
		return cur, err
	}

	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(text[i]), 64)
		if err != nil {
			return cur, fmt.Errorf("%s: %w", f.title, err)
		}
		*f.value = v
	}
	return cur, nil
}

// selectArm scans the serial ports and returns the port of the arm to use,
// or "" when the user skips.
func selectArm() (string, error) {
	fmt.Println("Scanning for arms...")
	fmt.Println()

	arms, err := robot.FindArms(context.Background())
	if err != nil {
		return "", err
	}

	switch len(arms) {
	case 0:
		fmt.Println("No six-axis arm found.")
		fmt.Println(dimStyle.Render("Connect and power the arm, then run setup again."))
		return "", nil
	case 1:
		fmt.Printf("  Found arm on %s\n", arms[0].Port)
		return arms[0].Port, nil
	}

	fmt.Printf("Found %d arms. Let's identify them...\n\n", len(arms))
	for _, arm := range arms {
		use, err := identifyArmWithWiggle(arm)
		if err != nil {
			return "", err
		}
		if use {
			return arm.Port, nil
		}
	}
	return "", nil
}

func identifyArmWithWiggle(arm robot.PortInfo) (bool, error) {
	log := logger.New("setup")

	bus, err := openBus(arm.Port)
	if err != nil {
		return false, err
	}
	defer bus.Close()

	ctx := context.Background()

	// Wiggle the base servo
	var servo *feetech.Servo
	for _, s := range arm.Servos {
		if s.ID == 1 {
			servo = feetech.NewServo(bus, s.ID, s.Model)
			break
		}
	}
	if servo == nil {
		return false, nil
	}

	originalPos, err := servo.Position(ctx)
	if err != nil {
		log.Warn("Read position failed", "port", arm.Port, "error", err)
		return false, nil
	}
	if err := servo.Enable(ctx); err != nil {
		log.Warn("Enable servo failed", "port", arm.Port, "error", err)
		return false, nil
	}

	fmt.Printf("\n  Wiggling arm on %s...\n", arm.Port)

	wiggle(ctx, servo, originalPos, 30, 500, log.With("port", arm.Port))

	use := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Use the arm on %s?", arm.Port)).
				Description("The arm that just wiggled").
				Affirmative("Use it").
				Negative("Skip").
				Value(&use),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return use, nil
}

// wiggleServo is the part of a servo the wiggle drives.
type wiggleServo interface {
	SetPositionWithTime(ctx context.Context, position, timeMs int) error
	Disable(ctx context.Context) error
}

// wiggle swings servo by amount ticks each way, returns it to origin and
// releases torque. Failures are logged, the wiggle carries on.
func wiggle(ctx context.Context, servo wiggleServo, origin, amount, moveTimeMs int, log *log.Logger) {
	for _, pos := range []int{origin + amount, origin - amount, origin} {
		if err := servo.SetPositionWithTime(ctx, pos, moveTimeMs); err != nil {
			log.Warn("Move servo failed", "position", pos, "error", err)
		}
		time.Sleep(time.Duration(moveTimeMs+100) * time.Millisecond)
	}
	if err := servo.Disable(ctx); err != nil {
		log.Warn("Disable servo failed", "error", err)
	}
}

func openBus(port string) (*feetech.Bus, error) {
	return feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: robot.BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
}

func calibrateArm(armConfig *robot.ArmConfig) error {
	log := logger.New("setup")

	fmt.Printf("Calibrating arm on %s\n", armConfig.Port)
	fmt.Println()

	bus, err := openBus(armConfig.Port)
	if err != nil {
		return fmt.Errorf("connect to arm: %w", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), robot.ScanTimeout)
	servos, err := bus.Scan(ctx, 1, 6)
	cancel()
	if err != nil {
		return fmt.Errorf("scan servos: %w", err)
	}
	if !robot.IsSixAxisArm(servos) {
		return fmt.Errorf("not a six-axis arm (expected 6 servos with IDs 1-6)")
	}

	servoMap := make(map[int]*feetech.Servo)
	for _, s := range servos {
		servoMap[s.ID] = feetech.NewServo(bus, s.ID, s.Model)
	}

	// Disable all servos so the user can move the arm freely
	ctx = context.Background()
	for id, servo := range servoMap {
		if err := servo.Disable(ctx); err != nil {
			log.Warn("Disable servo failed", "id", id, "error", err)
		}
	}

	fmt.Println(subHeaderStyle.Render("Record range of motion"))
	fmt.Println("Move each joint to its minimum AND maximum positions.")
	fmt.Println("Then hold the arm in its zero pose: upper arm vertical, forearm horizontal.")
	fmt.Println()

	joints := robot.AllJoints()
	model := newCalibrationModel(joints, servoMap)
	for i, name := range joints {
		pos, err := servoMap[i+1].Position(ctx)
		if err != nil {
			log.Warn("Read position failed", "joint", name, "error", err)
		}
		model.curPositions[name] = pos
		model.minPositions[name] = pos
		model.maxPositions[name] = pos
	}

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run calibration: %w", err)
	}
	cm := finalModel.(calibrationModel)
	if cm.aborted {
		fmt.Println(dimStyle.Render("Calibration aborted, keeping the previous one."))
		return nil
	}

	calibration := make(robot.Calibration)
	for i, name := range joints {
		calibration[name] = robot.JointCalibration{
			ID:           i + 1,
			HomingOffset: cm.curPositions[name] - robot.CenterTick,
			RangeMin:     cm.minPositions[name],
			RangeMax:     cm.maxPositions[name],
		}
	}
	if armConfig.IsCalibrated() {
		// Keep drive modes from a hand-edited config
		for name, jc := range calibration {
			jc.DriveMode = armConfig.Calibration[name].DriveMode
			calibration[name] = jc
		}
	}

	armConfig.Calibration = calibration
	fmt.Println()
	fmt.Println("Arm calibrated.")
	return nil
}
