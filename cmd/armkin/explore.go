package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

type ExploreCommand struct {
	Step  float64 `long:"step" default:"10" description:"Position step per key press (mm)"`
	Angle float64 `long:"angle-step" default:"5" description:"Rotation step per key press (degrees)"`
}

const exploreHelp = "x/X y/Y z/Z move • a/A b/B g/G rotate • 1 arm • 2 elbow • 3 hand • r reset • q quit"

// exploreStart is the joint pose the target starts from.
var exploreStart = kinematics.AnglesFromDegrees(10, 10, 60, 0, 30, 0)

type exploreModel struct {
	solver    *kinematics.Solver
	step      float64
	angleStep float64

	start    kinematics.Pose
	position r3.Vec
	euler    [3]float64 // alpha, beta, gamma in degrees
	selector kinematics.Selector

	angles kinematics.JointAngles
	err    error

	chart    *streamlinechart.Model
	width    int
	height   int
	quitting bool
}

func newExploreModel(solver *kinematics.Solver, sel kinematics.Selector, step, angleStep float64) (exploreModel, error) {
	start, err := kinematics.ForwardPose(exploreStart, solver.Geometry())
	if err != nil {
		return exploreModel{}, err
	}
	m := exploreModel{
		solver:    solver,
		step:      step,
		angleStep: angleStep,
		start:     start,
		selector:  sel,
		chart:     newJointChart(),
	}
	m.reset()
	return m, nil
}

func (m *exploreModel) reset() {
	m.position = m.start.Position
	e, _ := m.start.Euler()
	m.euler = [3]float64{kinematics.Degrees(e.Alpha), kinematics.Degrees(e.Beta), kinematics.Degrees(e.Gamma)}
	m.solve()
}

func (m *exploreModel) target() kinematics.Pose {
	return kinematics.NewPose(m.position, kinematics.EulerFromDegrees(m.euler[0], m.euler[1], m.euler[2]))
}

// solve recomputes the joint angles and plots them when a solution exists.
func (m *exploreModel) solve() {
	m.angles, m.err = m.solver.Solve(m.target(), m.selector)
	if m.err == nil {
		pushAngles(m.chart, m.solver.Limits(), m.angles)
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve room for the title, the pose lines, the table and the help line
		m.chart.Resize(chartSize(m.width, m.height, 6+len(robot.AllJoints())+5))
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "x":
			m.position.X += m.step
		case "X":
			m.position.X -= m.step
		case "y":
			m.position.Y += m.step
		case "Y":
			m.position.Y -= m.step
		case "z":
			m.position.Z += m.step
		case "Z":
			m.position.Z -= m.step
		case "a":
			m.euler[0] += m.angleStep
		case "A":
			m.euler[0] -= m.angleStep
		case "b":
			m.euler[1] += m.angleStep
		case "B":
			m.euler[1] -= m.angleStep
		case "g":
			m.euler[2] += m.angleStep
		case "G":
			m.euler[2] -= m.angleStep
		case "1":
			m.selector.Arm = -m.selector.Arm
		case "2":
			m.selector.Elbow = -m.selector.Elbow
		case "3":
			m.selector.Hand = -m.selector.Hand
		case "r":
			m.reset()
			return m, nil
		default:
			return m, nil
		}
		m.solve()
	}

	return m, nil
}

func (m exploreModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("armkin Explore"))
	sb.WriteString("  " + statusStyle.Render(m.selector.String()))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("x %8.2f  y %8.2f  z %8.2f\n", m.position.X, m.position.Y, m.position.Z))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("α %7.2f°  β %7.2f°  γ %7.2f°", m.euler[0], m.euler[1], m.euler[2])))
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(describeSolveError(m.err)))
		sb.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(m.angles))
		for i, name := range robot.AllJoints() {
			lim := m.solver.Limits()[i]
			rows = append(rows, []string{
				string(name),
				formatDeg(m.angles[i]),
				fmt.Sprintf("%.0f° .. %.0f°", lim.Min, lim.Max),
			})
		}
		sb.WriteString(newTable([]string{"Joint", "Angle", "Limit"}, rows, nil).Render())
		sb.WriteString("\n")
	}

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")
	sb.WriteString(renderLegend())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(exploreHelp))
	return sb.String()
}

// describeSolveError turns a solver error into a one-line status.
func describeSolveError(err error) string {
	var unreachable *kinematics.UnreachableError
	var limit *kinematics.JointLimitError
	switch {
	case errors.As(err, &unreachable):
		return fmt.Sprintf("Out of reach: wrist center at %.1f mm, reach is %.1f .. %.1f mm",
			unreachable.Distance, unreachable.Min, unreachable.Max)
	case errors.As(err, &limit):
		return fmt.Sprintf("Joint %d at %s is outside its limit", limit.Joint, formatDeg(limit.Angle))
	default:
		return err.Error()
	}
}

func (c *ExploreCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	solver, err := cfg.Solver()
	if err != nil {
		return err
	}

	m, err := newExploreModel(solver, cfg.Selector, c.Step, c.Angle)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
