package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/armkin/internal/logger"
	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
	"github.com/gwillem/armkin/pkg/track"
)

type TrackCommand struct {
	Hz int `long:"hz" default:"30" description:"Sampling frequency"`
}

const (
	headerHeight = 4 // title + pose + euler + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type trackModel struct {
	ctrl       *track.Controller
	chart      *streamlinechart.Model
	width      int // terminal width
	height     int // terminal height
	logs       []string
	state      track.State
	quitting   bool
	lastAngles kinematics.JointAngles // previous sample, to freeze the chart when idle
}

func (m *trackModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// hasMovement checks if any joint angle has changed since the last sample
func (m *trackModel) hasMovement(angles kinematics.JointAngles) bool {
	if len(m.lastAngles) != len(angles) {
		return true
	}
	for i, a := range angles {
		if a != m.lastAngles[i] {
			return true
		}
	}
	return false
}

// Messages from the controller
type stateMsg track.State
type logMsg string

func waitForState(ctrl *track.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *track.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func chartSize(termWidth, termHeight, reserved int) (width, height int) {
	if termWidth == 0 || termHeight == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = max(termWidth-borderSize-2, 40)
	height = max(termHeight-reserved-borderSize, 10)
	return width, height
}

// newJointChart returns a stream chart with one colored data set per joint,
// scaled to normalized angles.
func newJointChart() *streamlinechart.Model {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-100, 100),
	)
	for _, name := range robot.AllJoints() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[name]))
		chart.SetDataSetStyles(string(name), runes.ThinLineStyle, style)
	}
	return &chart
}

// pushAngles plots each joint angle as a percentage of its limit.
func pushAngles(chart *streamlinechart.Model, limits kinematics.Limits, angles kinematics.JointAngles) {
	for i, name := range robot.AllJoints() {
		if i >= len(angles) || i >= len(limits) {
			break
		}
		chart.PushDataSet(string(name), limits[i].Normalize(angles[i]))
	}
	chart.DrawAll()
}

func initialTrackModel(ctrl *track.Controller) trackModel {
	return trackModel{
		ctrl:  ctrl,
		chart: newJointChart(),
	}
}

func (m trackModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chart.Resize(chartSize(m.width, m.height, headerHeight+legendHeight+footerHeight))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := track.State(msg)
		if state.Error == nil {
			m.state = state
			// Only update chart if there's movement (freeze when idle)
			if m.hasMovement(state.Angles) {
				pushAngles(m.chart, m.ctrl.Limits(), state.Angles)
				m.lastAngles = state.Angles
			}
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m trackModel) View() string {
	if m.quitting {
		return "Tracking stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("armkin Track"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n")
	sb.WriteString(renderPose(m.state.Pose, m.state.Euler, m.state.InLimits))
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20)).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

// renderPose renders the tool position and orientation on two lines.
func renderPose(p kinematics.Pose, e kinematics.Euler, inLimits bool) string {
	pos := fmt.Sprintf("x %8.2f  y %8.2f  z %8.2f", p.Position.X, p.Position.Y, p.Position.Z)
	if !inLimits {
		pos += "  " + errorStyle.Render("outside joint limits")
	}
	var rot string
	if e.Degenerate {
		rot = fmt.Sprintf("β %7.2f°  %s", kinematics.Degrees(e.Beta), dimStyle.Render("gimbal lock"))
	} else {
		rot = fmt.Sprintf("α %7.2f°  β %7.2f°  γ %7.2f°",
			kinematics.Degrees(e.Alpha), kinematics.Degrees(e.Beta), kinematics.Degrees(e.Gamma))
	}
	return pos + "\n" + statusStyle.Render(rot)
}

func renderLegend() string {
	var items []string
	for _, name := range robot.AllJoints() {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(jointColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+string(name))
	}
	return strings.Join(items, "  ")
}

func (c *TrackCommand) Execute(args []string) error {
	log := logger.New("track")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Arm.Port == "" {
		return fmt.Errorf("no arm configured, run 'armkin setup' first")
	}
	if !cfg.Arm.IsCalibrated() {
		return fmt.Errorf("arm not calibrated, run 'armkin setup' first")
	}

	g, err := kinematics.NewSixAxis(cfg.Geometry)
	if err != nil {
		return err
	}

	arm, err := robot.NewArm(cfg.Arm.Port, cfg.Arm.Calibration)
	if err != nil {
		return fmt.Errorf("connect to arm: %w", err)
	}
	defer arm.Close()

	// Let the user move the arm by hand
	if err := arm.Disable(context.Background()); err != nil {
		log.Warn("Disable torque failed", "error", err)
	}

	ctrl, err := track.NewController(track.Config{
		Reader:   arm,
		Geometry: g,
		Limits:   cfg.Limits,
		Hz:       c.Hz,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Controller stopped", "error", err)
		}
	}()

	p := tea.NewProgram(initialTrackModel(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
