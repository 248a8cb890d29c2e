package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/armkin/pkg/robot"
)

// Calibration TUI model
type calibrationModel struct {
	joints       []robot.JointName
	servoMap     map[int]*feetech.Servo
	curPositions map[robot.JointName]int
	minPositions map[robot.JointName]int
	maxPositions map[robot.JointName]int
	quitting     bool
	aborted      bool
}

type tickMsg time.Time

func newCalibrationModel(joints []robot.JointName, servoMap map[int]*feetech.Servo) calibrationModel {
	return calibrationModel{
		joints:       joints,
		servoMap:     servoMap,
		curPositions: make(map[robot.JointName]int),
		minPositions: make(map[robot.JointName]int),
		maxPositions: make(map[robot.JointName]int),
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m calibrationModel) Init() tea.Cmd {
	return tick(100 * time.Millisecond)
}

func (m calibrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.quitting = true
			return m, tea.Quit
		case "q", "ctrl+c":
			m.quitting = true
			m.aborted = true
			return m, tea.Quit
		}

	case tickMsg:
		ctx := context.Background()
		for i, name := range m.joints {
			servo := m.servoMap[i+1]
			pos, err := servo.Position(ctx)
			if err != nil {
				continue
			}
			m.curPositions[name] = pos
			if pos < m.minPositions[name] {
				m.minPositions[name] = pos
			}
			if pos > m.maxPositions[name] {
				m.maxPositions[name] = pos
			}
		}
		return m, tick(100 * time.Millisecond)
	}

	return m, nil
}

func (m calibrationModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)
	rangeGoodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)

	rows := make([][]string, 0, len(m.joints))
	ranges := make([]int, 0, len(m.joints))
	for _, name := range m.joints {
		rangeSize := m.maxPositions[name] - m.minPositions[name]
		ranges = append(ranges, rangeSize)
		rows = append(rows, []string{
			string(name),
			fmt.Sprintf("%d", m.curPositions[name]),
			fmt.Sprintf("%d", m.curPositions[name]-robot.CenterTick),
			fmt.Sprintf("%d", m.minPositions[name]),
			fmt.Sprintf("%d", m.maxPositions[name]),
			fmt.Sprintf("%d", rangeSize),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Joint", "Current", "Offset", "Min", "Max", "Range").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			switch col {
			case 0:
				return tableNameStyle
			case 1:
				return currentStyle
			case 5:
				if row >= 0 && row < len(ranges) && ranges[row] > 500 {
					return rangeGoodStyle
				}
				return tableBadStyle
			default:
				return tableCellStyle
			}
		})

	sb.WriteString(t.Render())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Hold the zero pose and press Enter to save • q to abort"))

	return sb.String()
}
