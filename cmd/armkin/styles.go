package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gwillem/armkin/pkg/kinematics"
	"github.com/gwillem/armkin/pkg/robot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	tableNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBadStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// Joint colors - distinct colors for each joint
var jointColors = map[robot.JointName]string{
	robot.Base:        "196", // red
	robot.Shoulder:    "208", // orange
	robot.Elbow:       "226", // yellow
	robot.ForearmRoll: "46",  // green
	robot.WristBend:   "51",  // cyan
	robot.FlangeRoll:  "201", // magenta
}

// newTable returns a rounded table with the first column highlighted.
// bad reports cells to render in the error style.
func newTable(headers []string, rows [][]string, bad func(row, col int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case bad != nil && bad(row, col):
				return tableBadStyle
			case col == 0:
				return tableNameStyle
			default:
				return tableCellStyle
			}
		})
}

func formatDeg(rad float64) string {
	return fmt.Sprintf("%.3f°", kinematics.Degrees(rad))
}
