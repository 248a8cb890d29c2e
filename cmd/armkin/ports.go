package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwillem/armkin/pkg/robot"
)

type PortsCommand struct{}

func (c *PortsCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("armkin Port Scanner"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	arms, err := robot.FindArms(context.Background())
	if err != nil {
		return err
	}
	if len(arms) == 0 {
		fmt.Println("No six-axis arms found.")
		fmt.Println(dimStyle.Render("Make sure the arm is connected and powered on."))
		return nil
	}

	rows := make([][]string, 0, len(arms))
	for _, arm := range arms {
		servos := make([]string, 0, len(arm.Servos))
		for _, s := range arm.Servos {
			servos = append(servos, fmt.Sprintf("%d:%v", s.ID, s.Model))
		}
		rows = append(rows, []string{arm.Port, strings.Join(servos, " ")})
	}
	fmt.Println(newTable([]string{"Port", "Servos"}, rows, nil).Render())
	return nil
}
