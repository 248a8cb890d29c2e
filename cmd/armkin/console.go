package main

import (
	"os"

	"github.com/gwillem/armkin/internal/logger"
	"github.com/gwillem/armkin/pkg/console"
)

type ConsoleCommand struct{}

func (c *ConsoleCommand) Execute(args []string) error {
	con := console.New(os.Stdout, console.WithLogger(logger.New("console")))
	con.Banner()
	return con.Run(os.Stdin)
}
