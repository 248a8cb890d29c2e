package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/armkin/internal/logger"
	"github.com/gwillem/armkin/pkg/robot"
)

type Options struct {
	Config   string `long:"config" default:"armkin.json" description:"Configuration file"`
	LogLevel string `long:"log-level" description:"Log level (debug|info|warn|error)"`
	LogFile  string `long:"log-file" description:"Write logs to file instead of stderr"`

	Solve   SolveCommand   `command:"solve" description:"Compute joint angles for a tool pose"`
	Forward ForwardCommand `command:"forward" alias:"fk" description:"Compute the tool pose for joint angles"`
	Console ConsoleCommand `command:"console" description:"Interactive DH parameter console for the reduced arm"`
	Setup   SetupCommand   `command:"setup" description:"Enter arm geometry, find and calibrate the servo bus"`
	Explore ExploreCommand `command:"explore" description:"Move a target pose interactively and watch the solution"`
	Ports   PortsCommand   `command:"ports" description:"List serial ports carrying a six-axis arm"`
	Track   TrackCommand   `command:"track" description:"Follow the physical arm's tool pose"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "armkin - forward and inverse kinematics for six-axis arms"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if err := logger.Configure(opts.LogLevel, opts.LogFile); err != nil {
			return err
		}
		defer logger.Close()
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// loadConfig reads the configuration named by --config.
func loadConfig() (*robot.Config, error) {
	cfg, err := robot.LoadConfigFrom(opts.Config)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debug("Loaded configuration", "path", opts.Config, "geometry", cfg.Geometry)
	return cfg, nil
}
