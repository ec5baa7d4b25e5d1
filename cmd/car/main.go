// Command car runs one elevator car process (spec §4.1): it owns a fresh
// shared record, registers with the controller, and runs the door/motion
// state machine until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ManuGH/liftctl/internal/car"
	"github.com/ManuGH/liftctl/internal/config"
	"github.com/ManuGH/liftctl/internal/daemon"
	"github.com/ManuGH/liftctl/internal/floor"
	"github.com/ManuGH/liftctl/internal/log"
	"github.com/ManuGH/liftctl/internal/version"
)

const (
	exitOK = iota
	exitArgError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("car", flag.ContinueOnError)
	controllerAddr := fs.String("controller", config.DefaultControllerAddr, "controller address to dial")
	reconnectEvery := fs.Duration("reconnect-every", 2_000_000_000, "interval between reconnect attempts")
	logLevel := fs.String("log-level", "info", "log level")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *showVersion {
		fmt.Printf("car %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		return exitOK
	}

	if fs.NArg() != 4 {
		fmt.Fprintf(os.Stderr, "usage: car <name> <low> <high> <delay_ms>\n")
		return exitArgError
	}

	name := fs.Arg(0)
	low, err := floor.ToInt(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "car: invalid lowest floor %q: %v\n", fs.Arg(1), err)
		return exitArgError
	}
	high, err := floor.ToInt(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "car: invalid highest floor %q: %v\n", fs.Arg(2), err)
		return exitArgError
	}
	delay, err := config.ParseDoorDelayArg(fs.Arg(3))
	if err != nil {
		fmt.Fprintf(os.Stderr, "car: invalid delay_ms %q: %v\n", fs.Arg(3), err)
		return exitArgError
	}

	log.Configure(log.Config{Level: *logLevel, Service: "car", CarName: name})
	logger := log.WithComponent("car")

	c, err := car.New(name, low, high, delay, *controllerAddr, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create shared record")
		return exitArgError
	}

	c.Connect()

	// daemon.Run's returned error is always either nil or the context
	// cancellation SIGINT/SIGTERM caused — a car process exits 0 on
	// either, since the workers here never fail except by shutdown.
	_ = daemon.Run(context.Background(), logger, func() {
		if cerr := c.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("failed to tear down shared record")
		}
	},
		c.NetworkReader,
		c.StatusPublisher,
		c.ButtonHandler,
		c.MotionLoop,
		func(ctx context.Context) error { return c.Reconnector(ctx, *reconnectEvery) },
	)
	return exitOK
}
