// Command controller runs the central dispatcher process (spec §4.2): it
// accepts car registrations and hall calls over TCP and selects a car per
// call.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/ManuGH/liftctl/internal/config"
	"github.com/ManuGH/liftctl/internal/controller"
	"github.com/ManuGH/liftctl/internal/daemon"
	"github.com/ManuGH/liftctl/internal/health"
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
	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML config file")
	withHealth := fs.Bool("health", false, "serve /healthz and /metrics on the health address")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return exitArgError
	}
	if *showVersion {
		fmt.Printf("controller %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		return exitOK
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "usage: controller [-config path] [-health]\n")
		return exitArgError
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "controller: %v\n", err)
		return exitArgError
	}

	log.Configure(log.Config{Level: cfg.LogLevel, Service: "controller"})
	logger := log.WithComponent("controller")

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error().Err(err).Str("addr", cfg.ListenAddr).Msg("failed to listen")
		return exitArgError
	}

	srv := controller.New()

	workers := []daemon.Worker{
		func(ctx context.Context) error { return srv.Serve(ctx, ln) },
	}
	if *withHealth {
		mgr := health.NewManager()
		mgr.Register(health.RegistryChecker{Size: srv.Registry.Size})
		httpSrv := &http.Server{Addr: cfg.HealthAddr, Handler: mgr.Handler()}
		workers = append(workers, func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				_ = httpSrv.Close()
			}()
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	_ = daemon.Run(context.Background(), logger, nil, workers...)
	return exitOK
}
