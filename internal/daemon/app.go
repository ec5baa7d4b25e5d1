// Package daemon provides the shared process-lifecycle scaffolding every
// long-running liftctl binary (car, controller) uses: start a set of
// workers under one errgroup, install SIGINT/SIGTERM teardown, and run
// a cleanup hook exactly once on shutdown.
package daemon

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Worker is a long-lived background job; it must return promptly once
// ctx is done.
type Worker func(ctx context.Context) error

// Run installs SIGINT/SIGTERM handling, starts every worker under a
// shared errgroup, and blocks until all workers return. teardown (if
// non-nil) runs exactly once, after every worker has exited, regardless
// of outcome — the car process uses it to unmap and unlink its shared
// segment and close its controller connection.
func Run(parent context.Context, logger zerolog.Logger, teardown func(), workers ...Worker) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error { return w(gctx) })
	}

	err := g.Wait()
	if teardown != nil {
		teardown()
	}
	if err != nil {
		logger.Error().Err(err).Msg("worker exited with error")
	}
	return err
}
