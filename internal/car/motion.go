package car

import (
	"context"
	"time"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/floor"
	"github.com/ManuGH/liftctl/internal/metrics"
)

// MotionLoop implements the door/motion state machine (spec §4.1): while
// idle at its destination it runs one door cycle, then parks; otherwise
// it steps toward the destination one floor per iteration, re-checking
// the record between steps. emergency_mode and individual_service_mode
// both suppress automatic motion entirely.
func (c *Car) MotionLoop(ctx context.Context) error {
	for {
		c.Record.Lock()
		if ctx.Err() != nil {
			c.Record.Unlock()
			return nil
		}

		if c.Record.EmergencyMode() || c.Record.ServiceMode() {
			err := c.Record.Wait(ctx)
			c.Record.Unlock()
			if err != nil {
				return nil
			}
			continue
		}

		current := c.Record.CurrentFloor()
		dest := c.Record.DestinationFloor()

		if current == dest {
			c.Record.Unlock()
			c.runDoorCycle(ctx)
			c.Record.Lock()
			if c.Record.DestinationFloor() != c.Record.CurrentFloor() {
				c.Record.Unlock()
				continue
			}
			if err := c.Record.Wait(ctx); err != nil {
				c.Record.Unlock()
				return nil
			}
			c.Record.Unlock()
			continue
		}

		highest := c.Record.Highest()
		lowest := c.Record.Lowest()
		switch {
		case dest > current:
			if next, ok := floor.Increment(current, highest); ok {
				c.stepTo(ctx, next)
				continue
			}
			c.Record.Broadcast()
			c.Record.Unlock()
		case dest < current:
			if next, ok := floor.Decrement(current, lowest); ok {
				c.stepTo(ctx, next)
				continue
			}
			c.Record.Broadcast()
			c.Record.Unlock()
		default:
			c.Record.Broadcast()
			c.Record.Unlock()
		}
	}
}

// stepTo moves the car to the adjacent floor next, releasing the lock
// during the sleep so buttons and the safety monitor can interpose
// (spec §4.1 rule 2, §5). Must be called with the lock held; it releases
// and re-acquires internally.
func (c *Car) stepTo(ctx context.Context, next int) {
	c.Record.SetStatus(elevator.Between)
	c.Record.Broadcast()
	c.Record.Unlock()

	sleepOrDone(ctx, c.Delay)

	c.Record.Lock()
	c.Record.SetCurrentFloor(next)
	c.Record.SetStatus(elevator.Closed)
	c.Record.Broadcast()
	c.Record.Unlock()

	metrics.RecordFloorTransition(c.Name)
}

// runDoorCycle drives Closed -> Opening -> Open -> Closing -> Closed,
// releasing the lock and sleeping Delay between each transition. Emergency
// mode interrupts between steps; the caller re-checks the destination once
// the cycle returns.
func (c *Car) runDoorCycle(ctx context.Context) {
	steps := []elevator.Status{elevator.Opening, elevator.Open, elevator.Closing, elevator.Closed}
	for _, next := range steps {
		c.Record.Lock()
		if c.Record.EmergencyMode() {
			c.Record.Unlock()
			return
		}
		c.Record.SetStatus(next)
		c.Record.Broadcast()
		c.Record.Unlock()

		sleepOrDone(ctx, c.Delay)
	}
	metrics.RecordDoorCycle(c.Name)
}

func sleepOrDone(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// ButtonHandler reacts to open_button/close_button (spec §4.1): it waits
// for any mutation, then consumes whichever button flag is set.
func (c *Car) ButtonHandler(ctx context.Context) error {
	for {
		c.Record.Lock()
		if err := c.Record.Wait(ctx); err != nil {
			c.Record.Unlock()
			return nil
		}

		if c.Record.OpenButton() {
			c.handleOpenButton()
			c.Record.SetOpenButton(false)
			c.Record.Broadcast()
		}
		if c.Record.CloseButton() {
			c.handleCloseButton()
			c.Record.SetCloseButton(false)
			c.Record.Broadcast()
		}
		c.Record.Unlock()
	}
}

// handleOpenButton must be called with the lock held.
func (c *Car) handleOpenButton() {
	switch c.Record.Status() {
	case elevator.Open:
		// A press while Open has no effect: the door cycle's Open ->
		// Closing sleep runs to its end and is not restarted.
	case elevator.Closing, elevator.Closed:
		c.Record.SetStatus(elevator.Opening)
	}
}

// handleCloseButton must be called with the lock held.
func (c *Car) handleCloseButton() {
	if c.Record.Status() == elevator.Open {
		c.Record.SetStatus(elevator.Closing)
	}
}
