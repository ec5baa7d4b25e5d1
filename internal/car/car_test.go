package car

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestCar(t *testing.T, name string, lowest, highest int, delay time.Duration) *Car {
	t.Helper()
	c, err := New(name, lowest, highest, delay, "127.0.0.1:0", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// goRun launches worker under its own cancelable context and registers a
// cleanup that cancels and joins it, so no test leaves a goroutine running
// past its own return (required for goleak.VerifyTestMain to pass).
func goRun(t *testing.T, parent context.Context, worker func(context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(parent)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = worker(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestMotionLoop_RunsDoorCycleWhenAtDestination(t *testing.T) {
	c := newTestCar(t, "test-motion-door", 1, 5, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	goRun(t, ctx, c.MotionLoop)

	c.Record.Lock()
	c.Record.SetStatus(elevator.Closed)
	c.Record.Broadcast()
	c.Record.Unlock()

	waitFor(t, func() bool {
		c.Record.Lock()
		defer c.Record.Unlock()
		return c.Record.Status() == elevator.Open
	})
}

func TestMotionLoop_StepsTowardDestination(t *testing.T) {
	c := newTestCar(t, "test-motion-step", 1, 5, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	goRun(t, ctx, c.MotionLoop)

	c.Record.Lock()
	c.Record.SetDestinationFloor(3)
	c.Record.Broadcast()
	c.Record.Unlock()

	waitFor(t, func() bool {
		c.Record.Lock()
		defer c.Record.Unlock()
		return c.Record.CurrentFloor() == 3 && c.Record.Status() == elevator.Closed
	})
}

func TestMotionLoop_SuppressedDuringEmergencyMode(t *testing.T) {
	c := newTestCar(t, "test-motion-emergency", 1, 5, 5*time.Millisecond)

	c.Record.Lock()
	c.Record.SetEmergencyMode(true)
	c.Record.SetDestinationFloor(5)
	c.Record.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	goRun(t, ctx, c.MotionLoop)

	<-ctx.Done()

	c.Record.Lock()
	defer c.Record.Unlock()
	require.Equal(t, 1, c.Record.CurrentFloor())
}

func TestMotionLoop_SuppressedDuringServiceMode(t *testing.T) {
	c := newTestCar(t, "test-motion-service", 1, 5, 5*time.Millisecond)

	c.Record.Lock()
	c.Record.SetServiceMode(true)
	c.Record.SetDestinationFloor(5)
	c.Record.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	goRun(t, ctx, c.MotionLoop)

	<-ctx.Done()

	c.Record.Lock()
	defer c.Record.Unlock()
	require.Equal(t, 1, c.Record.CurrentFloor())
}

func TestButtonHandler_OpenButtonFromClosedOpensDoor(t *testing.T) {
	c := newTestCar(t, "test-button-open", 1, 5, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	goRun(t, ctx, c.ButtonHandler)

	c.Record.Lock()
	c.Record.SetOpenButton(true)
	c.Record.Broadcast()
	c.Record.Unlock()

	waitFor(t, func() bool {
		c.Record.Lock()
		defer c.Record.Unlock()
		return c.Record.Status() == elevator.Opening && !c.Record.OpenButton()
	})
}

func TestButtonHandler_CloseButtonFromOpenClosesDoor(t *testing.T) {
	c := newTestCar(t, "test-button-close", 1, 5, 5*time.Millisecond)

	c.Record.Lock()
	c.Record.SetStatus(elevator.Open)
	c.Record.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	goRun(t, ctx, c.ButtonHandler)

	c.Record.Lock()
	c.Record.SetCloseButton(true)
	c.Record.Broadcast()
	c.Record.Unlock()

	waitFor(t, func() bool {
		c.Record.Lock()
		defer c.Record.Unlock()
		return c.Record.Status() == elevator.Closing && !c.Record.CloseButton()
	})
}

func TestButtonHandler_CloseButtonIgnoredWhenNotOpen(t *testing.T) {
	c := newTestCar(t, "test-button-close-ignored", 1, 5, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	goRun(t, ctx, c.ButtonHandler)

	c.Record.Lock()
	c.Record.SetCloseButton(true)
	c.Record.Broadcast()
	c.Record.Unlock()

	<-ctx.Done()

	c.Record.Lock()
	defer c.Record.Unlock()
	require.Equal(t, elevator.Closed, c.Record.Status())
}
