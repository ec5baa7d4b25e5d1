// Package car implements the car process (spec §4.1): owner of one
// shared record, runner of the door/motion state machine, and the
// network endpoint that registers with and reports to the controller.
package car

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/floor"
	"github.com/ManuGH/liftctl/internal/resilience"
	"github.com/ManuGH/liftctl/internal/wire"
	"github.com/rs/zerolog"
)

// DialTimeout bounds a single connect attempt to the controller.
const DialTimeout = 5 * time.Second

// Car owns one elevator's shared record and its (possibly absent)
// connection to the controller.
type Car struct {
	Name   string
	Delay  time.Duration
	Record *elevator.Record
	Logger zerolog.Logger

	addr string

	connMu  sync.Mutex
	conn    net.Conn
	breaker *resilience.Breaker
}

// New creates a fresh shared record for name and returns a Car ready to
// run, per spec §4.1's startup contract.
func New(name string, lowest, highest int, delay time.Duration, controllerAddr string, logger zerolog.Logger) (*Car, error) {
	rec, err := elevator.Create(name, lowest, highest)
	if err != nil {
		return nil, err
	}
	return &Car{
		Name:    name,
		Delay:   delay,
		Record:  rec,
		Logger:  logger,
		addr:    controllerAddr,
		breaker: resilience.NewDialBreaker(name),
	}, nil
}

// Close unmaps and unlinks the shared record and closes the controller
// connection, per spec §5's termination contract.
func (c *Car) Close() error {
	c.connMu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.connMu.Unlock()

	if err := c.Record.Close(); err != nil {
		return err
	}
	return elevator.Unlink(c.Name)
}

func (c *Car) getConn() net.Conn {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.conn
}

func (c *Car) setConn(conn net.Conn) {
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
}

// dialAndRegister connects to the controller and sends the CAR
// registration message. Failure here is never fatal to the car process
// (spec §4.1, §7): callers log and carry on.
func (c *Car) dialAndRegister() (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", c.addr, DialTimeout)
	if err != nil {
		return nil, err
	}

	lowLabel, err := floor.FromInt(c.Record.Lowest())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	highLabel, err := floor.FromInt(c.Record.Highest())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	msg := wire.Car{Name: c.Name, Lowest: lowLabel, Highest: highLabel}
	if err := wire.WriteFrame(conn, msg.String()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// Connect attempts the initial registration. A failure is logged and
// swallowed; the reconnect worker keeps retrying in the background.
func (c *Car) Connect() {
	conn, err := c.dialAndRegister()
	if err != nil {
		c.Logger.Warn().Err(err).Msg("controller unreachable, running local-only")
		return
	}
	c.setConn(conn)
	c.Logger.Info().Msg("registered with controller")
}

// Reconnector retries dialAndRegister on a fixed interval behind a
// circuit breaker, so a persistently unreachable controller degrades to
// a slow bounded retry rather than a dial-storm (SPEC_FULL §4.1).
func (c *Car) Reconnector(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if c.getConn() != nil {
				continue
			}
			result, err := c.breaker.Try(func() (any, error) {
				return c.dialAndRegister()
			})
			if err != nil {
				c.Logger.Debug().Err(err).Str("breaker_state", c.breaker.State().String()).Msg("reconnect attempt failed")
				continue
			}
			c.setConn(result.(net.Conn))
			c.Logger.Info().Msg("reconnected to controller")
		}
	}
}

// NetworkReader receives framed messages from the controller and writes
// destination updates into the shared record (spec §4.1).
func (c *Car) NetworkReader(ctx context.Context) error {
	// Closing the connection on cancellation unblocks a pending ReadFrame.
	go func() {
		<-ctx.Done()
		if conn := c.getConn(); conn != nil {
			_ = conn.Close()
		}
	}()

	for {
		conn := c.getConn()
		if conn == nil {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(200 * time.Millisecond):
				continue
			}
		}

		payload, err := wire.ReadFrame(conn)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !errors.Is(err, io.EOF) {
				c.Logger.Warn().Err(err).Msg("network reader: read failed")
			}
			c.setConn(nil)
			continue
		}

		if wire.Sniff(payload) != wire.KindFloor {
			c.Logger.Warn().Str("payload", payload).Msg("network reader: unexpected message")
			continue
		}
		msg, err := wire.ParseFloor(payload)
		if err != nil {
			c.Logger.Warn().Err(err).Str("payload", payload).Msg("network reader: malformed FLOOR")
			continue
		}
		target, err := floor.ToInt(msg.Target)
		if err != nil {
			c.Logger.Warn().Err(err).Str("payload", payload).Msg("network reader: invalid FLOOR target")
			continue
		}

		c.Record.Lock()
		c.Record.SetDestinationFloor(target)
		c.Record.Broadcast()
		c.Record.Unlock()
	}
}

// StatusPublisher sends STATUS reports to the controller after every
// observed record mutation, coalescing any changes that happened while a
// send was in flight into the next report (spec §4.1).
func (c *Car) StatusPublisher(ctx context.Context) error {
	for {
		c.Record.Lock()
		if err := c.Record.Wait(ctx); err != nil {
			c.Record.Unlock()
			return nil
		}
		snap := c.Record.Snapshot()
		c.Record.Unlock()

		conn := c.getConn()
		if conn == nil {
			continue
		}

		currentLabel, err := floor.FromInt(snap.CurrentFloor)
		if err != nil {
			continue
		}
		destLabel, err := floor.FromInt(snap.DestinationFloor)
		if err != nil {
			continue
		}
		msg := wire.Status{Status: snap.Status.String(), Current: currentLabel, Destination: destLabel}
		if err := wire.WriteFrame(conn, msg.String()); err != nil {
			c.Logger.Warn().Err(err).Msg("status publisher: send failed")
			c.setConn(nil)
		}
	}
}
