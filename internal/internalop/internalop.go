// Package internalop implements the seven one-shot mutations the
// internal-operation tool applies to a car's shared record (spec §4.4).
package internalop

import (
	"errors"
	"fmt"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/floor"
)

// Operation names one of the seven mutations the internal-op CLI accepts.
type Operation string

const (
	Open        Operation = "open"
	Close       Operation = "close"
	Stop        Operation = "stop"
	ServiceOn   Operation = "service_on"
	ServiceOff  Operation = "service_off"
	Up          Operation = "up"
	Down        Operation = "down"
)

// ErrUnknownOperation is returned for any operation name outside the seven.
var ErrUnknownOperation = errors.New("internalop: unknown operation")

// ErrRejected is returned when up/down is refused; Reason names why.
type ErrRejected struct{ Reason string }

func (e *ErrRejected) Error() string { return "internalop: " + e.Reason }

// ParseOperation validates an operation name from the CLI.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case Open, Close, Stop, ServiceOn, ServiceOff, Up, Down:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// Apply performs op against rec under its lock, broadcasting cond on any
// mutation, per spec §4.4. up/down are refused (without mutating) unless
// individual_service_mode is set and the car is Closed; the three
// distinct reasons match spec §4.4's "not service mode / moving / doors
// open".
func Apply(rec *elevator.Record, op Operation) error {
	rec.Lock()
	defer rec.Unlock()

	switch op {
	case Open:
		rec.SetOpenButton(true)
	case Close:
		rec.SetCloseButton(true)
	case Stop:
		rec.SetEmergencyStop(true)
	case ServiceOn:
		rec.SetServiceMode(true)
		rec.SetEmergencyMode(false)
	case ServiceOff:
		rec.SetServiceMode(false)
	case Up:
		return applyMove(rec, +1)
	case Down:
		return applyMove(rec, -1)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	rec.Broadcast()
	return nil
}

func applyMove(rec *elevator.Record, delta int) error {
	if !rec.ServiceMode() {
		return &ErrRejected{Reason: "not in individual service mode"}
	}
	status := rec.Status()
	if status != elevator.Closed {
		if status == elevator.Opening || status == elevator.Open || status == elevator.Closing {
			return &ErrRejected{Reason: "car doors are open"}
		}
		return &ErrRejected{Reason: "car is moving"}
	}

	target := rec.CurrentFloor() + delta
	if !floor.Within(target, floor.Min, floor.Max) || !floor.Within(target, rec.Lowest(), rec.Highest()) {
		return &ErrRejected{Reason: "target floor out of range"}
	}
	rec.SetDestinationFloor(target)
	rec.Broadcast()
	return nil
}
