package elevator

import (
	"errors"
	"fmt"

	"github.com/ManuGH/liftctl/internal/floor"
)

// Snapshot is a consistent, lock-free copy of a Record's fields, used by
// the status publisher, the safety monitor, and tests.
type Snapshot struct {
	CurrentFloor     int
	DestinationFloor int
	Lowest           int
	Highest          int
	Status           Status
	OpenButton       bool
	CloseButton      bool
	DoorObstruction  bool
	Overload         bool
	EmergencyStop    bool
	ServiceMode      bool
	EmergencyMode    bool
}

// ErrInvariantViolation names the specific invariant (spec §3.1) a
// Snapshot fails to satisfy.
var ErrInvariantViolation = errors.New("elevator: invariant violation")

// Validate checks the status domain, both floors against the label range,
// current_floor against [Lowest, Highest], and door_obstruction only while
// Opening or Closing, returning the first violation found. Flags reach a
// Snapshot already decoded as booleans (any nonzero byte reads as set), so
// a flag byte other than 0 or 1 is not detected. The safety monitor's
// data-consistency rule (spec §4.3 rule 4) is exactly "Validate returns
// non-nil".
func (s Snapshot) Validate() error {
	if !s.Status.Valid() {
		return fmt.Errorf("%w: status %d out of range", ErrInvariantViolation, s.Status)
	}
	if !floor.Within(s.CurrentFloor, floor.Min, floor.Max) {
		return fmt.Errorf("%w: current_floor %d out of range", ErrInvariantViolation, s.CurrentFloor)
	}
	if !floor.Within(s.DestinationFloor, floor.Min, floor.Max) {
		return fmt.Errorf("%w: destination_floor %d out of range", ErrInvariantViolation, s.DestinationFloor)
	}
	if !floor.Within(s.CurrentFloor, s.Lowest, s.Highest) {
		return fmt.Errorf("%w: current_floor %d outside [%d,%d]", ErrInvariantViolation, s.CurrentFloor, s.Lowest, s.Highest)
	}
	if s.DoorObstruction && s.Status != Opening && s.Status != Closing {
		return fmt.Errorf("%w: door_obstruction set while status is %s", ErrInvariantViolation, s.Status)
	}
	return nil
}
