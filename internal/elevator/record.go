// Package elevator implements the per-car shared record (spec §3.1): the
// single memory region a car process, its safety monitor, and its
// internal-op tool all map and mutate under one inter-process lock.
package elevator

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ManuGH/liftctl/internal/shm"
)

// Record is a typed view over a car's mapped shared-memory segment.
// Every accessor and mutator must be called with the record locked
// (Lock/Unlock), except Lock, Unlock, Wait, and Broadcast themselves.
type Record struct {
	seg *Segment
}

// Segment is an alias for shm.Segment, the mapped region a Record views.
type Segment = shm.Segment

// rendezvousName returns the shared-memory name for a car, matching
// spec §6.2's "/car<car_name>" convention.
func rendezvousName(carName string) string {
	return "car" + carName
}

// Create makes a new record for carName, initialised per spec §3.1's
// lifecycle: current_floor = lowest, destination_floor = lowest,
// status = Closed, all flags zero.
func Create(carName string, lowest, highest int) (*Record, error) {
	if lowest > highest {
		return nil, fmt.Errorf("elevator: lowest %d exceeds highest %d", lowest, highest)
	}
	seg, err := shm.Create(rendezvousName(carName), RecordSize)
	if err != nil {
		return nil, err
	}
	r := &Record{seg: seg}

	r.Lock()
	r.putInt32(offLowestFloor, int32(lowest))
	r.putInt32(offHighestFloor, int32(highest))
	r.putInt32(offCurrentFloor, int32(lowest))
	r.putInt32(offDestinationFloor, int32(lowest))
	r.putUint8(offStatus, uint8(Closed))
	r.putUint8(offOpenButton, 0)
	r.putUint8(offCloseButton, 0)
	r.putUint8(offDoorObstruction, 0)
	r.putUint8(offOverload, 0)
	r.putUint8(offEmergencyStop, 0)
	r.putUint8(offServiceMode, 0)
	r.putUint8(offEmergencyMode, 0)
	r.Unlock()

	return r, nil
}

// Open attaches to an existing record for carName, for the safety monitor
// and internal-op tool.
func Open(carName string) (*Record, error) {
	seg, err := shm.Open(rendezvousName(carName), RecordSize)
	if err != nil {
		return nil, err
	}
	return &Record{seg: seg}, nil
}

// Close unmaps the record without removing its backing mapping.
func (r *Record) Close() error { return r.seg.Close() }

// Unlink removes the named mapping backing carName. Only the owning car
// process should call this, on clean shutdown.
func Unlink(carName string) error {
	return shm.Unlink(rendezvousName(carName))
}

func (r *Record) Lock()      { r.seg.Lock() }
func (r *Record) Unlock()    { r.seg.Unlock() }
func (r *Record) Broadcast() { r.seg.Broadcast() }

// Wait releases the lock, blocks until Broadcast is observed or ctx is
// done, then re-acquires the lock before returning.
func (r *Record) Wait(ctx context.Context) error { return r.seg.Wait(ctx) }

func (r *Record) bytes() []byte { return r.seg.Bytes() }

func (r *Record) getInt32(off int) int32 {
	return int32(binary.BigEndian.Uint32(r.bytes()[off : off+4]))
}

func (r *Record) putInt32(off int, v int32) {
	binary.BigEndian.PutUint32(r.bytes()[off:off+4], uint32(v))
}

func (r *Record) getUint8(off int) uint8 { return r.bytes()[off] }

func (r *Record) putUint8(off int, v uint8) { r.bytes()[off] = v }

func (r *Record) getBool(off int) bool { return r.getUint8(off) != 0 }

func (r *Record) setBool(off int, v bool) {
	if v {
		r.putUint8(off, 1)
	} else {
		r.putUint8(off, 0)
	}
}

// CurrentFloor returns the car's current floor as an integer.
func (r *Record) CurrentFloor() int { return int(r.getInt32(offCurrentFloor)) }

// SetCurrentFloor sets the car's current floor.
func (r *Record) SetCurrentFloor(v int) { r.putInt32(offCurrentFloor, int32(v)) }

// DestinationFloor returns the car's commanded destination floor.
func (r *Record) DestinationFloor() int { return int(r.getInt32(offDestinationFloor)) }

// SetDestinationFloor sets the car's commanded destination floor.
func (r *Record) SetDestinationFloor(v int) { r.putInt32(offDestinationFloor, int32(v)) }

// Lowest returns the car's immutable lowest-serviceable floor.
func (r *Record) Lowest() int { return int(r.getInt32(offLowestFloor)) }

// Highest returns the car's immutable highest-serviceable floor.
func (r *Record) Highest() int { return int(r.getInt32(offHighestFloor)) }

// Status returns the car's current door/motion status.
func (r *Record) Status() Status { return Status(r.getUint8(offStatus)) }

// SetStatus sets the car's door/motion status.
func (r *Record) SetStatus(s Status) { r.putUint8(offStatus, uint8(s)) }

func (r *Record) OpenButton() bool         { return r.getBool(offOpenButton) }
func (r *Record) SetOpenButton(v bool)     { r.setBool(offOpenButton, v) }
func (r *Record) CloseButton() bool        { return r.getBool(offCloseButton) }
func (r *Record) SetCloseButton(v bool)    { r.setBool(offCloseButton, v) }
func (r *Record) DoorObstruction() bool     { return r.getBool(offDoorObstruction) }
func (r *Record) SetDoorObstruction(v bool) { r.setBool(offDoorObstruction, v) }
func (r *Record) Overload() bool            { return r.getBool(offOverload) }
func (r *Record) SetOverload(v bool)        { r.setBool(offOverload, v) }
func (r *Record) EmergencyStop() bool       { return r.getBool(offEmergencyStop) }
func (r *Record) SetEmergencyStop(v bool)   { r.setBool(offEmergencyStop, v) }
func (r *Record) ServiceMode() bool         { return r.getBool(offServiceMode) }
func (r *Record) SetServiceMode(v bool)     { r.setBool(offServiceMode, v) }
func (r *Record) EmergencyMode() bool       { return r.getBool(offEmergencyMode) }
func (r *Record) SetEmergencyMode(v bool)   { r.setBool(offEmergencyMode, v) }

// Snapshot copies every field into a plain value, for callers (the status
// publisher, the safety monitor, tests) that want a consistent read
// without holding the lock for the rest of their logic. Call with the
// lock held.
func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		CurrentFloor:     r.CurrentFloor(),
		DestinationFloor: r.DestinationFloor(),
		Lowest:           r.Lowest(),
		Highest:          r.Highest(),
		Status:           r.Status(),
		OpenButton:       r.OpenButton(),
		CloseButton:      r.CloseButton(),
		DoorObstruction:  r.DoorObstruction(),
		Overload:         r.Overload(),
		EmergencyStop:    r.EmergencyStop(),
		ServiceMode:      r.ServiceMode(),
		EmergencyMode:    r.EmergencyMode(),
	}
}
