// Package callclient implements the one-shot hall-call client (spec
// §4.5): connect, send a single CALL, print the controller's verdict.
package callclient

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ManuGH/liftctl/internal/floor"
	"github.com/ManuGH/liftctl/internal/wire"
)

// DialTimeout bounds the initial connect attempt so an unreachable
// controller fails fast (spec §7's resource-unavailable kind) rather
// than hanging.
const DialTimeout = 5 * time.Second

// ErrEqualFloors is returned when src equals dst; the client rejects this
// before ever dialing the controller (spec §4.5, §8).
var ErrEqualFloors = errors.New("callclient: source and destination floors are equal")

// Result is the human-readable outcome of one hall call.
type Result struct {
	Dispatched bool
	CarName    string
}

// String renders the result exactly as spec §4.5 prescribes.
func (r Result) String() string {
	if r.Dispatched {
		return fmt.Sprintf("Car %s is arriving.", r.CarName)
	}
	return "Sorry, no car is available to take this request."
}

// Call dials addr, sends CALL src dst, and returns the parsed verdict.
func Call(addr string, src, dst int) (Result, error) {
	if src == dst {
		return Result{}, ErrEqualFloors
	}
	srcLabel, err := floor.FromInt(src)
	if err != nil {
		return Result{}, err
	}
	dstLabel, err := floor.FromInt(dst)
	if err != nil {
		return Result{}, err
	}

	conn, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return Result{}, fmt.Errorf("callclient: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if err := wire.WriteFrame(conn, wire.Call{Src: srcLabel, Dst: dstLabel}.String()); err != nil {
		return Result{}, fmt.Errorf("callclient: send CALL: %w", err)
	}

	payload, err := wire.ReadFrame(conn)
	if err != nil {
		return Result{}, fmt.Errorf("callclient: read reply: %w", err)
	}

	// Sniff reports any "CAR ..." payload as KindCar; on a call connection
	// it can only be the "CAR name" dispatch verdict.
	switch wire.Sniff(payload) {
	case wire.KindCar, wire.KindCarReply:
		reply, err := wire.ParseCarReply(payload)
		if err != nil {
			return Result{}, fmt.Errorf("callclient: malformed CAR reply: %w", err)
		}
		return Result{Dispatched: true, CarName: reply.Name}, nil
	case wire.KindUnavailable:
		return Result{Dispatched: false}, nil
	default:
		return Result{}, fmt.Errorf("callclient: unexpected reply %q", payload)
	}
}
