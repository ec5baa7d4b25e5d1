package wire

import (
	"fmt"
	"strings"
)

// Kind identifies the grammar a framed payload matches.
type Kind int

const (
	KindUnknown Kind = iota
	KindCar
	KindStatus
	KindFloor
	KindCall
	KindCarReply
	KindUnavailable
)

// ErrParse is returned when a payload does not match any known grammar.
type ErrParse struct {
	Payload string
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("wire: unrecognized message %q", e.Payload)
}

// Car is the "CAR name lowest highest" registration message.
type Car struct {
	Name    string
	Lowest  string
	Highest string
}

func (m Car) String() string {
	return fmt.Sprintf("CAR %s %s %s", m.Name, m.Lowest, m.Highest)
}

// Status is the "STATUS status current destination" report message.
type Status struct {
	Status      string
	Current     string
	Destination string
}

func (m Status) String() string {
	return fmt.Sprintf("STATUS %s %s %s", m.Status, m.Current, m.Destination)
}

// Floor is the "FLOOR f" destination-assignment message.
type Floor struct {
	Target string
}

func (m Floor) String() string {
	return fmt.Sprintf("FLOOR %s", m.Target)
}

// Call is the "CALL src dst" hall-call message.
type Call struct {
	Src string
	Dst string
}

func (m Call) String() string {
	return fmt.Sprintf("CALL %s %s", m.Src, m.Dst)
}

// CarReply is the controller's "CAR name" dispatch verdict.
type CarReply struct {
	Name string
}

func (m CarReply) String() string {
	return fmt.Sprintf("CAR %s", m.Name)
}

// Unavailable is the controller's refusal verdict.
type Unavailable struct{}

func (Unavailable) String() string { return "UNAVAILABLE" }

// Sniff returns the message kind a raw payload discriminates to, without
// fully parsing it — used by the controller to route a fresh connection.
func Sniff(payload string) Kind {
	switch {
	case strings.HasPrefix(payload, "CAR"):
		return KindCar
	case strings.HasPrefix(payload, "STATUS"):
		return KindStatus
	case strings.HasPrefix(payload, "FLOOR"):
		return KindFloor
	case strings.HasPrefix(payload, "CALL"):
		return KindCall
	case payload == "UNAVAILABLE":
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// ParseCar parses a "CAR name lowest highest" payload. This grammar is
// ambiguous with CarReply ("CAR name"); callers disambiguate by field count
// or by context (a car session always sends three fields).
func ParseCar(payload string) (Car, error) {
	fields := strings.Fields(payload)
	if len(fields) != 4 || fields[0] != "CAR" {
		return Car{}, &ErrParse{Payload: payload}
	}
	return Car{Name: fields[1], Lowest: fields[2], Highest: fields[3]}, nil
}

// ParseCarReply parses a "CAR name" dispatch verdict sent to a call client.
func ParseCarReply(payload string) (CarReply, error) {
	fields := strings.Fields(payload)
	if len(fields) != 2 || fields[0] != "CAR" {
		return CarReply{}, &ErrParse{Payload: payload}
	}
	return CarReply{Name: fields[1]}, nil
}

// ParseStatus parses a "STATUS status current destination" payload.
func ParseStatus(payload string) (Status, error) {
	fields := strings.Fields(payload)
	if len(fields) != 4 || fields[0] != "STATUS" {
		return Status{}, &ErrParse{Payload: payload}
	}
	return Status{Status: fields[1], Current: fields[2], Destination: fields[3]}, nil
}

// ParseFloor parses a "FLOOR f" payload.
func ParseFloor(payload string) (Floor, error) {
	fields := strings.Fields(payload)
	if len(fields) != 2 || fields[0] != "FLOOR" {
		return Floor{}, &ErrParse{Payload: payload}
	}
	return Floor{Target: fields[1]}, nil
}

// ParseCall parses a "CALL src dst" payload.
func ParseCall(payload string) (Call, error) {
	fields := strings.Fields(payload)
	if len(fields) != 3 || fields[0] != "CALL" {
		return Call{}, &ErrParse{Payload: payload}
	}
	return Call{Src: fields[1], Dst: fields[2]}, nil
}
