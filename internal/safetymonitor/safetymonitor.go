// Package safetymonitor implements the independent safety-invariant
// enforcement described in spec §4.3: a pure evaluation of a car's
// snapshot, run after every wake, and a thin loop wiring it to a real
// record.
package safetymonitor

import (
	"context"
	"fmt"

	"github.com/ManuGH/liftctl/internal/elevator"
)

// Rule names the priority-ordered check that fired, used both for the
// printed message and as the "rule" metrics label.
type Rule string

const (
	RuleNone             Rule = ""
	RuleObstruction      Rule = "obstruction"
	RuleEmergencyStop    Rule = "emergency_stop"
	RuleOverload         Rule = "overload"
	RuleDataConsistency  Rule = "data_consistency"
)

// Outcome is the result of one evaluation: the rule that matched (if
// any), the message to print, and whether the record's status or
// emergency_mode field must be written back.
type Outcome struct {
	Rule          Rule
	Message       string
	SetStatus     bool
	Status        elevator.Status
	SetEmergency  bool
}

// Evaluate runs the four priority-ordered rules from spec §4.3 against a
// single snapshot. First match wins; later rules are not considered.
func Evaluate(s elevator.Snapshot) Outcome {
	if s.DoorObstruction && s.Status == elevator.Closing {
		return Outcome{
			Rule:      RuleObstruction,
			Message:   "Obstruction detected. Opening doors.",
			SetStatus: true,
			Status:    elevator.Opening,
		}
	}
	if s.EmergencyStop && !s.EmergencyMode {
		return Outcome{
			Rule:         RuleEmergencyStop,
			Message:      "The emergency stop button has been pressed!",
			SetEmergency: true,
		}
	}
	if s.Overload && !s.EmergencyMode {
		return Outcome{
			Rule:         RuleOverload,
			Message:      "The overload sensor has been tripped!",
			SetEmergency: true,
		}
	}
	if !s.EmergencyMode {
		if err := s.Validate(); err != nil {
			return Outcome{
				Rule:         RuleDataConsistency,
				Message:      "Data consistency error!",
				SetEmergency: true,
			}
		}
	}
	return Outcome{Rule: RuleNone}
}

// Printer receives every message Evaluate produces, in order, flushed
// immediately (spec §4.3: "every printed line is flushed immediately").
type Printer interface {
	Println(string) error
}

// Run attaches to rec and loops: wait for a broadcast, evaluate, apply
// and print any match, repeat. It never returns except on ctx
// cancellation, a Wait error, or a failed write to out, matching "the
// monitor never blocks on I/O other than stdout" and "never terminates"
// otherwise.
func Run(ctx context.Context, rec *elevator.Record, out Printer, onRule func(rule Rule)) error {
	for {
		rec.Lock()
		if err := rec.Wait(ctx); err != nil {
			rec.Unlock()
			return err
		}
		snap := rec.Snapshot()
		outcome := Evaluate(snap)
		if outcome.Rule != RuleNone {
			if outcome.SetStatus {
				rec.SetStatus(outcome.Status)
			}
			if outcome.SetEmergency {
				rec.SetEmergencyMode(true)
			}
			rec.Broadcast()
		}
		rec.Unlock()

		if outcome.Rule != RuleNone {
			if err := out.Println(outcome.Message); err != nil {
				return fmt.Errorf("safetymonitor: write: %w", err)
			}
			if onRule != nil {
				onRule(outcome.Rule)
			}
		}
	}
}
