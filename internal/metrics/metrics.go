// Package metrics provides Prometheus metrics for the liftctl controller
// and car processes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrySize tracks the controller's current number of registered cars.
	RegistrySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "liftctl_registry_size",
		Help: "Current number of cars registered with the controller.",
	})

	// CallsTotal counts hall calls by outcome ("dispatched" or "unavailable").
	CallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "liftctl_calls_total",
		Help: "Total number of hall calls handled, by result.",
	}, []string{"result"})

	// DoorCyclesTotal counts completed door-open-and-close cycles, by car.
	DoorCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "liftctl_door_cycles_total",
		Help: "Total number of completed door cycles, by car.",
	}, []string{"car"})

	// FloorTransitionsTotal counts one-floor motion steps, by car.
	FloorTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "liftctl_floor_transitions_total",
		Help: "Total number of single-floor motion steps, by car.",
	}, []string{"car"})

	// SafetyViolationsTotal counts safety-monitor rule matches, by rule and car.
	SafetyViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "liftctl_safety_violations_total",
		Help: "Total number of safety monitor rule matches, by rule and car.",
	}, []string{"car", "rule"})
)

// RecordCall increments the hall-call counter for the given result.
func RecordCall(result string) {
	CallsTotal.WithLabelValues(result).Inc()
}

// SetRegistrySize updates the controller's registered-car gauge.
func SetRegistrySize(n int) {
	RegistrySize.Set(float64(n))
}

// RecordDoorCycle increments the door-cycle counter for car.
func RecordDoorCycle(car string) {
	DoorCyclesTotal.WithLabelValues(car).Inc()
}

// RecordFloorTransition increments the floor-transition counter for car.
func RecordFloorTransition(car string) {
	FloorTransitionsTotal.WithLabelValues(car).Inc()
}

// RecordSafetyViolation increments the safety-violation counter for car and rule.
func RecordSafetyViolation(car, rule string) {
	SafetyViolationsTotal.WithLabelValues(car, rule).Inc()
}
