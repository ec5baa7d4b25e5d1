// Package registry implements the controller's in-memory mapping from car
// name to last-reported state (spec §3.2), including the car-selection
// algorithm a hall call is dispatched through (spec §4.2).
package registry

import (
	"net"
	"sync"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/ManuGH/liftctl/internal/metrics"
)

// Car is one registered car's last-reported state, plus its live
// connection. A per-entry lock guards this struct's mutable fields only;
// it never guards registry membership (that's Registry.mu).
type Car struct {
	mu sync.Mutex

	Name    string
	Lowest  int
	Highest int
	Conn    net.Conn

	currentFloor     int
	destinationFloor int
	status           elevator.Status

	order int // registration sequence, for tie-break
}

// Snapshot returns a consistent copy of the car's reported state.
func (c *Car) Snapshot() (currentFloor, destinationFloor int, status elevator.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentFloor, c.destinationFloor, c.status
}

// SetStatus updates the car's last-reported status and floors, as
// observed from a STATUS message.
func (c *Car) SetStatus(status elevator.Status, current, destination int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.currentFloor = current
	c.destinationFloor = destination
}

// SetDestination records a destination assigned by a dispatched call,
// without waiting for the car's own STATUS report to catch up.
func (c *Car) SetDestination(destination int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destinationFloor = destination
}

// Registry is the controller's process-wide car directory. A single lock
// covers insertion, removal, and the full-scan selection in Select;
// per-car locks (above) cover individual record mutation — lock order is
// always registry then record (spec §5), never the reverse.
type Registry struct {
	mu      sync.Mutex
	cars    map[string]*Car
	nextOrd int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{cars: make(map[string]*Car)}
}

// Register inserts a new car or replaces an existing entry of the same
// name, per spec §4.2's car session handling.
func (reg *Registry) Register(name string, lowest, highest int, conn net.Conn) *Car {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	car := &Car{
		Name:    name,
		Lowest:  lowest,
		Highest: highest,
		Conn:    conn,
		status:  elevator.Closed,
		order:   reg.nextOrd,
	}
	car.currentFloor = lowest
	car.destinationFloor = lowest
	reg.nextOrd++
	reg.cars[name] = car
	metrics.SetRegistrySize(len(reg.cars))
	return car
}

// Remove deletes a car from the registry, on connection close.
func (reg *Registry) Remove(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.cars, name)
	metrics.SetRegistrySize(len(reg.cars))
}

// Get returns the named car, if registered.
func (reg *Registry) Get(name string) (*Car, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	c, ok := reg.cars[name]
	return c, ok
}

// Size returns the number of currently registered cars.
func (reg *Registry) Size() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.cars)
}

// Select implements spec §4.2's deterministic car-selection algorithm:
// filter to idle cars whose range covers both src and dst, minimise
// distance from the car's current floor to src, and break ties by
// registration order.
func (reg *Registry) Select(src, dst int) (*Car, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var best *Car
	bestDist := 0
	for _, car := range reg.cars {
		current, _, status := car.Snapshot()
		if status != elevator.Closed {
			continue
		}
		if src < car.Lowest || src > car.Highest || dst < car.Lowest || dst > car.Highest {
			continue
		}
		dist := current - src
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist || (dist == bestDist && car.order < best.order) {
			best = car
			bestDist = dist
		}
	}
	return best, best != nil
}
