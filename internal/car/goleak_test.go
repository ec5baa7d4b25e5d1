package car

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies every worker goroutine this package's tests start is
// joined (via goRun's cleanup) before the process exits — MotionLoop and
// ButtonHandler both run as goroutines gated on the record's lock/cond,
// so a bug in their shutdown path shows up here as a leak rather than a
// hang elsewhere.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
