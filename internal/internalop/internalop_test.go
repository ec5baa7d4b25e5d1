package internalop

import (
	"testing"

	"github.com/ManuGH/liftctl/internal/elevator"
	"github.com/stretchr/testify/require"
)

func newRec(t *testing.T, name string, lowest, highest int) *elevator.Record {
	t.Helper()
	r, err := elevator.Create(name, lowest, highest)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = elevator.Unlink(name)
	})
	return r
}

func TestApply_Open(t *testing.T) {
	r := newRec(t, "op-open", 1, 10)
	require.NoError(t, Apply(r, Open))
	r.Lock()
	defer r.Unlock()
	require.True(t, r.OpenButton())
}

func TestApply_Stop(t *testing.T) {
	r := newRec(t, "op-stop", 1, 10)
	require.NoError(t, Apply(r, Stop))
	r.Lock()
	defer r.Unlock()
	require.True(t, r.EmergencyStop())
}

func TestApply_ServiceOn_ClearsEmergencyMode(t *testing.T) {
	r := newRec(t, "op-service-on", 1, 10)
	r.Lock()
	r.SetEmergencyMode(true)
	r.Unlock()

	require.NoError(t, Apply(r, ServiceOn))
	r.Lock()
	defer r.Unlock()
	require.True(t, r.ServiceMode())
	require.False(t, r.EmergencyMode())
}

func TestApply_Up_RejectedWithoutServiceMode(t *testing.T) {
	r := newRec(t, "op-up-noservice", 1, 10)
	err := Apply(r, Up)
	require.Error(t, err)
	var rej *ErrRejected
	require.ErrorAs(t, err, &rej)
}

func TestApply_Up_RejectedWhileMoving(t *testing.T) {
	r := newRec(t, "op-up-moving", 1, 10)
	r.Lock()
	r.SetServiceMode(true)
	r.SetStatus(elevator.Between)
	r.Unlock()

	err := Apply(r, Up)
	require.Error(t, err)
}

func TestApply_Up_RejectedWhileDoorsOpen(t *testing.T) {
	r := newRec(t, "op-up-doors", 1, 10)
	r.Lock()
	r.SetServiceMode(true)
	r.SetStatus(elevator.Open)
	r.Unlock()

	err := Apply(r, Up)
	require.Error(t, err)
}

func TestApply_Up_MovesOneFloor(t *testing.T) {
	r := newRec(t, "op-up-ok", 1, 10)
	r.Lock()
	r.SetServiceMode(true)
	r.SetCurrentFloor(5)
	r.Unlock()

	require.NoError(t, Apply(r, Up))
	r.Lock()
	defer r.Unlock()
	require.Equal(t, 6, r.DestinationFloor())
}

func TestApply_Up_RejectedAtHighest(t *testing.T) {
	r := newRec(t, "op-up-ceiling", 1, 10)
	r.Lock()
	r.SetServiceMode(true)
	r.SetCurrentFloor(10)
	dest := r.DestinationFloor()
	r.Unlock()

	err := Apply(r, Up)
	require.Error(t, err)

	r.Lock()
	defer r.Unlock()
	require.Equal(t, dest, r.DestinationFloor())
}

func TestApply_Down_RejectedAtLowest(t *testing.T) {
	r := newRec(t, "op-down-floor", 1, 10)
	r.Lock()
	r.SetServiceMode(true)
	r.SetCurrentFloor(1)
	r.Unlock()

	err := Apply(r, Down)
	require.Error(t, err)
}

func TestParseOperation_Invalid(t *testing.T) {
	_, err := ParseOperation("jump")
	require.ErrorIs(t, err, ErrUnknownOperation)
}
