package elevator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validSnapshot() Snapshot {
	return Snapshot{
		CurrentFloor:     5,
		DestinationFloor: 5,
		Lowest:           1,
		Highest:          10,
		Status:           Closed,
	}
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validSnapshot().Validate())
}

func TestValidate_StatusOutOfRange(t *testing.T) {
	s := validSnapshot()
	s.Status = Status(200)
	require.ErrorIs(t, s.Validate(), ErrInvariantViolation)
}

func TestValidate_CurrentFloorOutsideCarRange(t *testing.T) {
	s := validSnapshot()
	s.CurrentFloor = 11
	require.ErrorIs(t, s.Validate(), ErrInvariantViolation)
}

func TestValidate_ObstructionOnlyDuringDoorMotion(t *testing.T) {
	s := validSnapshot()
	s.DoorObstruction = true
	s.Status = Closed
	require.ErrorIs(t, s.Validate(), ErrInvariantViolation)

	s.Status = Opening
	require.NoError(t, s.Validate())

	s.Status = Closing
	require.NoError(t, s.Validate())
}

func TestValidate_FloorOutOfGlobalRange(t *testing.T) {
	s := validSnapshot()
	s.Lowest = -200
	s.CurrentFloor = -200
	require.ErrorIs(t, s.Validate(), ErrInvariantViolation)
}
