package elevator

import "github.com/ManuGH/liftctl/internal/shm"

// Byte layout of a car's payload, immediately following shm.HeaderSize.
// lowestFloor/highestFloor are written once at Create and never mutated
// afterward; everything else changes under the segment's lock.
const (
	offCurrentFloor     = shm.HeaderSize + 0  // int32
	offDestinationFloor = shm.HeaderSize + 4  // int32
	offLowestFloor      = shm.HeaderSize + 8  // int32
	offHighestFloor     = shm.HeaderSize + 12 // int32
	offStatus           = shm.HeaderSize + 16 // uint8
	offOpenButton       = shm.HeaderSize + 17 // uint8
	offCloseButton      = shm.HeaderSize + 18 // uint8
	offDoorObstruction  = shm.HeaderSize + 19 // uint8
	offOverload         = shm.HeaderSize + 20 // uint8
	offEmergencyStop    = shm.HeaderSize + 21 // uint8
	offServiceMode      = shm.HeaderSize + 22 // uint8
	offEmergencyMode    = shm.HeaderSize + 23 // uint8

	payloadSize = 24

	// RecordSize is the total size, in bytes, of one car's shared mapping.
	RecordSize = shm.HeaderSize + payloadSize
)
