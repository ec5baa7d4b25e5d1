package shm

// Every segment reserves a fixed header for the mutex and condition-variable
// epoch; layout-specific payloads (internal/elevator.Record) begin at
// HeaderSize.
const (
	offMutex = 0 // uint32
	// 4 bytes padding to 8-byte-align the epoch counter.
	offEpoch = 8 // uint64

	// HeaderSize is the number of bytes reserved before the record payload.
	HeaderSize = 16
)
