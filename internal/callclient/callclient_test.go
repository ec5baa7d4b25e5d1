package callclient

import (
	"net"
	"testing"

	"github.com/ManuGH/liftctl/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestCall_RejectsEqualFloors(t *testing.T) {
	_, err := Call("127.0.0.1:0", 3, 3)
	require.ErrorIs(t, err, ErrEqualFloors)
}

func TestResult_String(t *testing.T) {
	require.Equal(t, "Car A is arriving.", Result{Dispatched: true, CarName: "A"}.String())
	require.Equal(t, "Sorry, no car is available to take this request.", Result{}.String())
}

func TestCall_ParsesDispatchReply(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = wire.ReadFrame(conn)
		_ = wire.WriteFrame(conn, wire.CarReply{Name: "A"}.String())
	}()

	res, err := Call(ln.Addr().String(), 3, 7)
	require.NoError(t, err)
	require.True(t, res.Dispatched)
	require.Equal(t, "A", res.CarName)
}

func TestCall_ParsesUnavailableReply(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = wire.ReadFrame(conn)
		_ = wire.WriteFrame(conn, wire.Unavailable{}.String())
	}()

	res, err := Call(ln.Addr().String(), 2, 5)
	require.NoError(t, err)
	require.False(t, res.Dispatched)
}
