package wire

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadFrame_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, "STATUS Closed 3 7"))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, "STATUS Closed 3 7", got)
}

// slowReader trickles bytes one at a time, forcing ReadFrame to re-loop
// over partial reads on both the length prefix and the payload.
type slowReader struct {
	data []byte
	pos  int
}

func (s *slowReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p[:1], s.data[s.pos:s.pos+1])
	s.pos += n
	return n, nil
}

func TestReadFrame_PartialReads(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, "CALL 3 7"))

	got, err := ReadFrame(&slowReader{data: buf.Bytes()})
	require.NoError(t, err)
	assert.Equal(t, "CALL 3 7", got)
}

func TestReadFrame_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	big := make([]byte, MaxFrameSize+1)
	header := []byte{0, 0, 0, 0}
	header[0] = byte(len(big) >> 24)
	header[1] = byte(len(big) >> 16)
	header[2] = byte(len(big) >> 8)
	header[3] = byte(len(big))
	buf.Write(header)
	buf.Write(big)

	_, err := ReadFrame(&buf)
	require.ErrorIs(t, err, ErrFrameTooLarge)
}

// io.Pipe-backed round trip exercises the codec the way the controller
// and car actually use it: concurrent writer and reader over a synchronous
// stream.
func TestWriteReadFrame_OverPipe(t *testing.T) {
	type result struct {
		payload string
		err     error
	}

	r, w := io.Pipe()
	done := make(chan result, 1)
	go func() {
		got, err := ReadFrame(r)
		done <- result{got, err}
	}()

	go func() {
		_ = WriteFrame(w, "CAR A 1 10")
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, "CAR A 1 10", res.payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
	}
}
