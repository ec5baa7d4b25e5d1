// Package wire implements the length-prefixed ASCII framing every liftctl
// process uses to talk over TCP: a 32-bit big-endian byte count followed by
// that many bytes of payload, with no trailing delimiter.
package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single message to guard against a malformed or
// hostile peer claiming an unbounded length prefix.
const MaxFrameSize = 64 * 1024

// ErrFrameTooLarge is returned when a peer's declared length exceeds MaxFrameSize.
var ErrFrameTooLarge = errors.New("wire: frame exceeds maximum size")

// WriteFrame encodes payload as a length-prefixed frame and writes it whole.
func WriteFrame(w io.Writer, payload string) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if _, err := bw.WriteString(payload); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadFrame reads one length-prefixed frame, re-looping over partial reads
// on both the length prefix and the payload until the frame is complete.
func ReadFrame(r io.Reader) (string, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > MaxFrameSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
