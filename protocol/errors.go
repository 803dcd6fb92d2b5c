package protocol

import (
	"errors"
	"fmt"
)

// ErrIncomplete signals that the buffer does not yet contain a full
// response frame and more bytes should be read from the stream.
// It is never a hard failure: callers keep accumulating input and
// invoke DecodeResponse again.
var ErrIncomplete = errors.New("incomplete packet")

// FramingError indicates that a byte in the response does not match the
// fixed protocol grammar (wrong header, unknown response marker, or a
// payload too short to carry the ack marker and command echo).
type FramingError struct {
	// Field names the frame position that failed validation
	Field string

	// Got is the offending byte as read from the wire
	Got byte

	// Want is the expected byte, where a single value is expected
	Want byte
}

func (e *FramingError) Error() string {
	if e.Want != 0 {
		return fmt.Sprintf("framing error: %s is 0x%02X, expected 0x%02X", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("framing error: unexpected %s byte 0x%02X", e.Field, e.Got)
}

// ChecksumError indicates that the response checksum does not match the
// sum computed over the received bytes, usually line corruption.
type ChecksumError struct {
	// Got is the checksum byte carried by the packet
	Got byte

	// Want is the checksum computed over the received span
	Want byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: packet carries 0x%02X, computed 0x%02X", e.Got, e.Want)
}

// CorrelationError indicates a structurally valid response that does not
// belong to the outstanding request: the display address or the echoed
// command code differs from what was sent. Usually a stale reply from an
// earlier, abandoned exchange.
type CorrelationError struct {
	// Field is "display id" or "command"
	Field string

	// Got is the value carried by the response
	Got byte

	// Want is the value of the outstanding request
	Want byte
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("response %s 0x%02X does not match request %s 0x%02X", e.Field, e.Got, e.Field, e.Want)
}
