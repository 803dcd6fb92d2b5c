package mdc

import (
	"errors"
	"fmt"
	"time"
)

// ErrBroadcastQuery is returned by Display getters bound to the
// broadcast address: broadcast commands produce no reply to decode.
var ErrBroadcastQuery = errors.New("mdc: broadcast address gives no reply")

// NakError indicates the display refused a command with a well-formed
// negative acknowledgement. The refusal is the device's decision and is
// never retried automatically.
type NakError struct {
	DisplayID byte
	Command   byte
}

func (e *NakError) Error() string {
	return fmt.Sprintf("display 0x%02X rejected command 0x%02X", e.DisplayID, e.Command)
}

// TimeoutError indicates that no complete, matching response arrived
// within the configured window on any attempt.
type TimeoutError struct {
	DisplayID byte
	Command   byte
	Attempts  int
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no response from display 0x%02X to command 0x%02X after %d attempt(s) of %s",
		e.DisplayID, e.Command, e.Attempts, e.Timeout)
}

// TransportError indicates a read or write failure on the underlying
// stream. The stream is presumed dead, so transport errors propagate
// immediately and are never retried.
type TransportError struct {
	// Op is the stream operation that failed ("write", "read", "drain")
	Op string

	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
