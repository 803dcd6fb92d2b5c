// Package transport opens byte streams for MDC sessions.
//
// The session core only requires the mdc.Conn interface; this package
// provides the two media Samsung displays actually speak on: TCP
// (default port 1515) and RS-232C serial chains (9600 8N1).
package transport

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"go.bug.st/serial"

	"github.com/moffa90/go-mdc/protocol"
)

// Dial connects to a display over TCP. When addr carries no port the
// MDC default (1515) is appended. The returned net.Conn satisfies
// mdc.Conn directly.
func Dial(addr string) (net.Conn, error) {
	conn, err := net.Dial("tcp", withDefaultPort(addr))
	if err != nil {
		return nil, fmt.Errorf("dialing display: %w", err)
	}
	return conn, nil
}

// withDefaultPort appends the MDC port to addresses given without one.
func withDefaultPort(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return net.JoinHostPort(addr, strconv.Itoa(protocol.DefaultTCPPort))
	}
	return addr
}

// SerialConfig describes a serial line. Samsung documents MDC chains
// at 9600 baud, 8 data bits, no parity, one stop bit.
type SerialConfig struct {
	BaudRate int
}

// OpenSerial opens a serial device for MDC and adapts it to the
// deadline-based mdc.Conn interface.
//
// Example:
//
//	conn, err := transport.OpenSerial("/dev/ttyUSB0", transport.SerialConfig{})
func OpenSerial(device string, cfg SerialConfig) (*SerialConn, error) {
	baud := cfg.BaudRate
	if baud == 0 {
		baud = 9600
	}

	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("opening serial device %s: %w", device, err)
	}

	return &SerialConn{port: port}, nil
}

// SerialConn wraps a serial.Port so read deadlines work the way
// net.Conn callers expect: the port's relative read timeout is derived
// from the absolute deadline, and an expired timeout surfaces as
// os.ErrDeadlineExceeded instead of a silent zero-byte read.
type SerialConn struct {
	port     serial.Port
	deadline time.Time
}

// Read reads from the port, honoring the deadline set by
// SetReadDeadline.
func (c *SerialConn) Read(p []byte) (int, error) {
	if !c.deadline.IsZero() && !time.Now().Before(c.deadline) {
		return 0, os.ErrDeadlineExceeded
	}
	n, err := c.port.Read(p)
	if err != nil {
		return n, err
	}
	// serial.Port reports an expired read timeout as (0, nil).
	if n == 0 && !c.deadline.IsZero() {
		return 0, os.ErrDeadlineExceeded
	}
	return n, nil
}

// Write writes to the port.
func (c *SerialConn) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

// SetReadDeadline maps the absolute deadline onto the port's relative
// read timeout. A zero time disables the timeout.
func (c *SerialConn) SetReadDeadline(t time.Time) error {
	c.deadline = t
	if t.IsZero() {
		return c.port.SetReadTimeout(serial.NoTimeout)
	}
	remaining := time.Until(t)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return c.port.SetReadTimeout(remaining)
}

// Close closes the underlying port.
func (c *SerialConn) Close() error {
	return c.port.Close()
}
