package mdc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/moffa90/go-mdc/protocol"
)

// Conn is the byte stream a Session drives. The session core is
// agnostic to the medium: net.Conn satisfies Conn directly, and the
// transport package adapts serial ports to it.
type Conn interface {
	io.ReadWriter

	// SetReadDeadline bounds future Read calls, as in net.Conn
	SetReadDeadline(t time.Time) error
}

// Session owns a Conn exclusively and turns it into a synchronous
// command/response exchange. MDC has no multiplexing and no sequence
// numbers: correlation is by command code, display address and strict
// request/response ordering, so at most one request may be outstanding.
// Session enforces that with an internal mutex; Display handles built
// on one Session share the serialization.
type Session struct {
	conn Conn
	cfg  Config

	mu  sync.Mutex
	seq uint64

	// stale marks the stream as possibly carrying bytes of an
	// abandoned exchange; the next exchange drains before writing
	stale bool

	// poisoned records a failed drain; the stream cannot be trusted
	// for further exchanges
	poisoned error

	readBuf []byte
}

// NewSession creates a Session bound to conn with the given options.
//
// Example:
//
//	conn, _ := transport.Dial("10.0.0.5")
//	sess := mdc.NewSession(conn,
//	    mdc.WithTimeout(5*time.Second),
//	    mdc.WithRetries(3),
//	)
func NewSession(conn Conn, opts ...Option) *Session {
	if conn == nil {
		panic("conn cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		conn:    conn,
		cfg:     cfg,
		readBuf: make([]byte, 256),
	}
}

// Exchange performs one full command/response cycle: it encodes the
// command, writes it to the stream, and blocks until a matching
// response arrives, a hard error occurs, or the timeout elapses. On
// success it returns the response value bytes (the payload after the
// ack marker and command echo).
//
// Commands addressed to protocol.Broadcast are fire-and-forget: the
// write completes and Exchange returns nil values without reading.
//
// Framing, checksum, correlation and timeout failures are retried up
// to the configured retry count. A NAK surfaces as *NakError and a
// stream failure as *TransportError; neither is retried.
func (s *Session) Exchange(ctx context.Context, displayID, command byte, payload []byte) ([]byte, error) {
	frame, err := protocol.EncodeCommand(command, displayID, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned != nil {
		return nil, s.poisoned
	}

	s.seq++
	seq := s.seq

	attempts := 1 + s.cfg.Retries
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.stale {
			if err := s.drain(); err != nil {
				s.poisoned = err
				return nil, err
			}
		}

		if _, err := s.conn.Write(frame); err != nil {
			return nil, &TransportError{Op: "write", Err: err}
		}
		s.logDebug("command sent",
			"seq", seq,
			"attempt", attempt,
			"display_id", fmt.Sprintf("0x%02X", displayID),
			"command", fmt.Sprintf("0x%02X", command),
		)

		if displayID == protocol.Broadcast {
			return nil, nil
		}

		resp, err := s.readResponse(ctx, displayID, command)
		if err == nil {
			if !resp.Acked {
				return nil, &NakError{DisplayID: displayID, Command: command}
			}
			return resp.Values, nil
		}

		if !retryable(err) {
			return nil, err
		}

		// The stream may still carry bytes of this failed attempt.
		s.stale = true
		lastErr = err
		s.logDebug("exchange attempt failed",
			"seq", seq,
			"attempt", attempt,
			"error", err.Error(),
		)
	}

	s.logError("exchange failed",
		"seq", seq,
		"attempts", attempts,
		"display_id", fmt.Sprintf("0x%02X", displayID),
		"command", fmt.Sprintf("0x%02X", command),
		"error", lastErr.Error(),
	)
	return nil, lastErr
}

// readResponse accumulates stream bytes under the configured deadline,
// re-invoking the decoder on the growing buffer until it yields a
// complete frame or a hard error. The completed frame is then
// correlated against the outstanding request.
func (s *Session) readResponse(ctx context.Context, displayID, command byte) (*protocol.ResponsePacket, error) {
	deadline := time.Now().Add(s.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var buf []byte
	for {
		resp, _, err := protocol.DecodeResponse(buf)
		if err == nil {
			if err := resp.Correlate(displayID, command); err != nil {
				return nil, err
			}
			return resp, nil
		}
		if !errors.Is(err, protocol.ErrIncomplete) {
			return nil, err
		}

		if err := s.conn.SetReadDeadline(deadline); err != nil {
			return nil, &TransportError{Op: "set deadline", Err: err}
		}
		n, err := s.conn.Read(s.readBuf)
		if n > 0 {
			buf = append(buf, s.readBuf[:n]...)
		}
		if err != nil {
			if isTimeout(err) {
				return nil, &TimeoutError{
					DisplayID: displayID,
					Command:   command,
					Attempts:  1 + s.cfg.Retries,
					Timeout:   s.cfg.Timeout,
				}
			}
			return nil, &TransportError{Op: "read", Err: err}
		}
	}
}

// drain discards bytes left over from an abandoned exchange so a
// delayed response cannot be mistaken for the next request's reply.
// Reads are bounded by the drain window; the stream is clean once a
// read times out with nothing buffered.
func (s *Session) drain() error {
	discarded := 0
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.DrainWindow)); err != nil {
			return &TransportError{Op: "drain", Err: err}
		}
		n, err := s.conn.Read(s.readBuf)
		discarded += n
		if err != nil {
			if isTimeout(err) {
				break
			}
			return &TransportError{Op: "drain", Err: err}
		}
	}

	if discarded > 0 {
		s.logDebug("drained stale bytes", "count", discarded)
	}
	s.stale = false
	return nil
}

// retryable reports whether an exchange failure may be caused by
// transient line noise or a stale reply, and is therefore worth a
// fresh attempt.
func retryable(err error) bool {
	var framing *protocol.FramingError
	var checksum *protocol.ChecksumError
	var correlation *protocol.CorrelationError
	var timeout *TimeoutError
	return errors.As(err, &framing) ||
		errors.As(err, &checksum) ||
		errors.As(err, &correlation) ||
		errors.As(err, &timeout)
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Session) logError(msg string, keysAndValues ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Error(msg, keysAndValues...)
	}
}
