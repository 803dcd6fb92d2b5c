// Package mdc provides a high-level API for controlling Samsung
// displays over the MDC protocol.
//
// # Overview
//
// This package owns the exchange machinery on top of package protocol:
//   - Session drives one byte stream synchronously, one request at a
//     time, with timeout, retry and stale-byte recovery
//   - Display binds a Session to one chain address and exposes a typed
//     method per supported command
//
// # Basic Usage
//
//	conn, err := transport.Dial("10.0.0.5") // TCP port 1515
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	sess := mdc.NewSession(conn)
//	display := mdc.NewDisplay(sess, 0)
//
//	if err := display.SetPower(context.Background(), true); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	sess := mdc.NewSession(conn,
//	    mdc.WithTimeout(5*time.Second),
//	    mdc.WithRetries(3),
//	    mdc.WithDrainWindow(100*time.Millisecond),
//	    mdc.WithLogger(myLogger),
//	)
//
// # Broadcast
//
// Address 0xFE (protocol.Broadcast) reaches every display on a serial
// chain. Broadcast commands get no reply, so setters return after the
// write and getters fail with ErrBroadcastQuery:
//
//	all := mdc.NewDisplay(sess, protocol.Broadcast)
//	_ = all.SetPower(ctx, false) // fire-and-forget
//
// # Error Handling
//
// The package surfaces structured error types:
//   - *NakError: the display refused the command (never retried)
//   - *TimeoutError: no matching response within the window, after the
//     configured retries
//   - *TransportError: the stream failed; the session is done for
//   - protocol.*FramingError, *ChecksumError, *CorrelationError:
//     surfaced once the retry budget is exhausted
//
// # Concurrency
//
// A Session serializes exchanges internally; concurrent calls from
// multiple goroutines block each other rather than interleaving writes.
// The protocol has no multiplexing, so this is the only safe model.
//
// # Hardware Independence
//
// Session does not open connections. Anything satisfying the Conn
// interface works: a net.Conn, a wrapped serial port from the
// transport package, or a mock for testing.
package mdc
