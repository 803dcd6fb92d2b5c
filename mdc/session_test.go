package mdc

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-mdc/protocol"
)

// mockConn simulates a display on the far end of the stream. Replies
// are queued per write, mirroring the request/response ordering of the
// real protocol: each Write delivers the next queued reply into the
// read buffer, and reading an empty buffer fails like an expired
// deadline.
type mockConn struct {
	writes   [][]byte
	replies  [][]byte
	pending  []byte
	maxRead  int
	reads    int
	writeErr error
	readErr  error
}

func (m *mockConn) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	if len(m.replies) > 0 {
		m.pending = append(m.pending, m.replies[0]...)
		m.replies = m.replies[1:]
	}
	return len(p), nil
}

func (m *mockConn) Read(p []byte) (int, error) {
	m.reads++
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.pending) == 0 {
		return 0, os.ErrDeadlineExceeded
	}
	limit := len(p)
	if m.maxRead > 0 && m.maxRead < limit {
		limit = m.maxRead
	}
	n := copy(p[:limit], m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

func (m *mockConn) SetReadDeadline(time.Time) error {
	return nil
}

// reply queues a well-formed response for the next unanswered write.
func (m *mockConn) reply(displayID byte, acked bool, command byte, values ...byte) {
	ack := byte(protocol.Ack)
	if !acked {
		ack = protocol.Nak
	}
	frame := []byte{protocol.Header, protocol.ResponseMarker, displayID, byte(2 + len(values)), ack, command}
	frame = append(frame, values...)
	frame = append(frame, protocol.Checksum(frame[1:]))
	m.replies = append(m.replies, frame)
}

func TestExchangeSuccess(t *testing.T) {
	conn := &mockConn{}
	conn.reply(0x00, true, protocol.CmdPower, 0x01)

	sess := NewSession(conn)
	values, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, values)
	require.Len(t, conn.writes, 1)
	assert.Equal(t, []byte{0xAA, 0x11, 0x00, 0x00, 0x11}, conn.writes[0])
}

func TestExchangeSplitResponse(t *testing.T) {
	conn := &mockConn{maxRead: 3} // response arrives in 3-byte slices
	conn.reply(0x00, true, protocol.CmdPower, 0x01)

	sess := NewSession(conn)
	values, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, values)
	assert.GreaterOrEqual(t, conn.reads, 2)
}

func TestExchangeNak(t *testing.T) {
	conn := &mockConn{}
	conn.reply(0x00, false, protocol.CmdPower)

	sess := NewSession(conn)
	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, []byte{0x01})

	var nak *NakError
	require.ErrorAs(t, err, &nak)
	assert.Equal(t, byte(0x00), nak.DisplayID)
	assert.Equal(t, byte(protocol.CmdPower), nak.Command)

	// A device refusal is never retried.
	assert.Len(t, conn.writes, 1)
}

func TestExchangeWrongAddressRetriesThenTimesOut(t *testing.T) {
	conn := &mockConn{}
	// A stale reply claiming address 1 answers a request sent to 0;
	// no matching response ever arrives afterwards.
	conn.reply(0x01, true, protocol.CmdPower, 0x01)

	sess := NewSession(conn, WithRetries(2))
	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Len(t, conn.writes, 3)
}

func TestExchangeChecksumCorruptionRetried(t *testing.T) {
	conn := &mockConn{}
	conn.reply(0x00, true, protocol.CmdPower, 0x01)
	conn.replies[0][len(conn.replies[0])-1] ^= 0xFF // line noise on attempt one
	conn.reply(0x00, true, protocol.CmdPower, 0x01)

	sess := NewSession(conn, WithRetries(1))
	values, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, values)
	assert.Len(t, conn.writes, 2)
}

func TestExchangeBroadcastSkipsRead(t *testing.T) {
	conn := &mockConn{}

	sess := NewSession(conn)
	values, err := sess.Exchange(context.Background(), protocol.Broadcast, protocol.CmdPower, []byte{0x00})

	require.NoError(t, err)
	assert.Nil(t, values)
	assert.Len(t, conn.writes, 1)
	assert.Zero(t, conn.reads)
}

func TestExchangeWriteFailureNotRetried(t *testing.T) {
	conn := &mockConn{writeErr: errors.New("broken pipe")}

	sess := NewSession(conn, WithRetries(5))
	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "write", terr.Op)
}

func TestExchangePayloadTooLarge(t *testing.T) {
	conn := &mockConn{}

	sess := NewSession(conn)
	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, make([]byte, 256))

	require.Error(t, err)
	// The constraint violation is caught before any byte hits the wire.
	assert.Empty(t, conn.writes)
}

func TestExchangeCancelledContext(t *testing.T) {
	conn := &mockConn{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := NewSession(conn)
	_, err := sess.Exchange(ctx, 0x00, protocol.CmdPower, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.writes)
}

func TestExchangeDrainsStaleBytes(t *testing.T) {
	conn := &mockConn{}

	sess := NewSession(conn, WithRetries(0))

	// First exchange gets no reply at all and times out.
	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdVolume, nil)
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)

	// The abandoned reply shows up late, before the next exchange.
	late := []byte{protocol.Header, protocol.ResponseMarker, 0x00, 0x03, protocol.Ack, protocol.CmdVolume, 0x19}
	late = append(late, protocol.Checksum(late[1:]))
	conn.pending = late

	// The next exchange must not mistake the stale reply for its own.
	conn.reply(0x00, true, protocol.CmdPower, 0x01)
	values, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, values)
}

func TestSessionPoisonedAfterFailedDrain(t *testing.T) {
	conn := &mockConn{}

	sess := NewSession(conn, WithRetries(0))

	_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)

	// Draining hits a hard stream failure.
	conn.readErr = errors.New("device unplugged")
	_, err = sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "drain", terr.Op)

	// The session stays unusable without touching the wire again.
	writesSoFar := len(conn.writes)
	_, err = sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)
	require.ErrorAs(t, err, &terr)
	assert.Len(t, conn.writes, writesSoFar)
}

func TestExchangeSerializesConcurrentCallers(t *testing.T) {
	conn := &mockConn{}
	conn.reply(0x00, true, protocol.CmdPower, 0x01)
	conn.reply(0x00, true, protocol.CmdPower, 0x01)

	sess := NewSession(conn)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := sess.Exchange(context.Background(), 0x00, protocol.CmdPower, nil)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}

	// Both requests completed as two whole, non-interleaved frames.
	require.Len(t, conn.writes, 2)
	assert.Equal(t, conn.writes[0], conn.writes[1])
}
