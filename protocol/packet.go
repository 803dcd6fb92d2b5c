package protocol

import "fmt"

// ResponsePacket is a decoded acknowledgement frame from a display.
//
// On the wire a response looks like:
//
//	[0xAA][0xFF][ID][LEN][ACK|NAK][RCMD][VALUES...][CHECKSUM]
//
// where RCMD echoes the command code the display is answering and LEN
// counts everything between itself and the checksum. Values holds only
// the value bytes after the ack marker and the command echo.
type ResponsePacket struct {
	// DisplayID is the chain address the response came from
	DisplayID byte

	// Acked is true for an ACK frame, false for a NAK
	Acked bool

	// Command is the command code echoed by the display
	Command byte

	// Values are the response value bytes, possibly empty
	Values []byte

	raw []byte
}

// Raw returns a copy of the full frame as received, for diagnostics.
func (r *ResponsePacket) Raw() []byte {
	out := make([]byte, len(r.raw))
	copy(out, r.raw)
	return out
}

// Correlate checks that the response belongs to the request identified
// by displayID and command. It returns a *CorrelationError if either
// does not match. Responses to broadcast requests never exist, so
// correlation is always against an individual address.
func (r *ResponsePacket) Correlate(displayID, command byte) error {
	if r.DisplayID != displayID {
		return &CorrelationError{Field: "display id", Got: r.DisplayID, Want: displayID}
	}
	if r.Command != command {
		return &CorrelationError{Field: "command", Got: r.Command, Want: command}
	}
	return nil
}

// EncodeCommand builds the wire bytes for one command packet:
//
//	[0xAA][CMD][ID][LEN][DATA...][CHECKSUM]
//
// It fails before producing any bytes if data exceeds MaxDataSize, the
// largest payload the single length byte can describe.
func EncodeCommand(command, displayID byte, data []byte) ([]byte, error) {
	if len(data) > MaxDataSize {
		return nil, fmt.Errorf("payload length %d exceeds maximum %d bytes", len(data), MaxDataSize)
	}

	frame := make([]byte, 0, 5+len(data))
	frame = append(frame, Header)
	frame = append(frame, command)
	frame = append(frame, displayID)
	frame = append(frame, byte(len(data)))
	frame = append(frame, data...)
	frame = append(frame, Checksum(frame[1:]))

	return frame, nil
}

// DecodeResponse parses one response frame from the front of buf.
//
// The decoder is a pure function over an in-memory buffer: it performs
// no I/O. When buf holds only a prefix of a frame it returns
// ErrIncomplete and the caller is expected to read more bytes and call
// again with the grown buffer. On success it returns the packet and the
// number of bytes consumed from buf.
//
// Hard errors are *FramingError for grammar violations and
// *ChecksumError for a corrupt frame. A NAK decodes successfully; the
// refusal is reported by the session layer, not the codec.
func DecodeResponse(buf []byte) (*ResponsePacket, int, error) {
	if len(buf) < 1 {
		return nil, 0, ErrIncomplete
	}
	if buf[0] != Header {
		return nil, 0, &FramingError{Field: "header", Got: buf[0], Want: Header}
	}

	if len(buf) < 2 {
		return nil, 0, ErrIncomplete
	}
	if buf[1] != ResponseMarker && buf[1] != EventMarker {
		return nil, 0, &FramingError{Field: "response marker", Got: buf[1]}
	}

	if len(buf) < 4 {
		return nil, 0, ErrIncomplete
	}
	displayID := buf[2]
	length := int(buf[3])

	// Payload plus trailing checksum must be present in full.
	if len(buf) < 4+length+1 {
		return nil, 0, ErrIncomplete
	}

	payload := buf[4 : 4+length]
	wire := buf[4+length]
	if sum := Checksum(buf[1 : 4+length]); sum != wire {
		return nil, 0, &ChecksumError{Got: wire, Want: sum}
	}

	// Every reply carries at least the ack marker and the command echo.
	if length < 2 {
		return nil, 0, &FramingError{Field: "payload length", Got: byte(length)}
	}
	switch payload[0] {
	case Ack, Nak:
	default:
		return nil, 0, &FramingError{Field: "ack marker", Got: payload[0]}
	}

	consumed := 4 + length + 1
	values := make([]byte, length-2)
	copy(values, payload[2:])
	raw := make([]byte, consumed)
	copy(raw, buf[:consumed])

	return &ResponsePacket{
		DisplayID: displayID,
		Acked:     payload[0] == Ack,
		Command:   payload[1],
		Values:    values,
		raw:       raw,
	}, consumed, nil
}
