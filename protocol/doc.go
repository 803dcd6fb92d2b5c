// Package protocol implements the Samsung MDC wire protocol.
//
// This package provides the packet codec, checksum and the command
// catalog for the Multiple Display Control protocol used by Samsung
// large-format displays over serial chains and TCP (port 1515).
//
// # Protocol Overview
//
// MDC uses a packet-based structure with single-byte fields:
//
//	Command:  [0xAA][CMD][ID][LEN][DATA...][CHECKSUM]
//	Response: [0xAA][0xFF][ID][LEN][ACK|NAK][RCMD][VALUES...][CHECKSUM]
//
// Where:
//   - 0xAA   = frame header
//   - ID     = display address (0x00-0xFD, or 0xFE for broadcast)
//   - LEN    = payload byte count
//   - ACK/NAK = 'A' (0x41) or 'N' (0x4E)
//   - RCMD   = echo of the command being answered
//   - CHECKSUM = mod-256 sum of every byte after the header
//
// # Encoding
//
// Use EncodeCommand to build a command frame:
//
//	frame, err := protocol.EncodeCommand(protocol.CmdPower, displayID, []byte{0x01})
//
// # Decoding
//
// DecodeResponse is an incremental parser over an in-memory buffer. It
// returns ErrIncomplete while the buffer holds only a frame prefix, so
// callers accumulate stream bytes and retry:
//
//	resp, n, err := protocol.DecodeResponse(buf)
//	if errors.Is(err, protocol.ErrIncomplete) {
//	    // read more bytes and call again
//	}
//
// Hard errors are typed: *FramingError, *ChecksumError, and
// *CorrelationError from ResponsePacket.Correlate.
//
// # Command Catalog
//
// Each supported display command is a Descriptor in the Commands table.
// Descriptors fold optional sub-command bytes into the request payload
// and the typed value enums (PowerStatus, PanelStatus, InputSource)
// decode reply bytes, preserving undocumented vendor values as unknown
// instead of failing.
package protocol
