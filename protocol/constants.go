package protocol

// Frame structure constants per the Samsung MDC specification.
const (
	// Header is the frame start marker shared by command and response packets (0xAA)
	Header = 0xAA

	// ResponseMarker replaces the command code in an acknowledgement frame (0xFF)
	ResponseMarker = 0xFF

	// EventMarker replaces the command code in a device-originated event frame (0xAB)
	EventMarker = 0xAB

	// Ack is the first payload byte of a positive acknowledgement ('A')
	Ack = 0x41

	// Nak is the first payload byte of a negative acknowledgement ('N')
	Nak = 0x4E

	// Broadcast addresses every display on the chain; broadcast commands get no reply
	Broadcast = 0xFE

	// MaxDisplayID is the highest individually addressable display
	MaxDisplayID = 0xFD

	// MaxDataSize is the maximum payload size per packet (single length byte)
	MaxDataSize = 255

	// MinResponseSize is the minimum response frame size in bytes:
	// HEADER(1) + MARKER(1) + ID(1) + LEN(1) + ACK/NAK(1) + RCMD(1) + CHECKSUM(1)
	MinResponseSize = 7
)

// Command codes per the Samsung MDC specification.
const (
	// CmdStatus queries power, volume, mute, input and aspect in one reply
	CmdStatus = 0x00

	// CmdSerialNumber queries the display serial number
	CmdSerialNumber = 0x0B

	// CmdSoftwareVersion queries the display firmware version string
	CmdSoftwareVersion = 0x0E

	// CmdPower controls and queries display power
	CmdPower = 0x11

	// CmdVolume controls and queries audio volume (0-100)
	CmdVolume = 0x12

	// CmdMute controls and queries audio mute
	CmdMute = 0x13

	// CmdInputSource controls and queries the active input source
	CmdInputSource = 0x14

	// CmdScreenSize queries the panel diagonal in inches
	CmdScreenSize = 0x19

	// CmdSafetyLock controls and queries the front-panel safety lock
	CmdSafetyLock = 0x5D

	// CmdPanel controls and queries the panel backlight independently of power
	CmdPanel = 0xF9
)

// DefaultTCPPort is the TCP port Samsung displays listen on for MDC.
const DefaultTCPPort = 1515
