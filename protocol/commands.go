package protocol

import "fmt"

// Descriptor describes one catalog entry: the opcode a command is sent
// as, and any fixed sub-command bytes the vendor specification defines
// for it. Adding a display command means adding a Descriptor; the codec
// and session never change.
type Descriptor struct {
	// Name is the human-readable command name used in errors and logs
	Name string

	// Code is the command opcode byte
	Code byte

	// Sub holds optional sub-command bytes folded in front of the
	// value bytes; nil for commands without a secondary discriminator
	Sub []byte
}

// Request folds the descriptor's sub-command bytes and the given value
// bytes into the payload for one command packet. A get request passes
// no values; a set request passes the encoded setting.
func (d Descriptor) Request(values ...byte) (command byte, payload []byte) {
	if len(d.Sub) == 0 && len(values) == 0 {
		return d.Code, nil
	}
	payload = make([]byte, 0, len(d.Sub)+len(values))
	payload = append(payload, d.Sub...)
	payload = append(payload, values...)
	return d.Code, payload
}

// Commands is the catalog of supported display commands, keyed by
// opcode. The catalog is data: extending it requires no codec or
// session changes.
var Commands = map[byte]Descriptor{
	CmdStatus:          {Name: "status", Code: CmdStatus},
	CmdSerialNumber:    {Name: "serial number", Code: CmdSerialNumber},
	CmdSoftwareVersion: {Name: "software version", Code: CmdSoftwareVersion},
	CmdPower:           {Name: "power", Code: CmdPower},
	CmdVolume:          {Name: "volume", Code: CmdVolume},
	CmdMute:            {Name: "mute", Code: CmdMute},
	CmdInputSource:     {Name: "input source", Code: CmdInputSource},
	CmdScreenSize:      {Name: "screen size", Code: CmdScreenSize},
	CmdSafetyLock:      {Name: "safety lock", Code: CmdSafetyLock},
	CmdPanel:           {Name: "panel", Code: CmdPanel},
}

// Lookup returns the catalog entry for an opcode.
func Lookup(code byte) (Descriptor, bool) {
	d, ok := Commands[code]
	return d, ok
}

// PowerStatus is the value byte of the power command (0x11).
//
// Displays may report vendor values outside the documented enumeration;
// those stay representable and render through String as unknown rather
// than failing decode.
type PowerStatus byte

// Documented power values.
const (
	PowerOff PowerStatus = 0x00
	PowerOn  PowerStatus = 0x01
)

func (p PowerStatus) String() string {
	switch p {
	case PowerOff:
		return "off"
	case PowerOn:
		return "on"
	default:
		return fmt.Sprintf("unknown (0x%02X)", byte(p))
	}
}

// PanelStatus is the value byte of the panel command (0xF9).
// Per the vendor specification 0x00 means the panel is on and 0x01
// means it is blanked.
type PanelStatus byte

// Documented panel values.
const (
	PanelOn  PanelStatus = 0x00
	PanelOff PanelStatus = 0x01
)

func (p PanelStatus) String() string {
	switch p {
	case PanelOn:
		return "on"
	case PanelOff:
		return "off"
	default:
		return fmt.Sprintf("unknown (0x%02X)", byte(p))
	}
}

// InputSource is the value byte of the input source command (0x14).
type InputSource byte

// Documented input source values.
const (
	InputSVideo       InputSource = 0x04
	InputComponent    InputSource = 0x08
	InputAV           InputSource = 0x0C
	InputPC           InputSource = 0x14
	InputDVI          InputSource = 0x18
	InputBNC          InputSource = 0x1E
	InputDVIVideo     InputSource = 0x1F
	InputMagicInfo    InputSource = 0x20
	InputHDMI1        InputSource = 0x21
	InputHDMI1PC      InputSource = 0x22
	InputHDMI2        InputSource = 0x23
	InputHDMI2PC      InputSource = 0x24
	InputDisplayPort  InputSource = 0x25
	InputDisplayPort2 InputSource = 0x26
	InputTV           InputSource = 0x30
	InputHDBaseT      InputSource = 0x55
)

var inputNames = map[InputSource]string{
	InputSVideo:       "s-video",
	InputComponent:    "component",
	InputAV:           "av",
	InputPC:           "pc",
	InputDVI:          "dvi",
	InputBNC:          "bnc",
	InputDVIVideo:     "dvi video",
	InputMagicInfo:    "magicinfo",
	InputHDMI1:        "hdmi1",
	InputHDMI1PC:      "hdmi1 pc",
	InputHDMI2:        "hdmi2",
	InputHDMI2PC:      "hdmi2 pc",
	InputDisplayPort:  "displayport",
	InputDisplayPort2: "displayport2",
	InputTV:           "tv",
	InputHDBaseT:      "hdbase-t",
}

func (s InputSource) String() string {
	if name, ok := inputNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02X)", byte(s))
}

// DisplayStatus is the decoded reply of the status command (0x00).
type DisplayStatus struct {
	Power  PowerStatus
	Volume byte
	Muted  bool
	Input  InputSource

	// Aspect is the raw picture aspect byte; values are model specific
	Aspect byte
}

// StatusResponseSize is the value byte count of a status reply.
const StatusResponseSize = 5

// ParseStatus decodes the status command's value bytes.
//
// Value format (StatusResponseSize bytes):
//
//	[POWER][VOLUME][MUTE][INPUT][ASPECT]
func ParseStatus(values []byte) (*DisplayStatus, error) {
	if len(values) < StatusResponseSize {
		return nil, fmt.Errorf("invalid value length for status response: got %d bytes, expected %d", len(values), StatusResponseSize)
	}

	return &DisplayStatus{
		Power:  PowerStatus(values[0]),
		Volume: values[1],
		Muted:  values[2] != 0,
		Input:  InputSource(values[3]),
		Aspect: values[4],
	}, nil
}

// ParseScreenSize decodes the screen size command's value bytes into a
// diagonal in inches.
func ParseScreenSize(values []byte) (int, error) {
	if len(values) < 1 {
		return 0, fmt.Errorf("invalid value length for screen size response: got 0 bytes, expected 1")
	}
	return int(values[0]), nil
}
