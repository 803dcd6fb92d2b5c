package mdc

import (
	"context"
	"fmt"

	"github.com/moffa90/go-mdc/protocol"
)

// Display binds a Session to one display address and exposes a typed
// method per catalog command. Display is a stateless facade: every call
// performs a real wire exchange and nothing is cached, so two identical
// sets produce two independent round trips.
type Display struct {
	session *Session
	id      byte
}

// NewDisplay returns a handle for the display at the given chain
// address. Use protocol.Broadcast to address every display at once;
// setters then become fire-and-forget and getters fail with
// ErrBroadcastQuery.
func NewDisplay(session *Session, id byte) *Display {
	if session == nil {
		panic("session cannot be nil")
	}
	return &Display{session: session, id: id}
}

// ID returns the display's chain address.
func (d *Display) ID() byte {
	return d.id
}

// set sends a catalog command carrying value bytes and discards the
// echoed values on success.
func (d *Display) set(ctx context.Context, desc protocol.Descriptor, values ...byte) error {
	command, payload := desc.Request(values...)
	_, err := d.session.Exchange(ctx, d.id, command, payload)
	if err != nil {
		return fmt.Errorf("set %s: %w", desc.Name, err)
	}
	return nil
}

// query sends a catalog command with no values and returns the reply's
// value bytes.
func (d *Display) query(ctx context.Context, desc protocol.Descriptor) ([]byte, error) {
	if d.id == protocol.Broadcast {
		return nil, ErrBroadcastQuery
	}
	command, payload := desc.Request()
	values, err := d.session.Exchange(ctx, d.id, command, payload)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", desc.Name, err)
	}
	return values, nil
}

func onOff(on bool) byte {
	if on {
		return 0x01
	}
	return 0x00
}

// SetPower turns the display on or off.
func (d *Display) SetPower(ctx context.Context, on bool) error {
	return d.set(ctx, protocol.Commands[protocol.CmdPower], onOff(on))
}

// Power returns the display's power status.
func (d *Display) Power(ctx context.Context) (protocol.PowerStatus, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdPower])
	if err != nil {
		return 0, err
	}
	if len(values) < 1 {
		return 0, fmt.Errorf("get power: empty response values")
	}
	return protocol.PowerStatus(values[0]), nil
}

// SetPanel turns the panel backlight on or off without changing power.
func (d *Display) SetPanel(ctx context.Context, on bool) error {
	// Panel semantics are inverted on the wire: 0x00 is on.
	value := protocol.PanelOff
	if on {
		value = protocol.PanelOn
	}
	return d.set(ctx, protocol.Commands[protocol.CmdPanel], byte(value))
}

// Panel returns the panel backlight status.
func (d *Display) Panel(ctx context.Context) (protocol.PanelStatus, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdPanel])
	if err != nil {
		return 0, err
	}
	if len(values) < 1 {
		return 0, fmt.Errorf("get panel: empty response values")
	}
	return protocol.PanelStatus(values[0]), nil
}

// SetVolume sets the audio volume. Levels outside 0-100 are rejected
// before anything is written to the wire.
func (d *Display) SetVolume(ctx context.Context, level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("volume %d out of range 0-100", level)
	}
	return d.set(ctx, protocol.Commands[protocol.CmdVolume], byte(level))
}

// Volume returns the audio volume (0-100).
func (d *Display) Volume(ctx context.Context) (int, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdVolume])
	if err != nil {
		return 0, err
	}
	if len(values) < 1 {
		return 0, fmt.Errorf("get volume: empty response values")
	}
	return int(values[0]), nil
}

// SetMuted mutes or unmutes the display audio.
func (d *Display) SetMuted(ctx context.Context, muted bool) error {
	return d.set(ctx, protocol.Commands[protocol.CmdMute], onOff(muted))
}

// Muted returns whether the display audio is muted.
func (d *Display) Muted(ctx context.Context) (bool, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdMute])
	if err != nil {
		return false, err
	}
	if len(values) < 1 {
		return false, fmt.Errorf("get mute: empty response values")
	}
	return values[0] != 0, nil
}

// SetInputSource switches the display to the given input.
func (d *Display) SetInputSource(ctx context.Context, src protocol.InputSource) error {
	return d.set(ctx, protocol.Commands[protocol.CmdInputSource], byte(src))
}

// InputSource returns the active input source.
func (d *Display) InputSource(ctx context.Context) (protocol.InputSource, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdInputSource])
	if err != nil {
		return 0, err
	}
	if len(values) < 1 {
		return 0, fmt.Errorf("get input source: empty response values")
	}
	return protocol.InputSource(values[0]), nil
}

// SetSafetyLock enables or disables the front-panel safety lock.
func (d *Display) SetSafetyLock(ctx context.Context, locked bool) error {
	return d.set(ctx, protocol.Commands[protocol.CmdSafetyLock], onOff(locked))
}

// SafetyLock returns whether the front-panel safety lock is enabled.
func (d *Display) SafetyLock(ctx context.Context) (bool, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdSafetyLock])
	if err != nil {
		return false, err
	}
	if len(values) < 1 {
		return false, fmt.Errorf("get safety lock: empty response values")
	}
	return values[0] != 0, nil
}

// Status queries power, volume, mute, input and aspect in one exchange.
func (d *Display) Status(ctx context.Context) (*protocol.DisplayStatus, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdStatus])
	if err != nil {
		return nil, err
	}
	return protocol.ParseStatus(values)
}

// SerialNumber returns the display's serial number.
func (d *Display) SerialNumber(ctx context.Context) (string, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdSerialNumber])
	if err != nil {
		return "", err
	}
	return trimNul(values), nil
}

// SoftwareVersion returns the display's firmware version string.
func (d *Display) SoftwareVersion(ctx context.Context) (string, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdSoftwareVersion])
	if err != nil {
		return "", err
	}
	return trimNul(values), nil
}

// ScreenSize returns the panel diagonal in inches.
func (d *Display) ScreenSize(ctx context.Context) (int, error) {
	values, err := d.query(ctx, protocol.Commands[protocol.CmdScreenSize])
	if err != nil {
		return 0, err
	}
	return protocol.ParseScreenSize(values)
}

// Raw sends an arbitrary command with a caller-built payload and
// returns the raw response value bytes. It exists for opcodes not yet
// in the catalog; cataloged commands have typed methods.
func (d *Display) Raw(ctx context.Context, command byte, payload []byte) ([]byte, error) {
	return d.session.Exchange(ctx, d.id, command, payload)
}

// trimNul cuts a device string at the first NUL; displays pad
// fixed-width string replies with zero bytes.
func trimNul(values []byte) string {
	for i, b := range values {
		if b == 0 {
			return string(values[:i])
		}
	}
	return string(values)
}
