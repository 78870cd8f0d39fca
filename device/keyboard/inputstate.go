// Package keyboard models the HID boot keyboard report and bridges it to the
// modifier flags rules are matched against.
package keyboard

import (
	"io"

	"github.com/Alia5/remapper/modifier"
)

// InputState represents the keyboard state of one report.
// Internally uses a 256-bit bitmap for N-key rollover support.
type InputState struct {
	Modifiers uint8     // bit 0-7: LCtrl, LShift, LAlt, LGui, RCtrl, RShift, RAlt, RGui
	KeyBitmap [32]uint8 // 256 bits for HID usage codes 0x00-0xFF
}

// LEDState represents the state of keyboard LEDs controlled by the host.
type LEDState struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// modifierKeys lists the modifier byte bits in bit order.
var modifierKeys = [8]struct {
	mask  uint8
	usage uint8
	flag  modifier.Flag
}{
	{ModLeftCtrl, KeyLeftCtrl, modifier.FlagLeftControl},
	{ModLeftShift, KeyLeftShift, modifier.FlagLeftShift},
	{ModLeftAlt, KeyLeftAlt, modifier.FlagLeftOption},
	{ModLeftGUI, KeyLeftGUI, modifier.FlagLeftCommand},
	{ModRightCtrl, KeyRightCtrl, modifier.FlagRightControl},
	{ModRightShift, KeyRightShift, modifier.FlagRightShift},
	{ModRightAlt, KeyRightAlt, modifier.FlagRightOption},
	{ModRightGUI, KeyRightGUI, modifier.FlagRightCommand},
}

func modifierMask(usage uint8) (uint8, bool) {
	if usage < KeyLeftCtrl || usage > KeyRightGUI {
		return 0, false
	}
	return modifierKeys[usage-KeyLeftCtrl].mask, true
}

// Press marks usage as held. Modifier usages set their modifier bit.
func (st *InputState) Press(usage uint8) {
	if m, ok := modifierMask(usage); ok {
		st.Modifiers |= m
		return
	}
	st.KeyBitmap[usage/8] |= 1 << (usage % 8)
}

// Release clears usage.
func (st *InputState) Release(usage uint8) {
	if m, ok := modifierMask(usage); ok {
		st.Modifiers &^= m
		return
	}
	st.KeyBitmap[usage/8] &^= 1 << (usage % 8)
}

// IsPressed reports whether usage is held.
func (st InputState) IsPressed(usage uint8) bool {
	if m, ok := modifierMask(usage); ok {
		return st.Modifiers&m != 0
	}
	return st.KeyBitmap[usage/8]&(1<<(usage%8)) != 0
}

// Flags returns the modifier snapshot of st. Caps lock is the lock state
// reported by the host LEDs, not the physical key. The report has no room
// for fn, so it is never set.
func (st InputState) Flags(leds LEDState) modifier.FlagState {
	var pressed []modifier.Flag
	for _, k := range modifierKeys {
		if st.Modifiers&k.mask != 0 {
			pressed = append(pressed, k.flag)
		}
	}
	if leds.CapsLock {
		pressed = append(pressed, modifier.FlagCapsLock)
	}
	return modifier.NewFlagState(pressed...)
}

// FromFlags builds the report and LED state that Flags maps back to flags.
// fn is dropped.
func FromFlags(flags ...modifier.Flag) (InputState, LEDState) {
	var st InputState
	var leds LEDState
	for _, f := range flags {
		if f == modifier.FlagCapsLock {
			leds.CapsLock = true
			continue
		}
		for _, k := range modifierKeys {
			if k.flag == f {
				st.Modifiers |= k.mask
			}
		}
	}
	return st, leds
}

// UnmarshalBinary decodes a 1-byte LED bitmask into LEDState.
// Bits are defined by LEDNumLock, LEDCapsLock, LEDScrollLock, LEDCompose, LEDKana.
func (st *LEDState) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	b := data[0]
	st.NumLock = b&LEDNumLock != 0
	st.CapsLock = b&LEDCapsLock != 0
	st.ScrollLock = b&LEDScrollLock != 0
	st.Compose = b&LEDCompose != 0
	st.Kana = b&LEDKana != 0
	return nil
}

// BuildReport encodes an InputState into the 34-byte HID keyboard report.
//
// Report layout (34 bytes):
//
//	Byte 0: Modifiers (8 bits)
//	Byte 1: Reserved (0x00)
//	Bytes 2-33: Key bitmap (256 bits, 32 bytes)
func (st InputState) BuildReport() []byte {
	b := make([]byte, 34)
	b[0] = st.Modifiers
	copy(b[2:34], st.KeyBitmap[:])
	return b
}

// Keys returns the pressed non-modifier usages in ascending order.
func (st InputState) Keys() []uint8 {
	var keys []uint8
	for i := 0; i < 256; i++ {
		if st.KeyBitmap[i/8]&(1<<uint(i%8)) != 0 {
			keys = append(keys, uint8(i))
		}
	}
	return keys
}

// MarshalBinary encodes InputState to variable-length wire format.
//
// Wire format:
//
//	Byte 0: Modifiers
//	Byte 1: Key count
//	Bytes 2+: Key codes (HID usage codes of pressed keys)
func (st *InputState) MarshalBinary() ([]byte, error) {
	keys := st.Keys()
	b := make([]byte, 2+len(keys))
	b[0] = st.Modifiers
	b[1] = uint8(len(keys))
	copy(b[2:], keys)
	return b, nil
}

// UnmarshalBinary decodes the wire format written by MarshalBinary.
func (st *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < 2 {
		return io.ErrUnexpectedEOF
	}

	st.Modifiers = data[0]
	keyCount := int(data[1])

	if len(data) < 2+keyCount {
		return io.ErrUnexpectedEOF
	}

	st.KeyBitmap = [32]uint8{}
	for _, keyCode := range data[2 : 2+keyCount] {
		st.KeyBitmap[keyCode/8] |= 1 << (keyCode % 8)
	}
	return nil
}
