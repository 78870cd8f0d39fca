// Package mouse models the relative HID mouse report that synthetic pointer
// motion is emitted as.
package mouse

import (
	"fmt"
	"io"
)

// InputState represents the mouse state used to build a report.
type InputState struct {
	// Button bitfield: bit 0=Left, 1=Right, 2=Middle, 3=Back, 4=Forward
	Buttons uint8
	// Delta X/Y: signed 16-bit relative movement
	DX, DY int16
	// Wheel: signed 16-bit vertical scroll
	Wheel int16
	// Pan: signed 16-bit horizontal scroll
	Pan int16
}

// IsZero reports whether the report carries no buttons and no motion.
func (m InputState) IsZero() bool {
	return m == InputState{}
}

func (m InputState) String() string {
	return fmt.Sprintf("buttons=%#04x dx=%d dy=%d wheel=%d pan=%d", m.Buttons, m.DX, m.DY, m.Wheel, m.Pan)
}

// BuildReport encodes an InputState into the 9-byte HID mouse report.
//
// Report layout (9 bytes):
//
//	Byte 0: Button bitfield (bit 0=Left, 1=Right, 2=Middle, 3=Back, 4=Forward, bits 5-7=padding)
//	Bytes 1-2: DX (int16 little-endian, -32768 to +32767)
//	Bytes 3-4: DY (int16 little-endian)
//	Bytes 5-6: Wheel (int16 little-endian)
//	Bytes 7-8: Pan (int16 little-endian)
func (m *InputState) BuildReport() []byte {
	b, _ := m.MarshalBinary()
	b[0] &= 0x1F
	return b
}

// MarshalBinary encodes InputState to 9 bytes.
func (m *InputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, 9)
	b[0] = m.Buttons
	putInt16(b[1:], m.DX)
	putInt16(b[3:], m.DY)
	putInt16(b[5:], m.Wheel)
	putInt16(b[7:], m.Pan)
	return b, nil
}

// UnmarshalBinary decodes 9 bytes into InputState.
func (m *InputState) UnmarshalBinary(data []byte) error {
	if len(data) < 9 {
		return io.ErrUnexpectedEOF
	}
	m.Buttons = data[0]
	m.DX = int16(data[1]) | int16(data[2])<<8
	m.DY = int16(data[3]) | int16(data[4])<<8
	m.Wheel = int16(data[5]) | int16(data[6])<<8
	m.Pan = int16(data[7]) | int16(data[8])<<8
	return nil
}

func putInt16(b []byte, v int16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}
