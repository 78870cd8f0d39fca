package mouse

// Button bit masks of the Buttons bitfield in InputState.
const (
	Btn_Left    = 0x01
	Btn_Right   = 0x02
	Btn_Middle  = 0x04
	Btn_Back    = 0x08
	Btn_Forward = 0x10
)

// MaxButtons is the number of buttons the report can carry.
const MaxButtons = 5

// ButtonMask returns the Buttons bit of the 1-based HID button number n, or
// 0 when the report has no room for it.
func ButtonMask(n int) uint8 {
	if n < 1 || n > MaxButtons {
		return 0
	}
	return 1 << (n - 1)
}
