package modifier

import "strings"

// FlagQuery reports whether a physical modifier is currently pressed.
type FlagQuery interface {
	IsPressed(Flag) bool
}

// FlagSet is a set of physical flags.
type FlagSet uint16

// NewFlagSet returns a set holding flags. Invalid flags are ignored.
func NewFlagSet(flags ...Flag) FlagSet {
	var s FlagSet
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

func (s FlagSet) With(f Flag) FlagSet {
	if !f.Valid() {
		return s
	}
	return s | 1<<f
}

func (s FlagSet) Without(f Flag) FlagSet {
	if !f.Valid() {
		return s
	}
	return s &^ (1 << f)
}

func (s FlagSet) Has(f Flag) bool {
	return f.Valid() && s&(1<<f) != 0
}

func (s FlagSet) Len() int { return len(s.Slice()) }

// Slice returns the members in declaration order.
func (s FlagSet) Slice() []Flag {
	var out []Flag
	for _, f := range allPhysicalFlags {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FlagSet) String() string {
	names := make([]string, 0, FlagEnd)
	for _, f := range s.Slice() {
		names = append(names, f.String())
	}
	return "[" + strings.Join(names, ",") + "]"
}

// FlagState is a point-in-time snapshot of pressed modifiers.
type FlagState struct {
	pressed FlagSet
}

// NewFlagState returns a snapshot in which exactly flags are pressed.
func NewFlagState(flags ...Flag) FlagState {
	return FlagState{pressed: NewFlagSet(flags...)}
}

func (s FlagState) IsPressed(f Flag) bool { return s.pressed.Has(f) }

// Pressed returns the pressed flags.
func (s FlagState) Pressed() FlagSet { return s.pressed }

// Press returns a copy of s with f pressed.
func (s FlagState) Press(f Flag) FlagState {
	return FlagState{pressed: s.pressed.With(f)}
}

// Release returns a copy of s with f released.
func (s FlagState) Release(f Flag) FlagState {
	return FlagState{pressed: s.pressed.Without(f)}
}

func (s FlagState) String() string { return s.pressed.String() }
