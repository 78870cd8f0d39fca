package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Alia5/remapper/device/keyboard"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/modifier"
)

// ModifierState is the pressed-modifier snapshot shared by commands that
// run the matcher.
type ModifierState struct {
	Pressed  []string `help:"Pressed physical modifiers (e.g. left_command,right_shift)" sep:","`
	Report   string   `help:"Keyboard input state in wire format as hex ([mods, count, keys...]); its modifier byte is added to --pressed"`
	LEDs     string   `name:"leds" help:"Host keyboard LED output report byte as hex (caps lock is 02)"`
	CapsLock bool     `help:"Treat the caps lock LED as on"`
}

// Snapshot builds the flag state from the flags.
func (s ModifierState) Snapshot() (modifier.FlagState, error) {
	var st keyboard.InputState
	if s.Report != "" {
		raw, err := hex.DecodeString(strings.ReplaceAll(s.Report, " ", ""))
		if err != nil {
			return modifier.FlagState{}, fmt.Errorf("invalid report: %w", err)
		}
		if err := st.UnmarshalBinary(raw); err != nil {
			return modifier.FlagState{}, fmt.Errorf("invalid report: %w", err)
		}
	}

	var leds keyboard.LEDState
	if s.LEDs != "" {
		raw, err := hex.DecodeString(strings.TrimSpace(s.LEDs))
		if err != nil {
			return modifier.FlagState{}, fmt.Errorf("invalid leds: %w", err)
		}
		if err := leds.UnmarshalBinary(raw); err != nil {
			return modifier.FlagState{}, fmt.Errorf("invalid leds: %w", err)
		}
	}
	leds.CapsLock = leds.CapsLock || s.CapsLock

	flags := st.Flags(leds)
	for _, name := range s.Pressed {
		f, err := modifier.ParseFlag(strings.TrimSpace(name))
		if err != nil {
			return modifier.FlagState{}, err
		}
		flags = flags.Press(f)
	}
	return flags, nil
}

// parseKey reads a key given as a key_code name, or as key:name for the
// other usage tables (e.g. consumer_key_code:mute, pointing_button:button1).
func parseKey(s string) (hid.MomentarySwitchEvent, error) {
	key, name := hid.KeyCode, s
	if k, n, ok := strings.Cut(s, ":"); ok {
		key, name = k, n
	}
	if !hid.IsKey(key) {
		return hid.MomentarySwitchEvent{}, fmt.Errorf("unknown key type %q", key)
	}
	e, ok := hid.Lookup(key, name)
	if !ok {
		return hid.MomentarySwitchEvent{}, fmt.Errorf("unknown %s %q", key, name)
	}
	return e, nil
}
