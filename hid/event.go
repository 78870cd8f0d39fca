// Package hid names physical key and button events by their HID usage page
// and usage, and resolves the names rule documents use for them.
package hid

import (
	"fmt"

	"github.com/Alia5/remapper/device/keyboard"
	"github.com/Alia5/remapper/modifier"
)

// UsagePage is a HID usage page.
type UsagePage uint32

// Usage is a HID usage within a page.
type Usage uint32

const (
	PageUndefined           UsagePage = 0x00
	PageKeyboardOrKeypad    UsagePage = 0x07
	PageButton              UsagePage = 0x09
	PageConsumer            UsagePage = 0x0C
	PageAppleVendorTopCase  UsagePage = 0x00FF
	PageAppleVendorKeyboard UsagePage = 0xFF01
)

// MomentarySwitchEvent is any key or button: a usage on one of the pages
// rule documents can name.
type MomentarySwitchEvent struct {
	UsagePage UsagePage
	Usage     Usage
}

// Valid reports whether both the page and the usage are set.
func (e MomentarySwitchEvent) Valid() bool {
	return e.UsagePage != PageUndefined && e.Usage != 0
}

// IsPointingButton reports whether e is a mouse button.
func (e MomentarySwitchEvent) IsPointingButton() bool {
	return e.UsagePage == PageButton
}

// ModifierFlag returns the physical modifier e stands for.
func (e MomentarySwitchEvent) ModifierFlag() (modifier.Flag, bool) {
	switch e.UsagePage {
	case PageKeyboardOrKeypad:
		for f, ev := range modifierEvents {
			if f != modifier.FlagCapsLock && f != modifier.FlagFn && ev == e {
				return f, true
			}
		}
	case PageAppleVendorKeyboard:
		if e.Usage == appleKeyboardFunction {
			return modifier.FlagFn, true
		}
	case PageAppleVendorTopCase:
		if e.Usage == appleTopCaseKeyboardFn {
			return modifier.FlagFn, true
		}
	}
	return modifier.FlagZero, false
}

// IsModifier reports whether e is a modifier key.
func (e MomentarySwitchEvent) IsModifier() bool {
	_, ok := e.ModifierFlag()
	return ok
}

var modifierEvents = map[modifier.Flag]MomentarySwitchEvent{
	modifier.FlagCapsLock:     {PageKeyboardOrKeypad, keyboard.KeyCapsLock},
	modifier.FlagLeftControl:  {PageKeyboardOrKeypad, keyboard.KeyLeftCtrl},
	modifier.FlagLeftShift:    {PageKeyboardOrKeypad, keyboard.KeyLeftShift},
	modifier.FlagLeftOption:   {PageKeyboardOrKeypad, keyboard.KeyLeftAlt},
	modifier.FlagLeftCommand:  {PageKeyboardOrKeypad, keyboard.KeyLeftGUI},
	modifier.FlagRightControl: {PageKeyboardOrKeypad, keyboard.KeyRightCtrl},
	modifier.FlagRightShift:   {PageKeyboardOrKeypad, keyboard.KeyRightShift},
	modifier.FlagRightOption:  {PageKeyboardOrKeypad, keyboard.KeyRightAlt},
	modifier.FlagRightCommand: {PageKeyboardOrKeypad, keyboard.KeyRightGUI},
	modifier.FlagFn:           {PageAppleVendorTopCase, appleTopCaseKeyboardFn},
}

// FromModifierFlag returns the key that produces f. FlagZero and FlagEnd
// yield the zero event.
func FromModifierFlag(f modifier.Flag) MomentarySwitchEvent {
	return modifierEvents[f]
}

// Name returns the rule document key and name of e, e.g. ("key_code", "a").
// Usages without a name are rendered as their number.
func (e MomentarySwitchEvent) Name() (key, name string) {
	t := tableFor(e.UsagePage)
	if t == nil {
		return "", ""
	}
	if n, ok := t.names[e.Usage]; ok {
		return t.key, n
	}
	return t.key, fmt.Sprintf("%d", e.Usage)
}

func (e MomentarySwitchEvent) String() string {
	key, name := e.Name()
	if key == "" {
		return fmt.Sprintf("usage_page=%#x usage=%#x", uint32(e.UsagePage), uint32(e.Usage))
	}
	return key + ":" + name
}
