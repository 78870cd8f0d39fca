package manipulator

import (
	"math"
	"time"

	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/modifier"
	"github.com/Alia5/remapper/parseerror"
)

// maxHoldDownMilliseconds is the longest hold a time.Duration can carry.
const maxHoldDownMilliseconds = float64(math.MaxInt64 / int64(time.Millisecond))

// ToEventDefinition is one entry of a to list: the event to send, the
// modifiers to hold while sending it and its behaviour flags.
type ToEventDefinition struct {
	Event     EventDefinition
	Modifiers modifier.Set

	// Lazy defers the modifier key down until another key is sent.
	Lazy bool
	// Repeat honors key repeat of the sent key.
	Repeat bool
	// Halt cancels to_after_key_up and to_if_alone of the manipulator.
	Halt bool
	// HoldDownDuration is how long the key is held before its key up is sent.
	HoldDownDuration time.Duration
}

// ParseToEventDefinition parses one to object.
func ParseToEventDefinition(v jsonvalue.Value) (ToEventDefinition, error) {
	d := ToEventDefinition{Repeat: true}
	if !v.IsObject() {
		return d, parseerror.InvalidForm("to", "object", v)
	}

	for _, m := range v.Members() {
		handled, err := d.Event.HandleKey(m.Key, m.Value, v)
		if err != nil {
			return ToEventDefinition{}, err
		}
		if handled {
			continue
		}

		switch m.Key {
		case "modifiers":
			s, err := modifier.ParseSet(m.Key, m.Value)
			if err != nil {
				return ToEventDefinition{}, parseerror.Wrap(m.Key, err)
			}
			d.Modifiers = s

		case "lazy", "repeat", "halt":
			b, ok := m.Value.AsBool()
			if !ok {
				return ToEventDefinition{}, parseerror.InvalidForm(m.Key, "boolean", m.Value)
			}
			switch m.Key {
			case "lazy":
				d.Lazy = b
			case "repeat":
				d.Repeat = b
			case "halt":
				d.Halt = b
			}

		case "hold_down_milliseconds", "held_down_milliseconds":
			ms, ok := m.Value.AsFloat()
			if !ok || ms < 0 || ms > maxHoldDownMilliseconds {
				return ToEventDefinition{}, parseerror.InvalidForm(m.Key, "non-negative number", m.Value)
			}
			d.HoldDownDuration = time.Duration(ms * float64(time.Millisecond))

		default:
			return ToEventDefinition{}, parseerror.UnknownKey(m.Key, v)
		}
	}

	switch d.Event.Type() {
	case TypeNone, TypeAny:
		return ToEventDefinition{}, parseerror.InvalidEventType(v)
	}
	return d, nil
}

// ParseToEventDefinitions parses the value of a to-like key, which is a
// single object or an array of objects.
func ParseToEventDefinitions(key string, v jsonvalue.Value) ([]ToEventDefinition, error) {
	switch {
	case v.IsObject():
		d, err := ParseToEventDefinition(v)
		if err != nil {
			return nil, parseerror.Wrap(key, err)
		}
		return []ToEventDefinition{d}, nil

	case v.IsArray():
		out := make([]ToEventDefinition, 0, len(v.Elements()))
		for _, e := range v.Elements() {
			d, err := ParseToEventDefinition(e)
			if err != nil {
				return nil, parseerror.Wrap(key, err)
			}
			out = append(out, d)
		}
		return out, nil
	}
	return nil, parseerror.InvalidForm(key, "object or array", v)
}

// NeedsPointingDevice reports whether sending d requires a virtual pointing
// device.
func (d ToEventDefinition) NeedsPointingDevice() bool {
	if e, ok := d.Event.MomentarySwitchEvent(); ok {
		return e.IsPointingButton()
	}
	return d.Event.Type() == TypeMouseKey
}

// ModifierPressEvents returns a key down for each declared modifier. Compound
// categories press their left key only.
func (d ToEventDefinition) ModifierPressEvents() []event.Event {
	var events []event.Event
	for _, c := range d.Modifiers.Categories() {
		flags := modifier.FlagsFor(c)
		if len(flags) == 0 {
			continue
		}
		if e := hid.FromModifierFlag(flags[0]); e.Valid() {
			events = append(events, event.KeyDown(e))
		}
	}
	return events
}

// Events returns the modifier presses followed by the event itself.
func (d ToEventDefinition) Events() []event.Event {
	events := d.ModifierPressEvents()
	if e, ok := d.Event.ToEvent(); ok {
		events = append(events, e)
	}
	return events
}
