package manipulator

import (
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/modifier"
	"github.com/Alia5/remapper/parseerror"
)

// KeyOrder constrains the order in which simultaneous keys are pressed or
// released.
type KeyOrder uint8

const (
	KeyOrderInsensitive KeyOrder = iota
	KeyOrderStrict
	KeyOrderStrictInverse
)

func (o KeyOrder) String() string {
	switch o {
	case KeyOrderStrict:
		return "strict"
	case KeyOrderStrictInverse:
		return "strict_inverse"
	default:
		return "insensitive"
	}
}

func parseKeyOrder(key string, v jsonvalue.Value) (KeyOrder, error) {
	s, ok := v.AsString()
	if !ok {
		return 0, parseerror.InvalidForm(key, "string", v)
	}
	switch s {
	case "insensitive":
		return KeyOrderInsensitive, nil
	case "strict":
		return KeyOrderStrict, nil
	case "strict_inverse":
		return KeyOrderStrictInverse, nil
	}
	return 0, parseerror.UnknownValue(key, v)
}

// KeyUpWhen selects when the to events of a simultaneous from are released.
type KeyUpWhen uint8

const (
	KeyUpWhenAny KeyUpWhen = iota
	KeyUpWhenAll
)

// SimultaneousOptions tune how simultaneous keys are recognized.
type SimultaneousOptions struct {
	DetectKeyDownUninterruptedly bool
	KeyDownOrder                 KeyOrder
	KeyUpOrder                   KeyOrder
	KeyUpWhen                    KeyUpWhen
	ToAfterKeyUp                 []ToEventDefinition
}

func parseSimultaneousOptions(v jsonvalue.Value) (SimultaneousOptions, error) {
	var o SimultaneousOptions
	if !v.IsObject() {
		return o, parseerror.InvalidForm("simultaneous_options", "object", v)
	}

	for _, m := range v.Members() {
		var err error
		switch m.Key {
		case "detect_key_down_uninterruptedly":
			b, ok := m.Value.AsBool()
			if !ok {
				return o, parseerror.InvalidForm(m.Key, "boolean", m.Value)
			}
			o.DetectKeyDownUninterruptedly = b
		case "key_down_order":
			o.KeyDownOrder, err = parseKeyOrder(m.Key, m.Value)
		case "key_up_order":
			o.KeyUpOrder, err = parseKeyOrder(m.Key, m.Value)
		case "key_up_when":
			s, ok := m.Value.AsString()
			if !ok {
				return o, parseerror.InvalidForm(m.Key, "string", m.Value)
			}
			switch s {
			case "any":
				o.KeyUpWhen = KeyUpWhenAny
			case "all":
				o.KeyUpWhen = KeyUpWhenAll
			default:
				err = parseerror.UnknownValue(m.Key, m.Value)
			}
		case "to_after_key_up":
			o.ToAfterKeyUp, err = ParseToEventDefinitions(m.Key, m.Value)
		default:
			err = parseerror.UnknownKey(m.Key, v)
		}
		if err != nil {
			return SimultaneousOptions{}, err
		}
	}
	return o, nil
}

// FromEventDefinition is the from side of a basic manipulator: one key or
// several keys pressed simultaneously, plus modifier preconditions.
type FromEventDefinition struct {
	Events              []EventDefinition
	Modifiers           FromModifiers
	SimultaneousOptions SimultaneousOptions
}

// ParseFromEventDefinition parses a from object. Every event must be a
// momentary switch or an any wildcard.
func ParseFromEventDefinition(v jsonvalue.Value) (FromEventDefinition, error) {
	var d FromEventDefinition
	if !v.IsObject() {
		return d, parseerror.InvalidForm("from", "object", v)
	}

	var single EventDefinition
	for _, m := range v.Members() {
		handled, err := single.HandleKey(m.Key, m.Value, v)
		if err != nil {
			return FromEventDefinition{}, err
		}
		if handled {
			continue
		}

		switch m.Key {
		case "modifiers":
			d.Modifiers, err = ParseFromModifiers(m.Value)
			err = parseerror.Wrap(m.Key, err)
		case "simultaneous":
			d.Events, err = parseSimultaneous(m.Value)
		case "simultaneous_options":
			d.SimultaneousOptions, err = parseSimultaneousOptions(m.Value)
			err = parseerror.Wrap(m.Key, err)
		default:
			err = parseerror.UnknownKey(m.Key, v)
		}
		if err != nil {
			return FromEventDefinition{}, err
		}
	}

	if len(d.Events) == 0 && single.Type() != TypeNone {
		d.Events = []EventDefinition{single}
	}
	if len(d.Events) == 0 {
		return FromEventDefinition{}, parseerror.InvalidEventType(v)
	}
	for _, e := range d.Events {
		switch e.Type() {
		case TypeMomentarySwitchEvent, TypeAny:
		default:
			return FromEventDefinition{}, parseerror.InvalidEventType(v)
		}
	}
	return d, nil
}

func parseSimultaneous(v jsonvalue.Value) ([]EventDefinition, error) {
	if !v.IsArray() {
		return nil, parseerror.InvalidForm("simultaneous", "array", v)
	}

	out := make([]EventDefinition, 0, len(v.Elements()))
	for _, entry := range v.Elements() {
		if !entry.IsObject() {
			return nil, parseerror.InvalidForm("simultaneous entry", "object", entry)
		}
		var d EventDefinition
		for _, m := range entry.Members() {
			handled, err := d.HandleKey(m.Key, m.Value, entry)
			if err != nil {
				return nil, err
			}
			if !handled {
				return nil, parseerror.UnknownKey(m.Key, entry)
			}
		}
		if d.Type() == TypeNone {
			return nil, parseerror.InvalidEventType(entry)
		}
		out = append(out, d)
	}
	return out, nil
}

// IsSimultaneous reports whether more than one key must be pressed.
func (d FromEventDefinition) IsSimultaneous() bool { return len(d.Events) > 1 }

// TestEvent reports whether e is one of the from keys.
func (d FromEventDefinition) TestEvent(e hid.MomentarySwitchEvent) bool {
	for _, def := range d.Events {
		if def.Matches(e) {
			return true
		}
	}
	return false
}

// TestKeyOrder checks keys, in the order they were pressed or released,
// against order.
func (d FromEventDefinition) TestKeyOrder(keys []hid.MomentarySwitchEvent, order KeyOrder) bool {
	n := len(d.Events)
	for i, k := range keys {
		if i >= n {
			break
		}
		switch order {
		case KeyOrderStrict:
			if !d.Events[i].Matches(k) {
				return false
			}
		case KeyOrderStrictInverse:
			if !d.Events[n-1-i].Matches(k) {
				return false
			}
		}
	}
	return true
}

// TestModifiers matches the modifier preconditions against q.
func (d FromEventDefinition) TestModifiers(q modifier.FlagQuery) (modifier.FlagSet, bool) {
	return d.Modifiers.Test(q)
}
