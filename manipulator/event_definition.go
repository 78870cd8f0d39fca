// Package manipulator parses the from and to sides of remapping rules and
// turns matched rules into runtime events.
package manipulator

import (
	"fmt"

	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/inputsource"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/mousekey"
	"github.com/Alia5/remapper/parseerror"
)

// Type discriminates the variants of EventDefinition.
type Type uint8

const (
	TypeNone Type = iota
	TypeMomentarySwitchEvent
	TypeAny
	TypeShellCommand
	TypeSelectInputSource
	TypeSetVariable
	TypeMouseKey
)

func (t Type) String() string {
	switch t {
	case TypeMomentarySwitchEvent:
		return "momentary_switch_event"
	case TypeAny:
		return "any"
	case TypeShellCommand:
		return "shell_command"
	case TypeSelectInputSource:
		return "select_input_source"
	case TypeSetVariable:
		return "set_variable"
	case TypeMouseKey:
		return "mouse_key"
	default:
		return "none"
	}
}

// AnyType is the key family an `any` condition accepts.
type AnyType uint8

const (
	AnyKeyCode AnyType = iota
	AnyConsumerKeyCode
	AnyAppleVendorKeyboardKeyCode
	AnyAppleVendorTopCaseKeyCode
	AnyPointingButton
)

var anyTypeKeys = [...]string{
	AnyKeyCode:                    hid.KeyCode,
	AnyConsumerKeyCode:            hid.ConsumerKeyCode,
	AnyAppleVendorKeyboardKeyCode: hid.AppleVendorKeyboardKeyCode,
	AnyAppleVendorTopCaseKeyCode:  hid.AppleVendorTopCaseKeyCode,
	AnyPointingButton:             hid.PointingButton,
}

func (a AnyType) String() string {
	if int(a) < len(anyTypeKeys) {
		return anyTypeKeys[a]
	}
	return fmt.Sprintf("AnyType(%d)", uint8(a))
}

// UsagePage returns the page whose usages a wildcard of this type accepts.
func (a AnyType) UsagePage() hid.UsagePage {
	page, _ := hid.PageOf(a.String())
	return page
}

func parseAnyType(v jsonvalue.Value) (AnyType, error) {
	s, ok := v.AsString()
	if !ok {
		return 0, parseerror.InvalidForm("any", "string", v)
	}
	for i, k := range anyTypeKeys {
		if k == s {
			return AnyType(i), nil
		}
	}
	return 0, parseerror.UnknownValue("any", v)
}

// EventDefinition is the event part of a from or to object: one key,
// button, shell command, input source selection, variable assignment or
// mouse motion. The zero value is TypeNone.
type EventDefinition struct {
	typ             Type
	momentarySwitch hid.MomentarySwitchEvent
	anyType         AnyType
	shellCommand    string
	inputSources    []inputsource.Specifier
	variable        event.SetVariable
	mouseKey        mousekey.Value
}

func (d EventDefinition) Type() Type { return d.typ }

func (d EventDefinition) MomentarySwitchEvent() (hid.MomentarySwitchEvent, bool) {
	return d.momentarySwitch, d.typ == TypeMomentarySwitchEvent
}

func (d EventDefinition) AnyType() (AnyType, bool) {
	return d.anyType, d.typ == TypeAny
}

func (d EventDefinition) ShellCommand() (string, bool) {
	return d.shellCommand, d.typ == TypeShellCommand
}

func (d EventDefinition) InputSources() ([]inputsource.Specifier, bool) {
	return d.inputSources, d.typ == TypeSelectInputSource
}

func (d EventDefinition) SetVariable() (event.SetVariable, bool) {
	return d.variable, d.typ == TypeSetVariable
}

func (d EventDefinition) MouseKey() (mousekey.Value, bool) {
	return d.mouseKey, d.typ == TypeMouseKey
}

func isTypeKey(key string) bool {
	switch key {
	case "any", "shell_command", "select_input_source", "set_variable", "mouse_key":
		return true
	}
	return hid.IsKey(key)
}

// HandleKey consumes one member of the enclosing object. It reports false
// for keys that are not part of an event definition so the caller can
// interpret them.
func (d *EventDefinition) HandleKey(key string, value, enclosing jsonvalue.Value) (bool, error) {
	if key == "description" {
		return true, nil
	}
	if !isTypeKey(key) {
		return false, nil
	}
	if d.typ != TypeNone {
		return true, parseerror.DuplicateType(enclosing)
	}

	var next EventDefinition
	switch key {
	case "any":
		a, err := parseAnyType(value)
		if err != nil {
			return true, err
		}
		next = EventDefinition{typ: TypeAny, anyType: a}

	case "shell_command":
		s, ok := value.AsString()
		if !ok {
			return true, parseerror.InvalidForm(key, "string", value)
		}
		next = EventDefinition{typ: TypeShellCommand, shellCommand: s}

	case "select_input_source":
		specs, err := parseInputSources(value)
		if err != nil {
			return true, err
		}
		next = EventDefinition{typ: TypeSelectInputSource, inputSources: specs}

	case "set_variable":
		v, err := parseSetVariable(value)
		if err != nil {
			return true, err
		}
		next = EventDefinition{typ: TypeSetVariable, variable: v}

	case "mouse_key":
		v, err := mousekey.FromJSON(value)
		if err != nil {
			return true, err
		}
		next = EventDefinition{typ: TypeMouseKey, mouseKey: v}

	default:
		e, err := hid.Resolve(key, value)
		if err != nil {
			return true, err
		}
		next = EventDefinition{typ: TypeMomentarySwitchEvent, momentarySwitch: e}
	}

	*d = next
	return true, nil
}

func parseInputSources(v jsonvalue.Value) ([]inputsource.Specifier, error) {
	switch {
	case v.IsObject():
		s, err := inputsource.FromJSON(v)
		if err != nil {
			return nil, parseerror.Wrap("select_input_source", err)
		}
		return []inputsource.Specifier{s}, nil

	case v.IsArray():
		specs := make([]inputsource.Specifier, 0, len(v.Elements()))
		for _, e := range v.Elements() {
			s, err := inputsource.FromJSON(e)
			if err != nil {
				return nil, parseerror.Wrap("select_input_source", err)
			}
			specs = append(specs, s)
		}
		return specs, nil
	}
	return nil, parseerror.InvalidForm("select_input_source", "object or array", v)
}

func parseSetVariable(v jsonvalue.Value) (event.SetVariable, error) {
	var out event.SetVariable
	if !v.IsObject() {
		return out, parseerror.InvalidForm("set_variable", "object", v)
	}

	var hasName, hasValue bool
	for _, m := range v.Members() {
		switch m.Key {
		case "name":
			s, ok := m.Value.AsString()
			if !ok {
				return out, parseerror.InvalidForm("set_variable.name", "string", m.Value)
			}
			out.Name = s
			hasName = true
		case "value":
			n, ok := m.Value.AsInt()
			if !ok {
				return out, parseerror.InvalidForm("set_variable.value", "integer", m.Value)
			}
			out.Value = n
			hasValue = true
		case "description":
		default:
			return out, parseerror.UnknownField("set_variable", m.Key, v)
		}
	}

	if !hasName {
		return out, parseerror.MissingField("set_variable", "name", v)
	}
	if !hasValue {
		return out, parseerror.MissingField("set_variable", "value", v)
	}
	return out, nil
}

// ToEvent materializes d. None and any have no runtime form.
func (d EventDefinition) ToEvent() (event.Event, bool) {
	switch d.typ {
	case TypeMomentarySwitchEvent:
		return event.MomentarySwitch(d.momentarySwitch), true
	case TypeShellCommand:
		return event.ShellCommand(d.shellCommand), true
	case TypeSelectInputSource:
		return event.SelectInputSource(d.inputSources), true
	case TypeSetVariable:
		return event.SetVariableEvent(d.variable), true
	case TypeMouseKey:
		return event.MouseKey(d.mouseKey), true
	}
	return event.Event{}, false
}

// Matches reports whether the physical event e satisfies d. Only momentary
// switch and any definitions can match.
func (d EventDefinition) Matches(e hid.MomentarySwitchEvent) bool {
	switch d.typ {
	case TypeMomentarySwitchEvent:
		return d.momentarySwitch == e
	case TypeAny:
		return e.Valid() && e.UsagePage == d.anyType.UsagePage()
	}
	return false
}

func (d EventDefinition) String() string {
	switch d.typ {
	case TypeMomentarySwitchEvent:
		return d.momentarySwitch.String()
	case TypeAny:
		return "any:" + d.anyType.String()
	case TypeShellCommand:
		return fmt.Sprintf("shell_command:%q", d.shellCommand)
	case TypeSelectInputSource:
		return fmt.Sprintf("select_input_source:%d", len(d.inputSources))
	case TypeSetVariable:
		return fmt.Sprintf("set_variable:%s=%d", d.variable.Name, d.variable.Value)
	case TypeMouseKey:
		return "mouse_key:" + d.mouseKey.String()
	}
	return "none"
}
