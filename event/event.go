// Package event defines the runtime events a matched rule emits.
package event

import (
	"fmt"
	"strings"

	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/inputsource"
	"github.com/Alia5/remapper/mousekey"
)

// Type discriminates the variants of Event.
type Type uint8

const (
	TypeNone Type = iota
	TypeMomentarySwitch
	TypeShellCommand
	TypeSelectInputSource
	TypeSetVariable
	TypeMouseKey
)

func (t Type) String() string {
	switch t {
	case TypeMomentarySwitch:
		return "momentary_switch_event"
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

// Direction is the key transition of a momentary switch event.
type Direction uint8

const (
	// DirectionUnset leaves the transition to the dispatcher, which fires
	// the event on both key down and key up of the source key.
	DirectionUnset Direction = iota
	DirectionKeyDown
	DirectionKeyUp
)

func (d Direction) String() string {
	switch d {
	case DirectionKeyDown:
		return "key_down"
	case DirectionKeyUp:
		return "key_up"
	default:
		return "unset"
	}
}

// SetVariable assigns Value to the named variable.
type SetVariable struct {
	Name  string
	Value int
}

// Event is a tagged union; only the field matching Type is meaningful.
type Event struct {
	typ          Type
	direction    Direction
	switchEvent  hid.MomentarySwitchEvent
	shellCommand string
	inputSources []inputsource.Specifier
	variable     SetVariable
	mouseKey     mousekey.Value
}

func MomentarySwitch(e hid.MomentarySwitchEvent) Event {
	return Event{typ: TypeMomentarySwitch, switchEvent: e}
}

// KeyDown returns a momentary switch event pressing e.
func KeyDown(e hid.MomentarySwitchEvent) Event {
	return Event{typ: TypeMomentarySwitch, direction: DirectionKeyDown, switchEvent: e}
}

// KeyUp returns a momentary switch event releasing e.
func KeyUp(e hid.MomentarySwitchEvent) Event {
	return Event{typ: TypeMomentarySwitch, direction: DirectionKeyUp, switchEvent: e}
}

func ShellCommand(cmd string) Event {
	return Event{typ: TypeShellCommand, shellCommand: cmd}
}

func SelectInputSource(specs []inputsource.Specifier) Event {
	return Event{typ: TypeSelectInputSource, inputSources: append([]inputsource.Specifier(nil), specs...)}
}

func SetVariableEvent(v SetVariable) Event {
	return Event{typ: TypeSetVariable, variable: v}
}

func MouseKey(v mousekey.Value) Event {
	return Event{typ: TypeMouseKey, mouseKey: v}
}

func (e Event) Type() Type           { return e.typ }
func (e Event) Direction() Direction { return e.direction }

// WithDirection returns a copy of e with its transition set.
func (e Event) WithDirection(d Direction) Event {
	e.direction = d
	return e
}

func (e Event) MomentarySwitchEvent() (hid.MomentarySwitchEvent, bool) {
	return e.switchEvent, e.typ == TypeMomentarySwitch
}

func (e Event) ShellCommand() (string, bool) {
	return e.shellCommand, e.typ == TypeShellCommand
}

func (e Event) InputSources() ([]inputsource.Specifier, bool) {
	return e.inputSources, e.typ == TypeSelectInputSource
}

func (e Event) SetVariable() (SetVariable, bool) {
	return e.variable, e.typ == TypeSetVariable
}

func (e Event) MouseKey() (mousekey.Value, bool) {
	return e.mouseKey, e.typ == TypeMouseKey
}

func (e Event) String() string {
	switch e.typ {
	case TypeMomentarySwitch:
		if e.direction == DirectionUnset {
			return e.switchEvent.String()
		}
		return fmt.Sprintf("%s %s", e.direction, e.switchEvent)
	case TypeShellCommand:
		return fmt.Sprintf("shell_command %q", e.shellCommand)
	case TypeSelectInputSource:
		specs := make([]string, 0, len(e.inputSources))
		for _, s := range e.inputSources {
			specs = append(specs, "{"+s.String()+"}")
		}
		return "select_input_source " + strings.Join(specs, ",")
	case TypeSetVariable:
		return fmt.Sprintf("set_variable %s=%d", e.variable.Name, e.variable.Value)
	case TypeMouseKey:
		return "mouse_key " + e.mouseKey.String()
	default:
		return "none"
	}
}
