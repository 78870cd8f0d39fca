package manipulator

import (
	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/modifier"
	"github.com/Alia5/remapper/parseerror"
)

// TypeBasic is the only manipulator type this package builds.
const TypeBasic = "basic"

// DelayedAction holds the to_delayed_action lists.
type DelayedAction struct {
	ToIfInvoked  []ToEventDefinition
	ToIfCanceled []ToEventDefinition
}

// Basic maps a from definition to the to lists sent at each stage of the
// key press. Conditions and parameters are kept as written; they are
// evaluated by the dispatcher.
type Basic struct {
	Description     string
	From            FromEventDefinition
	To              []ToEventDefinition
	ToIfAlone       []ToEventDefinition
	ToAfterKeyUp    []ToEventDefinition
	ToIfHeldDown    []ToEventDefinition
	ToDelayedAction *DelayedAction
	Conditions      []jsonvalue.Value
	Parameters      jsonvalue.Value
}

// ParseBasic parses a manipulator object of type basic.
func ParseBasic(v jsonvalue.Value) (Basic, error) {
	var b Basic
	if !v.IsObject() {
		return b, parseerror.InvalidForm("manipulator", "object", v)
	}

	hasFrom := false
	for _, m := range v.Members() {
		var err error
		switch m.Key {
		case "type":
			if s, _ := m.Value.AsString(); s != TypeBasic {
				err = parseerror.UnknownValue("type", m.Value)
			}
		case "description":
			s, ok := m.Value.AsString()
			if !ok {
				err = parseerror.InvalidForm(m.Key, "string", m.Value)
			}
			b.Description = s
		case "from":
			b.From, err = ParseFromEventDefinition(m.Value)
			err = parseerror.Wrap(m.Key, err)
			hasFrom = true
		case "to":
			b.To, err = ParseToEventDefinitions(m.Key, m.Value)
		case "to_if_alone":
			b.ToIfAlone, err = ParseToEventDefinitions(m.Key, m.Value)
		case "to_after_key_up":
			b.ToAfterKeyUp, err = ParseToEventDefinitions(m.Key, m.Value)
		case "to_if_held_down":
			b.ToIfHeldDown, err = ParseToEventDefinitions(m.Key, m.Value)
		case "to_delayed_action":
			b.ToDelayedAction, err = parseDelayedAction(m.Value)
			err = parseerror.Wrap(m.Key, err)
		case "conditions":
			if !m.Value.IsArray() {
				err = parseerror.InvalidForm(m.Key, "array", m.Value)
			}
			b.Conditions = m.Value.Elements()
		case "parameters":
			if !m.Value.IsObject() {
				err = parseerror.InvalidForm(m.Key, "object", m.Value)
			}
			b.Parameters = m.Value
		default:
			err = parseerror.UnknownKey(m.Key, v)
		}
		if err != nil {
			return Basic{}, err
		}
	}

	if !hasFrom {
		return Basic{}, parseerror.MissingField("manipulator", "from", v)
	}
	return b, nil
}

func parseDelayedAction(v jsonvalue.Value) (*DelayedAction, error) {
	if !v.IsObject() {
		return nil, parseerror.InvalidForm("to_delayed_action", "object", v)
	}
	a := &DelayedAction{}
	for _, m := range v.Members() {
		var err error
		switch m.Key {
		case "to_if_invoked":
			a.ToIfInvoked, err = ParseToEventDefinitions(m.Key, m.Value)
		case "to_if_canceled":
			a.ToIfCanceled, err = ParseToEventDefinitions(m.Key, m.Value)
		default:
			err = parseerror.UnknownKey(m.Key, v)
		}
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// NeedsPointingDevice reports whether any to list sends pointer events.
func (b Basic) NeedsPointingDevice() bool {
	lists := [][]ToEventDefinition{b.To, b.ToIfAlone, b.ToAfterKeyUp, b.ToIfHeldDown, b.From.SimultaneousOptions.ToAfterKeyUp}
	if b.ToDelayedAction != nil {
		lists = append(lists, b.ToDelayedAction.ToIfInvoked, b.ToDelayedAction.ToIfCanceled)
	}
	for _, l := range lists {
		for _, d := range l {
			if d.NeedsPointingDevice() {
				return true
			}
		}
	}
	return false
}

// Result is the outcome of a matched manipulator.
type Result struct {
	// Consumed are the physical modifiers the from side matched. They are
	// released while the to events are held.
	Consumed modifier.FlagSet
	// KeyDown is sent when the from keys are pressed.
	KeyDown []event.Event
	// KeyUp is sent when the from keys are released.
	KeyUp []event.Event
}

// Apply tests keys, in press order, and the modifier snapshot q against the
// from side. On a match it returns the events to send.
func (b Basic) Apply(keys []hid.MomentarySwitchEvent, q modifier.FlagQuery) (Result, bool) {
	if !b.testKeys(keys) {
		return Result{}, false
	}
	consumed, ok := b.From.TestModifiers(q)
	if !ok {
		return Result{}, false
	}

	r := Result{Consumed: consumed}
	for _, f := range consumed.Slice() {
		r.KeyDown = append(r.KeyDown, event.KeyUp(hid.FromModifierFlag(f)))
	}

	halt := false
	for _, to := range b.To {
		down, up := toEvents(to)
		r.KeyDown = append(r.KeyDown, down...)
		r.KeyUp = append(up, r.KeyUp...)
		halt = halt || to.Halt
	}

	for _, f := range consumed.Slice() {
		r.KeyUp = append(r.KeyUp, event.KeyDown(hid.FromModifierFlag(f)))
	}
	if !halt {
		for _, to := range b.ToAfterKeyUp {
			down, up := toEvents(to)
			r.KeyUp = append(r.KeyUp, down...)
			r.KeyUp = append(r.KeyUp, up...)
		}
	}
	return r, true
}

func (b Basic) testKeys(keys []hid.MomentarySwitchEvent) bool {
	if len(keys) != len(b.From.Events) {
		return false
	}
	for _, k := range keys {
		if !b.From.TestEvent(k) {
			return false
		}
	}
	used := make([]bool, len(keys))
	for _, def := range b.From.Events {
		found := false
		for i, k := range keys {
			if !used[i] && def.Matches(k) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return b.From.TestKeyOrder(keys, b.From.SimultaneousOptions.KeyDownOrder)
}

// toEvents splits one to definition into the events sent on press and on
// release. Keys and modifiers are released in reverse order.
func toEvents(to ToEventDefinition) (down, up []event.Event) {
	mods := to.ModifierPressEvents()
	down = append(down, mods...)

	e, ok := to.Event.ToEvent()
	if !ok {
		return down, nil
	}
	if sw, ok := e.MomentarySwitchEvent(); ok {
		down = append(down, event.KeyDown(sw))
		up = append(up, event.KeyUp(sw))
	} else {
		down = append(down, e)
	}

	for i := len(mods) - 1; i >= 0; i-- {
		up = append(up, mods[i].WithDirection(event.DirectionKeyUp))
	}
	return down, up
}

// ErrorHandler decides what happens to a manipulator that fails to parse.
// Returning nil skips the manipulator; returning an error aborts the rule.
type ErrorHandler func(index int, err error) error

// Rule is a named group of manipulators.
type Rule struct {
	Description  string
	Enabled      bool
	Manipulators []Basic
}

// ParseRule parses a rule object. Manipulator errors go through onError; a
// nil onError aborts on the first one.
func ParseRule(v jsonvalue.Value, onError ErrorHandler) (Rule, error) {
	r := Rule{Enabled: true}
	if !v.IsObject() {
		return r, parseerror.InvalidForm("rule", "object", v)
	}

	for _, m := range v.Members() {
		switch m.Key {
		case "description":
			s, ok := m.Value.AsString()
			if !ok {
				return Rule{}, parseerror.InvalidForm(m.Key, "string", m.Value)
			}
			r.Description = s
		case "enabled":
			b, ok := m.Value.AsBool()
			if !ok {
				return Rule{}, parseerror.InvalidForm(m.Key, "boolean", m.Value)
			}
			r.Enabled = b
		case "available_since":
		case "manipulators":
			if !m.Value.IsArray() {
				return Rule{}, parseerror.InvalidForm(m.Key, "array", m.Value)
			}
			for i, e := range m.Value.Elements() {
				b, err := ParseBasic(e)
				if err == nil {
					r.Manipulators = append(r.Manipulators, b)
					continue
				}
				if onError == nil {
					return Rule{}, err
				}
				if err := onError(i, err); err != nil {
					return Rule{}, err
				}
			}
		default:
			return Rule{}, parseerror.UnknownKey(m.Key, v)
		}
	}
	return r, nil
}
