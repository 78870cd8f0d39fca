package manipulator_test

import (
	"errors"
	"testing"

	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/manipulator"
	"github.com/Alia5/remapper/modifier"
	"github.com/Alia5/remapper/parseerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromModifiers(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    manipulator.FromModifiers
		wantErr error
	}
	cases := []testCase{
		{name: "empty", in: `{}`},
		{
			name: "mandatory and optional",
			in:   `{"mandatory":["command","shift"],"optional":"any"}`,
			want: manipulator.FromModifiers{
				Mandatory: modifier.NewSet(modifier.CategoryCommand, modifier.CategoryShift),
				Optional:  modifier.NewSet(modifier.CategoryAny),
			},
		},
		{name: "not object", in: `["shift"]`, wantErr: parseerror.ErrInvalidForm},
		{name: "unknown key", in: `{"required":["shift"]}`, wantErr: parseerror.ErrUnknownKey},
		{name: "unknown category", in: `{"mandatory":["super"]}`, wantErr: parseerror.ErrUnknownCategoryName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := manipulator.ParseFromModifiers(jsonvalue.MustParse(tc.in))
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFromEventDefinition(t *testing.T) {
	type testCase struct {
		name       string
		in         string
		wantEvents int
		wantErr    error
	}
	cases := []testCase{
		{name: "single key", in: `{"key_code":"a"}`, wantEvents: 1},
		{name: "any", in: `{"any":"key_code","modifiers":{"mandatory":"fn"}}`, wantEvents: 1},
		{name: "simultaneous", in: `{"simultaneous":[{"key_code":"j"},{"key_code":"k"}],"simultaneous_options":{"key_down_order":"strict"}}`, wantEvents: 2},
		{name: "simultaneous wins over single", in: `{"key_code":"a","simultaneous":[{"key_code":"j"},{"key_code":"k"}]}`, wantEvents: 2},
		{name: "no event", in: `{"modifiers":{"mandatory":"shift"}}`, wantErr: parseerror.ErrInvalidEventType},
		{name: "shell command not allowed", in: `{"shell_command":"x"}`, wantErr: parseerror.ErrInvalidEventType},
		{name: "mouse key not allowed", in: `{"mouse_key":{"x":1}}`, wantErr: parseerror.ErrInvalidEventType},
		{name: "unknown key", in: `{"key_code":"a","lazy":true}`, wantErr: parseerror.ErrUnknownKey},
		{name: "simultaneous not array", in: `{"simultaneous":{"key_code":"j"}}`, wantErr: parseerror.ErrInvalidForm},
		{name: "simultaneous unknown key", in: `{"simultaneous":[{"key_code":"j","modifiers":"shift"}]}`, wantErr: parseerror.ErrUnknownKey},
		{name: "simultaneous empty entry", in: `{"simultaneous":[{}]}`, wantErr: parseerror.ErrInvalidEventType},
		{name: "key_up_when all", in: `{"key_code":"a","simultaneous_options":{"key_up_when":"all"}}`, wantEvents: 1},
		{name: "unknown key_up_when", in: `{"key_code":"a","simultaneous_options":{"key_up_when":"some"}}`, wantErr: parseerror.ErrUnknownValue},
		{name: "key_up_when not string", in: `{"key_code":"a","simultaneous_options":{"key_up_when":1}}`, wantErr: parseerror.ErrInvalidForm},
		{name: "bad key order", in: `{"key_code":"a","simultaneous_options":{"key_down_order":"random"}}`, wantErr: parseerror.ErrUnknownValue},
		{name: "bad modifiers", in: `{"key_code":"a","modifiers":"shift"}`, wantErr: parseerror.ErrInvalidForm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := manipulator.ParseFromEventDefinition(jsonvalue.MustParse(tc.in))
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, d.Events, tc.wantEvents)
		})
	}
}

func TestFromTestEvent(t *testing.T) {
	a := mustLookup(t, hid.KeyCode, "a")
	j := mustLookup(t, hid.KeyCode, "j")
	mute := mustLookup(t, hid.ConsumerKeyCode, "mute")

	type testCase struct {
		name      string
		in        string
		wantSimul bool
		matches   []hid.MomentarySwitchEvent
		rejects   []hid.MomentarySwitchEvent
	}
	cases := []testCase{
		{
			name:    "single key",
			in:      `{"key_code":"a"}`,
			matches: []hid.MomentarySwitchEvent{a},
			rejects: []hid.MomentarySwitchEvent{j, mute},
		},
		{
			name:      "simultaneous",
			in:        `{"simultaneous":[{"key_code":"j"},{"consumer_key_code":"mute"}]}`,
			wantSimul: true,
			matches:   []hid.MomentarySwitchEvent{j, mute},
			rejects:   []hid.MomentarySwitchEvent{a},
		},
		{
			name:    "any key_code",
			in:      `{"any":"key_code"}`,
			matches: []hid.MomentarySwitchEvent{a, j},
			rejects: []hid.MomentarySwitchEvent{mute},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := manipulator.ParseFromEventDefinition(jsonvalue.MustParse(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.wantSimul, d.IsSimultaneous())
			for _, e := range tc.matches {
				assert.True(t, d.TestEvent(e), "%s", e)
			}
			for _, e := range tc.rejects {
				assert.False(t, d.TestEvent(e), "%s", e)
			}
		})
	}
}

func TestTestKeyOrder(t *testing.T) {
	d, err := manipulator.ParseFromEventDefinition(jsonvalue.MustParse(`{"simultaneous":[{"key_code":"j"},{"key_code":"k"}]}`))
	require.NoError(t, err)
	j := mustLookup(t, hid.KeyCode, "j")
	k := mustLookup(t, hid.KeyCode, "k")

	type testCase struct {
		name  string
		keys  []hid.MomentarySwitchEvent
		order manipulator.KeyOrder
		want  bool
	}
	cases := []testCase{
		{name: "insensitive", keys: []hid.MomentarySwitchEvent{k, j}, order: manipulator.KeyOrderInsensitive, want: true},
		{name: "strict in order", keys: []hid.MomentarySwitchEvent{j, k}, order: manipulator.KeyOrderStrict, want: true},
		{name: "strict reversed", keys: []hid.MomentarySwitchEvent{k, j}, order: manipulator.KeyOrderStrict, want: false},
		{name: "strict inverse", keys: []hid.MomentarySwitchEvent{k, j}, order: manipulator.KeyOrderStrictInverse, want: true},
		{name: "strict inverse reversed", keys: []hid.MomentarySwitchEvent{j, k}, order: manipulator.KeyOrderStrictInverse, want: false},
		{name: "partial prefix", keys: []hid.MomentarySwitchEvent{j}, order: manipulator.KeyOrderStrict, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.TestKeyOrder(tc.keys, tc.order))
		})
	}
}

func TestParseBasic(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		wantErr error
	}
	cases := []testCase{
		{name: "minimal", in: `{"type":"basic","from":{"key_code":"a"}}`},
		{
			name: "full",
			in: `{"type":"basic","description":"d","from":{"key_code":"caps_lock"},
				"to":[{"key_code":"left_control"}],"to_if_alone":{"key_code":"escape"},
				"to_after_key_up":[{"set_variable":{"name":"v","value":0}}],
				"to_if_held_down":[{"key_code":"a","repeat":true}],
				"to_delayed_action":{"to_if_invoked":[{"shell_command":"x"}],"to_if_canceled":[]},
				"conditions":[{"type":"variable_if","name":"v","value":1}],
				"parameters":{"basic.to_if_alone_timeout_milliseconds":500}}`,
		},
		{name: "missing from", in: `{"type":"basic","to":{"key_code":"a"}}`, wantErr: parseerror.ErrMissingField},
		{name: "other type", in: `{"type":"mouse_motion_to_scroll","from":{"key_code":"a"}}`, wantErr: parseerror.ErrUnknownValue},
		{name: "unknown key", in: `{"type":"basic","from":{"key_code":"a"},"too":{}}`, wantErr: parseerror.ErrUnknownKey},
		{name: "bad to", in: `{"type":"basic","from":{"key_code":"a"},"to":1}`, wantErr: parseerror.ErrInvalidForm},
		{name: "bad conditions", in: `{"type":"basic","from":{"key_code":"a"},"conditions":{}}`, wantErr: parseerror.ErrInvalidForm},
		{name: "bad delayed action", in: `{"type":"basic","from":{"key_code":"a"},"to_delayed_action":{"to_if_done":[]}}`, wantErr: parseerror.ErrUnknownKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := manipulator.ParseBasic(jsonvalue.MustParse(tc.in))
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBasicNeedsPointingDevice(t *testing.T) {
	b, err := manipulator.ParseBasic(jsonvalue.MustParse(`{"from":{"key_code":"a"},"to_if_alone":{"pointing_button":"button3"}}`))
	require.NoError(t, err)
	assert.True(t, b.NeedsPointingDevice())

	b, err = manipulator.ParseBasic(jsonvalue.MustParse(`{"from":{"key_code":"a"},"to":{"key_code":"b"}}`))
	require.NoError(t, err)
	assert.False(t, b.NeedsPointingDevice())
}

func TestApply(t *testing.T) {
	b, err := manipulator.ParseBasic(jsonvalue.MustParse(`{
		"type": "basic",
		"from": {"key_code": "caps_lock", "modifiers": {"mandatory": ["command"], "optional": ["any"]}},
		"to": [{"key_code": "escape", "modifiers": ["control"]}],
		"to_after_key_up": [{"set_variable": {"name": "escaped", "value": 1}}]
	}`))
	require.NoError(t, err)

	capsLock := mustLookup(t, hid.KeyCode, "caps_lock")
	escape := mustLookup(t, hid.KeyCode, "escape")
	leftCommand := hid.FromModifierFlag(modifier.FlagLeftCommand)
	leftControl := hid.FromModifierFlag(modifier.FlagLeftControl)

	r, ok := b.Apply([]hid.MomentarySwitchEvent{capsLock}, modifier.NewFlagState(modifier.FlagLeftCommand, modifier.FlagLeftShift))
	require.True(t, ok)
	assert.Equal(t, modifier.NewFlagSet(modifier.FlagLeftCommand), r.Consumed)
	assert.Equal(t, []event.Event{
		event.KeyUp(leftCommand),
		event.KeyDown(leftControl),
		event.KeyDown(escape),
	}, r.KeyDown)
	assert.Equal(t, []event.Event{
		event.KeyUp(escape),
		event.KeyUp(leftControl),
		event.KeyDown(leftCommand),
		event.SetVariableEvent(event.SetVariable{Name: "escaped", Value: 1}),
	}, r.KeyUp)

	_, ok = b.Apply([]hid.MomentarySwitchEvent{capsLock}, modifier.NewFlagState())
	assert.False(t, ok, "mandatory command missing")

	_, ok = b.Apply([]hid.MomentarySwitchEvent{escape}, modifier.NewFlagState(modifier.FlagRightCommand))
	assert.False(t, ok, "other key")
}

func TestApplyHalt(t *testing.T) {
	b, err := manipulator.ParseBasic(jsonvalue.MustParse(`{
		"from": {"key_code": "a"},
		"to": [{"shell_command": "x", "halt": true}],
		"to_after_key_up": [{"key_code": "b"}]
	}`))
	require.NoError(t, err)

	r, ok := b.Apply([]hid.MomentarySwitchEvent{mustLookup(t, hid.KeyCode, "a")}, modifier.NewFlagState())
	require.True(t, ok)
	assert.Equal(t, []event.Event{event.ShellCommand("x")}, r.KeyDown)
	assert.Empty(t, r.KeyUp)
}

func TestApplySimultaneous(t *testing.T) {
	b, err := manipulator.ParseBasic(jsonvalue.MustParse(`{
		"from": {"simultaneous": [{"key_code": "j"}, {"key_code": "k"}], "simultaneous_options": {"key_down_order": "strict"}},
		"to": {"key_code": "escape"}
	}`))
	require.NoError(t, err)
	j := mustLookup(t, hid.KeyCode, "j")
	k := mustLookup(t, hid.KeyCode, "k")

	_, ok := b.Apply([]hid.MomentarySwitchEvent{j, k}, modifier.NewFlagState())
	assert.True(t, ok)
	_, ok = b.Apply([]hid.MomentarySwitchEvent{k, j}, modifier.NewFlagState())
	assert.False(t, ok)
	_, ok = b.Apply([]hid.MomentarySwitchEvent{j}, modifier.NewFlagState())
	assert.False(t, ok)
	_, ok = b.Apply([]hid.MomentarySwitchEvent{j, mustLookup(t, hid.KeyCode, "l")}, modifier.NewFlagState())
	assert.False(t, ok, "a key outside the from keys")
}

func TestParseRule(t *testing.T) {
	doc := jsonvalue.MustParse(`{
		"description": "caps lock",
		"manipulators": [
			{"type": "basic", "from": {"key_code": "caps_lock"}, "to": {"key_code": "escape"}},
			{"type": "basic", "from": {"key_code": "a", "key_code": "b"}}
		]
	}`)

	_, err := manipulator.ParseRule(doc, nil)
	assert.True(t, errors.Is(err, parseerror.ErrDuplicateType), "got %v", err)

	var skipped []int
	r, err := manipulator.ParseRule(doc, func(i int, err error) error {
		skipped = append(skipped, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "caps lock", r.Description)
	assert.True(t, r.Enabled)
	assert.Len(t, r.Manipulators, 1)
	assert.Equal(t, []int{1}, skipped)

	_, err = manipulator.ParseRule(jsonvalue.MustParse(`{"manipulators":{}}`), nil)
	assert.True(t, errors.Is(err, parseerror.ErrInvalidForm))
}
