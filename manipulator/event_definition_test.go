package manipulator_test

import (
	"errors"
	"testing"

	"github.com/Alia5/remapper/event"
	"github.com/Alia5/remapper/hid"
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/manipulator"
	"github.com/Alia5/remapper/mousekey"
	"github.com/Alia5/remapper/parseerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDefinition feeds every member of in to a fresh definition and
// fails on members it does not handle.
func parseDefinition(t *testing.T, in string) (manipulator.EventDefinition, error) {
	t.Helper()
	v := jsonvalue.MustParse(in)
	var d manipulator.EventDefinition
	for _, m := range v.Members() {
		handled, err := d.HandleKey(m.Key, m.Value, v)
		if err != nil {
			return d, err
		}
		require.True(t, handled, "key %q not handled", m.Key)
	}
	return d, nil
}

func mustLookup(t *testing.T, key, name string) hid.MomentarySwitchEvent {
	t.Helper()
	e, ok := hid.Lookup(key, name)
	require.True(t, ok, "%s:%s", key, name)
	return e
}

func TestHandleKey(t *testing.T) {
	type testCase struct {
		name     string
		in       string
		wantType manipulator.Type
		wantErr  error
	}
	cases := []testCase{
		{name: "key_code", in: `{"key_code":"a"}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "numeric key_code", in: `{"key_code":4}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "consumer", in: `{"consumer_key_code":"mute"}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "pointing button", in: `{"pointing_button":"button2"}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "apple keyboard", in: `{"apple_vendor_keyboard_key_code":"spotlight"}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "apple top case", in: `{"apple_vendor_top_case_key_code":"keyboard_fn"}`, wantType: manipulator.TypeMomentarySwitchEvent},
		{name: "any", in: `{"any":"key_code"}`, wantType: manipulator.TypeAny},
		{name: "shell command with description", in: `{"shell_command":"x","description":"y"}`, wantType: manipulator.TypeShellCommand},
		{name: "description only", in: `{"description":"y"}`, wantType: manipulator.TypeNone},
		{name: "select input source object", in: `{"select_input_source":{"language":"^en$"}}`, wantType: manipulator.TypeSelectInputSource},
		{name: "select input source array", in: `{"select_input_source":[{"language":"^en$"},{"input_source_id":"US"}]}`, wantType: manipulator.TypeSelectInputSource},
		{name: "set variable", in: `{"set_variable":{"name":"v","value":1,"description":"d"}}`, wantType: manipulator.TypeSetVariable},
		{name: "mouse key", in: `{"mouse_key":{"x":100}}`, wantType: manipulator.TypeMouseKey},

		{name: "duplicate same key", in: `{"key_code":"a","key_code":"b"}`, wantErr: parseerror.ErrDuplicateType},
		{name: "duplicate key then consumer", in: `{"key_code":"a","consumer_key_code":"mute"}`, wantErr: parseerror.ErrDuplicateType},
		{name: "duplicate consumer then key", in: `{"consumer_key_code":"mute","key_code":"a"}`, wantErr: parseerror.ErrDuplicateType},
		{name: "duplicate shell then mouse", in: `{"shell_command":"x","mouse_key":{}}`, wantErr: parseerror.ErrDuplicateType},
		{name: "duplicate any then key", in: `{"any":"key_code","key_code":"a"}`, wantErr: parseerror.ErrDuplicateType},
		{name: "unknown key name", in: `{"key_code":"not_a_key"}`, wantErr: parseerror.ErrUnknownValue},
		{name: "key_code bool", in: `{"key_code":true}`, wantErr: parseerror.ErrInvalidForm},
		{name: "unknown any", in: `{"any":"keyboard"}`, wantErr: parseerror.ErrUnknownValue},
		{name: "any number", in: `{"any":1}`, wantErr: parseerror.ErrInvalidForm},
		{name: "shell command number", in: `{"shell_command":1}`, wantErr: parseerror.ErrInvalidForm},
		{name: "select input source string", in: `{"select_input_source":"en"}`, wantErr: parseerror.ErrInvalidForm},
		{name: "select input source bad entry", in: `{"select_input_source":[{"language":"en"},"ja"]}`, wantErr: parseerror.ErrInvalidForm},
		{name: "set variable not object", in: `{"set_variable":"v"}`, wantErr: parseerror.ErrInvalidForm},
		{name: "set variable missing name", in: `{"set_variable":{"value":1}}`, wantErr: parseerror.ErrMissingField},
		{name: "set variable missing value", in: `{"set_variable":{"name":"v"}}`, wantErr: parseerror.ErrMissingField},
		{name: "set variable unknown field", in: `{"set_variable":{"name":"v","value":1,"type":"x"}}`, wantErr: parseerror.ErrUnknownField},
		{name: "set variable string value", in: `{"set_variable":{"name":"v","value":"1"}}`, wantErr: parseerror.ErrInvalidForm},
		{name: "set variable value past int range", in: `{"set_variable":{"name":"n","value":9223372036854775808}}`, wantErr: parseerror.ErrInvalidForm},
		{name: "mouse key not object", in: `{"mouse_key":1}`, wantErr: parseerror.ErrInvalidForm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := parseDefinition(t, tc.in)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, d.Type())
		})
	}
}

func TestHandleKeyUnrecognized(t *testing.T) {
	var d manipulator.EventDefinition
	v := jsonvalue.MustParse(`{"modifiers":["shift"]}`)
	handled, err := d.HandleKey("modifiers", jsonvalue.MustParse(`["shift"]`), v)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, manipulator.TypeNone, d.Type())
}

func TestDuplicateTypeNamesEnclosingObject(t *testing.T) {
	_, err := parseDefinition(t, `{"key_code":"a","shell_command":"ls"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `{"key_code":"a","shell_command":"ls"}`)
}

func TestToEvent(t *testing.T) {
	type testCase struct {
		name     string
		in       string
		wantOK   bool
		wantType event.Type
	}
	cases := []testCase{
		{name: "none", in: `{}`, wantOK: false},
		{name: "any", in: `{"any":"pointing_button"}`, wantOK: false},
		{name: "key", in: `{"key_code":"a"}`, wantOK: true, wantType: event.TypeMomentarySwitch},
		{name: "shell", in: `{"shell_command":"open -a Safari"}`, wantOK: true, wantType: event.TypeShellCommand},
		{name: "input source", in: `{"select_input_source":{"language":"en"}}`, wantOK: true, wantType: event.TypeSelectInputSource},
		{name: "variable", in: `{"set_variable":{"name":"v","value":2}}`, wantOK: true, wantType: event.TypeSetVariable},
		{name: "mouse", in: `{"mouse_key":{"y":-1536}}`, wantOK: true, wantType: event.TypeMouseKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := parseDefinition(t, tc.in)
			require.NoError(t, err)
			e, ok := d.ToEvent()
			assert.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.wantType, e.Type())
			}
		})
	}
}

func TestToEventPayloads(t *testing.T) {
	d, err := parseDefinition(t, `{"key_code":"left_option"}`)
	require.NoError(t, err)
	e, _ := d.ToEvent()
	sw, ok := e.MomentarySwitchEvent()
	require.True(t, ok)
	assert.Equal(t, mustLookup(t, hid.KeyCode, "left_alt"), sw)

	d, err = parseDefinition(t, `{"shell_command":"echo hi"}`)
	require.NoError(t, err)
	e, _ = d.ToEvent()
	cmd, ok := e.ShellCommand()
	require.True(t, ok)
	assert.Equal(t, "echo hi", cmd)

	d, err = parseDefinition(t, `{"set_variable":{"name":"mode","value":3}}`)
	require.NoError(t, err)
	e, _ = d.ToEvent()
	sv, ok := e.SetVariable()
	require.True(t, ok)
	assert.Equal(t, event.SetVariable{Name: "mode", Value: 3}, sv)

	d, err = parseDefinition(t, `{"mouse_key":{"x":10,"speed_multiplier":2}}`)
	require.NoError(t, err)
	e, _ = d.ToEvent()
	mk, ok := e.MouseKey()
	require.True(t, ok)
	assert.Equal(t, mousekey.Value{X: 10, SpeedMultiplier: 2}, mk)

	d, err = parseDefinition(t, `{"select_input_source":[{"language":"^en$"},{"language":"^ja$"}]}`)
	require.NoError(t, err)
	e, _ = d.ToEvent()
	specs, ok := e.InputSources()
	require.True(t, ok)
	require.Len(t, specs, 2)
	assert.Equal(t, "^ja$", *specs[1].Language)
}

func TestMatches(t *testing.T) {
	a := mustLookup(t, hid.KeyCode, "a")
	b := mustLookup(t, hid.KeyCode, "b")
	mute := mustLookup(t, hid.ConsumerKeyCode, "mute")
	button1 := mustLookup(t, hid.PointingButton, "button1")

	type testCase struct {
		name string
		in   string
		ev   hid.MomentarySwitchEvent
		want bool
	}
	cases := []testCase{
		{name: "same key", in: `{"key_code":"a"}`, ev: a, want: true},
		{name: "other key", in: `{"key_code":"a"}`, ev: b, want: false},
		{name: "any key_code", in: `{"any":"key_code"}`, ev: b, want: true},
		{name: "any key_code rejects consumer", in: `{"any":"key_code"}`, ev: mute, want: false},
		{name: "any consumer", in: `{"any":"consumer_key_code"}`, ev: mute, want: true},
		{name: "any pointing button", in: `{"any":"pointing_button"}`, ev: button1, want: true},
		{name: "any rejects invalid", in: `{"any":"key_code"}`, ev: hid.MomentarySwitchEvent{UsagePage: hid.PageKeyboardOrKeypad}, want: false},
		{name: "shell never matches", in: `{"shell_command":"x"}`, ev: a, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := parseDefinition(t, tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Matches(tc.ev))
		})
	}
}
