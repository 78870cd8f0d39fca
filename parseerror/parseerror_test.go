package parseerror_test

import (
	"errors"
	"testing"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/parseerror"
	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	obj := jsonvalue.MustParse(`{"key_code":"a","shell_command":"x"}`)
	err := parseerror.Wrap("to", parseerror.DuplicateType(obj))

	assert.True(t, errors.Is(err, parseerror.ErrDuplicateType))
	assert.False(t, errors.Is(err, parseerror.ErrInvalidForm))
	assert.Contains(t, err.Error(), "`to` error: duplicated type definition")
	assert.Contains(t, err.Error(), obj.Dump())

	var pe *parseerror.Error
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, parseerror.KindDuplicateType, pe.Kind)
}

func TestMessages(t *testing.T) {
	type testCase struct {
		name string
		err  *parseerror.Error
		want string
	}
	v := jsonvalue.MustParse(`{"name":"x"}`)
	cases := []testCase{
		{name: "invalid form", err: parseerror.InvalidForm("shell_command", "string", jsonvalue.MustParse(`1`)), want: "`shell_command` must be string, but is `1`"},
		{name: "unknown value", err: parseerror.UnknownValue("any", jsonvalue.MustParse(`"mouse"`)), want: "unknown value of any: `\"mouse\"`"},
		{name: "missing field", err: parseerror.MissingField("set_variable", "value", v), want: "`set_variable.value` is not found in `{\"name\":\"x\"}`"},
		{name: "unknown category", err: parseerror.UnknownCategoryName("hyper"), want: `unknown modifier: "hyper"`},
		{name: "bare sentinel", err: parseerror.ErrUnknownKey, want: "unknown key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, parseerror.Wrap("x", nil))
}
