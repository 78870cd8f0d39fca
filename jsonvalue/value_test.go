package jsonvalue_test

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsMemberOrder(t *testing.T) {
	v, err := jsonvalue.Parse([]byte(`{"z":1,"a":[true,null,"x"],"m":{"k":1.5}}`))
	require.NoError(t, err)
	require.True(t, v.IsObject())

	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
	assert.Equal(t, `{"z":1,"a":[true,null,"x"],"m":{"k":1.5}}`, v.Dump())
}

func TestParseDuplicateKeysArePreserved(t *testing.T) {
	v := jsonvalue.MustParse(`{"key_code":"a","key_code":"b"}`)
	require.Len(t, v.Members(), 2)

	first, ok := v.Get("key_code")
	require.True(t, ok)
	s, _ := first.AsString()
	assert.Equal(t, "a", s)
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `[1,]`, `{} {}`} {
		t.Run(in, func(t *testing.T) {
			_, err := jsonvalue.Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestAsInt(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want int
		ok   bool
	}
	cases := []testCase{
		{name: "integer", in: `42`, want: 42, ok: true},
		{name: "negative", in: `-7`, want: -7, ok: true},
		{name: "integral float", in: `3.0`, want: 3, ok: true},
		{name: "exponent", in: `1e2`, want: 100, ok: true},
		{name: "fraction", in: `1.5`, ok: false},
		{name: "string", in: `"1"`, ok: false},
		{name: "max int", in: `9223372036854775807`, want: math.MaxInt, ok: true},
		{name: "min int", in: `-9223372036854775808`, want: math.MinInt, ok: true},
		{name: "one past max int", in: `9223372036854775808`, ok: false},
		{name: "2^63 as exponent", in: `9.223372036854775808e18`, ok: false},
		{name: "below min int", in: `-1e19`, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := jsonvalue.MustParse(tc.in).AsInt()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestKindAccessors(t *testing.T) {
	v := jsonvalue.MustParse(`[null,false,"s",2,{}]`)
	els := v.Elements()
	require.Len(t, els, 5)
	assert.True(t, els[0].IsNull())
	b, ok := els[1].AsBool()
	assert.True(t, ok)
	assert.False(t, b)
	assert.Equal(t, jsonvalue.KindString, els[2].Kind())
	f, ok := els[3].AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 2.0, f)
	assert.True(t, els[4].IsObject())
	assert.Nil(t, els[2].Members())
	assert.Nil(t, v.Members())
}

func TestDumpForErrorTruncates(t *testing.T) {
	long := `"` + strings.Repeat("x", 1000) + `"`
	s := jsonvalue.MustParse(long).DumpForError()
	assert.True(t, strings.HasSuffix(s, "..."))
	assert.Less(t, len(s), 300)

	// "é" is two bytes, so a cut at byte 256 lands inside a rune.
	wide := `"` + strings.Repeat("é", 300) + `"`
	s = jsonvalue.MustParse(wide).DumpForError()
	assert.True(t, utf8.ValidString(s), "got %q", s)
	assert.True(t, strings.HasSuffix(s, "é..."))

	assert.Equal(t, `{"a":"<b>"}`, jsonvalue.MustParse(`{"a":"<b>"}`).DumpForError())
}
