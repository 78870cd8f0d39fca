// Package inputsource selects keyboard input sources (layouts and input
// methods) by regular expressions over their identifiers.
package inputsource

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/parseerror"
)

// matchTimeout bounds a single pattern evaluation against user-authored
// expressions.
const matchTimeout = 100 * time.Millisecond

// Identifiers describe the current input source. Unknown fields are nil.
type Identifiers struct {
	Language      *string
	InputSourceID *string
	InputModeID   *string
}

// Specifier selects input sources. Every present pattern must be found in
// the matching identifier; an empty Specifier matches every input source.
type Specifier struct {
	Language      *string
	InputSourceID *string
	InputModeID   *string

	language      *regexp2.Regexp
	inputSourceID *regexp2.Regexp
	inputModeID   *regexp2.Regexp
}

// FromJSON parses a specifier object such as
// {"language": "^en$", "input_source_id": "^com\\.apple\\.keylayout\\.US$"}.
func FromJSON(v jsonvalue.Value) (Specifier, error) {
	var s Specifier
	if !v.IsObject() {
		return s, parseerror.InvalidForm("input_source", "object", v)
	}

	for _, m := range v.Members() {
		var target **string
		switch m.Key {
		case "language":
			target = &s.Language
		case "input_source_id":
			target = &s.InputSourceID
		case "input_mode_id":
			target = &s.InputModeID
		default:
			return Specifier{}, parseerror.UnknownField("input_source", m.Key, v)
		}

		str, ok := m.Value.AsString()
		if !ok {
			return Specifier{}, parseerror.InvalidForm("input_source."+m.Key, "string", m.Value)
		}
		*target = &str
	}

	if err := s.compile(); err != nil {
		return Specifier{}, parseerror.Wrap("input_source", err)
	}
	return s, nil
}

// New builds a specifier from raw patterns. Empty strings are treated as
// absent.
func New(language, inputSourceID, inputModeID string) (Specifier, error) {
	s := Specifier{
		Language:      optional(language),
		InputSourceID: optional(inputSourceID),
		InputModeID:   optional(inputModeID),
	}
	if err := s.compile(); err != nil {
		return Specifier{}, err
	}
	return s, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Specifier) compile() error {
	var err error
	if s.language, err = compile("language", s.Language); err != nil {
		return err
	}
	if s.inputSourceID, err = compile("input_source_id", s.InputSourceID); err != nil {
		return err
	}
	if s.inputModeID, err = compile("input_mode_id", s.InputModeID); err != nil {
		return err
	}
	return nil
}

func compile(key string, pattern *string) (*regexp2.Regexp, error) {
	if pattern == nil {
		return nil, nil
	}
	re, err := regexp2.Compile(*pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, parseerror.InvalidForm(key, "a valid regular expression", jsonvalue.String(*pattern))
	}
	re.MatchTimeout = matchTimeout
	return re, nil
}

// Test reports whether ids satisfy every present pattern. A pattern whose
// identifier is unknown fails.
func (s Specifier) Test(ids Identifiers) bool {
	return search(s.language, ids.Language) &&
		search(s.inputSourceID, ids.InputSourceID) &&
		search(s.inputModeID, ids.InputModeID)
}

func search(re *regexp2.Regexp, v *string) bool {
	if re == nil {
		return true
	}
	if v == nil {
		return false
	}
	ok, err := re.MatchString(*v)
	return err == nil && ok
}

// Equal compares the source patterns.
func (s Specifier) Equal(o Specifier) bool {
	return eq(s.Language, o.Language) && eq(s.InputSourceID, o.InputSourceID) && eq(s.InputModeID, o.InputModeID)
}

func eq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s Specifier) String() string {
	show := func(p *string) string {
		if p == nil {
			return "---"
		}
		return *p
	}
	var b strings.Builder
	b.WriteString("language:")
	b.WriteString(show(s.Language))
	b.WriteString(",input_source_id:")
	b.WriteString(show(s.InputSourceID))
	b.WriteString(",input_mode_id:")
	b.WriteString(show(s.InputModeID))
	return b.String()
}
