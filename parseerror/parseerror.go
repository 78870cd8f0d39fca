// Package parseerror defines the single error type returned while parsing
// remapping rules.
package parseerror

import (
	"errors"
	"fmt"

	"github.com/Alia5/remapper/jsonvalue"
)

// Kind classifies a configuration error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDuplicateType
	KindInvalidForm
	KindUnknownValue
	KindMissingField
	KindUnknownField
	KindInvalidEventType
	KindUnknownKey
	KindUnknownModifierName
	KindUnknownCategoryName
)

var kindNames = [...]string{
	KindUnknown:             "unknown",
	KindDuplicateType:       "duplicate type",
	KindInvalidForm:         "invalid form",
	KindUnknownValue:        "unknown value",
	KindMissingField:        "missing field",
	KindUnknownField:        "unknown field",
	KindInvalidEventType:    "invalid event type",
	KindUnknownKey:          "unknown key",
	KindUnknownModifierName: "unknown modifier name",
	KindUnknownCategoryName: "unknown category name",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error is a configuration error raised while parsing a rule document.
type Error struct {
	Kind Kind
	// Detail is a human-readable explanation including the offending JSON.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Detail
}

// Is reports whether target is an *Error of the same kind, so sentinel
// values such as ErrDuplicateType can be matched with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrDuplicateType       = &Error{Kind: KindDuplicateType}
	ErrInvalidForm         = &Error{Kind: KindInvalidForm}
	ErrUnknownValue        = &Error{Kind: KindUnknownValue}
	ErrMissingField        = &Error{Kind: KindMissingField}
	ErrUnknownField        = &Error{Kind: KindUnknownField}
	ErrInvalidEventType    = &Error{Kind: KindInvalidEventType}
	ErrUnknownKey          = &Error{Kind: KindUnknownKey}
	ErrUnknownModifierName = &Error{Kind: KindUnknownModifierName}
	ErrUnknownCategoryName = &Error{Kind: KindUnknownCategoryName}
)

// DuplicateType reports a second type-bearing key on one event definition.
func DuplicateType(enclosing jsonvalue.Value) *Error {
	return &Error{Kind: KindDuplicateType, Detail: fmt.Sprintf("duplicated type definition: `%s`", enclosing.DumpForError())}
}

// InvalidForm reports a recognized key whose value has the wrong shape.
func InvalidForm(key, expected string, value jsonvalue.Value) *Error {
	return &Error{Kind: KindInvalidForm, Detail: fmt.Sprintf("`%s` must be %s, but is `%s`", key, expected, value.DumpForError())}
}

// UnknownValue reports a value outside the set permitted for key.
func UnknownValue(key string, value jsonvalue.Value) *Error {
	return &Error{Kind: KindUnknownValue, Detail: fmt.Sprintf("unknown value of %s: `%s`", key, value.DumpForError())}
}

// MissingField reports a required field absent from an object.
func MissingField(key, field string, object jsonvalue.Value) *Error {
	return &Error{Kind: KindMissingField, Detail: fmt.Sprintf("`%s.%s` is not found in `%s`", key, field, object.DumpForError())}
}

// UnknownField reports an unexpected field inside a nested object.
func UnknownField(key, field string, object jsonvalue.Value) *Error {
	return &Error{Kind: KindUnknownField, Detail: fmt.Sprintf("unknown key `%s` in %s: `%s`", field, key, object.DumpForError())}
}

// InvalidEventType reports an event definition whose resolved type is not
// permitted where it appears.
func InvalidEventType(object jsonvalue.Value) *Error {
	return &Error{Kind: KindInvalidEventType, Detail: fmt.Sprintf("event type is invalid: `%s`", object.DumpForError())}
}

// UnknownKey reports a member that no handler recognizes.
func UnknownKey(key string, object jsonvalue.Value) *Error {
	return &Error{Kind: KindUnknownKey, Detail: fmt.Sprintf("unknown key `%s` in `%s`", key, object.DumpForError())}
}

// UnknownModifierName reports an unrecognized physical modifier name.
func UnknownModifierName(name string) *Error {
	return &Error{Kind: KindUnknownModifierName, Detail: fmt.Sprintf("unknown modifier name: %q", name)}
}

// UnknownCategoryName reports an unrecognized modifier category name.
func UnknownCategoryName(name string) *Error {
	return &Error{Kind: KindUnknownCategoryName, Detail: fmt.Sprintf("unknown modifier: %q", name)}
}

// Wrap prefixes err with the key it occurred under, keeping the kind
// reachable through errors.Is.
func Wrap(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("`%s` error: %w", key, err)
}
