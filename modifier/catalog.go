// Package modifier maps user-facing modifier categories to the physical
// modifier keys they stand for, and decides whether a rule's modifier
// preconditions hold against a snapshot of pressed keys.
package modifier

import (
	"fmt"

	"github.com/Alia5/remapper/parseerror"
)

// Category is a modifier token as written in rule documents.
// The declaration order is significant: matching walks categories in it.
type Category uint8

const (
	CategoryAny Category = iota
	CategoryCapsLock
	CategoryCommand
	CategoryControl
	CategoryFn
	CategoryLeftCommand
	CategoryLeftControl
	CategoryLeftOption
	CategoryLeftShift
	CategoryOption
	CategoryRightCommand
	CategoryRightControl
	CategoryRightOption
	CategoryRightShift
	CategoryShift

	// CategoryEnd bounds iteration; it is not a valid category.
	CategoryEnd
)

// Flag is a concrete, non-compound modifier key.
type Flag uint8

const (
	FlagZero Flag = iota
	FlagCapsLock
	FlagFn
	FlagLeftCommand
	FlagLeftControl
	FlagLeftOption
	FlagLeftShift
	FlagRightCommand
	FlagRightControl
	FlagRightOption
	FlagRightShift

	// FlagEnd bounds iteration; it is not a valid flag.
	FlagEnd
)

var categoryNames = [CategoryEnd]string{
	CategoryAny:          "any",
	CategoryCapsLock:     "caps_lock",
	CategoryCommand:      "command",
	CategoryControl:      "control",
	CategoryFn:           "fn",
	CategoryLeftCommand:  "left_command",
	CategoryLeftControl:  "left_control",
	CategoryLeftOption:   "left_option",
	CategoryLeftShift:    "left_shift",
	CategoryOption:       "option",
	CategoryRightCommand: "right_command",
	CategoryRightControl: "right_control",
	CategoryRightOption:  "right_option",
	CategoryRightShift:   "right_shift",
	CategoryShift:        "shift",
}

var flagNames = [FlagEnd]string{
	FlagZero:         "zero",
	FlagCapsLock:     "caps_lock",
	FlagFn:           "fn",
	FlagLeftCommand:  "left_command",
	FlagLeftControl:  "left_control",
	FlagLeftOption:   "left_option",
	FlagLeftShift:    "left_shift",
	FlagRightCommand: "right_command",
	FlagRightControl: "right_control",
	FlagRightOption:  "right_option",
	FlagRightShift:   "right_shift",
}

// categoryFlags lists the physical flags of each category. Compound
// categories list the left side first.
var categoryFlags = [CategoryEnd][]Flag{
	CategoryAny:          {},
	CategoryCapsLock:     {FlagCapsLock},
	CategoryCommand:      {FlagLeftCommand, FlagRightCommand},
	CategoryControl:      {FlagLeftControl, FlagRightControl},
	CategoryFn:           {FlagFn},
	CategoryLeftCommand:  {FlagLeftCommand},
	CategoryLeftControl:  {FlagLeftControl},
	CategoryLeftOption:   {FlagLeftOption},
	CategoryLeftShift:    {FlagLeftShift},
	CategoryOption:       {FlagLeftOption, FlagRightOption},
	CategoryRightCommand: {FlagRightCommand},
	CategoryRightControl: {FlagRightControl},
	CategoryRightOption:  {FlagRightOption},
	CategoryRightShift:   {FlagRightShift},
	CategoryShift:        {FlagLeftShift, FlagRightShift},
}

var (
	flagCategories   [FlagEnd]Category
	categoriesByName = map[string]Category{}
	flagsByName      = map[string]Flag{}
	allPhysicalFlags []Flag
)

func init() {
	for f := range flagCategories {
		flagCategories[f] = CategoryEnd
	}

	for c := Category(0); c < CategoryEnd; c++ {
		if categoryNames[c] == "" {
			panic(fmt.Sprintf("modifier: category %d has no name", c))
		}
		categoriesByName[categoryNames[c]] = c

		flags := categoryFlags[c]
		if c == CategoryAny {
			if len(flags) != 0 {
				panic("modifier: any must not map to physical flags")
			}
			continue
		}
		if len(flags) == 0 || len(flags) > 2 {
			panic(fmt.Sprintf("modifier: category %s must map to one or two flags", categoryNames[c]))
		}
		for _, f := range flags {
			if f == FlagZero || f >= FlagEnd {
				panic(fmt.Sprintf("modifier: category %s maps to invalid flag %d", categoryNames[c], f))
			}
		}
		if len(flags) == 1 {
			flagCategories[flags[0]] = c
		}
	}

	for f := FlagZero + 1; f < FlagEnd; f++ {
		if flagCategories[f] == CategoryEnd {
			panic(fmt.Sprintf("modifier: flag %s has no single-sided category", flagNames[f]))
		}
		flagsByName[flagNames[f]] = f
		allPhysicalFlags = append(allPhysicalFlags, f)
	}
}

func (c Category) String() string {
	if c < CategoryEnd {
		return categoryNames[c]
	}
	return "end_"
}

// Valid reports whether c is a declared category.
func (c Category) Valid() bool { return c < CategoryEnd }

// ParseCategory resolves a category from its lowercase name.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoriesByName[name]; ok {
		return c, nil
	}
	return CategoryEnd, parseerror.UnknownCategoryName(name)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid modifier category %d", c)
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (f Flag) String() string {
	if f < FlagEnd {
		return flagNames[f]
	}
	return "end_"
}

// Valid reports whether f is a physical flag (not zero or end).
func (f Flag) Valid() bool { return f > FlagZero && f < FlagEnd }

// ParseFlag resolves a physical flag from its lowercase name.
func ParseFlag(name string) (Flag, error) {
	if f, ok := flagsByName[name]; ok {
		return f, nil
	}
	return FlagZero, parseerror.UnknownModifierName(name)
}

func (f Flag) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid modifier flag %d", f)
	}
	return []byte(flagNames[f]), nil
}

func (f *Flag) UnmarshalText(text []byte) error {
	v, err := ParseFlag(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// FlagsFor returns the physical flags of c: none for any, one for a
// single-sided category and the left/right pair for a compound one.
func FlagsFor(c Category) []Flag {
	if !c.Valid() {
		return nil
	}
	return append([]Flag(nil), categoryFlags[c]...)
}

// CategoryFor returns the single-sided category of f. FlagZero and FlagEnd
// map to CategoryEnd.
func CategoryFor(f Flag) Category {
	if !f.Valid() {
		return CategoryEnd
	}
	return flagCategories[f]
}

// AllFlags returns every physical flag in declaration order.
func AllFlags() []Flag {
	return append([]Flag(nil), allPhysicalFlags...)
}
