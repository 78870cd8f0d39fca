package modifier

import (
	"strings"

	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/parseerror"
)

// Set is an unordered set of categories. Iteration is always in
// declaration order regardless of insertion order.
type Set uint16

// NewSet returns a set holding cats. Duplicates collapse.
func NewSet(cats ...Category) Set {
	var s Set
	for _, c := range cats {
		s = s.With(c)
	}
	return s
}

// With returns s with c added. Invalid categories are ignored.
func (s Set) With(c Category) Set {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

func (s Set) Has(c Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

func (s Set) Union(o Set) Set { return s | o }

func (s Set) IsEmpty() bool { return s == 0 }

func (s Set) Len() int {
	n := 0
	for c := Category(0); c < CategoryEnd; c++ {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Categories returns the members in declaration order.
func (s Set) Categories() []Category {
	var out []Category
	for c := Category(0); c < CategoryEnd; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Set) String() string {
	names := make([]string, 0, CategoryEnd)
	for _, c := range s.Categories() {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, ",") + "]"
}

// ParseSet reads a bare category name or an array of names. key names the
// enclosing member in error messages.
func ParseSet(key string, v jsonvalue.Value) (Set, error) {
	if name, ok := v.AsString(); ok {
		c, err := ParseCategory(name)
		if err != nil {
			return 0, err
		}
		return NewSet(c), nil
	}

	if !v.IsArray() {
		return 0, parseerror.InvalidForm(key, "string or array of strings", v)
	}

	var s Set
	for _, e := range v.Elements() {
		name, ok := e.AsString()
		if !ok {
			return 0, parseerror.InvalidForm(key, "string or array of strings", v)
		}
		c, err := ParseCategory(name)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}

// ParseNames is ParseSet for already-split names, as given on a command line.
func ParseNames(names []string) (Set, error) {
	var s Set
	for _, n := range names {
		c, err := ParseCategory(strings.TrimSpace(n))
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}
