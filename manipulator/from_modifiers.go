package manipulator

import (
	"github.com/Alia5/remapper/jsonvalue"
	"github.com/Alia5/remapper/modifier"
	"github.com/Alia5/remapper/parseerror"
)

// FromModifiers is the modifiers object of a from definition.
type FromModifiers struct {
	Mandatory modifier.Set
	Optional  modifier.Set
}

// ParseFromModifiers parses {"mandatory": ..., "optional": ...}, where each
// member is a modifier name or an array of names.
func ParseFromModifiers(v jsonvalue.Value) (FromModifiers, error) {
	var m FromModifiers
	if !v.IsObject() {
		return m, parseerror.InvalidForm("modifiers", "object", v)
	}

	for _, member := range v.Members() {
		var target *modifier.Set
		switch member.Key {
		case "mandatory":
			target = &m.Mandatory
		case "optional":
			target = &m.Optional
		default:
			return FromModifiers{}, parseerror.UnknownKey(member.Key, v)
		}

		s, err := modifier.ParseSet(member.Key, member.Value)
		if err != nil {
			return FromModifiers{}, parseerror.Wrap(member.Key, err)
		}
		*target = s
	}
	return m, nil
}

// Test matches the modifiers against q and returns the flags consumed by
// the mandatory modifiers.
func (m FromModifiers) Test(q modifier.FlagQuery) (modifier.FlagSet, bool) {
	return modifier.Test(m.Mandatory, m.Optional, q)
}
