package modifier

// Test decides whether the modifier preconditions hold for q.
//
// A mandatory any matches unconditionally and consumes every pressed flag.
// Otherwise each mandatory category, in declaration order, consumes the
// first of its flags that is pressed or the match fails. Unless optional
// contains any, a pressed flag that no category of mandatory or optional
// reaches also fails the match.
//
// The returned set holds the consumed flags; false means no match.
func Test(mandatory, optional Set, q FlagQuery) (FlagSet, bool) {
	var consumed FlagSet

	if mandatory.Has(CategoryAny) {
		for _, f := range allPhysicalFlags {
			if q.IsPressed(f) {
				consumed = consumed.With(f)
			}
		}
		return consumed, true
	}

	for c := Category(0); c < CategoryEnd; c++ {
		if !mandatory.Has(c) {
			continue
		}
		found := false
		for _, f := range categoryFlags[c] {
			if q.IsPressed(f) {
				consumed = consumed.With(f)
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}

	if !optional.Has(CategoryAny) {
		for _, f := range extraFlags(mandatory.Union(optional)) {
			if q.IsPressed(f) {
				return 0, false
			}
		}
	}

	return consumed, true
}

// extraFlags returns the physical flags no category in s reaches.
func extraFlags(s Set) []Flag {
	var reached FlagSet
	for _, c := range s.Categories() {
		for _, f := range categoryFlags[c] {
			reached = reached.With(f)
		}
	}

	var out []Flag
	for _, f := range allPhysicalFlags {
		if !reached.Has(f) {
			out = append(out, f)
		}
	}
	return out
}
