package peg

// Reducer turns the raw match of a rule into its structured value.
type Reducer func(raw any) any

// Transform is the reduction attached to one rule: either a single reducer
// for every match, or one reducer per top-level alternative where a nil
// entry (or a missing one) passes the raw value through.
type Transform struct {
	single       Reducer
	alternatives []Reducer
}

// Reduce applies fn to every match of the rule.
func Reduce(fn Reducer) Transform {
	return Transform{single: fn}
}

// Alternatives applies fns[k] when alternative k of the rule matched.
func Alternatives(fns ...Reducer) Transform {
	if fns == nil {
		fns = []Reducer{}
	}
	return Transform{alternatives: fns}
}

func (t Transform) apply(raw any, alt int) any {
	if t.alternatives != nil {
		if alt < len(t.alternatives) && t.alternatives[alt] != nil {
			return t.alternatives[alt](raw)
		}
		return raw
	}
	if t.single != nil {
		return t.single(raw)
	}
	return raw
}

// Structure maps rule names to their transforms. Rules without an entry
// yield their raw match.
type Structure map[string]Transform
