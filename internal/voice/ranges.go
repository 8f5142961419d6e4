package voice

import "sync"

// Range is the inclusive bound pair a parameter may be drawn from.
// Only Min <= Max is guaranteed; saturation at the parameter's numeric
// bounds can make a range asymmetric around the Paul preset value.
type Range struct {
	Min uint64
	Max uint64
}

// width returns the number of distinct values in the range.
func (r Range) width() uint64 {
	return r.Max - r.Min + 1
}

// contains reports whether v lies inside the range.
func (r Range) contains(v uint64) bool {
	return v >= r.Min && v <= r.Max
}

// deriveRange computes the bound pair for a parameter anchored at preset
// value a with counterpart b: the range spans |a-b| on both sides of a,
// saturating subtraction at zero and addition at ceiling.
func deriveRange(a, b, ceiling uint64) Range {
	delta := a - b
	if b > a {
		delta = b - a
	}

	r := Range{Min: 0, Max: ceiling}
	if a >= delta {
		r.Min = a - delta
	}
	if a <= ceiling-delta {
		r.Max = a + delta
	}
	return r
}

var (
	rangeOnce  sync.Once
	rangeTable []Range // indexed like schema
)

// ranges returns the derived bound pair per schema entry. The table is
// computed on first use and never mutated afterwards; callers must treat
// the returned slice as read-only.
func ranges() []Range {
	rangeOnce.Do(func() {
		rangeTable = make([]Range, len(schema))
		for i, spec := range schema {
			rangeTable[i] = deriveRange(spec.paul, spec.wendy, spec.ceiling)
		}
	})
	return rangeTable
}

// RangeFor returns the derived inclusive range for the named parameter and
// whether the name exists in the schema. Exposed for diagnostics and tests.
func RangeFor(name string) (Range, bool) {
	for i, spec := range schema {
		if spec.name == name {
			return ranges()[i], true
		}
	}
	return Range{}, false
}

// ParameterNames returns the schema parameter names in generation order.
func ParameterNames() []string {
	names := make([]string, len(schema))
	for i, spec := range schema {
		names[i] = spec.name
	}
	return names
}
