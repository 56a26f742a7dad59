package filter

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one element of a condition's value set. It keeps the datum as
// supplied by the caller together with its canonical string projection.
// Equality and de-duplication use the canonical form, so the integer 1 and
// the string "1" denote the same value.
type Value struct {
	raw       any
	canonical string
}

// Raw returns the datum as supplied at construction (string or int64).
func (v Value) Raw() any { return v.raw }

// Canonical returns the canonical string projection used for equality.
func (v Value) Canonical() string { return v.canonical }

// ValueError indicates an invalid filter construction input: an empty value
// sequence, an unsupported value type, a malformed range string or an
// unrecognized overlap mode.
type ValueError struct {
	Reason string
}

func (e *ValueError) Error() string {
	return "filter: " + e.Reason
}

// normalizeValues canonicalizes constructor inputs into a value set.
// Each input may be a string, any integer type, or a slice of those
// ([]string, []int, []int64, []any), which is flattened one level.
// Duplicate canonical forms collapse to the first occurrence; order is
// otherwise preserved. An empty result is a construction error.
func normalizeValues(kind Kind, inputs []any) ([]Value, error) {
	values := make([]Value, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	appendScalar := func(in any) error {
		v, err := normalizeScalar(in)
		if err != nil {
			return fmt.Errorf("%s filter: %w", kind, err)
		}
		if _, ok := seen[v.canonical]; ok {
			return nil
		}
		seen[v.canonical] = struct{}{}
		values = append(values, v)
		return nil
	}

	for _, in := range inputs {
		switch seq := in.(type) {
		case []any:
			for _, el := range seq {
				if err := appendScalar(el); err != nil {
					return nil, err
				}
			}
		case []string:
			for _, el := range seq {
				if err := appendScalar(el); err != nil {
					return nil, err
				}
			}
		case []int:
			for _, el := range seq {
				if err := appendScalar(el); err != nil {
					return nil, err
				}
			}
		case []int64:
			for _, el := range seq {
				if err := appendScalar(el); err != nil {
					return nil, err
				}
			}
		default:
			if err := appendScalar(in); err != nil {
				return nil, err
			}
		}
	}

	if len(values) == 0 {
		return nil, &ValueError{Reason: fmt.Sprintf("%s filter requires at least one value", kind)}
	}
	return values, nil
}

// normalizeScalar canonicalizes a single scalar. Integers are widened to
// int64 and projected through their decimal string form.
func normalizeScalar(in any) (Value, error) {
	switch v := in.(type) {
	case string:
		return Value{raw: v, canonical: v}, nil
	case int:
		return intValue(int64(v)), nil
	case int8:
		return intValue(int64(v)), nil
	case int16:
		return intValue(int64(v)), nil
	case int32:
		return intValue(int64(v)), nil
	case int64:
		return intValue(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, &ValueError{Reason: fmt.Sprintf("integer value %d overflows int64", v)}
		}
		return intValue(int64(v)), nil
	case uint8:
		return intValue(int64(v)), nil
	case uint16:
		return intValue(int64(v)), nil
	case uint32:
		return intValue(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, &ValueError{Reason: fmt.Sprintf("integer value %d overflows int64", v)}
		}
		return intValue(int64(v)), nil
	default:
		return Value{}, &ValueError{Reason: fmt.Sprintf("unsupported value type %T (want string or integer)", in)}
	}
}

func intValue(i int64) Value {
	return Value{raw: i, canonical: strconv.FormatInt(i, 10)}
}
