// Package control implements the tagged scalar Value type and the
// string-keyed ControlMap payload that audio-producing patterns
// (sound, pan, jux_by) build and the scheduler reads back out.
package control

import "fmt"

// Kind tags which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Value is a small tagged union: exactly one of the three fields below
// is meaningful, selected by Kind. A struct-of-kind is used instead of
// an interface{} so conversions can return a typed ConversionError
// instead of a panic-prone type assertion.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
}

// String wraps a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// ConversionError reports that a Value was read as the wrong variant.
type ConversionError struct {
	Want Kind
	Got  Kind
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("control: value is %s, not %s", e.Got, e.Want)
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// AsString returns v's string, or a ConversionError if v is not a string.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &ConversionError{Want: KindString, Got: v.kind}
	}
	return v.s, nil
}

// AsInt returns v's integer, or a ConversionError if v is not an int.
func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, &ConversionError{Want: KindInt, Got: v.kind}
	}
	return v.i, nil
}

// AsFloat returns v's float, or a ConversionError if v is not a float.
func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, &ConversionError{Want: KindFloat, Got: v.kind}
	}
	return v.f, nil
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	default:
		return "<invalid>"
	}
}

// Map is a string-keyed control payload. Insertion order carries no
// meaning; equality and merging are purely by key.
type Map map[string]Value

// With returns a copy of m with key set to v — used by combinators
// (sound, pan, jux_by) that must never mutate a map they didn't build
// themselves, since a Map may be shared across cloned pattern branches.
func (m Map) With(key string, v Value) Map {
	out := make(Map, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	out[key] = v
	return out
}

// Merge combines m and other with right-biased override: any key
// present in other replaces the same key from m.
func (m Map) Merge(other Map) Map {
	out := make(Map, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
