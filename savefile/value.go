package savefile

import (
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindText is an unquoted identifier or quoted string.
	KindText Kind = iota
	// KindInt is a 64-bit signed integer scalar.
	KindInt
	// KindFloat is a 64-bit floating point scalar.
	KindFloat
	// KindBool is a yes/no scalar.
	KindBool
	// KindMapping is an ordered collection of key/value pairs.
	KindMapping
	// KindSequence is an ordered list of values.
	KindSequence
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed save file tree. It is a tagged union over
// the four scalar types, Mapping, and Sequence. A Value is immutable once
// parsing returns; trees never share sub-trees and cannot contain cycles.
//
// The save format carries no schema, so consumers must not assume any
// particular shape at any position. The *Or coercers exist for exactly that:
// they return the requested type when the value can reasonably provide it
// and the given default otherwise, never panicking.
type Value struct {
	kind    Kind
	text    string
	integer int64
	real    float64
	boolean bool
	mapping *Mapping
	seq     []Value
}

// TextValue returns a text scalar.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// IntValue returns an integer scalar.
func IntValue(i int64) Value { return Value{kind: KindInt, integer: i} }

// FloatValue returns a float scalar.
func FloatValue(f float64) Value { return Value{kind: KindFloat, real: f} }

// BoolValue returns a boolean scalar.
func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

// SequenceValue returns a sequence holding the given values.
func SequenceValue(vals ...Value) Value {
	if vals == nil {
		vals = []Value{}
	}

	return Value{kind: KindSequence, seq: vals}
}

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// Text returns the text content, or "" for non-text values.
func (v Value) Text() string { return v.text }

// Int returns the integer content, or 0 for non-integer values.
func (v Value) Int() int64 { return v.integer }

// Float returns the float content, or 0 for non-float values.
func (v Value) Float() float64 { return v.real }

// Bool returns the boolean content, or false for non-boolean values.
func (v Value) Bool() bool { return v.boolean }

// Mapping returns the underlying mapping, or nil for non-mapping values.
func (v Value) Mapping() *Mapping { return v.mapping }

// Sequence returns the underlying slice, or nil for non-sequence values.
// The slice must not be mutated by the caller.
func (v Value) Sequence() []Value { return v.seq }

// Get looks up a key when the value is a mapping. For any other kind it
// reports false, which lets callers chain lookups over untrusted shapes.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}

	return v.mapping.Get(key)
}

// FloatOr coerces the value to a float64. Integers widen, numeric text is
// parsed, everything else yields the default.
func (v Value) FloatOr(def float64) float64 {
	switch v.kind {
	case KindFloat:
		return v.real
	case KindInt:
		return float64(v.integer)
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return def
		}

		return f
	default:
		return def
	}
}

// IntOr coerces the value to an int64. Floats truncate toward zero, numeric
// text is parsed, everything else yields the default.
func (v Value) IntOr(def int64) int64 {
	switch v.kind {
	case KindInt:
		return v.integer
	case KindFloat:
		return int64(v.real)
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return def
		}

		return int64(f)
	default:
		return def
	}
}

// BoolOr coerces the value to a bool. Only boolean scalars and yes/no text
// qualify; everything else yields the default.
func (v Value) BoolOr(def bool) bool {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindText:
		if strings.EqualFold(v.text, "yes") {
			return true
		}

		if strings.EqualFold(v.text, "no") {
			return false
		}

		return def
	default:
		return def
	}
}

// TextOr returns the text content for text scalars and the default for
// everything else.
func (v Value) TextOr(def string) string {
	if v.kind != KindText {
		return def
	}

	return v.text
}

// Equal reports deep structural equality of two value trees.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindInt:
		return v.integer == o.integer
	case KindFloat:
		return v.real == o.real
	case KindBool:
		return v.boolean == o.boolean
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}

		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		return v.mapping.Equal(o.mapping)
	default:
		return false
	}
}
