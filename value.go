package ion

import "fmt"

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindNull is the absence of a value.
	KindNull Kind = iota

	// KindBool holds a boolean.
	KindBool

	// KindNumber holds a float64.
	KindNumber

	// KindString holds a string.
	KindString

	// KindObject holds structured data (maps, slices, or any caller
	// type) by reference.
	KindObject
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the payload type stored in atoms and produced by computed
// cells. It spans primitives and structured data without a closed set
// of native kinds.
//
// Copy semantics follow the kind: scalar kinds (null, bool, number,
// string) are copied when read, so mutating a returned value cannot
// affect the cell. The object kind is shared by reference — the caller
// and the cell see the same underlying data.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	ref  any
}

// Null returns the null Value. The zero Value is also null.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Object returns a Value holding v by reference. A nil v yields the
// null Value.
func Object(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: KindObject, ref: v}
}

// FromAny converts an arbitrary Go value into a Value. Booleans,
// numeric types, and strings map to their scalar kinds; nil maps to
// null; everything else is held as an object.
func FromAny(x any) Value {
	switch v := x.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	case string:
		return String(v)
	default:
		return Object(x)
	}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean variant, or false for other kinds.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the numeric variant, or 0 for other kinds.
func (v Value) Number() float64 {
	return v.n
}

// String returns the string variant, or "" for other kinds.
func (v Value) String() string {
	return v.s
}

// Object returns the referenced data, or nil for scalar kinds.
func (v Value) Object() any {
	return v.ref
}

// Interface unboxes the value into its plain Go representation.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindObject:
		return v.ref
	default:
		return nil
	}
}

// GoString returns a debug representation of the value.
func (v Value) GoString() string {
	return fmt.Sprintf("ion.Value{%s: %v}", v.kind, v.Interface())
}
