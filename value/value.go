// Package value defines the runtime value model the evaluator produces
// and consumes: the tagged variant described by §3 and §9 (Decimal,
// Float, String, Bool, Null, Array, Object), with no implicit subtype
// relationship between Decimal and Float.
package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/formulaengine/core/decimal"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindDecimal
	KindFloat
	KindString
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindDecimal:
		return "decimal"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a single runtime value flowing through evaluation. Exactly
// one of the payload fields is meaningful, selected by Kind.
type Value struct {
	kind    Kind
	dec     decimal.Decimal
	float   float64
	str     string
	boolean bool
	array   []Value
	object  *Object
}

// Object is an insertion-ordered string-keyed map, matching the
// ordering guarantee ObjectLiteral carries from the parser.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or overwrites key, preserving first-seen key order.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string { return append([]string(nil), o.keys...) }

// Len reports the number of properties.
func (o *Object) Len() int { return len(o.keys) }

// Null is the singular null value.
var Null = Value{kind: KindNull}

// NewDecimal wraps a decimal.Decimal.
func NewDecimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// NewFloat wraps a native float64.
func NewFloat(f float64) Value { return Value{kind: KindFloat, float: f} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: KindString, str: s} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// NewArray wraps a slice of values.
func NewArray(elems []Value) Value { return Value{kind: KindArray, array: elems} }

// NewObjectValue wraps an Object.
func NewObjectValue(o *Object) Value { return Value{kind: KindObject, object: o} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsDecimal returns the wrapped decimal. Caller must check Kind first.
func (v Value) AsDecimal() decimal.Decimal { return v.dec }

// AsFloat returns the wrapped float64. Caller must check Kind first.
func (v Value) AsFloat() float64 { return v.float }

// AsString returns the wrapped string. Caller must check Kind first.
func (v Value) AsString() string { return v.str }

// AsBool returns the wrapped boolean. Caller must check Kind first.
func (v Value) AsBool() bool { return v.boolean }

// AsArray returns the wrapped slice. Caller must check Kind first.
func (v Value) AsArray() []Value { return v.array }

// AsObject returns the wrapped object. Caller must check Kind first.
func (v Value) AsObject() *Object { return v.object }

// IsNumeric reports whether v is a Decimal or Float.
func (v Value) IsNumeric() bool { return v.kind == KindDecimal || v.kind == KindFloat }

// TypeName returns the name used by the TYPEOF builtin and diagnostics.
func (v Value) TypeName() string { return v.kind.String() }

// ToDecimal coerces a numeric value to Decimal, converting Float via its
// shortest round-trip text so 0.1 stays 0.1 rather than a binary-float
// artifact. Non-numeric values raise an error.
func (v Value) ToDecimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindDecimal:
		return v.dec, nil
	case KindFloat:
		return decimal.FromFloat(v.float), nil
	default:
		return decimal.Decimal{}, &TypeError{Expected: "numeric", Got: v.kind.String()}
	}
}

// ToBool applies truthiness: false and null are falsy, numeric zero is
// falsy, empty string/array/object are falsy, everything else is truthy.
func (v Value) ToBool() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.boolean
	case KindDecimal:
		return !v.dec.IsZero()
	case KindFloat:
		return v.float != 0
	case KindString:
		return v.str != ""
	case KindArray:
		return len(v.array) != 0
	case KindObject:
		return v.object != nil && v.object.Len() != 0
	default:
		return false
	}
}

// String renders v in the engine's canonical textual form, used for
// string concatenation and text-format output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindDecimal:
		return v.dec.String()
	case KindFloat:
		return fmt.Sprintf("%g", v.float)
	case KindString:
		return v.str
	case KindArray:
		parts := make([]string, len(v.array))
		for i, e := range v.array {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		keys := v.object.Keys()
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			val, _ := v.object.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.String()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Equal reports deep value equality. Decimal and Float compare by
// numeric value; Decimal never equals Float even at the same magnitude,
// per the no-implicit-subtype design note.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindDecimal:
		return v.dec.Equal(other.dec)
	case KindFloat:
		return v.float == other.float
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.array) != len(other.array) {
			return false
		}
		for i := range v.array {
			if !v.array[i].Equal(other.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.object.Len() != other.object.Len() {
			return false
		}
		for _, k := range v.object.Keys() {
			a, _ := v.object.Get(k)
			b, ok := other.object.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromNative converts an arbitrary Go value supplied by a caller
// (typically JSON-decoded or hand-built context data) into a Value.
// When convertNumerics is true, native int/int64/float64 primitives
// become Decimal (the `$variables` resolution rule); when false they
// become Float (the `@extra` resolution rule, which never
// auto-promotes to Decimal). Arrays and objects are converted
// recursively under the same rule. Values already wrapped as Value are
// returned unchanged.
func FromNative(x interface{}, convertNumerics bool) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case decimal.Decimal:
		return NewDecimal(v), nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	case int:
		return numericNative(int64(v), convertNumerics), nil
	case int64:
		return numericNative(v, convertNumerics), nil
	case float64:
		return floatNative(v, convertNumerics), nil
	case float32:
		return floatNative(float64(v), convertNumerics), nil
	case []interface{}:
		out := make([]Value, len(v))
		for i, e := range v {
			conv, err := FromNative(e, convertNumerics)
			if err != nil {
				return Value{}, err
			}
			out[i] = conv
		}
		return NewArray(out), nil
	case []Value:
		return NewArray(v), nil
	case map[string]interface{}:
		obj := NewObject()
		for _, k := range sortedKeys(v) {
			conv, err := FromNative(v[k], convertNumerics)
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, conv)
		}
		return NewObjectValue(obj), nil
	default:
		return Value{}, fmt.Errorf("cannot convert %T to a formula value", x)
	}
}

func numericNative(v int64, convertNumerics bool) Value {
	if convertNumerics {
		return NewDecimal(decimal.FromInt(v))
	}
	return NewFloat(float64(v))
}

func floatNative(v float64, convertNumerics bool) Value {
	if convertNumerics {
		return NewDecimal(decimal.FromFloat(v))
	}
	return NewFloat(v)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeError reports a value used where its kind is not permitted.
type TypeError struct {
	Expected string
	Got      string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}
