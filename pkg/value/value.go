// Package value models chart configuration as a tagged tree.
//
// A chart configuration is plain data (null, booleans, numbers, strings,
// arrays and objects) that may also carry callbacks such as label
// formatters or click handlers. Callbacks are represented by the Callable
// kind so that walks over a configuration can find them without reflection,
// and so that comparisons can step around them.
//
//	cfg := value.Object{
//	    "xField": value.String("date"),
//	    "label":  value.ObjectOf(value.Object{"formatter": value.Func("pct", fmtPct)}),
//	}
//	cfg.FuncPaths() // ["label.formatter"]
package value

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindCallable
)

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
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindCallable:
		return "callable"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Object maps option names to values.
type Object map[string]Value

// Array is an ordered list of values.
type Array []Value

// Callable is a callback embedded in a configuration.
type Callable struct {
	// Name identifies the callback in scene files and diagnostics. It may be
	// empty for callbacks built in code.
	Name string
	// Fn is the Go function. It is nil until a named reference is resolved.
	Fn any
}

// Resolved reports whether the callable is bound to a function.
func (c *Callable) Resolved() bool {
	return c != nil && c.Fn != nil
}

// Value is one node of a configuration tree. The zero Value is null.
//
// Values share their array and object storage when copied; use Clone to
// obtain an independent tree.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  Array
	obj  Object
	fn   *Callable
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int returns a numeric value from an integer.
func Int(n int) Value { return Number(float64(n)) }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// ArrayOf returns an array value holding vs.
func ArrayOf(vs ...Value) Value {
	if vs == nil {
		vs = Array{}
	}
	return Value{kind: KindArray, arr: vs}
}

// ObjectOf returns an object value wrapping o.
func ObjectOf(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{kind: KindObject, obj: o}
}

// Func returns a callable value. fn should be a Go func; a nil fn produces
// an unresolved named reference.
func Func(name string, fn any) Value {
	return Value{kind: KindCallable, fn: &Callable{Name: name, Fn: fn}}
}

// Ref returns an unresolved callable reference to name.
func Ref(name string) Value {
	return Func(name, nil)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == KindNumber }

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsArray returns the array held by v.
func (v Value) AsArray() (Array, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the object held by v.
func (v Value) AsObject() (Object, bool) { return v.obj, v.kind == KindObject }

// AsCallable returns the callable held by v.
func (v Value) AsCallable() (*Callable, bool) { return v.fn, v.kind == KindCallable }

// Clone returns a deep copy of v. Callables are copied by reference to the
// same function.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		return Value{kind: KindArray, arr: v.arr.Clone()}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	case KindCallable:
		c := *v.fn
		return Value{kind: KindCallable, fn: &c}
	default:
		return v
	}
}

// Equal reports whether v and other are structurally equal.
//
// Numbers compare by value with NaN equal to NaN. Object key order never
// matters. Two callables are always equal to each other: functions carry no
// comparable data, so callers that care about callback placement compare
// FuncPaths instead.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull, KindCallable:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n || (math.IsNaN(v.n) && math.IsNaN(other.n))
	case KindString:
		return v.s == other.s
	case KindArray:
		return v.arr.Equal(other.arr)
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

// String renders v in a compact JSON-like form with sorted keys. Callables
// render as fn(name).
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		sb.WriteString(strconv.FormatFloat(v.n, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			v.obj[k].write(sb)
		}
		sb.WriteByte('}')
	case KindCallable:
		sb.WriteString("fn(")
		sb.WriteString(v.fn.Name)
		sb.WriteByte(')')
	}
}

// Clone returns a deep copy of a.
func (a Array) Clone() Array {
	if a == nil {
		return nil
	}
	out := make(Array, len(a))
	for i, e := range a {
		out[i] = e.Clone()
	}
	return out
}

// Equal reports whether a and other hold equal elements in the same order.
func (a Array) Equal(other Array) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !a[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Keys returns the keys of o in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of o.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v.Clone()
	}
	return out
}

// Equal reports whether o and other hold the same keys with equal values.
// A nil object equals an empty one.
func (o Object) Equal(other Object) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Without returns a shallow copy of o with keys removed.
func (o Object) Without(keys ...string) Object {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// String renders o like Value.String.
func (o Object) String() string {
	return ObjectOf(o).String()
}
