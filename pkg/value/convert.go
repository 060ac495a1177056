package value

import (
	"fmt"
	"reflect"
	"time"
)

// FuncRefKey marks a mapping that stands for a named callback, as in
// {"$fn": "percent"}. Decoders turn such mappings into unresolved callables.
const FuncRefKey = "$fn"

// FromAny converts a Go value into a Value.
//
// Supported inputs are nil, bool, all integer and float kinds, string,
// time.Time (as an RFC 3339 string), slices and arrays, maps with string
// keys, funcs, and Value, Object, Array, Callable themselves. Structs,
// channels and other kinds are rejected.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case Object:
		return ObjectOf(t), nil
	case Array:
		return ArrayOf(t...), nil
	case *Callable:
		if t == nil {
			return Null(), nil
		}
		return Func(t.Name, t.Fn), nil
	case Callable:
		return Func(t.Name, t.Fn), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case map[string]any:
		return objectFromMap(t)
	case []any:
		return arrayFromSlice(t)
	}
	return fromReflect(reflect.ValueOf(x))
}

// MustFromAny is like FromAny but panics on unsupported input. It is meant
// for literals in tests and examples.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// ObjectFrom converts a string-keyed map into an Object.
func ObjectFrom(m map[string]any) (Object, error) {
	v, err := objectFromMap(m)
	if err != nil {
		return nil, err
	}
	if v.kind == KindCallable {
		return nil, fmt.Errorf("value: %s mapping at the root is not an object", FuncRefKey)
	}
	return v.obj, nil
}

func objectFromMap(m map[string]any) (Value, error) {
	if name, ok := funcRefName(m); ok {
		return Ref(name), nil
	}
	out := make(Object, len(m))
	for k, e := range m {
		v, err := FromAny(e)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = v
	}
	return ObjectOf(out), nil
}

func funcRefName(m map[string]any) (string, bool) {
	if len(m) != 1 {
		return "", false
	}
	name, ok := m[FuncRefKey].(string)
	return name, ok
}

func arrayFromSlice(s []any) (Value, error) {
	out := make(Array, len(s))
	for i, e := range s {
		v, err := FromAny(e)
		if err != nil {
			return Value{}, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return ArrayOf(out...), nil
}

func fromReflect(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Func:
		if rv.IsNil() {
			return Null(), nil
		}
		return Func("", rv.Interface()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		fallthrough
	case reflect.Array:
		out := make(Array, rv.Len())
		for i := range out {
			v, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return ArrayOf(out...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("value: unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return Null(), nil
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return objectFromMap(m)
	case reflect.Invalid:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("value: unsupported type %s", rv.Type())
}

// Interface converts v back into plain Go values: nil, bool, float64,
// string, []any, map[string]any, or the callable's function (a *Callable
// when the reference is unresolved).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		return v.obj.Map()
	case KindCallable:
		if v.fn.Fn != nil {
			return v.fn.Fn
		}
		return v.fn
	}
	return nil
}

// Map converts o into a map of plain Go values.
func (o Object) Map() map[string]any {
	out := make(map[string]any, len(o))
	for k, e := range o {
		out[k] = e.Interface()
	}
	return out
}
