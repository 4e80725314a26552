package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a document field value: string, number, bool, array, map or null.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

func Null() Value             { return Value{} }
func String(s string) Value   { return Value{kind: KindString, str: s} }
func Number(n float64) Value  { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Array(vs ...Value) Value { return Value{kind: KindArray, arr: append([]Value{}, vs...)} }

// Map builds a map Value. The input map is copied.
func Map(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[k] = v
	}
	return Value{kind: KindMap, obj: obj}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }
func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == KindBool }

// AsArray returns a copy of the elements when v is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return append([]Value{}, v.arr...), true
}

// AsMap returns a copy of the entries when v is a map.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	out := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		out[k] = e
	}
	return out, true
}

// Equal reports structural equality. Map key order is irrelevant, array order is not.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindMap:
		obj := make(map[string]Value, len(v.obj))
		for k, e := range v.obj {
			obj[k] = e.Clone()
		}
		return Value{kind: KindMap, obj: obj}
	default:
		return v
	}
}

// Interface converts v into plain Go values (string, float64, bool, []any, map[string]any, nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface converts plain Go values into a Value. Integer and float types become
// numbers; slices of any and maps keyed by string are converted recursively.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return numberValue(t)
	case float32:
		return numberValue(float64(t))
	case int:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: invalid number %q: %w", t, err)
		}
		return numberValue(f)
	case []string:
		arr := make([]Value, len(t))
		for i, s := range t {
			arr[i] = String(s)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case []any:
		arr := make([]Value, len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{kind: KindArray, arr: arr}, nil
	case []Value:
		return Array(t...), nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return Value{}, fmt.Errorf("value: field %q: %w", k, err)
			}
			obj[k] = ev
		}
		return Value{kind: KindMap, obj: obj}, nil
	case map[string]Value:
		return Map(t), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", x)
	}
}

// MustValue is FromInterface for literals known to be valid. It panics otherwise.
func MustValue(x any) Value {
	v, err := FromInterface(x)
	if err != nil {
		panic(err)
	}
	return v
}

func numberValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("value: non-finite number %v", f)
	}
	return Number(f), nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders v as JSON, for logs and error messages.
func (v Value) String() string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(b)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
