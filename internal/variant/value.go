package variant

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Type identifies the kind of data a Value holds.
type Type uint8

const (
	TypeNull Type = iota
	TypeInt
	TypeUint
	TypeBool
	TypeFloat
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// Value is a node in a variant tree. The zero Value is null.
//
// Arrays and objects share their backing storage when a Value is copied; use
// Clone for an independent tree.
type Value struct {
	typ    Type
	i      int64
	u      uint64
	b      bool
	f      float64
	single bool
	s      string
	arr    []Value
	obj    map[string]Value
}

func Null() Value           { return Value{} }
func Int(v int64) Value     { return Value{typ: TypeInt, i: v} }
func Uint(v uint64) Value   { return Value{typ: TypeUint, u: v} }
func Bool(v bool) Value     { return Value{typ: TypeBool, b: v} }
func Float(v float64) Value { return Value{typ: TypeFloat, f: v} }
func String(v string) Value { return Value{typ: TypeString, s: v} }
func NewArray() Value       { return Value{typ: TypeArray, arr: []Value{}} }
func NewObject() Value      { return Value{typ: TypeObject, obj: map[string]Value{}} }

// Float32 returns a float value that serializes with single precision, so
// 1.7777778 prints as written rather than as its float64 widening.
func Float32(v float32) Value { return Value{typ: TypeFloat, f: float64(v), single: true} }

// Type reports the kind of v.
func (v Value) Type() Type { return v.typ }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Set stores val under key. It panics if v is not an object.
func (v *Value) Set(key string, val Value) {
	if v.typ != TypeObject {
		panic(fmt.Sprintf("variant: Set on %s value", v.typ))
	}
	if v.obj == nil {
		v.obj = map[string]Value{}
	}
	v.obj[key] = val
}

// Append adds val to the end of an array. It panics if v is not an array.
func (v *Value) Append(val Value) {
	if v.typ != TypeArray {
		panic(fmt.Sprintf("variant: Append on %s value", v.typ))
	}
	v.arr = append(v.arr, val)
}

// Get returns the member stored under key and whether it exists.
func (v Value) Get(key string) (Value, bool) {
	if v.typ != TypeObject {
		return Value{}, false
	}
	member, ok := v.obj[key]
	return member, ok
}

// Index returns the i-th array element, or null when out of range.
func (v Value) Index(i int) Value {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.typ {
	case TypeArray:
		return len(v.arr)
	case TypeObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns object keys in ascending order.
func (v Value) Keys() []string {
	if v.typ != TypeObject {
		return nil
	}
	return slices.Sorted(maps.Keys(v.obj))
}

func (v Value) AsInt() int64 {
	switch v.typ {
	case TypeInt:
		return v.i
	case TypeUint:
		return int64(v.u)
	case TypeFloat:
		return int64(v.f)
	case TypeBool:
		if v.b {
			return 1
		}
	case TypeString:
		n, _ := strconv.ParseInt(v.s, 10, 64)
		return n
	}
	return 0
}

func (v Value) AsUint() uint64 {
	switch v.typ {
	case TypeUint:
		return v.u
	case TypeInt:
		return uint64(v.i)
	case TypeFloat:
		return uint64(v.f)
	case TypeBool:
		if v.b {
			return 1
		}
	case TypeString:
		n, _ := strconv.ParseUint(v.s, 10, 64)
		return n
	}
	return 0
}

func (v Value) AsFloat() float64 {
	switch v.typ {
	case TypeFloat:
		return v.f
	case TypeInt:
		return float64(v.i)
	case TypeUint:
		return float64(v.u)
	case TypeBool:
		if v.b {
			return 1
		}
	case TypeString:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	}
	return 0
}

func (v Value) AsBool() bool {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeInt:
		return v.i != 0
	case TypeUint:
		return v.u != 0
	case TypeFloat:
		return v.f != 0
	case TypeString:
		return v.s != "" && v.s != "0" && v.s != "false"
	}
	return false
}

// AsString returns string values unchanged and formats scalars. Arrays,
// objects and null yield "".
func (v Value) AsString() string {
	switch v.typ {
	case TypeString:
		return v.s
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeUint:
		return strconv.FormatUint(v.u, 10)
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeFloat:
		return string(appendFloat(nil, v.f, v.bits()))
	}
	return ""
}

func (v Value) bits() int {
	if v.single {
		return 32
	}
	return 64
}

// Equal reports whether v and other hold the same type and content. Float
// precision is ignored; only the numeric value is compared.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeInt:
		return v.i == other.i
	case TypeUint:
		return v.u == other.u
	case TypeBool:
		return v.b == other.b
	case TypeFloat:
		return v.f == other.f
	case TypeString:
		return v.s == other.s
	case TypeArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	case TypeObject:
		return maps.EqualFunc(v.obj, other.obj, Value.Equal)
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := v
	switch v.typ {
	case TypeArray:
		out.arr = make([]Value, len(v.arr))
		for i, el := range v.arr {
			out.arr[i] = el.Clone()
		}
	case TypeObject:
		out.obj = make(map[string]Value, len(v.obj))
		for k, el := range v.obj {
			out.obj[k] = el.Clone()
		}
	}
	return out
}
