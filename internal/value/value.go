// Package value defines the typed JSON value representation shared by every
// pipeline stage.
package value

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Sentinel is the private-use rune standing in for literal newlines while
// results travel through the line-oriented intermediate representation.
const Sentinel = "\uE000"

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is a tagged union over the six JSON kinds. The zero value is null.
type Value struct {
	kind Kind
	b    bool
	n    Number
	s    string
	a    []Value
	o    *Object
}

func Null() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, n: IntNumber(i)}
}

func Float(f float64) Value {
	return Value{kind: KindNumber, n: FloatNumber(f)}
}

func FromNumber(n Number) Value {
	return Value{kind: KindNumber, n: n}
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

func FromArray(items []Value) Value {
	return Value{kind: KindArray, a: items}
}

func FromObject(o *Object) Value {
	return Value{kind: KindObject, o: o}
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsContainer reports whether the value is an Array or Object.
func (v Value) IsContainer() bool {
	return v.kind == KindArray || v.kind == KindObject
}

func (v Value) Bool() bool {
	return v.b
}

func (v Value) Number() Number {
	return v.n
}

// Text returns the content of a String value.
func (v Value) Text() string {
	return v.s
}

func (v Value) Items() []Value {
	return v.a
}

func (v Value) Object() *Object {
	return v.o
}

// String renders the compact JSON encoding, which makes values readable in
// errors and debug logs.
func (v Value) String() string {
	return v.EncodeCompact()
}

// Equal reports deep structural equality. Numbers compare numerically, so
// 1 and 1.0 are equal. Object comparison ignores key order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		if v.n.IsInt() && other.n.IsInt() {
			a, errA := v.n.Int64()
			b, errB := other.n.Int64()
			if errA == nil && errB == nil {
				return a == b
			}
		}
		a, errA := v.n.Float64()
		b, errB := other.n.Float64()
		return errA == nil && errB == nil && a == b
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.o.Len() != other.o.Len() {
			return false
		}
		for i := 0; i < v.o.Len(); i++ {
			key, item := v.o.At(i)
			otherItem, ok := other.o.Get(key)
			if !ok || !item.Equal(otherItem) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Interface converts the value into a plain Go tree (map[string]any,
// []any, scalars) for engines that operate on decoded JSON. Object key
// order is lost in the conversion.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.n.IsInt() {
			if i, err := v.n.Int64(); err == nil {
				return i
			}
		}
		f, _ := v.n.Float64()
		return f
	case KindString:
		return v.s
	case KindArray:
		items := make([]any, len(v.a))
		for i, item := range v.a {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		members := make(map[string]any, v.o.Len())
		for i := 0; i < v.o.Len(); i++ {
			key, item := v.o.At(i)
			members[key] = item.Interface()
		}
		return members
	default:
		return nil
	}
}

// FromInterface builds a Value from a plain Go tree. Map keys are sorted so
// the result is deterministic despite Go map iteration order.
func FromInterface(x any) (Value, error) {
	switch current := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(current), nil
	case string:
		return String(current), nil
	case int:
		return Int(int64(current)), nil
	case int64:
		return Int(current), nil
	case uint64:
		return FromNumber(Number(fmt.Sprintf("%d", current))), nil
	case float64:
		return Float(current), nil
	case json.Number:
		return FromNumber(Number(current)), nil
	case Value:
		return current, nil
	case []any:
		items := make([]Value, len(current))
		for i, item := range current {
			converted, err := FromInterface(item)
			if err != nil {
				return Null(), err
			}
			items[i] = converted
		}
		return FromArray(items), nil
	case map[string]any:
		keys := make([]string, 0, len(current))
		for key := range current {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, key := range keys {
			converted, err := FromInterface(current[key])
			if err != nil {
				return Null(), err
			}
			obj.Set(key, converted)
		}
		return FromObject(obj), nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", x)
	}
}
