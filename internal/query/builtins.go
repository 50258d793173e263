package query

import (
	"unicode/utf8"

	"github.com/jacoelho/jello/internal/value"
)

// builtins is the closed set of callable functions. All of them are pure:
// no clock, no filesystem, no network, so an attacker-controlled query
// cannot reach process-wide state.
var builtins = map[string]func(args []value.Value) (value.Value, error){
	"len":     builtinLen,
	"keys":    builtinKeys,
	"values":  builtinValues,
	"sum":     builtinSum,
	"min":     builtinMin,
	"max":     builtinMax,
	"reverse": builtinReverse,
	"sorted":  builtinSorted,
}

func singleArg(name string, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Null(), typeErrorf("%s() takes exactly one argument (%d given)", name, len(args))
	}
	return args[0], nil
}

func builtinLen(args []value.Value) (value.Value, error) {
	arg, err := singleArg("len", args)
	if err != nil {
		return value.Null(), err
	}
	switch arg.Kind() {
	case value.KindString:
		return value.Int(int64(utf8.RuneCountInString(arg.Text()))), nil
	case value.KindArray:
		return value.Int(int64(len(arg.Items()))), nil
	case value.KindObject:
		return value.Int(int64(arg.Object().Len())), nil
	default:
		return value.Null(), typeErrorf("%s has no len()", kindName(arg.Kind()))
	}
}

func builtinKeys(args []value.Value) (value.Value, error) {
	arg, err := singleArg("keys", args)
	if err != nil {
		return value.Null(), err
	}
	if arg.Kind() != value.KindObject {
		return value.Null(), typeErrorf("keys() requires an object, got %s", kindName(arg.Kind()))
	}
	keys := arg.Object().Keys()
	items := make([]value.Value, len(keys))
	for i, key := range keys {
		items[i] = value.String(key)
	}
	return value.FromArray(items), nil
}

func builtinValues(args []value.Value) (value.Value, error) {
	arg, err := singleArg("values", args)
	if err != nil {
		return value.Null(), err
	}
	if arg.Kind() != value.KindObject {
		return value.Null(), typeErrorf("values() requires an object, got %s", kindName(arg.Kind()))
	}
	obj := arg.Object()
	items := make([]value.Value, obj.Len())
	for i := 0; i < obj.Len(); i++ {
		_, items[i] = obj.At(i)
	}
	return value.FromArray(items), nil
}

func builtinSum(args []value.Value) (value.Value, error) {
	arg, err := singleArg("sum", args)
	if err != nil {
		return value.Null(), err
	}
	if arg.Kind() != value.KindArray {
		return value.Null(), typeErrorf("sum() requires a list, got %s", kindName(arg.Kind()))
	}

	total := value.Int(0)
	for _, item := range arg.Items() {
		updated, err := arithmetic(tokenPlus, total, item)
		if err != nil {
			return value.Null(), err
		}
		total = updated
	}
	return total, nil
}

func builtinMin(args []value.Value) (value.Value, error) {
	return extremum("min", tokenLess, args)
}

func builtinMax(args []value.Value) (value.Value, error) {
	return extremum("max", tokenGreater, args)
}

func extremum(name string, op tokenType, args []value.Value) (value.Value, error) {
	arg, err := singleArg(name, args)
	if err != nil {
		return value.Null(), err
	}
	if arg.Kind() != value.KindArray {
		return value.Null(), typeErrorf("%s() requires a list, got %s", name, kindName(arg.Kind()))
	}
	items := arg.Items()
	if len(items) == 0 {
		return value.Null(), typeErrorf("%s() of an empty list", name)
	}

	best := items[0]
	for _, item := range items[1:] {
		wins, err := orderValues(op, item, best)
		if err != nil {
			return value.Null(), err
		}
		if wins.Bool() {
			best = item
		}
	}
	return best, nil
}

func builtinReverse(args []value.Value) (value.Value, error) {
	arg, err := singleArg("reverse", args)
	if err != nil {
		return value.Null(), err
	}
	switch arg.Kind() {
	case value.KindArray:
		items := arg.Items()
		reversed := make([]value.Value, len(items))
		for i, item := range items {
			reversed[len(items)-1-i] = item
		}
		return value.FromArray(reversed), nil
	case value.KindString:
		runes := []rune(arg.Text())
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.String(string(runes)), nil
	default:
		return value.Null(), typeErrorf("reverse() requires a list or string, got %s", kindName(arg.Kind()))
	}
}

func builtinSorted(args []value.Value) (value.Value, error) {
	arg, err := singleArg("sorted", args)
	if err != nil {
		return value.Null(), err
	}
	if arg.Kind() != value.KindArray {
		return value.Null(), typeErrorf("sorted() requires a list, got %s", kindName(arg.Kind()))
	}
	sorted, err := sortValues(arg.Items())
	if err != nil {
		return value.Null(), err
	}
	return value.FromArray(sorted), nil
}
