package query

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jacoelho/jello/internal/value"
)

// environment holds the variable bindings for one query run. The input is
// bound to "_" and the answer is read from "r" afterwards.
type environment struct {
	vars map[string]value.Value
}

func newEnvironment(input value.Value) *environment {
	return &environment{vars: map[string]value.Value{
		"_": input,
		"r": value.Null(),
	}}
}

func (e *environment) lookup(name string) (value.Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *environment) set(name string, v value.Value) {
	e.vars[name] = v
}

func runStatements(statements []statement, env *environment) error {
	for _, stmt := range statements {
		switch current := stmt.(type) {
		case assignStmt:
			result, err := evaluate(current.expr, env)
			if err != nil {
				return err
			}
			env.set(current.name, result)
		case exprStmt:
			if _, err := evaluate(current.expr, env); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported statement %T", stmt)
		}
	}
	return nil
}

func evaluate(root node, env *environment) (value.Value, error) {
	switch current := root.(type) {
	case literalNode:
		return current.value, nil
	case nameNode:
		v, ok := env.lookup(current.name)
		if !ok {
			return value.Null(), fmt.Errorf("name %q is not defined", current.name)
		}
		return v, nil
	case listNode:
		items := make([]value.Value, len(current.elems))
		for i, elem := range current.elems {
			v, err := evaluate(elem, env)
			if err != nil {
				return value.Null(), err
			}
			items[i] = v
		}
		return value.FromArray(items), nil
	case objectNode:
		obj := value.NewObject()
		for i := range current.keys {
			key, err := evaluate(current.keys[i], env)
			if err != nil {
				return value.Null(), err
			}
			if key.Kind() != value.KindString {
				return value.Null(), typeErrorf("object key must be a string, got %s", kindName(key.Kind()))
			}
			item, err := evaluate(current.values[i], env)
			if err != nil {
				return value.Null(), err
			}
			obj.Set(key.Text(), item)
		}
		return value.FromObject(obj), nil
	case attrNode:
		target, err := evaluate(current.target, env)
		if err != nil {
			return value.Null(), err
		}
		return memberLookup(target, current.name)
	case indexNode:
		return evaluateIndex(current, env)
	case sliceNode:
		return evaluateSlice(current, env)
	case callNode:
		return evaluateCall(current, env)
	case unaryNode:
		return evaluateUnary(current, env)
	case binaryNode:
		return evaluateBinary(current, env)
	case condNode:
		cond, err := evaluate(current.cond, env)
		if err != nil {
			return value.Null(), err
		}
		truth, err := mustBool(cond)
		if err != nil {
			return value.Null(), err
		}
		if truth {
			return evaluate(current.then, env)
		}
		return evaluate(current.els, env)
	case compNode:
		return evaluateComprehension(current, env)
	default:
		return value.Null(), fmt.Errorf("unsupported expression node %T", root)
	}
}

func memberLookup(target value.Value, key string) (value.Value, error) {
	if target.Kind() != value.KindObject {
		return value.Null(), typeErrorf("cannot access member %q on %s", key, kindName(target.Kind()))
	}
	v, ok := target.Object().Get(key)
	if !ok {
		return value.Null(), &KeyError{Key: key}
	}
	return v, nil
}

func evaluateIndex(current indexNode, env *environment) (value.Value, error) {
	target, err := evaluate(current.target, env)
	if err != nil {
		return value.Null(), err
	}
	index, err := evaluate(current.index, env)
	if err != nil {
		return value.Null(), err
	}

	switch target.Kind() {
	case value.KindObject:
		if index.Kind() != value.KindString {
			return value.Null(), indexErrorf("object keys must be strings, not %s", kindName(index.Kind()))
		}
		return memberLookup(target, index.Text())
	case value.KindArray:
		i, err := intIndex(index, "list")
		if err != nil {
			return value.Null(), err
		}
		items := target.Items()
		if i < 0 {
			i += len(items)
		}
		if i < 0 || i >= len(items) {
			return value.Null(), indexErrorf("list index out of range")
		}
		return items[i], nil
	case value.KindString:
		i, err := intIndex(index, "string")
		if err != nil {
			return value.Null(), err
		}
		runes := []rune(target.Text())
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return value.Null(), indexErrorf("string index out of range")
		}
		return value.String(string(runes[i])), nil
	default:
		return value.Null(), typeErrorf("%s is not subscriptable", kindName(target.Kind()))
	}
}

func intIndex(index value.Value, what string) (int, error) {
	if index.Kind() != value.KindNumber || !index.Number().IsInt() {
		return 0, indexErrorf("%s indices must be integers", what)
	}
	i, err := index.Number().Int64()
	if err != nil {
		return 0, indexErrorf("%s indices must be integers", what)
	}
	return int(i), nil
}

func evaluateSlice(current sliceNode, env *environment) (value.Value, error) {
	target, err := evaluate(current.target, env)
	if err != nil {
		return value.Null(), err
	}

	var length int
	switch target.Kind() {
	case value.KindArray:
		length = len(target.Items())
	case value.KindString:
		length = len([]rune(target.Text()))
	default:
		return value.Null(), typeErrorf("%s is not sliceable", kindName(target.Kind()))
	}

	low, high := 0, length
	if current.low != nil {
		bound, err := evaluate(current.low, env)
		if err != nil {
			return value.Null(), err
		}
		low, err = intIndex(bound, "slice")
		if err != nil {
			return value.Null(), err
		}
	}
	if current.high != nil {
		bound, err := evaluate(current.high, env)
		if err != nil {
			return value.Null(), err
		}
		high, err = intIndex(bound, "slice")
		if err != nil {
			return value.Null(), err
		}
	}

	low, high = clampSlice(low, high, length)
	if target.Kind() == value.KindString {
		runes := []rune(target.Text())
		return value.String(string(runes[low:high])), nil
	}
	items := make([]value.Value, high-low)
	copy(items, target.Items()[low:high])
	return value.FromArray(items), nil
}

// clampSlice applies negative-offset and out-of-range slice semantics.
func clampSlice(low, high, length int) (int, int) {
	if low < 0 {
		low += length
	}
	if high < 0 {
		high += length
	}
	if low < 0 {
		low = 0
	}
	if high > length {
		high = length
	}
	if low > length {
		low = length
	}
	if high < low {
		high = low
	}
	return low, high
}

func evaluateUnary(current unaryNode, env *environment) (value.Value, error) {
	operand, err := evaluate(current.operand, env)
	if err != nil {
		return value.Null(), err
	}

	switch current.op {
	case tokenNot:
		truth, err := mustBool(operand)
		if err != nil {
			return value.Null(), err
		}
		return value.Bool(!truth), nil
	case tokenMinus:
		if operand.Kind() != value.KindNumber {
			return value.Null(), typeErrorf("cannot negate %s", kindName(operand.Kind()))
		}
		n := operand.Number()
		if n.IsInt() {
			i, err := n.Int64()
			if err != nil {
				return value.Null(), typeErrorf("cannot negate %q", n)
			}
			return value.Int(-i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return value.Null(), typeErrorf("cannot negate %q", n)
		}
		return value.Float(-f), nil
	default:
		return value.Null(), fmt.Errorf("unsupported unary operator")
	}
}

func evaluateBinary(current binaryNode, env *environment) (value.Value, error) {
	// Boolean combinators short-circuit.
	switch current.op {
	case tokenAnd, tokenOr:
		left, err := evaluate(current.left, env)
		if err != nil {
			return value.Null(), err
		}
		leftBool, err := mustBool(left)
		if err != nil {
			return value.Null(), err
		}
		if current.op == tokenAnd && !leftBool {
			return value.Bool(false), nil
		}
		if current.op == tokenOr && leftBool {
			return value.Bool(true), nil
		}
		right, err := evaluate(current.right, env)
		if err != nil {
			return value.Null(), err
		}
		rightBool, err := mustBool(right)
		if err != nil {
			return value.Null(), err
		}
		return value.Bool(rightBool), nil
	}

	left, err := evaluate(current.left, env)
	if err != nil {
		return value.Null(), err
	}
	right, err := evaluate(current.right, env)
	if err != nil {
		return value.Null(), err
	}

	switch current.op {
	case tokenEqual:
		return value.Bool(left.Equal(right)), nil
	case tokenNotEqual:
		return value.Bool(!left.Equal(right)), nil
	case tokenLess, tokenLessEqual, tokenGreater, tokenGreaterEqual:
		return orderValues(current.op, left, right)
	case tokenIn:
		return membership(left, right)
	case tokenPlus, tokenMinus, tokenStar, tokenSlash, tokenPercent:
		return arithmetic(current.op, left, right)
	default:
		return value.Null(), fmt.Errorf("unsupported binary operator")
	}
}

func orderValues(op tokenType, left, right value.Value) (value.Value, error) {
	var cmp int
	switch {
	case left.Kind() == value.KindNumber && right.Kind() == value.KindNumber:
		a, errA := left.Number().Float64()
		b, errB := right.Number().Float64()
		if errA != nil || errB != nil {
			return value.Null(), typeErrorf("cannot compare %q and %q", left.Number(), right.Number())
		}
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.Kind() == value.KindString && right.Kind() == value.KindString:
		cmp = strings.Compare(left.Text(), right.Text())
	default:
		return value.Null(), typeErrorf("cannot order %s and %s", kindName(left.Kind()), kindName(right.Kind()))
	}

	switch op {
	case tokenLess:
		return value.Bool(cmp < 0), nil
	case tokenLessEqual:
		return value.Bool(cmp <= 0), nil
	case tokenGreater:
		return value.Bool(cmp > 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

// membership implements `needle in haystack` over arrays, objects (keys)
// and strings (substring).
func membership(needle, haystack value.Value) (value.Value, error) {
	switch haystack.Kind() {
	case value.KindArray:
		for _, item := range haystack.Items() {
			if item.Equal(needle) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KindObject:
		if needle.Kind() != value.KindString {
			return value.Bool(false), nil
		}
		return value.Bool(haystack.Object().Has(needle.Text())), nil
	case value.KindString:
		if needle.Kind() != value.KindString {
			return value.Null(), typeErrorf("'in <string>' requires string operand, got %s", kindName(needle.Kind()))
		}
		return value.Bool(strings.Contains(haystack.Text(), needle.Text())), nil
	default:
		return value.Null(), typeErrorf("%s is not iterable", kindName(haystack.Kind()))
	}
}

func arithmetic(op tokenType, left, right value.Value) (value.Value, error) {
	// String and array concatenation via '+'.
	if op == tokenPlus {
		if left.Kind() == value.KindString && right.Kind() == value.KindString {
			return value.String(left.Text() + right.Text()), nil
		}
		if left.Kind() == value.KindArray && right.Kind() == value.KindArray {
			items := make([]value.Value, 0, len(left.Items())+len(right.Items()))
			items = append(items, left.Items()...)
			items = append(items, right.Items()...)
			return value.FromArray(items), nil
		}
	}

	if left.Kind() != value.KindNumber || right.Kind() != value.KindNumber {
		return value.Null(), typeErrorf("unsupported operand types %s and %s", kindName(left.Kind()), kindName(right.Kind()))
	}

	leftNum, rightNum := left.Number(), right.Number()

	// Division always yields a float; the other operators stay integral
	// when both operands are integers.
	if op != tokenSlash && leftNum.IsInt() && rightNum.IsInt() {
		a, errA := leftNum.Int64()
		b, errB := rightNum.Int64()
		if errA == nil && errB == nil {
			switch op {
			case tokenPlus:
				return value.Int(a + b), nil
			case tokenMinus:
				return value.Int(a - b), nil
			case tokenStar:
				return value.Int(a * b), nil
			case tokenPercent:
				if b == 0 {
					return value.Null(), fmt.Errorf("integer modulo by zero")
				}
				return value.Int(a % b), nil
			}
		}
	}

	a, errA := leftNum.Float64()
	b, errB := rightNum.Float64()
	if errA != nil || errB != nil {
		return value.Null(), typeErrorf("cannot compute with %q and %q", leftNum, rightNum)
	}
	switch op {
	case tokenPlus:
		return value.Float(a + b), nil
	case tokenMinus:
		return value.Float(a - b), nil
	case tokenStar:
		return value.Float(a * b), nil
	case tokenSlash:
		if b == 0 {
			return value.Null(), fmt.Errorf("division by zero")
		}
		return value.Float(a / b), nil
	case tokenPercent:
		if b == 0 {
			return value.Null(), fmt.Errorf("modulo by zero")
		}
		return value.Float(math.Mod(a, b)), nil
	default:
		return value.Null(), fmt.Errorf("unsupported arithmetic operator")
	}
}

func evaluateComprehension(current compNode, env *environment) (value.Value, error) {
	seq, err := evaluate(current.seq, env)
	if err != nil {
		return value.Null(), err
	}

	var elements []value.Value
	switch seq.Kind() {
	case value.KindArray:
		elements = seq.Items()
	case value.KindObject:
		keys := seq.Object().Keys()
		elements = make([]value.Value, len(keys))
		for i, key := range keys {
			elements[i] = value.String(key)
		}
	default:
		return value.Null(), typeErrorf("%s is not iterable", kindName(seq.Kind()))
	}

	// The loop variable shadows any existing binding for the duration of
	// the comprehension.
	previous, hadPrevious := env.lookup(current.name)
	defer func() {
		if hadPrevious {
			env.set(current.name, previous)
		} else {
			delete(env.vars, current.name)
		}
	}()

	results := make([]value.Value, 0, len(elements))
	for _, element := range elements {
		env.set(current.name, element)

		if current.cond != nil {
			cond, err := evaluate(current.cond, env)
			if err != nil {
				return value.Null(), err
			}
			keep, err := mustBool(cond)
			if err != nil {
				return value.Null(), err
			}
			if !keep {
				continue
			}
		}

		item, err := evaluate(current.expr, env)
		if err != nil {
			return value.Null(), err
		}
		results = append(results, item)
	}
	return value.FromArray(results), nil
}

func evaluateCall(current callNode, env *environment) (value.Value, error) {
	builtin, ok := builtins[current.fn]
	if !ok {
		return value.Null(), fmt.Errorf("name %q is not defined", current.fn)
	}

	args := make([]value.Value, len(current.args))
	for i, arg := range current.args {
		v, err := evaluate(arg, env)
		if err != nil {
			return value.Null(), err
		}
		args[i] = v
	}
	return builtin(args)
}

func mustBool(v value.Value) (bool, error) {
	if v.Kind() != value.KindBool {
		return false, typeErrorf("expected boolean, got %s", kindName(v.Kind()))
	}
	return v.Bool(), nil
}

func kindName(kind value.Kind) string {
	switch kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		return "bool"
	case value.KindNumber:
		return "number"
	case value.KindString:
		return "string"
	case value.KindArray:
		return "list"
	case value.KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// sortValues orders numbers numerically and strings lexicographically; any
// other element kind is a type mismatch.
func sortValues(items []value.Value) ([]value.Value, error) {
	sorted := make([]value.Value, len(items))
	copy(sorted, items)

	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := orderValues(tokenLess, sorted[i], sorted[j])
		if err != nil {
			sortErr = err
			return false
		}
		return less.Bool()
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}
