package query

import (
	"github.com/jacoelho/jello/internal/value"
)

// ParseLiteral parses one line of evaluator output as a literal: null,
// true/false, numbers, quoted strings and nested array/object literals in
// either JSON or Python spelling. Anything else (names, operators, calls)
// is ErrNotLiteral, which callers take as "this line is plain text".
func ParseLiteral(line string) (value.Value, error) {
	tokens, err := lex(line)
	if err != nil {
		return value.Null(), ErrNotLiteral
	}

	state := parserState{tokens: tokens}
	root, err := state.parseExpression()
	if err != nil {
		return value.Null(), ErrNotLiteral
	}
	if state.current().typ != tokenEOF {
		return value.Null(), ErrNotLiteral
	}

	return constantValue(root)
}

// constantValue folds a parse tree that must consist purely of literal
// forms. A unary minus on a number is the only operator allowed.
func constantValue(root node) (value.Value, error) {
	switch current := root.(type) {
	case literalNode:
		return current.value, nil
	case unaryNode:
		if current.op != tokenMinus {
			return value.Null(), ErrNotLiteral
		}
		operand, err := constantValue(current.operand)
		if err != nil {
			return value.Null(), err
		}
		if operand.Kind() != value.KindNumber {
			return value.Null(), ErrNotLiteral
		}
		return negateNumber(operand)
	case listNode:
		items := make([]value.Value, len(current.elems))
		for i, elem := range current.elems {
			item, err := constantValue(elem)
			if err != nil {
				return value.Null(), err
			}
			items[i] = item
		}
		return value.FromArray(items), nil
	case objectNode:
		obj := value.NewObject()
		for i := range current.keys {
			key, err := constantValue(current.keys[i])
			if err != nil {
				return value.Null(), err
			}
			if key.Kind() != value.KindString {
				return value.Null(), ErrNotLiteral
			}
			item, err := constantValue(current.values[i])
			if err != nil {
				return value.Null(), err
			}
			obj.Set(key.Text(), item)
		}
		return value.FromObject(obj), nil
	default:
		return value.Null(), ErrNotLiteral
	}
}

func negateNumber(v value.Value) (value.Value, error) {
	n := v.Number()
	if n.IsInt() {
		i, err := n.Int64()
		if err != nil {
			return value.Null(), ErrNotLiteral
		}
		return value.Int(-i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return value.Null(), ErrNotLiteral
	}
	return value.Float(-f), nil
}
