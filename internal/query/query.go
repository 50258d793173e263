// Package query binds an ingested value to a name, runs a user-supplied
// expression against it and renders the answer to line-oriented text.
//
// The evaluator is purpose-built and capability-limited: lookups, indexing,
// comparisons, arithmetic, conditionals, comprehensions and a closed set of
// pure builtins. Query text comes from the command line or a pipe and is
// treated as hostile; nothing here can touch the filesystem, the network or
// any other process-wide state.
package query

import (
	"errors"
	"strings"

	"github.com/jacoelho/jello/internal/value"
)

// Run evaluates src against input. The input is bound to "_" and the
// answer is whatever "r" holds after the last statement; an empty query
// returns the input unchanged. A query starting with "$" is dispatched to
// the JSONPath dialect instead.
//
// The returned string is the result rendered one logical value per
// physical line, ready for the line normalizer.
func Run(input value.Value, src string) (string, error) {
	trimmed := strings.TrimSpace(src)

	var result value.Value
	var err error
	switch {
	case trimmed == "":
		result = input
	case strings.HasPrefix(trimmed, "$"):
		result, err = runJSONPath(input, trimmed)
	default:
		result, err = runProgram(input, src)
	}

	if err != nil {
		// Inherited quirk: a type mismatch raised before any result text
		// was produced is success with empty output, not an error.
		if errors.Is(err, ErrType) {
			return "", nil
		}
		if errors.Is(err, ErrKey) || errors.Is(err, ErrIndex) || errors.Is(err, ErrSyntax) {
			return "", err
		}
		return "", &QueryError{Input: input, Query: src, Err: err}
	}

	return render(result), nil
}

func runProgram(input value.Value, src string) (value.Value, error) {
	statements, err := parseProgram(src)
	if err != nil {
		var perr *parseError
		if errors.As(err, &perr) {
			return value.Null(), &SyntaxError{Msg: perr.msg, Line: lineAt(src, perr.pos)}
		}
		return value.Null(), err
	}

	env := newEnvironment(input)
	if err := runStatements(statements, env); err != nil {
		return value.Null(), err
	}

	result, _ := env.lookup("r")
	return result, nil
}

// render serializes the result for the line-oriented hand-off. A top-level
// string renders as its raw content; everything else renders as a compact
// one-line literal. Strings cannot contain raw newlines here (ingestion
// replaced them with the sentinel), so one result is always one line.
func render(v value.Value) string {
	if v.Kind() == value.KindString {
		return v.Text()
	}
	return v.EncodeCompact()
}

// lineAt returns the source line containing byte offset pos.
func lineAt(src string, pos int) string {
	if pos > len(src) {
		pos = len(src)
	}
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	end := strings.IndexByte(src[start:], '\n')
	if end < 0 {
		return src[start:]
	}
	return src[start : start+end]
}
