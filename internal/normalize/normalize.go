// Package normalize reconstructs typed values from the evaluator's
// line-oriented text output, reversing the sentinel substitution applied
// during ingestion.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/jello/internal/query"
	"github.com/jacoelho/jello/internal/value"
)

// Error reports an unexpected normalization failure, keeping the offending
// data and the partially built sequence for diagnostics.
type Error struct {
	Data    string
	Partial []value.Value
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("normalize: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalize re-parses each line of evaluator output as a literal. Lines
// that are not recognized literals are plain text: they become strings,
// wrapped in double quotes as a display convention unless raw is set.
// The sentinel rune is substituted back to a newline either way.
func Normalize(text string, raw bool) ([]value.Value, error) {
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	results := make([]value.Value, 0, len(lines))
	for _, line := range lines {
		parsed, err := query.ParseLiteral(line)
		switch {
		case err == nil:
			results = append(results, restoreNewlines(parsed))
		case errors.Is(err, query.ErrNotLiteral):
			s := line
			if !raw {
				s = `"` + line + `"`
			}
			results = append(results, restoreNewlines(value.String(s)))
		default:
			return nil, &Error{Data: text, Partial: results, Err: err}
		}
	}
	return results, nil
}

// restoreNewlines substitutes the sentinel back to a literal newline in
// every string reachable from v.
func restoreNewlines(v value.Value) value.Value {
	switch v.Kind() {
	case value.KindString:
		return value.String(strings.ReplaceAll(v.Text(), value.Sentinel, "\n"))
	case value.KindArray:
		items := v.Items()
		restored := make([]value.Value, len(items))
		for i, item := range items {
			restored[i] = restoreNewlines(item)
		}
		return value.FromArray(restored)
	case value.KindObject:
		obj := v.Object()
		restored := value.NewObject()
		for i := 0; i < obj.Len(); i++ {
			key, item := obj.At(i)
			restored.Set(strings.ReplaceAll(key, value.Sentinel, "\n"), restoreNewlines(item))
		}
		return value.FromObject(restored)
	default:
		return v
	}
}
