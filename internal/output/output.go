// Package output renders the normalized result sequence under the
// user-selected output modes.
package output

import (
	"fmt"
	"io"

	"github.com/jacoelho/jello/internal/value"
)

// Options selects the output mode. Compact switches JSON documents from
// 2-space indent to single-line; Lines prints container elements one per
// line; Nulls prints selected nulls instead of empty lines; Raw drops the
// quotes around string output.
type Options struct {
	Compact bool
	Lines   bool
	Nulls   bool
	Raw     bool
}

// Format writes the formatted result to w. Dispatch follows the shape of
// the first value: containers print as one JSON document unless Lines is
// set, scalars follow the null/bool/string rules directly. Formatting is a
// pure function of (values, opts).
func Format(w io.Writer, values []value.Value, opts Options) error {
	if len(values) == 0 {
		return nil
	}
	first := values[0]

	if first.IsContainer() {
		if !opts.Lines {
			return writeLine(w, encodeDocument(first, opts.Compact))
		}
		for _, element := range elements(first) {
			if err := writeElement(w, element, opts); err != nil {
				return err
			}
		}
		return nil
	}

	return writeScalar(w, first, opts)
}

// elements returns what lines mode iterates: array items, or an object's
// keys as strings.
func elements(v value.Value) []value.Value {
	if v.Kind() == value.KindArray {
		return v.Items()
	}
	keys := v.Object().Keys()
	items := make([]value.Value, len(keys))
	for i, key := range keys {
		items[i] = value.String(key)
	}
	return items
}

func writeElement(w io.Writer, element value.Value, opts Options) error {
	switch element.Kind() {
	case value.KindNull, value.KindBool, value.KindString:
		return writeScalar(w, element, opts)
	default:
		return writeLine(w, encodeDocument(element, opts.Compact))
	}
}

func writeScalar(w io.Writer, v value.Value, opts Options) error {
	switch v.Kind() {
	case value.KindNull:
		if opts.Nulls {
			return writeLine(w, "null")
		}
		return writeLine(w, "")
	case value.KindBool:
		if v.Bool() {
			return writeLine(w, "true")
		}
		return writeLine(w, "false")
	case value.KindString:
		if opts.Raw {
			return writeLine(w, v.Text())
		}
		return writeLine(w, `"`+v.Text()+`"`)
	default:
		// A lone number prints nothing; inherited behavior the callers
		// rely on.
		return nil
	}
}

func encodeDocument(v value.Value, compact bool) string {
	if compact {
		return v.EncodeCompact()
	}
	return v.EncodePretty()
}

func writeLine(w io.Writer, s string) error {
	if _, err := fmt.Fprintln(w, s); err != nil {
		return err
	}
	return nil
}
