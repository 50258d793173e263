// Package ingest parses raw piped text into a Value, with a JSON-Lines
// fallback when the whole document does not parse.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jacoelho/jello/internal/value"
)

// previewLimit caps how much of an offending line is echoed back in errors.
const previewLimit = 70

var ErrIngestion = errors.New("cannot parse input")

// Error reports the line that could not be parsed as JSON or JSON Lines.
type Error struct {
	Line    int    // 1-based
	Preview string // truncated offending line
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot parse line %d: %v", e.Line, e.Err)
}

func (e *Error) Unwrap() error {
	return ErrIngestion
}

// Ingest parses raw input text into a Value. Surrounding whitespace is
// trimmed and every two-character `\n` escape is replaced with the sentinel
// rune first, so multi-line string values survive the line-oriented stages
// downstream. A whole-document parse is attempted before falling back to
// JSON Lines, where any single unparseable line is fatal.
func Ingest(raw string) (value.Value, error) {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, `\n`, value.Sentinel)

	doc, docErr := parseDocument(text)
	if docErr == nil {
		return doc, nil
	}

	lines := strings.Split(text, "\n")
	items := make([]value.Value, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		item, err := parseDocument(line)
		if err != nil {
			return value.Null(), &Error{Line: i + 1, Preview: preview(line), Err: err}
		}
		items = append(items, item)
	}

	// Nothing parseable at all (empty or whitespace-only input): surface
	// the whole-document failure rather than inventing an empty result.
	if len(items) == 0 {
		return value.Null(), &Error{Line: 1, Preview: preview(text), Err: docErr}
	}

	return value.FromArray(items), nil
}

func preview(line string) string {
	if len(line) > previewLimit {
		return line[:previewLimit]
	}
	return line
}

// parseDocument decodes exactly one JSON document, preserving object member
// order and number literals. Trailing content is an error.
func parseDocument(text string) (value.Value, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	parsed, err := parseValue(decoder)
	if err != nil {
		return value.Null(), err
	}
	if decoder.More() {
		return value.Null(), fmt.Errorf("unexpected trailing content")
	}
	if _, err := decoder.Token(); err != io.EOF {
		return value.Null(), fmt.Errorf("unexpected trailing content")
	}
	return parsed, nil
}

func parseValue(decoder *json.Decoder) (value.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return value.Null(), err
	}
	return valueFromToken(decoder, token)
}

func valueFromToken(decoder *json.Decoder, token json.Token) (value.Value, error) {
	switch current := token.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(current), nil
	case string:
		return value.String(current), nil
	case json.Number:
		return value.FromNumber(value.Number(current)), nil
	case json.Delim:
		switch current {
		case '[':
			return parseArray(decoder)
		case '{':
			return parseObject(decoder)
		default:
			return value.Null(), fmt.Errorf("unexpected delimiter %q", current.String())
		}
	default:
		return value.Null(), fmt.Errorf("unexpected token %v", token)
	}
}

func parseArray(decoder *json.Decoder) (value.Value, error) {
	var items []value.Value
	for decoder.More() {
		item, err := parseValue(decoder)
		if err != nil {
			return value.Null(), err
		}
		items = append(items, item)
	}
	if _, err := decoder.Token(); err != nil { // closing ']'
		return value.Null(), err
	}
	return value.FromArray(items), nil
}

func parseObject(decoder *json.Decoder) (value.Value, error) {
	obj := value.NewObject()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return value.Null(), err
		}
		key, ok := keyToken.(string)
		if !ok {
			return value.Null(), fmt.Errorf("object key is not a string: %v", keyToken)
		}
		item, err := parseValue(decoder)
		if err != nil {
			return value.Null(), err
		}
		obj.Set(key, item)
	}
	if _, err := decoder.Token(); err != nil { // closing '}'
		return value.Null(), err
	}
	return value.FromObject(obj), nil
}
