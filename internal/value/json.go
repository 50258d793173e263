package value

import (
	"bytes"

	"github.com/goccy/go-json"
)

// EncodeCompact renders the value as a single-line JSON document with no
// whitespace. Object members keep insertion order.
func (v Value) EncodeCompact() string {
	return string(v.appendJSON(make([]byte, 0, 64)))
}

// EncodePretty renders the value as an indented JSON document (2-space
// indent), matching the non-compact output mode.
func (v Value) EncodePretty() string {
	compact := v.appendJSON(make([]byte, 0, 64))
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return string(compact)
	}
	return buf.String()
}

func (v Value) appendJSON(dst []byte) []byte {
	switch v.kind {
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.n...)
	case KindString:
		return appendJSONString(dst, v.s)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.a {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.appendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i := 0; i < v.o.Len(); i++ {
			if i > 0 {
				dst = append(dst, ',')
			}
			key, item := v.o.At(i)
			dst = appendJSONString(dst, key)
			dst = append(dst, ':')
			dst = item.appendJSON(dst)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendJSONString delegates escaping to the JSON encoder, with HTML
// escaping off so shell consumers see <, > and & verbatim.
func appendJSONString(dst []byte, s string) []byte {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		quoted, _ := json.Marshal(s)
		return append(dst, quoted...)
	}
	return append(dst, bytes.TrimRight(buf.Bytes(), "\n")...)
}
