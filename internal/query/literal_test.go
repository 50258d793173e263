package query

import (
	"errors"
	"testing"

	"github.com/jacoelho/jello/internal/value"
)

func TestParseLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want value.Value
	}{
		{name: "null", line: "null", want: value.Null()},
		{name: "python_none", line: "None", want: value.Null()},
		{name: "true", line: "true", want: value.Bool(true)},
		{name: "python_bool", line: "False", want: value.Bool(false)},
		{name: "integer", line: "42", want: value.Int(42)},
		{name: "negative_integer", line: "-42", want: value.Int(-42)},
		{name: "float", line: "3.14", want: value.Float(3.14)},
		{name: "double_quoted_string", line: `"word"`, want: value.String("word")},
		{name: "single_quoted_string", line: "'word'", want: value.String("word")},
		{
			name: "array",
			line: `[1, "two", null]`,
			want: value.FromArray([]value.Value{value.Int(1), value.String("two"), value.Null()}),
		},
		{
			name: "nested_object",
			line: `{"a": {"b": [1]}}`,
			want: func() value.Value {
				inner := value.NewObject()
				inner.Set("b", value.FromArray([]value.Value{value.Int(1)}))
				outer := value.NewObject()
				outer.Set("a", value.FromObject(inner))
				return value.FromObject(outer)
			}(),
		},
		{
			name: "unicode_escape",
			line: `"snow\u2603man"`,
			want: value.String("snow☃man"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLiteral(tt.line)
			if err != nil {
				t.Fatalf("ParseLiteral() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseLiteral() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseLiteralRejectsNonLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
	}{
		{name: "bare_word", line: "hello"},
		{name: "several_words", line: "multiple words"},
		{name: "expression", line: "1 + 2"},
		{name: "name_in_array", line: "[a]"},
		{name: "call", line: "len([1])"},
		{name: "trailing_garbage", line: "42 oops"},
		{name: "unterminated_string", line: `"abc`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseLiteral(tt.line)
			if !errors.Is(err, ErrNotLiteral) {
				t.Errorf("ParseLiteral() error = %v, want ErrNotLiteral", err)
			}
		})
	}
}
