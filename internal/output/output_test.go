package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/jello/internal/value"
)

func numbers(ns ...int64) value.Value {
	items := make([]value.Value, len(ns))
	for i, n := range ns {
		items[i] = value.Int(n)
	}
	return value.FromArray(items)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []value.Value
		opts   Options
		want   string
	}{
		{
			name: "empty_sequence_prints_nothing",
		},
		{
			name:   "pretty_array",
			values: []value.Value{numbers(1, 2, 3)},
			want:   "[\n  1,\n  2,\n  3\n]\n",
		},
		{
			name:   "compact_array",
			values: []value.Value{numbers(1, 2, 3)},
			opts:   Options{Compact: true},
			want:   "[1,2,3]\n",
		},
		{
			name:   "lines_mode_array",
			values: []value.Value{numbers(1, 2, 3)},
			opts:   Options{Lines: true},
			want:   "1\n2\n3\n",
		},
		{
			name: "lines_mode_object_iterates_keys",
			values: []value.Value{func() value.Value {
				obj := value.NewObject()
				obj.Set("b", value.Int(1))
				obj.Set("a", value.Int(2))
				return value.FromObject(obj)
			}()},
			opts: Options{Lines: true},
			want: "\"b\"\n\"a\"\n",
		},
		{
			name: "lines_mode_nested_containers_stay_compact",
			values: []value.Value{value.FromArray([]value.Value{
				numbers(1, 2),
				numbers(3),
			})},
			opts: Options{Lines: true, Compact: true},
			want: "[1,2]\n[3]\n",
		},
		{
			name:   "string_scalar_quoted",
			values: []value.Value{value.String("a")},
			want:   "\"a\"\n",
		},
		{
			name:   "string_scalar_raw",
			values: []value.Value{value.String("a")},
			opts:   Options{Raw: true},
			want:   "a\n",
		},
		{
			name:   "prequoted_string_gets_second_pair",
			values: []value.Value{value.String(`"x"`)},
			want:   "\"\"x\"\"\n",
		},
		{
			name:   "null_scalar_is_blank_line",
			values: []value.Value{value.Null()},
			want:   "\n",
		},
		{
			name:   "null_scalar_with_nulls_option",
			values: []value.Value{value.Null()},
			opts:   Options{Nulls: true},
			want:   "null\n",
		},
		{
			name:   "bool_scalar",
			values: []value.Value{value.Bool(true)},
			want:   "true\n",
		},
		{
			name:   "lone_number_prints_nothing",
			values: []value.Value{value.Int(42)},
			want:   "",
		},
		{
			name: "lines_mode_mixed_scalars",
			values: []value.Value{value.FromArray([]value.Value{
				value.String("a"), value.Null(), value.Bool(false),
			})},
			opts: Options{Lines: true, Nulls: true},
			want: "\"a\"\nnull\nfalse\n",
		},
		{
			name: "lines_mode_raw_strings",
			values: []value.Value{value.FromArray([]value.Value{
				value.String("a"), value.String("b"),
			})},
			opts: Options{Lines: true, Raw: true},
			want: "a\nb\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			err := Format(&buf, tt.values, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatDispatchesOnFirstValue(t *testing.T) {
	t.Parallel()

	// A container first value selects document mode for the whole
	// sequence; later values are not consulted.
	values := []value.Value{numbers(1), value.String("ignored")}

	var buf strings.Builder
	require.NoError(t, Format(&buf, values, Options{Compact: true}))
	assert.Equal(t, "[1]\n", buf.String())
}
