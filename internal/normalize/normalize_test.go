package normalize

import (
	"testing"

	"github.com/jacoelho/jello/internal/value"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		raw  bool
		want []value.Value
	}{
		{
			name: "empty_text_is_empty_sequence",
			text: "",
			want: nil,
		},
		{
			name: "literal_lines",
			text: "1\ntrue\nnull",
			want: []value.Value{value.Int(1), value.Bool(true), value.Null()},
		},
		{
			name: "array_line",
			text: `[1,2,3]`,
			want: []value.Value{value.FromArray([]value.Value{
				value.Int(1), value.Int(2), value.Int(3),
			})},
		},
		{
			name: "plain_text_gets_display_quotes",
			text: "hello world",
			want: []value.Value{value.String(`"hello world"`)},
		},
		{
			name: "plain_text_raw_stays_bare",
			text: "hello world",
			raw:  true,
			want: []value.Value{value.String("hello world")},
		},
		{
			name: "sentinel_restored_in_literal",
			text: `"one` + value.Sentinel + `two"`,
			want: []value.Value{value.String("one\ntwo")},
		},
		{
			name: "sentinel_restored_in_plain_text",
			text: "one" + value.Sentinel + "two",
			raw:  true,
			want: []value.Value{value.String("one\ntwo")},
		},
		{
			name: "sentinel_restored_inside_container",
			text: `{"a": "x` + value.Sentinel + `y"}`,
			want: []value.Value{func() value.Value {
				obj := value.NewObject()
				obj.Set("a", value.String("x\ny"))
				return value.FromObject(obj)
			}()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.text, tt.raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize() returned %d values, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if !got[i].Equal(tt.want[i]) {
					t.Errorf("Normalize()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeOrderPreserved(t *testing.T) {
	t.Parallel()

	got, err := Normalize("3\n1\n2", false)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	want := []int64{3, 1, 2}
	for i, n := range want {
		if !got[i].Equal(value.Int(n)) {
			t.Errorf("Normalize()[%d] = %s, want %d", i, got[i], n)
		}
	}
}
