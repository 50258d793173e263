package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/jacoelho/jello/internal/config"
	"github.com/jacoelho/jello/internal/ingest"
	"github.com/jacoelho/jello/internal/query"
)

func runPipeline(t *testing.T, input string, opts config.Options) (string, error) {
	t.Helper()
	return New(&opts).Run(input)
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  config.Options
		want  string
	}{
		{
			name:  "identity_pretty",
			input: `{"foo": [1, 2, 3]}`,
			want:  "{\n  \"foo\": [\n    1,\n    2,\n    3\n  ]\n}\n",
		},
		{
			name:  "identity_compact",
			input: `{"foo": [1, 2, 3]}`,
			opts:  config.Options{Compact: true},
			want:  "{\"foo\":[1,2,3]}\n",
		},
		{
			name:  "member_query",
			input: `{"foo": [1, 2, 3]}`,
			opts:  config.Options{Query: "r = _.foo", Compact: true},
			want:  "[1,2,3]\n",
		},
		{
			name:  "lines_mode",
			input: `{"foo": [1, 2, 3]}`,
			opts:  config.Options{Query: "r = _.foo", Lines: true},
			want:  "1\n2\n3\n",
		},
		{
			name:  "string_result_double_quoted",
			input: `{"name": "kernel"}`,
			opts:  config.Options{Query: "r = _.name"},
			want:  "\"\"kernel\"\"\n",
		},
		{
			name:  "string_result_raw",
			input: `{"name": "kernel"}`,
			opts:  config.Options{Query: "r = _.name", Raw: true},
			want:  "kernel\n",
		},
		{
			name:  "null_result_blank_line",
			input: `{"a": null}`,
			opts:  config.Options{Query: "r = _.a"},
			want:  "\n",
		},
		{
			name:  "null_result_with_nulls",
			input: `{"a": null}`,
			opts:  config.Options{Query: "r = _.a", Nulls: true},
			want:  "null\n",
		},
		{
			name:  "number_result_prints_nothing",
			input: `{"a": 42}`,
			opts:  config.Options{Query: "r = _.a"},
			want:  "",
		},
		{
			name:  "type_mismatch_prints_nothing",
			input: `{"a": 1}`,
			opts:  config.Options{Query: "r = 1 if _.a else 2"},
			want:  "",
		},
		{
			name:  "json_lines_input",
			input: "{\"a\": 1}\n{\"a\": 2}",
			opts:  config.Options{Query: "r = [x.a for x in _]", Compact: true},
			want:  "[1,2]\n",
		},
		{
			name:  "escaped_newline_round_trip",
			input: `{"a": "one\ntwo"}`,
			opts:  config.Options{Query: "r = _.a", Raw: true},
			want:  "one\ntwo\n",
		},
		{
			name:  "object_lines_mode_iterates_keys",
			input: `{"b": 1, "a": 2}`,
			opts:  config.Options{Lines: true},
			want:  "\"b\"\n\"a\"\n",
		},
		{
			name:  "jsonpath_query",
			input: `{"foo": [1, 2, 3]}`,
			opts:  config.Options{Query: "$.foo[*]", Compact: true},
			want:  "[1,2,3]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runPipeline(t, tt.input, tt.opts)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Compact output fed back through the pipeline with no query must
// reproduce itself.
func TestRunCompactIdempotent(t *testing.T) {
	t.Parallel()

	opts := config.Options{Compact: true}
	first, err := runPipeline(t, `{"b": [1.5, true], "a": null}`, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	second, err := runPipeline(t, first, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if second != first {
		t.Errorf("second pass = %q, want %q", second, first)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		query   string
		wantErr error
	}{
		{name: "empty_input", input: "", wantErr: ingest.ErrIngestion},
		{name: "bad_input", input: "not json", wantErr: ingest.ErrIngestion},
		{name: "missing_key", input: `{"a": 1}`, query: "r = _.b", wantErr: query.ErrKey},
		{name: "bad_syntax", input: `{"a": 1}`, query: "r = _.a +", wantErr: query.ErrSyntax},
		{name: "unknown_name", input: `{"a": 1}`, query: "r = b", wantErr: query.ErrQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runPipeline(t, tt.input, config.Options{Query: tt.query})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		query        string
		wantContains []string
	}{
		{
			name:         "ingestion",
			input:        "not json",
			wantContains: []string{"jello:  JSON Load Exception:", "Cannot parse line 1", "not json"},
		},
		{
			name:         "missing_key",
			input:        `{"a": 1}`,
			query:        "r = _.b",
			wantContains: []string{"jello:  Key does not exist: 'b'"},
		},
		{
			name:         "index_out_of_range",
			input:        `{"a": [1]}`,
			query:        "r = _.a[5]",
			wantContains: []string{"jello:  list index out of range"},
		},
		{
			name:         "syntax",
			input:        `{"a": 1}`,
			query:        "r = _.a +",
			wantContains: []string{"jello:  ", "r = _.a +"},
		},
		{
			name:         "query_exception",
			input:        `{"a": 1}`,
			query:        "r = b",
			wantContains: []string{"jello:  Query Exception:", "_: {\"a\":1}", "query: r = b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runPipeline(t, tt.input, config.Options{Query: tt.query})
			if err == nil {
				t.Fatal("Run() expected an error")
			}

			message := ErrorMessage(err)
			for _, fragment := range tt.wantContains {
				if !strings.Contains(message, fragment) {
					t.Errorf("ErrorMessage() = %q, missing %q", message, fragment)
				}
			}
		})
	}
}

func TestErrorMessageFallback(t *testing.T) {
	t.Parallel()

	got := ErrorMessage(errors.New("boom"))
	if got != "jello:  boom\n" {
		t.Errorf("ErrorMessage() = %q", got)
	}
}
