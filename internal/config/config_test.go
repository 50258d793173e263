package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want Options
	}{
		{
			name: "no_arguments",
			args: []string{"jello"},
			want: Options{},
		},
		{
			name: "query_only",
			args: []string{"jello", "r = _.foo"},
			want: Options{Query: "r = _.foo"},
		},
		{
			name: "separate_short_flags",
			args: []string{"jello", "-c", "-l"},
			want: Options{Compact: true, Lines: true},
		},
		{
			name: "bundled_short_flags",
			args: []string{"jello", "-lnr"},
			want: Options{Lines: true, Nulls: true, Raw: true},
		},
		{
			name: "unknown_short_flag_ignored",
			args: []string{"jello", "-cx"},
			want: Options{Compact: true},
		},
		{
			name: "flags_and_query",
			args: []string{"jello", "-c", "r = _.foo"},
			want: Options{Compact: true, Query: "r = _.foo"},
		},
		{
			name: "last_bare_argument_wins",
			args: []string{"jello", "first", "second"},
			want: Options{Query: "second"},
		},
		{
			name: "debug_long_option",
			args: []string{"jello", "--debug=2"},
			want: Options{Debug: 2},
		},
		{
			name: "unknown_long_option_accepted",
			args: []string{"jello", "--future=1"},
			want: Options{},
		},
		{
			name: "version_flag",
			args: []string{"jello", "-v"},
			want: Options{Version: true},
		},
		{
			name: "help_flag",
			args: []string{"jello", "-h"},
			want: Options{Help: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.args, Options{})
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseLongOptionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing_value", args: []string{"jello", "--debug"}},
		{name: "non_integer_value", args: []string{"jello", "--debug=yes"}},
		{name: "empty_key", args: []string{"jello", "--=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.args, Options{})
			if !errors.Is(err, ErrUsage) {
				t.Errorf("Parse() error = %v, want ErrUsage", err)
			}
		})
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()

	defaults := Options{Compact: true, Nulls: true}
	got, err := Parse([]string{"jello", "-r", "r = _"}, defaults)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Options{Compact: true, Nulls: true, Raw: true, Query: "r = _"}
	if *got != want {
		t.Errorf("Parse() = %+v, want %+v", *got, want)
	}
}

func TestReadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultsFile)
	payload := "compact: true\nlines: true\ndebug: 1\n"
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadDefaults(path)
	if err != nil {
		t.Fatalf("ReadDefaults() error = %v", err)
	}

	want := Options{Compact: true, Lines: true, Debug: 1}
	if got != want {
		t.Errorf("ReadDefaults() = %+v, want %+v", got, want)
	}
}

func TestReadDefaultsMissingFile(t *testing.T) {
	t.Parallel()

	got, err := ReadDefaults(filepath.Join(t.TempDir(), DefaultsFile))
	if err != nil {
		t.Fatalf("ReadDefaults() error = %v", err)
	}
	if got != (Options{}) {
		t.Errorf("ReadDefaults() = %+v, want zero options", got)
	}
}

func TestReadDefaultsInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultsFile)
	if err := os.WriteFile(path, []byte("compact: [not a bool"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := ReadDefaults(path)
	if !errors.Is(err, ErrUsage) {
		t.Errorf("ReadDefaults() error = %v, want ErrUsage", err)
	}
}
