// Package config owns the CLI surface: bundled short flags, numeric long
// options, the query argument and the optional defaults file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Version is reported by -v.
const Version = "1.0.0"

var ErrUsage = errors.New("usage error")

// DefaultsFile is the per-user defaults file, resolved against the home
// directory.
const DefaultsFile = ".jello.yaml"

// Options is the configuration record the pipeline consumes.
type Options struct {
	Compact bool `yaml:"compact"`
	Lines   bool `yaml:"lines"`
	Nulls   bool `yaml:"nulls"`
	Raw     bool `yaml:"raw"`
	Debug   int  `yaml:"debug"`

	Version bool   `yaml:"-"`
	Help    bool   `yaml:"-"`
	Query   string `yaml:"-"`
}

// Parse reads the argument vector on top of defaults. Short flags are
// bundled after a single dash (`-cl`); long options take the form
// `--key=value` with an integer value; exactly one bare argument is the
// query text (the last one wins). Unknown short letters are ignored, which
// matches the historical behavior.
func Parse(args []string, defaults Options) (*Options, error) {
	opts := defaults

	for _, arg := range args[1:] {
		switch {
		case strings.HasPrefix(arg, "--"):
			if err := opts.applyLongOption(arg[2:]); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "-"):
			opts.applyShortFlags(arg[1:])
		default:
			opts.Query = arg
		}
	}

	return &opts, nil
}

func (o *Options) applyShortFlags(flags string) {
	for _, flag := range flags {
		switch flag {
		case 'c':
			o.Compact = true
		case 'l':
			o.Lines = true
		case 'n':
			o.Nulls = true
		case 'r':
			o.Raw = true
		case 'v':
			o.Version = true
		case 'h':
			o.Help = true
		}
	}
}

func (o *Options) applyLongOption(option string) error {
	key, raw, ok := strings.Cut(option, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: malformed option --%s", ErrUsage, option)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: option --%s requires an integer value", ErrUsage, key)
	}

	switch key {
	case "debug":
		o.Debug = n
	default:
		// Reserved for future numeric options; accepted and ignored.
	}
	return nil
}

// LoadDefaults reads the per-user defaults file from the home directory.
// A missing file yields zero defaults.
func LoadDefaults() (Options, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Options{}, nil
	}
	return ReadDefaults(filepath.Join(home, DefaultsFile))
}

// ReadDefaults reads a defaults file from an explicit path. A missing file
// is not an error; an unreadable or invalid one is a usage error.
func ReadDefaults(path string) (Options, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("%w: cannot read %s: %v", ErrUsage, path, err)
	}

	var opts Options
	if err := yaml.Unmarshal(payload, &opts); err != nil {
		return Options{}, fmt.Errorf("%w: cannot parse %s: %v", ErrUsage, path, err)
	}
	return opts, nil
}

// HelpText is printed on -h and on malformed long options.
func HelpText() string {
	return `jello:   query JSON at the command line with python-like syntax

Usage:  <JSON Data> | jello [OPTIONS] QUERY

        -c    compact JSON output
        -l    output as lines suitable for a bash array
        -n    print selected null values
        -r    raw string output (no quotes)
        -v    version info
        -h    help

Use '_' as the input data and assign the result to 'r'. Use python dict syntax.
A query starting with '$' is evaluated as an RFC 9535 JSONPath expression.

Example:
        <JSON Data> | jello 'r = _["foo"]'
`
}

func VersionText() string {
	return fmt.Sprintf("jello:   version %s\n", Version)
}
