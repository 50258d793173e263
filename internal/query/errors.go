package query

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jello/internal/value"
)

// Evaluation failures map onto a small taxonomy the caller can dispatch on
// with errors.Is / errors.As.
var (
	ErrKey    = errors.New("key does not exist")
	ErrIndex  = errors.New("index error")
	ErrSyntax = errors.New("syntax error")
	ErrType   = errors.New("type error")
	ErrQuery  = errors.New("query error")

	// ErrNotLiteral is returned by ParseLiteral when the text is not a
	// recognized literal form; callers treat the line as a plain string.
	ErrNotLiteral = errors.New("not a literal")
)

// parseError is an internal lex/parse failure carrying the byte offset of
// the offending token. Run converts it into a SyntaxError with the source
// line attached.
type parseError struct {
	pos int
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

func parseErrorf(pos int, format string, args ...any) error {
	return &parseError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// SyntaxError reports malformed query text along with the offending line.
type SyntaxError struct {
	Msg  string
	Line string
}

func (e *SyntaxError) Error() string {
	if e.Line == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Line)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// KeyError reports a lookup of a missing object key.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("'%s'", e.Key)
}

func (e *KeyError) Unwrap() error {
	return ErrKey
}

// QueryError is the catch-all for evaluation failures outside the dedicated
// kinds. It keeps the input value, the query text and any partial output so
// the failure is diagnosable from the error alone.
type QueryError struct {
	Input  value.Value
	Query  string
	Output string
	Err    error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return ErrQuery
}

// IndexError reports indexing out of bounds or with an invalid index type.
// Its message is printed bare on stderr.
type IndexError struct {
	Msg string
}

func (e *IndexError) Error() string {
	return e.Msg
}

func (e *IndexError) Unwrap() error {
	return ErrIndex
}

func indexErrorf(format string, args ...any) error {
	return &IndexError{Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, args...))
}
