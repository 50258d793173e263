package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/jello/internal/ingest"
	"github.com/jacoelho/jello/internal/normalize"
	"github.com/jacoelho/jello/internal/query"
)

// ErrorMessage renders a pipeline error in the tool's stderr shape. Every
// message maps to a non-zero exit; there is no recoverable error.
func ErrorMessage(err error) string {
	var ingestErr *ingest.Error
	if errors.As(err, &ingestErr) {
		return fmt.Sprintf("jello:  JSON Load Exception: %v\n"+
			"        Cannot parse line %d (Not JSON or JSON Lines data):\n"+
			"        %s\n",
			ingestErr.Err, ingestErr.Line, ingestErr.Preview)
	}

	var keyErr *query.KeyError
	if errors.As(err, &keyErr) {
		return fmt.Sprintf("jello:  Key does not exist: %v\n", keyErr)
	}

	var indexErr *query.IndexError
	if errors.As(err, &indexErr) {
		return fmt.Sprintf("jello:  %v\n", indexErr)
	}

	var syntaxErr *query.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("jello:  %s\n        %s\n", syntaxErr.Msg, syntaxErr.Line)
	}

	if errors.Is(err, query.ErrType) {
		return fmt.Sprintf("jello:  TypeError: %s\n", strings.TrimPrefix(err.Error(), "type error: "))
	}

	var queryErr *query.QueryError
	if errors.As(err, &queryErr) {
		return fmt.Sprintf("jello:  Query Exception: %v\n"+
			"        _: %s\n"+
			"        query: %s\n"+
			"        output: %s\n",
			queryErr.Err, queryErr.Input, queryErr.Query, queryErr.Output)
	}

	var normalizeErr *normalize.Error
	if errors.As(err, &normalizeErr) {
		return fmt.Sprintf("jello:  Normalize Exception: %v\n"+
			"        data: %s\n"+
			"        result_list: %v\n",
			normalizeErr.Err, normalizeErr.Data, normalizeErr.Partial)
	}

	return fmt.Sprintf("jello:  %v\n", err)
}
