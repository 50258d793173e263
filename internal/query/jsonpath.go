package query

import (
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/jello/internal/value"
)

// runJSONPath evaluates a `$`-prefixed query as an RFC 9535 JSONPath
// expression against the input. Zero matches yield null, one match yields
// that value, several yield an array of them.
func runJSONPath(input value.Value, src string) (result value.Value, err error) {
	path, parseErr := jsonpath.Parse(src)
	if parseErr != nil {
		return value.Null(), &SyntaxError{Msg: parseErr.Error(), Line: src}
	}

	// The engine operates on plain decoded JSON and can panic on shapes it
	// does not expect; keep that inside the query-error taxonomy.
	defer func() {
		if recovered := recover(); recovered != nil {
			result = value.Null()
			err = fmt.Errorf("jsonpath selection failed: %v", recovered)
		}
	}()

	selected := path.Select(input.Interface())
	switch len(selected) {
	case 0:
		return value.Null(), nil
	case 1:
		return value.FromInterface(selected[0])
	default:
		items := make([]value.Value, len(selected))
		for i, item := range selected {
			converted, convErr := value.FromInterface(item)
			if convErr != nil {
				return value.Null(), convErr
			}
			items[i] = converted
		}
		return value.FromArray(items), nil
	}
}
