// Package filter applies JMESPath expressions to JSON API responses, used
// by the CLI's --filter and --query flags.
package filter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Apply applies filter and query expressions to a JSON document.
// Filter narrows results (e.g., [?status=='interview']); query selects or
// reshapes fields (e.g., [].company). Either may be empty.
func Apply(body string, filter string, query string) (string, error) {
	result := body

	if filter != "" {
		filtered, err := applyJMESPath(result, filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		result = filtered
	}

	if query != "" {
		queried, err := applyJMESPath(result, query)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		result = queried
	}

	return result, nil
}

// applyJMESPath evaluates one expression against a JSON document and
// re-serializes the result with indentation.
func applyJMESPath(body string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "", fmt.Errorf("response is not valid JSON: %w", err)
	}

	result, err := jmespath.Search(expression, data)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression %q: %w", expression, err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(result); err != nil {
		return "", fmt.Errorf("failed to serialize result: %w", err)
	}

	return buf.String(), nil
}
