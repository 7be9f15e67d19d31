package validation

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when no JSON object can be located in a response.
var ErrNoJSON = errors.New("validation: no JSON object found in response")

// ExtractJSON locates the JSON object in a model response. It looks, in
// order, for a <json>...</json> block, a fenced ```json block, and finally
// the outermost {...} span. The candidate must parse as JSON.
func ExtractJSON(text string) ([]byte, error) {
	for _, candidate := range []string{
		between(text, "<json>", "</json>"),
		fenced(text),
		outermostObject(text),
	} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}
	return nil, ErrNoJSON
}

func between(text, open, close string) string {
	start := strings.Index(text, open)
	if start < 0 {
		return ""
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, close)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func fenced(text string) string {
	for _, open := range []string{"```json", "```JSON", "```"} {
		if body := between(text, open, "```"); strings.TrimSpace(body) != "" {
			return body
		}
	}
	return ""
}

func outermostObject(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(text, "}")
	if end < start {
		return ""
	}
	return text[start : end+1]
}
