// Package sanitize reduces free-text model replies to a parsed JSON object.
// Models wrap JSON in code fences and commentary even when told not to, and
// sometimes append JSON-like text after the real object, so extraction uses
// real brace-depth scanning rather than a greedy first-to-last match.
package sanitize

import (
	"encoding/json"
	"strings"
)

// Sanitize strips formatting artifacts from raw model output, isolates the
// first balanced JSON object, and parses it into a loosely-typed mapping.
// Returns *InvalidOutputError when no parseable object exists.
func Sanitize(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &InvalidOutputError{Message: "empty response"}
	}

	text = stripFence(text)

	object, ok := extractObject(text)
	if !ok {
		return nil, &InvalidOutputError{Message: "no balanced JSON object found"}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return nil, &InvalidOutputError{Message: "failed to parse JSON object", Cause: err}
	}

	return payload, nil
}

// stripFence removes a leading markdown code fence. The opening fence line
// may carry a language identifier. The closing fence is left in place: the
// brace scan stops at the balanced object anyway, and searching for a closing
// fence would mistake backticks inside JSON string values for one.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(text[:idx])
		// Drop a bare language identifier such as "json".
		if firstLine == "" || (len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {")) {
			text = text[idx+1:]
		}
	}
	return strings.TrimSpace(text)
}

// extractObject returns the substring from the first '{' to its matching
// closing brace. Braces inside string literals are ignored, including
// escaped quotes within those literals.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
