package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSONObject is returned when no {...} span can be located in the
// model's output.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// ParseDocumentFields recovers a DocumentFields object from raw model output.
// Models frequently wrap JSON in prose or code fences, so recovery is
// best-effort: a fenced block is preferred, otherwise the substring from the
// first '{' to the last '}' is parsed. Required fields are documentType,
// vendor, date, and description; amount and lineItems may be absent.
func ParseDocumentFields(raw string) (*DocumentFields, error) {
	candidate, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &present); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	var missing []string
	for _, key := range []string{"documentType", "vendor", "date", "description"} {
		if _, ok := present[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	var fields DocumentFields
	if err := json.Unmarshal([]byte(candidate), &fields); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return &fields, nil
}

func extractJSONObject(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if fenced, ok := stripCodeFence(content); ok {
		content = fenced
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return content[start : end+1], nil
}

// stripCodeFence returns the body of the first ```json or ``` fenced block.
func stripCodeFence(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open == -1 {
		return "", false
	}
	rest := s[open+3:]
	rest = strings.TrimPrefix(rest, "json")
	closing := strings.Index(rest, "```")
	if closing == -1 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:closing]), true
}
