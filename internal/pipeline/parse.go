package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The LLM is not a guaranteed-structured-output channel: it may wrap JSON in
// prose or markdown fences. These helpers tolerate both by stripping known
// wrapping markers, then bracket-matching to the outermost value.

// extractJSONArray slices the raw response from its first '[' to its last
// ']' and decodes the substring as a string array.
func extractJSONArray(raw string) ([]string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var items []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("decode claim array: %w", err)
	}
	return items, nil
}

// extractJSONObject returns the JSON-object substring of a raw response.
// A fenced code block is unwrapped first (including a leading "json"
// language tag); the result is then sliced from the first '{' to the last
// '}' in case prose surrounds the object.
func extractJSONObject(raw string) (string, error) {
	if strings.Contains(raw, "```") {
		for _, part := range strings.Split(raw, "```") {
			p := strings.TrimSpace(part)
			p = strings.TrimSpace(strings.TrimPrefix(p, "json"))
			if strings.HasPrefix(p, "{") {
				raw = p
				break
			}
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return raw[start : end+1], nil
}
