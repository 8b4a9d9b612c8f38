package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractTitleList parses raw model output into an ordered title list. The
// contract is strict: after stripping markdown fences the payload must be a
// JSON array of strings with at least one non-blank entry. Anything else is an
// error, because downstream catalog matching trusts title-string identity and
// must not run on coerced garbage.
func ExtractTitleList(raw string) ([]string, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty generation output")
	}

	// Decoding straight into []string would coerce null elements to "", so
	// the elements are type-checked one by one instead.
	var items []any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("output is not a JSON array of strings: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("output is an empty title list")
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		title, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("output array contains a non-string element")
		}
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("output contains only blank titles")
	}

	return result, nil
}

// StripCodeFences removes a surrounding markdown code block, with or without a
// language tag, and trims whitespace.
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}
