package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a response contains no parseable JSON object.
var ErrNoJSON = errors.New("no valid JSON object found in response")

// thinkBlock matches a leading <think>...</think> reasoning block.
var thinkBlock = regexp.MustCompile(`(?s)^\s*<think>.*?</think>\s*`)

// ExtractJSON returns the first balanced JSON object in an LLM response.
// Reasoning blocks, markdown fences and surrounding prose are ignored.
func ExtractJSON(response string) (string, error) {
	cleaned := thinkBlock.ReplaceAllString(response, "")

	for start := strings.IndexByte(cleaned, '{'); start >= 0; {
		if obj, ok := balancedObject(cleaned[start:]); ok && json.Valid([]byte(obj)) {
			return obj, nil
		}
		next := strings.IndexByte(cleaned[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return "", ErrNoJSON
}

// balancedObject returns the prefix of s, which starts with '{', up to and
// including its matching '}'. Braces inside JSON strings are skipped.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
