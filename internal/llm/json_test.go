package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare object", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "markdown fence", input: "```json\n{\"a\": {\"b\": 2}}\n```", expected: `{"a": {"b": 2}}`},
		{name: "prose around", input: `Here is the profile: {"summary":"ok"} Let me know!`, expected: `{"summary":"ok"}`},
		{name: "braces inside strings", input: `{"summary":"likes {curly} braces \" and quotes"}`, expected: `{"summary":"likes {curly} braces \" and quotes"}`},
		{name: "think block", input: "<think>maybe {not this}</think>\n{\"a\":true}", expected: `{"a":true}`},
		{name: "skips invalid leading object", input: `{oops} then {"a":1}`, expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, input := range []string{"", "no json here", `{"unterminated": `, "[1,2,3]"} {
		_, err := ExtractJSON(input)
		assert.ErrorIs(t, err, ErrNoJSON, "input %q", input)
	}
}
