package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_FencedWithCommentary(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"a\":1}\n```\nThanks"
	payload, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, payload)
}

func TestSanitize_BareObject(t *testing.T) {
	payload, err := Sanitize(`{"education": 80, "projects": 65}`)
	require.NoError(t, err)
	assert.Equal(t, float64(80), payload["education"])
	assert.Equal(t, float64(65), payload["projects"])
}

func TestSanitize_GenericFence(t *testing.T) {
	raw := "```\n{\"x\": true}\n```"
	payload, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, true, payload["x"])
}

func TestSanitize_TrailingJSONLikeText(t *testing.T) {
	// A greedy first-{ to last-} match would swallow the second object and fail.
	raw := `{"real": 1} and by the way {"decoy": 2}`
	payload, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"real": float64(1)}, payload)
}

func TestSanitize_BracesInsideStrings(t *testing.T) {
	raw := `{"note": "uses {braces} and a quote \" inside", "n": 3} trailing`
	payload, err := Sanitize(raw)
	require.NoError(t, err)
	assert.Equal(t, `uses {braces} and a quote " inside`, payload["note"])
	assert.Equal(t, float64(3), payload["n"])
}

func TestSanitize_NestedObject(t *testing.T) {
	raw := `prefix {"outer": {"inner": {"deep": "value"}}} suffix`
	payload, err := Sanitize(raw)
	require.NoError(t, err)
	outer, ok := payload["outer"].(map[string]any)
	require.True(t, ok)
	assert.NotNil(t, outer["inner"])
}

func TestSanitize_BackticksInsideStrings(t *testing.T) {
	// A backtick run inside a JSON string value must not be read as a
	// closing fence, with or without a real closing fence present.
	tests := []struct {
		name string
		raw  string
	}{
		{"closed fence", "```json\n{\"note\": \"wrap code in ``` fences\"}\n```"},
		{"unclosed fence", "```json\n{\"note\": \"wrap code in ``` fences\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Sanitize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "wrap code in ``` fences", payload["note"])
		})
	}
}

func TestSanitize_NoJSON(t *testing.T) {
	_, err := Sanitize("no json here")
	require.Error(t, err)
	var invalid *InvalidOutputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSanitize_UnbalancedObject(t *testing.T) {
	_, err := Sanitize(`{"a": {"b": 1}`)
	require.Error(t, err)
	var invalid *InvalidOutputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSanitize_Empty(t *testing.T) {
	_, err := Sanitize("   ")
	require.Error(t, err)
	var invalid *InvalidOutputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSanitize_MalformedJSON(t *testing.T) {
	_, err := Sanitize(`{"a": unquoted}`)
	require.Error(t, err)
	var invalid *InvalidOutputError
	assert.ErrorAs(t, err, &invalid)
}

func TestSchemaWarnings_Conforming(t *testing.T) {
	payload := map[string]any{
		"education":      80,
		"recommendation": "Solid candidate.",
		"sentiment": map[string]any{
			"overall": "Positive",
			"tone":    "Professional",
		},
	}
	assert.Empty(t, SchemaWarnings(payload))
}

func TestSchemaWarnings_Deviations(t *testing.T) {
	payload := map[string]any{
		"education":      "eighty",
		"recommendation": 42,
	}
	warnings := SchemaWarnings(payload)
	assert.NotEmpty(t, warnings)
}
