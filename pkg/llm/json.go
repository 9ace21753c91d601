package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaError indicates a response was not valid JSON or violated the
// stage's schema. Fatal — there is no silent fallback value.
type SchemaError struct {
	Stage string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response for %s did not match schema: %v", e.Stage, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// DecodeJSON strips markdown code fences from a model response and decodes
// the remainder into v. Unknown fields are tolerated; malformed JSON is a
// SchemaError for the named stage.
func DecodeJSON(stage, raw string, v interface{}) error {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return &SchemaError{Stage: stage, Err: fmt.Errorf("empty response")}
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &SchemaError{Stage: stage, Err: err}
	}
	return nil
}

// StripFences removes a wrapping markdown code fence, if present, and trims
// surrounding whitespace.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	if strings.HasSuffix(text, "```") {
		if idx := strings.LastIndex(text, "\n"); idx >= 0 {
			text = text[:idx]
		} else {
			text = strings.TrimSuffix(text, "```")
		}
	}

	return strings.TrimSpace(text)
}
