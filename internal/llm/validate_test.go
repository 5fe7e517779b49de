package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var testSchema = &Schema{
	Name:        "test-lesson-stub",
	Description: "A lesson stub for validation tests",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"type": map[string]any{
				"type": "string",
				"enum": []any{"text", "video", "quiz"},
			},
		},
		"required":             []any{"title", "type"},
		"additionalProperties": false,
	},
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"title":"Intro","type":"text"}`)
	if err := validateResponse(testSchema, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_NotJSON(t *testing.T) {
	err := validateResponse(testSchema, json.RawMessage(`not json at all`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestValidateResponse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required field", `{"title":"Intro"}`},
		{"bad enum value", `{"title":"Intro","type":"podcast"}`},
		{"extra property", `{"title":"Intro","type":"text","extra":1}`},
		{"wrong type", `{"title":7,"type":"text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema, json.RawMessage(tt.raw))
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema should not validate: %v", err)
	}
}
