package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "validate-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{"type": "string"},
				"count":   map[string]any{"type": "integer"},
			},
			"required": []any{"summary"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"summary":"ok","count":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything goes`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_InvalidJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"summary": `))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"count":1}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
	if string(inv.Content) != `{"count":1}` {
		t.Fatalf("expected content preserved, got: %s", inv.Content)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"summary":"ok","count":"two"}`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}
