package validation

import (
	"errors"
	"testing"
)

var projectSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"project": map[string]any{"type": "string"},
		"weight":  map[string]any{"type": "integer"},
	},
	"required": []any{"project"},
}

func TestValidatePayloadAccepts(t *testing.T) {
	payload := map[string]any{"project": "bucketbyte", "weight": 3}
	if err := ValidatePayload(projectSchema, payload); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatePayloadRejectsMissingRequired(t *testing.T) {
	err := ValidatePayload(projectSchema, map[string]any{"weight": 3})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := Issues(err)
	if len(issues) == 0 {
		t.Fatal("expected validation issues to be reported")
	}
}

func TestValidatePayloadRejectsWrongType(t *testing.T) {
	err := ValidatePayload(projectSchema, map[string]any{"project": 42})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestValidateSchemaRejectsGarbage(t *testing.T) {
	bad := map[string]any{"type": "not-a-type"}
	if err := ValidateSchema(bad); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadNoSchemaIsNoOp(t *testing.T) {
	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to skip validation, got %v", err)
	}
}
