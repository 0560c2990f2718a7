package components

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestCoerceParamsAppliesDefaults(t *testing.T) {
	v := NewValidator()

	def := interfaces.ComponentDefinition{
		Name: "badge",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "label", Type: interfaces.ComponentParamString, Required: true},
				{Name: "tone", Type: interfaces.ComponentParamString, Default: "neutral"},
			},
		},
	}

	out, err := v.CoerceParams(def, map[string]any{"label": "New"})
	if err != nil {
		t.Fatalf("expected coerce to succeed, got %v", err)
	}
	if out["tone"] != "neutral" {
		t.Fatalf("expected param default to apply, got %v", out["tone"])
	}
}

func TestCoerceParamsMixedDefaultSources(t *testing.T) {
	v := NewValidator()

	// The Defaults map covers one param; the other keeps its own default.
	def := interfaces.ComponentDefinition{
		Name: "badge",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "size", Type: interfaces.ComponentParamString, Default: "medium"},
				{Name: "tone", Type: interfaces.ComponentParamString, Default: "neutral"},
			},
			Defaults: map[string]any{"tone": "accent"},
		},
	}

	out, err := v.CoerceParams(def, nil)
	if err != nil {
		t.Fatalf("expected coerce to succeed, got %v", err)
	}
	if out["tone"] != "accent" {
		t.Fatalf("expected defaults map to win, got %v", out["tone"])
	}
	if out["size"] != "medium" {
		t.Fatalf("expected param default for uncovered key, got %v", out["size"])
	}
}

func TestCoerceParamsSuppliedOverridesDefaults(t *testing.T) {
	v := NewValidator()

	def := interfaces.ComponentDefinition{
		Name: "badge",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "tone", Type: interfaces.ComponentParamString, Default: "neutral"},
			},
			Defaults: map[string]any{"tone": "accent"},
		},
	}

	out, err := v.CoerceParams(def, map[string]any{"tone": "danger"})
	if err != nil {
		t.Fatalf("expected coerce to succeed, got %v", err)
	}
	if out["tone"] != "danger" {
		t.Fatalf("expected supplied value to win, got %v", out["tone"])
	}
}

func TestCoerceParamsRejectsUnknownParameter(t *testing.T) {
	v := NewValidator()

	def := interfaces.ComponentDefinition{
		Name: "badge",
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{Name: "tone", Type: interfaces.ComponentParamString},
			},
		},
	}

	if _, err := v.CoerceParams(def, map[string]any{"shade": "dark"}); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}
