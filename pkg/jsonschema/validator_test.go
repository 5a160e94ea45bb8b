package jsonschema

import (
	"strings"
	"testing"
)

const userSchema = `{
	"type": "object",
	"required": ["name", "age"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0},
		"email": {"type": "string"}
	}
}`

func TestValidate_ValidDocument(t *testing.T) {
	result, err := Validate(`{"name":"Ada","age":36}`, userSchema)
	if err != nil {
		t.Fatalf("Error validating: %v", err)
	}

	if !result.Valid {
		t.Errorf("Expected valid, got issues: %s", result.Summary())
	}
	if len(result.Issues) != 0 {
		t.Errorf("Expected no issues, got %v", result.Issues)
	}
	if result.Summary() != "" {
		t.Errorf("Expected empty summary, got %q", result.Summary())
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantHint string
	}{
		{name: "missing required field", document: `{"name":"Ada"}`, wantHint: "age"},
		{name: "wrong type", document: `{"name":"Ada","age":"old"}`, wantHint: "/age"},
		{name: "below minimum", document: `{"name":"Ada","age":-1}`, wantHint: "/age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(tt.document, userSchema)
			if err != nil {
				t.Fatalf("Error validating: %v", err)
			}

			if result.Valid {
				t.Fatal("Expected invalid document")
			}
			if len(result.Issues) == 0 {
				t.Fatal("Expected at least one issue")
			}
			if !strings.Contains(result.Summary(), tt.wantHint) {
				t.Errorf("Expected summary mentioning %q, got %q", tt.wantHint, result.Summary())
			}
		})
	}
}

func TestValidate_MultipleViolations(t *testing.T) {
	result, err := Validate(`{"name":7,"age":-3}`, userSchema)
	if err != nil {
		t.Fatalf("Error validating: %v", err)
	}

	if result.Valid {
		t.Fatal("Expected invalid document")
	}
	if len(result.Issues) < 2 {
		t.Errorf("Expected one issue per violation, got %v", result.Issues)
	}
}

func TestValidate_BrokenInputs(t *testing.T) {
	t.Run("schema that is not json", func(t *testing.T) {
		if _, err := Validate(`{}`, `{broken`); err == nil {
			t.Error("Expected error, got nil")
		}
	})

	t.Run("schema that does not compile", func(t *testing.T) {
		if _, err := Validate(`{}`, `{"type":"flavor"}`); err == nil {
			t.Error("Expected error, got nil")
		}
	})

	t.Run("document that is not json", func(t *testing.T) {
		if _, err := Validate(`{broken`, userSchema); err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

func TestIssue_String(t *testing.T) {
	withLocation := Issue{Location: "/age", Message: "expected integer"}
	if withLocation.String() != "/age: expected integer" {
		t.Errorf("Unexpected issue rendering: %s", withLocation.String())
	}

	bare := Issue{Message: "missing property"}
	if bare.String() != "missing property" {
		t.Errorf("Unexpected issue rendering: %s", bare.String())
	}
}
