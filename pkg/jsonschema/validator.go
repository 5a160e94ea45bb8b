// Package jsonschema checks JSON documents against JSON Schema
// definitions, backed by santhosh-tekuri/jsonschema. It reports schema
// violations as structured issues rather than opaque error strings, so
// callers can render them per location.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Issue is one schema violation, located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool
	Issues []Issue
}

// Summary joins all issues into one line, empty when the document is
// valid.
func (r *Result) Summary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// Validate checks document against schema. A schema that does not
// compile or a document that is not JSON is an error; an invalid
// document is a non-error Result listing the violations.
func Validate(document, schema string) (*Result, error) {
	compiled, err := compile(schema)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := json.Unmarshal([]byte(document), &value); err != nil {
		return nil, fmt.Errorf("invalid json document: %w", err)
	}

	if err := compiled.Validate(value); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return &Result{Valid: false, Issues: flatten(validationErr)}, nil
		}
		return nil, fmt.Errorf("validate: %w", err)
	}

	return &Result{Valid: true}, nil
}

func compile(schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return compiled, nil
}

// flatten walks the cause tree depth-first and keeps the leaf messages,
// which carry the concrete violations.
func flatten(err *jsonschema.ValidationError) []Issue {
	if len(err.Causes) == 0 {
		return []Issue{{Location: err.InstanceLocation, Message: err.Message}}
	}

	var issues []Issue
	for _, cause := range err.Causes {
		issues = append(issues, flatten(cause)...)
	}
	return issues
}
