package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Create a temporary config file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "requests.yaml")

	configContent := `
vars:
  userId: "1"

headers:
  Accept: application/json

requests:
  getUser:
    method: GET
    url: https://api.example.com/users/{{userId}}
    headers:
      X-Trace: abc
    timeout: 5
    extract:
      email: $.email
    expect:
      status: 200
      contentType: application/json
      exists:
        - $.id
      schema: user.schema.json
  createUser:
    method: POST
    url: https://api.example.com/users
    body:
      name: Bob
      age: 42
`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Error creating test config file: %v", err)
	}

	// Load the config
	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Error loading config: %v", err)
	}

	// Check vars and shared headers
	if config.Vars["userId"] != "1" {
		t.Errorf("Expected userId to be 1, got %s", config.Vars["userId"])
	}
	if config.Headers["Accept"] != "application/json" {
		t.Errorf("Expected Accept header to be application/json, got %s", config.Headers["Accept"])
	}

	// Check requests
	if len(config.Requests) != 2 {
		t.Errorf("Expected 2 requests, got %d", len(config.Requests))
	}

	getUser, ok := config.Requests["getUser"]
	if !ok {
		t.Fatalf("Expected getUser request to exist")
	}
	if getUser.Method != "GET" {
		t.Errorf("Expected getUser method to be GET, got %s", getUser.Method)
	}
	if getUser.URL != "https://api.example.com/users/{{userId}}" {
		t.Errorf("Expected getUser URL to keep its placeholder, got %s", getUser.URL)
	}
	if getUser.Headers["X-Trace"] != "abc" {
		t.Errorf("Expected X-Trace header to be abc, got %s", getUser.Headers["X-Trace"])
	}
	if getUser.Timeout != 5 {
		t.Errorf("Expected getUser timeout to be 5, got %d", getUser.Timeout)
	}
	if getUser.Extract["email"] != "$.email" {
		t.Errorf("Expected extract path $.email, got %s", getUser.Extract["email"])
	}
	if getUser.Expect == nil {
		t.Fatalf("Expected getUser to have an expect block")
	}
	if getUser.Expect.Status != 200 {
		t.Errorf("Expected expected status 200, got %d", getUser.Expect.Status)
	}
	if getUser.Expect.ContentType != "application/json" {
		t.Errorf("Expected expected content type application/json, got %s", getUser.Expect.ContentType)
	}
	if len(getUser.Expect.Exists) != 1 || getUser.Expect.Exists[0] != "$.id" {
		t.Errorf("Expected exists paths [$.id], got %v", getUser.Expect.Exists)
	}
	if getUser.Expect.Schema != "user.schema.json" {
		t.Errorf("Expected schema user.schema.json, got %s", getUser.Expect.Schema)
	}

	createUser, ok := config.Requests["createUser"]
	if !ok {
		t.Fatalf("Expected createUser request to exist")
	}
	body, ok := createUser.Body.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected createUser body to be a map, got %T", createUser.Body)
	}
	if body["name"] != "Bob" {
		t.Errorf("Expected body name to be Bob, got %v", body["name"])
	}
	if body["age"] != 42 {
		t.Errorf("Expected body age to be 42, got %v", body["age"])
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	// Create a temporary JSON config file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "requests.json")

	configContent := `{
		"vars": {
			"userId": "7"
		},
		"requests": {
			"getUser": {
				"method": "GET",
				"url": "https://api.example.com/users/{{userId}}"
			}
		}
	}`

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Error creating test config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Error loading config: %v", err)
	}

	if config.Vars["userId"] != "7" {
		t.Errorf("Expected userId to be 7, got %s", config.Vars["userId"])
	}
	if len(config.Requests) != 1 {
		t.Errorf("Expected 1 request, got %d", len(config.Requests))
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("non-existent-file.yaml")
	if err == nil {
		t.Errorf("Expected error for non-existent file, got nil")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	// Create a temporary file with invalid JSON
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.json")

	invalidContent := `{ this is not valid json }`
	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	if err != nil {
		t.Fatalf("Error creating test file: %v", err)
	}

	_, err = LoadConfig(configPath)
	if err == nil {
		t.Errorf("Expected error for invalid JSON, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	// Create a temporary file with invalid YAML
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.yaml")

	invalidContent := "requests:\n\t- tabs are not allowed"
	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	if err != nil {
		t.Fatalf("Error creating test file: %v", err)
	}

	_, err = LoadConfig(configPath)
	if err == nil {
		t.Errorf("Expected error for invalid YAML, got nil")
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{
		"baseUrl": "https://api.example.com",
		"userId":  "123",
		"token":   "abc123",
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "No variables",
			input:    "Hello, world!",
			expected: "Hello, world!",
		},
		{
			name:     "Single variable",
			input:    "{{baseUrl}}/users",
			expected: "https://api.example.com/users",
		},
		{
			name:     "Multiple variables",
			input:    "{{baseUrl}}/users/{{userId}}?token={{token}}",
			expected: "https://api.example.com/users/123?token=abc123",
		},
		{
			name:     "Unknown variable",
			input:    "{{baseUrl}}/users/{{unknown}}",
			expected: "https://api.example.com/users/{{unknown}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandVars(tt.input, vars)
			if result != tt.expected {
				t.Errorf("ExpandVars() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestExpandVarsInMap(t *testing.T) {
	vars := map[string]string{
		"baseUrl": "https://api.example.com",
		"userId":  "123",
	}

	input := map[string]string{
		"url":   "{{baseUrl}}/users/{{userId}}",
		"token": "Bearer {{userId}}-token",
		"plain": "No variables here",
	}

	expected := map[string]string{
		"url":   "https://api.example.com/users/123",
		"token": "Bearer 123-token",
		"plain": "No variables here",
	}

	result := ExpandVarsInMap(input, vars)

	for key, expectedValue := range expected {
		if result[key] != expectedValue {
			t.Errorf("ExpandVarsInMap()[%s] = %v, want %v", key, result[key], expectedValue)
		}
	}
}

func TestExpandVarsInValue(t *testing.T) {
	vars := map[string]string{
		"user": "bob",
		"env":  "prod",
	}

	input := map[string]interface{}{
		"name":  "{{user}}",
		"count": 3,
		"tags":  []interface{}{"{{env}}", 1},
		"nested": map[string]interface{}{
			"owner": "{{user}}",
		},
	}

	result, ok := ExpandVarsInValue(input, vars).(map[string]interface{})
	if !ok {
		t.Fatalf("Expected a map result, got %T", ExpandVarsInValue(input, vars))
	}

	if result["name"] != "bob" {
		t.Errorf("Expected name to be bob, got %v", result["name"])
	}
	if result["count"] != 3 {
		t.Errorf("Expected count to stay 3, got %v", result["count"])
	}

	tags, ok := result["tags"].([]interface{})
	if !ok || len(tags) != 2 {
		t.Fatalf("Expected tags to stay a 2-element slice, got %v", result["tags"])
	}
	if tags[0] != "prod" {
		t.Errorf("Expected tags[0] to be prod, got %v", tags[0])
	}
	if tags[1] != 1 {
		t.Errorf("Expected tags[1] to stay 1, got %v", tags[1])
	}

	nested, ok := result["nested"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested to stay a map, got %T", result["nested"])
	}
	if nested["owner"] != "bob" {
		t.Errorf("Expected nested owner to be bob, got %v", nested["owner"])
	}

	// Scalar and nil inputs pass through
	if got := ExpandVarsInValue("{{user}}", vars); got != "bob" {
		t.Errorf("Expected string input to expand, got %v", got)
	}
	if got := ExpandVarsInValue(42, vars); got != 42 {
		t.Errorf("Expected int input to pass through, got %v", got)
	}
	if got := ExpandVarsInValue(nil, vars); got != nil {
		t.Errorf("Expected nil input to pass through, got %v", got)
	}
}

func TestMergeVars(t *testing.T) {
	base := map[string]string{
		"baseUrl": "https://api.example.com",
		"userId":  "123",
		"token":   "abc",
	}

	override := map[string]string{
		"userId": "456",
		"newVar": "xyz",
	}

	expected := map[string]string{
		"baseUrl": "https://api.example.com",
		"userId":  "456",
		"token":   "abc",
		"newVar":  "xyz",
	}

	result := MergeVars(base, override)

	for key, expectedValue := range expected {
		if result[key] != expectedValue {
			t.Errorf("MergeVars()[%s] = %v, want %v", key, result[key], expectedValue)
		}
	}
}

func TestResolveSchemaPath(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		schemaPath string
		expected   string
	}{
		{
			name:       "relative schema",
			configPath: "/etc/creq/requests.yaml",
			schemaPath: "user.schema.json",
			expected:   "/etc/creq/user.schema.json",
		},
		{
			name:       "nested relative schema",
			configPath: "/etc/creq/requests.yaml",
			schemaPath: "schemas/user.json",
			expected:   "/etc/creq/schemas/user.json",
		},
		{
			name:       "absolute schema",
			configPath: "/etc/creq/requests.yaml",
			schemaPath: "/srv/schemas/user.json",
			expected:   "/srv/schemas/user.json",
		},
		{
			name:       "config in current dir",
			configPath: "requests.yaml",
			schemaPath: "user.json",
			expected:   "user.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filepath.ToSlash(ResolveSchemaPath(tt.configPath, tt.schemaPath))
			if result != tt.expected {
				t.Errorf("ResolveSchemaPath() = %v, want %v", result, tt.expected)
			}
		})
	}
}
