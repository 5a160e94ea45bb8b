package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a request definition file
type Config struct {
	Vars     map[string]string      `json:"vars,omitempty" yaml:"vars,omitempty"`
	Headers  map[string]string      `json:"headers,omitempty" yaml:"headers,omitempty"`
	Requests map[string]RequestSpec `json:"requests" yaml:"requests"`
}

// RequestSpec represents a single named request definition
type RequestSpec struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Form    map[string]string `json:"form,omitempty" yaml:"form,omitempty"`
	Timeout int               `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Extract map[string]string `json:"extract,omitempty" yaml:"extract,omitempty"`
	Expect  *Expect           `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// Expect represents the assertions checked against a response
type Expect struct {
	Status      int      `json:"status,omitempty" yaml:"status,omitempty"`
	ContentType string   `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Exists      []string `json:"exists,omitempty" yaml:"exists,omitempty"`
	Schema      string   `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// LoadConfig loads a request definition file. Files ending in .json are
// parsed as JSON; everything else is parsed as YAML, which also accepts
// JSON documents.
func LoadConfig(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	return &config, nil
}

// ExpandVars replaces {{name}} placeholders in a string. Placeholders
// without a matching variable are left untouched.
func ExpandVars(input string, vars map[string]string) string {
	result := input

	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}

	return result
}

// ExpandVarsInMap replaces {{name}} placeholders in every value of a map
func ExpandVarsInMap(input map[string]string, vars map[string]string) map[string]string {
	result := make(map[string]string)

	for key, value := range input {
		result[key] = ExpandVars(value, vars)
	}

	return result
}

// ExpandVarsInValue replaces {{name}} placeholders in string values of an
// arbitrary body, recursing into maps and slices. Non-string values are
// returned as is.
func ExpandVarsInValue(input interface{}, vars map[string]string) interface{} {
	switch value := input.(type) {
	case string:
		return ExpandVars(value, vars)
	case map[string]interface{}:
		result := make(map[string]interface{}, len(value))
		for k, v := range value {
			result[k] = ExpandVarsInValue(v, vars)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(value))
		for i, v := range value {
			result[i] = ExpandVarsInValue(v, vars)
		}
		return result
	default:
		return input
	}
}

// MergeVars merges two variable maps, with the second taking precedence
func MergeVars(base, override map[string]string) map[string]string {
	result := make(map[string]string)

	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		result[key] = value
	}

	return result
}

// ResolveSchemaPath resolves a schema file path against the directory of
// the config file. Absolute paths are returned unchanged.
func ResolveSchemaPath(configPath, schemaPath string) string {
	if filepath.IsAbs(schemaPath) {
		return schemaPath
	}
	return filepath.Join(filepath.Dir(configPath), schemaPath)
}
