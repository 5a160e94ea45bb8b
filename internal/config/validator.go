package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates a request definition file
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	// Validate requests
	if len(config.Requests) == 0 {
		errors = append(errors, ValidationError{
			Path:    "requests",
			Message: "at least one request is required",
		})
	}

	for name, req := range config.Requests {
		// Validate request
		if req.URL == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.url", name),
				Message: "url is required",
			})
		}

		if req.Method == "" {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: "method is required",
			})
		} else {
			// Validate method
			method := strings.ToUpper(req.Method)
			if method != "GET" && method != "POST" && method != "PUT" && method != "DELETE" &&
				method != "PATCH" && method != "HEAD" && method != "OPTIONS" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.method", name),
					Message: fmt.Sprintf("invalid method: %s", req.Method),
				})
			}
		}

		// Body and form are competing payload sources
		if req.Body != nil && len(req.Form) > 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s", name),
				Message: "body and form cannot both be set",
			})
		}

		// Validate timeout
		if req.Timeout < 0 {
			errors = append(errors, ValidationError{
				Path:    fmt.Sprintf("requests.%s.timeout", name),
				Message: "timeout cannot be negative",
			})
		}

		// Validate extract paths
		for varName, path := range req.Extract {
			if path == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.extract.%s", name, varName),
					Message: "extract path cannot be empty",
				})
			}
		}

		// Validate expectations
		if req.Expect != nil {
			if req.Expect.Status != 0 && (req.Expect.Status < 100 || req.Expect.Status > 599) {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("requests.%s.expect.status", name),
					Message: fmt.Sprintf("invalid status code: %d", req.Expect.Status),
				})
			}

			for i, path := range req.Expect.Exists {
				if path == "" {
					errors = append(errors, ValidationError{
						Path:    fmt.Sprintf("requests.%s.expect.exists[%d]", name, i),
						Message: "path cannot be empty",
					})
				}
			}
		}
	}

	return errors
}

// ValidateRequest validates that a request exists
func ValidateRequest(config *Config, reqName string) error {
	if _, ok := config.Requests[reqName]; !ok {
		return fmt.Errorf("request not found: %s", reqName)
	}
	return nil
}
