package request

import (
	"net/http"
	"testing"
)

func TestResponse_StatusHelpers(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		success     bool
		redirect    bool
		clientError bool
		serverError bool
		anyError    bool
	}{
		{name: "200 is success", statusCode: 200, success: true},
		{name: "204 is success", statusCode: 204, success: true},
		{name: "301 is redirect", statusCode: 301, redirect: true},
		{name: "404 is client error", statusCode: 404, clientError: true, anyError: true},
		{name: "500 is server error", statusCode: 500, serverError: true, anyError: true},
		{name: "zero status is nothing", statusCode: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{StatusCode: tt.statusCode}

			if resp.IsSuccess() != tt.success {
				t.Errorf("IsSuccess: expected %v, got %v", tt.success, resp.IsSuccess())
			}
			if resp.IsRedirect() != tt.redirect {
				t.Errorf("IsRedirect: expected %v, got %v", tt.redirect, resp.IsRedirect())
			}
			if resp.IsClientError() != tt.clientError {
				t.Errorf("IsClientError: expected %v, got %v", tt.clientError, resp.IsClientError())
			}
			if resp.IsServerError() != tt.serverError {
				t.Errorf("IsServerError: expected %v, got %v", tt.serverError, resp.IsServerError())
			}
			if resp.IsError() != tt.anyError {
				t.Errorf("IsError: expected %v, got %v", tt.anyError, resp.IsError())
			}
		})
	}
}

func TestResponse_BodyAccessors(t *testing.T) {
	resp := &Response{rawBody: []byte(`{"name":"bob"}`)}

	if string(resp.Bytes()) != `{"name":"bob"}` {
		t.Errorf("Bytes returned %q", resp.Bytes())
	}
	if resp.Text() != `{"name":"bob"}` {
		t.Errorf("Text returned %q", resp.Text())
	}

	var decoded struct {
		Name string `json:"name"`
	}
	if err := resp.JSON(&decoded); err != nil {
		t.Fatalf("Error unmarshaling: %v", err)
	}
	if decoded.Name != "bob" {
		t.Errorf("Expected name bob, got %s", decoded.Name)
	}
}

func TestResponse_GetHeader(t *testing.T) {
	resp := &Response{Headers: http.Header{"Content-Type": []string{"application/json"}}}

	// Lookup ignores key case
	if resp.GetHeader("content-type") != "application/json" {
		t.Errorf("Expected application/json, got %s", resp.GetHeader("content-type"))
	}
	if resp.GetHeader("X-Missing") != "" {
		t.Errorf("Expected empty string for missing header, got %s", resp.GetHeader("X-Missing"))
	}
}

func TestResponse_ZeroValueDefaults(t *testing.T) {
	resp := &Response{}

	if resp.StatusCode != 0 {
		t.Errorf("Expected status code 0, got %d", resp.StatusCode)
	}
	if resp.Status != "" {
		t.Errorf("Expected empty status, got %q", resp.Status)
	}
	if resp.Body != nil {
		t.Errorf("Expected nil body, got %v", resp.Body)
	}
}
