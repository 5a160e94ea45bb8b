package request

import (
	"encoding/json"
	"net/http"
)

// Response is the materialized outcome of one request. It is created only
// after the full response body has been drained and decoded; no partial
// response is ever handed out.
type Response struct {
	// Body is the decoded response body: map[string]interface{} or
	// []interface{} for JSON, string for textual types, []byte for
	// binary data, nil when the response carried no body. The decoding
	// is performed by the client's BodyDecoder.
	Body interface{}

	// Headers contains the response headers. Keys follow Go's canonical
	// header case; use GetHeader for case-insensitive lookup.
	Headers http.Header

	// Host, Method, Path and Proto echo the request descriptor that
	// produced this response.
	Host   string
	Method string
	Path   string
	Proto  string

	// StatusCode is the HTTP status code (e.g. 200, 404). Zero when the
	// transport supplied none.
	StatusCode int

	// Status is the HTTP status line (e.g. "200 OK"). Empty when the
	// transport supplied none.
	Status string

	// Timing contains detailed per-phase timing information
	Timing TimingInfo

	rawBody []byte
}

// Bytes returns the raw, undecoded response body. The slice is owned by
// the response; callers must not modify it.
func (r *Response) Bytes() []byte {
	return r.rawBody
}

// Text returns the raw response body as a string.
func (r *Response) Text() string {
	return string(r.rawBody)
}

// JSON unmarshals the raw response body into v, regardless of what the
// body decoder produced.
//
// Example:
//
//	var users []User
//	if err := resp.JSON(&users); err != nil {
//	    log.Fatal(err)
//	}
func (r *Response) JSON(v interface{}) error {
	return json.Unmarshal(r.rawBody, v)
}

// GetHeader returns the value of the specified response header, ignoring
// key case. Returns an empty string if the header is not present.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// IsError returns true if the status code indicates an error (4xx or 5xx).
func (r *Response) IsError() bool {
	return r.IsClientError() || r.IsServerError()
}
