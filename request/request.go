package request

import "strconv"

// Request describes one outgoing call with a fluent builder pattern.
// Use NewRequest to create a Request and chain method calls to configure it.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    Body
}

// NewRequest creates a request for the given method and absolute URL.
//
// Example:
//
//	req := request.NewRequest("POST", "https://api.example.com/users").
//	    WithHeader("Authorization", "Bearer token").
//	    WithBody(request.JSONBody(user))
func NewRequest(method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request.
// Returns the Request to allow method chaining.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders adds multiple headers to the request.
// Returns the Request to allow method chaining.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithBody sets the request payload.
// Returns the Request to allow method chaining.
func (r *Request) WithBody(body Body) *Request {
	r.Body = body
	return r
}

// WithData sets the request payload from an arbitrary value using the
// DetectBody dispatch rule (nil, []byte, string, or JSON for the rest).
// Returns the Request to allow method chaining.
func (r *Request) WithData(data interface{}) *Request {
	r.Body = DetectBody(data)
	return r
}

// WithRequestTimeout sets the Request-Timeout header, arming a timeout of
// the given number of seconds for this single request.
// Returns the Request to allow method chaining.
func (r *Request) WithRequestTimeout(seconds int) *Request {
	r.Headers["Request-Timeout"] = strconv.Itoa(seconds)
	return r
}
