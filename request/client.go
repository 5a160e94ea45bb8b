package request

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"strconv"
	"strings"
	"time"

	"github.com/PopovMP/client-request/pkg/decode"
)

// BodyDecoder interprets a fully drained response body under its declared
// content type. Implementations return the decoded value or an error; a
// failure surfaces to the caller as ErrDecodeBody.
type BodyDecoder func(data []byte, contentType string) (interface{}, error)

// Client issues HTTP(S) requests and materializes decoded responses.
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	decoder    BodyDecoder
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a client with the given options. By default the client
// applies no overall timeout; arm one per request with a Request-Timeout
// header, per client with WithTimeout, or through the context deadline.
//
// Example:
//
//	client := request.NewClient(
//	    request.WithTimeout(30*time.Second),
//	    request.WithHeader("Authorization", "Bearer token"),
//	)
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{},
		headers:    make(map[string]string),
		decoder:    decode.Body,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets an overall timeout for every request made by this
// client. When it fires the call fails with ErrTimedOut.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a default header to every request made by this client.
// Headers set on individual requests override these defaults.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithHTTPClient sets a custom *http.Client for this client.
// Use this for advanced configuration like custom transports or proxies.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used for testing purposes.
func WithInsecureSkipVerify() ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// WithBodyDecoder replaces the decoder applied to response bodies.
// The default is decode.Body.
func WithBodyDecoder(decoder BodyDecoder) ClientOption {
	return func(c *Client) {
		c.decoder = decoder
	}
}

// Do executes one request and returns the decoded response. The pipeline
// runs encode, build, dispatch, drain, decode; it produces either a
// complete *Response or exactly one classified error, never both and
// never a partial result. There are no retries.
//
// Example:
//
//	req := request.NewRequest("POST", "https://api.example.com/users").
//	    WithBody(request.JSONBody(user))
//
//	resp, err := client.Do(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %d, TTFB: %v\n", resp.StatusCode, resp.Timing.TimeToFirstByte)
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	payload, defaultType, err := req.Body.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	desc, err := parseOptions(req.URL, c.mergeHeaders(req.Headers), req.Method)
	if err != nil {
		return nil, err
	}
	desc.setDerivedHeaders(len(payload), defaultType)

	// A Request-Timeout header arms a deadline for this call only. The
	// header itself still goes out on the wire.
	if timeout, ok := requestTimeout(desc); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	timing := TimingInfo{StartTime: time.Now()}
	ctx = httptrace.WithClientTrace(ctx, newClientTrace(&timing))

	httpReq, err := buildHTTPRequest(ctx, desc, payload, req.Body.Kind())
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	// Drain the whole body in arrival order; decoding starts only after
	// the stream is complete.
	transferStart := time.Now()
	rawBody, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, classifyTransportError(err)
	}
	timing.ContentTransferTime = time.Since(transferStart)
	timing.TotalTime = time.Since(timing.StartTime)

	if _, ok := httpResp.Header["Content-Type"]; !ok {
		return nil, fmt.Errorf("%w: %s %s (status %d)",
			ErrMissingContentType, desc.Method, desc.Host, httpResp.StatusCode)
	}

	var decoded interface{}
	if len(rawBody) > 0 {
		decoded, err = c.decoder(rawBody, httpResp.Header.Get("Content-Type"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeBody, err)
		}
	}

	return &Response{
		Body:       decoded,
		Headers:    httpResp.Header,
		Host:       desc.Host,
		Method:     desc.Method,
		Path:       desc.Path,
		Proto:      desc.Scheme,
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Timing:     timing,
		rawBody:    rawBody,
	}, nil
}

// Head issues a HEAD request.
func (c *Client) Head(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodHead, url).WithHeaders(headers))
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, url).WithHeaders(headers))
}

// Post issues a POST request. The payload mode follows the dynamic type
// of data: nil sends nothing, []byte goes out as binary, string as plain
// text, and any other value is marshaled as JSON.
func (c *Client) Post(ctx context.Context, url string, data interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, url).WithHeaders(headers).WithData(data))
}

// Put issues a PUT request with the same payload rules as Post.
func (c *Client) Put(ctx context.Context, url string, data interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, url).WithHeaders(headers).WithData(data))
}

// JSON issues a POST request whose payload is always the JSON encoding of
// v, whatever its type. Strings and byte slices are marshaled too.
func (c *Client) JSON(ctx context.Context, url string, v interface{}, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, url).WithHeaders(headers).WithBody(JSONBody(v)))
}

// Form issues a POST request with the flat map form percent-encoded as
// application/x-www-form-urlencoded.
func (c *Client) Form(ctx context.Context, url string, form map[string]string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, url).WithHeaders(headers).WithBody(FormBody(form)))
}

// mergeHeaders lays the request headers over the client defaults. The
// request's key casing wins when the same header appears in both with
// different case.
func (c *Client) mergeHeaders(headers map[string]string) map[string]string {
	merged := make(map[string]string, len(c.headers)+len(headers))
	for key, value := range c.headers {
		merged[key] = value
	}
	for key, value := range headers {
		for existing := range merged {
			if existing != key && strings.EqualFold(existing, key) {
				delete(merged, existing)
			}
		}
		merged[key] = value
	}
	return merged
}

// requestTimeout reads the Request-Timeout header (any key case) as a
// whole number of seconds. Values that do not parse as a positive
// integer are ignored and travel as ordinary headers.
func requestTimeout(desc *Descriptor) (time.Duration, bool) {
	value, ok := desc.headerValue("Request-Timeout")
	if !ok {
		return 0, false
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// buildHTTPRequest turns the descriptor and encoded payload into a wire
// request. Content-Length is carried by the reader length rather than the
// header map, and a Host header overrides the URL host per convention.
func buildHTTPRequest(ctx context.Context, desc *Descriptor, payload []byte, kind BodyKind) (*http.Request, error) {
	var body io.Reader
	if kind != BodyNone {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL(), body)
	if err != nil {
		return nil, err
	}

	for key, value := range desc.Header {
		switch {
		case strings.EqualFold(key, "Host"):
			httpReq.Host = value
		case strings.EqualFold(key, "Content-Length"):
			// Derived from the payload reader by net/http.
		default:
			httpReq.Header.Set(key, value)
		}
	}

	return httpReq, nil
}

// classifyTransportError sorts a dispatch failure into the package error
// taxonomy: deadline and timeout conditions map to ErrTimedOut, anything
// else at the connection level maps to ErrTransport.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
