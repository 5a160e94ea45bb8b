package request

import "context"

// DefaultClient is the client behind the package-level helpers. It has no
// default headers, no overall timeout, and decodes bodies with decode.Body.
var DefaultClient = NewClient()

// Head issues a HEAD request with DefaultClient.
func Head(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return DefaultClient.Head(ctx, url, headers)
}

// Get issues a GET request with DefaultClient.
func Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return DefaultClient.Get(ctx, url, headers)
}

// Post issues a POST request with DefaultClient. The payload mode follows
// the dynamic type of data, per DetectBody.
func Post(ctx context.Context, url string, data interface{}, headers map[string]string) (*Response, error) {
	return DefaultClient.Post(ctx, url, data, headers)
}

// Put issues a PUT request with DefaultClient, with the same payload
// rules as Post.
func Put(ctx context.Context, url string, data interface{}, headers map[string]string) (*Response, error) {
	return DefaultClient.Put(ctx, url, data, headers)
}

// JSON issues a POST request with DefaultClient whose payload is always
// the JSON encoding of v.
func JSON(ctx context.Context, url string, v interface{}, headers map[string]string) (*Response, error) {
	return DefaultClient.JSON(ctx, url, v, headers)
}

// Form issues a POST request with DefaultClient, percent-encoding the
// flat map form as application/x-www-form-urlencoded.
func Form(ctx context.Context, url string, form map[string]string, headers map[string]string) (*Response, error) {
	return DefaultClient.Form(ctx, url, form, headers)
}
