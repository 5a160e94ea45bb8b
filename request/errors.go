package request

import "errors"

// Every failure returned by this package wraps exactly one of the sentinel
// errors below, so callers can classify outcomes with errors.Is while the
// underlying cause stays available through the wrap chain.
var (
	// ErrInvalidURL reports a target URL that could not be parsed into a
	// request descriptor. The request fails before any network activity.
	ErrInvalidURL = errors.New("request: invalid url")

	// ErrTransport reports a connection-level failure: refused connection,
	// reset, DNS failure, TLS failure, or an interrupted body read.
	ErrTransport = errors.New("request: transport failure")

	// ErrTimedOut reports that a timeout fired and the request was aborted.
	// The timeout may come from a Request-Timeout header, a client-level
	// timeout, or a context deadline.
	ErrTimedOut = errors.New("request: timed out")

	// ErrMissingContentType reports a response without a Content-Type
	// header. The header is required for body decoding, so its absence
	// fails the request regardless of status code.
	ErrMissingContentType = errors.New("request: response has no content-type header")

	// ErrDecodeBody reports that the response body could not be decoded
	// under its declared content type.
	ErrDecodeBody = errors.New("request: cannot decode response body")
)
