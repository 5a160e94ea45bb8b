// Package request provides a minimal outbound HTTP(S) client with typed
// response decoding and detailed timing metrics.
//
// The package translates a (method, URL, headers, body) tuple into a wire
// request, collects the full response body, and decodes it according to the
// declared Content-Type before handing it back. The underlying transport
// (TCP, TLS, DNS, connection pooling) stays with net/http; this package owns
// request shaping, body encoding, failure classification, and response
// materialization.
//
// Basic Usage:
//
//	resp, err := request.Get(context.Background(), "https://api.example.com/users", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %d\n", resp.StatusCode)
//	fmt.Printf("Body: %v\n", resp.Body)
//
// The response Body is already decoded: JSON responses arrive as
// map[string]interface{} or []interface{}, textual responses as string, and
// everything else as []byte. An empty body decodes to nil.
//
// Sending Data:
//
//	// The body mode follows the value: nil sends nothing, []byte goes out
//	// as application/octet-stream, string as text/plain, and any other
//	// value is marshaled as JSON.
//	resp, err := request.Post(ctx, "https://api.example.com/users", user, nil)
//
//	// Force JSON or form encoding regardless of the value:
//	resp, err = request.JSON(ctx, "https://api.example.com/users", user, nil)
//	resp, err = request.Form(ctx, "https://auth.example.com/token", map[string]string{
//	    "grant_type": "client_credentials",
//	}, nil)
//
// Per-Request Timeout:
//
// A "Request-Timeout" header holding a positive integer is treated as a
// timeout in seconds for that single request. When it fires the connection
// is torn down and the call fails with ErrTimedOut.
//
//	headers := map[string]string{"Request-Timeout": "5"}
//	resp, err := request.Get(ctx, "https://slow.example.com/report", headers)
//	if errors.Is(err, request.ErrTimedOut) {
//	    // gave up after 5 seconds
//	}
//
// Custom Clients:
//
//	client := request.NewClient(
//	    request.WithTimeout(30*time.Second),
//	    request.WithHeader("Authorization", "Bearer token"),
//	)
//	resp, err := client.Get(ctx, "https://api.example.com/me", nil)
//
// Thread Safety:
//
// Client is safe for concurrent use. Multiple goroutines may invoke methods
// on a Client simultaneously; every call owns its own buffers and descriptor.
package request
