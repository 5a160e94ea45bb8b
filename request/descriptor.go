package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Descriptor is the normalized form of a request target: the URL broken
// into the pieces the transport needs, plus the method and the header set
// that will go on the wire. It is built once per call by parseOptions and
// never touches the network itself.
type Descriptor struct {
	// Scheme is "http" or "https". It selects the transport.
	Scheme string

	// Host is the hostname without the port.
	Host string

	// Port is the target port: the explicit port from the URL when one is
	// given, otherwise 443 for https and 80 for http.
	Port int

	// Path is the URL path joined with the raw query ("/a/b?x=1"). An
	// empty path stays empty; the transport applies "/" on the wire.
	Path string

	// Method is the HTTP method, upper-case.
	Method string

	// Header holds the outgoing headers with key case preserved exactly
	// as supplied by the caller. The body encoder writes the derived
	// Content-Type and Content-Length entries into this map.
	Header map[string]string
}

// parseOptions builds a Descriptor from a raw URL, a caller header map and
// a method. The header map is copied, so later mutation of the caller's
// map does not leak into the descriptor. Any parse failure, a missing
// host, or a scheme other than http/https yields ErrInvalidURL.
func parseOptions(rawURL string, headers map[string]string, method string) (*Descriptor, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q in %q", ErrInvalidURL, u.Scheme, rawURL)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}

	port, err := resolvePort(u)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	path := u.EscapedPath()
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	header := make(map[string]string, len(headers)+2)
	for key, value := range headers {
		header[key] = value
	}

	return &Descriptor{
		Scheme: u.Scheme,
		Host:   u.Hostname(),
		Port:   port,
		Path:   path,
		Method: strings.ToUpper(method),
		Header: header,
	}, nil
}

// resolvePort returns the explicit port of the URL when one is present,
// otherwise the default port of the scheme.
func resolvePort(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("bad port %q", p)
		}
		return port, nil
	}
	if u.Scheme == "https" {
		return 443, nil
	}
	return 80, nil
}

// URL reassembles the descriptor into a URL string for the transport.
// The port is spelled out only when it differs from the scheme default,
// keeping the Host header clean on the wire.
func (d *Descriptor) URL() string {
	host := d.Host
	if strings.Contains(host, ":") {
		// IPv6 literal; Hostname() strips the brackets.
		host = "[" + host + "]"
	}
	if !d.defaultPort() {
		host += ":" + strconv.Itoa(d.Port)
	}
	return d.Scheme + "://" + host + d.Path
}

func (d *Descriptor) defaultPort() bool {
	switch d.Scheme {
	case "https":
		return d.Port == 443
	default:
		return d.Port == 80
	}
}

// headerValue looks up a header by key, ignoring key case, and reports
// whether it is present.
func (d *Descriptor) headerValue(key string) (string, bool) {
	for k, v := range d.Header {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// setDerivedHeaders finalizes the header map for the encoded payload:
// the caller's Content-Type always wins over the encoder default, while
// Content-Length is always recomputed from the final payload length,
// replacing any caller-supplied value.
func (d *Descriptor) setDerivedHeaders(payloadLen int, defaultType string) {
	if _, ok := d.headerValue("Content-Type"); !ok && defaultType != "" {
		d.Header["Content-Type"] = defaultType
	}
	for k := range d.Header {
		if strings.EqualFold(k, "Content-Length") {
			delete(d.Header, k)
		}
	}
	d.Header["Content-Length"] = strconv.Itoa(payloadLen)
}
