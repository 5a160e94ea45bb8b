package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PopovMP/client-request/request"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// FormatProvider is an interface for the different output formatters
type FormatProvider interface {
	FormatRequest(req *request.Request) string
	FormatResponse(resp *request.Response) string
}

// RequestView is the serializable form of an outgoing request.
type RequestView struct {
	Method    string            `json:"method" yaml:"method"`
	URL       string            `json:"url" yaml:"url"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	BodyKind  string            `json:"bodyKind,omitempty" yaml:"bodyKind,omitempty"`
	Body      interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
}

// TimingView is the serializable form of the per-phase timing breakdown.
type TimingView struct {
	DNSLookup       int64 `json:"dnsLookupMs" yaml:"dnsLookupMs"`
	TCPConnection   int64 `json:"tcpConnectionMs" yaml:"tcpConnectionMs"`
	TLSHandshake    int64 `json:"tlsHandshakeMs" yaml:"tlsHandshakeMs"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs" yaml:"timeToFirstByteMs"`
	ContentTransfer int64 `json:"contentTransferMs" yaml:"contentTransferMs"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseView is the serializable form of a materialized response.
type ResponseView struct {
	StatusCode int               `json:"statusCode" yaml:"statusCode"`
	Status     string            `json:"status" yaml:"status"`
	Host       string            `json:"host" yaml:"host"`
	Method     string            `json:"method" yaml:"method"`
	Path       string            `json:"path" yaml:"path"`
	Proto      string            `json:"proto" yaml:"proto"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body       interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timing     TimingView        `json:"timing" yaml:"timing"`
	Timestamp  string            `json:"timestamp" yaml:"timestamp"`
}

// NewRequestView flattens a request for serialization.
func NewRequestView(req *request.Request) RequestView {
	view := RequestView{
		Method:    req.Method,
		URL:       req.URL,
		Headers:   req.Headers,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if req.Body.Kind() != request.BodyNone {
		view.BodyKind = req.Body.Kind().String()
		view.Body = payloadView(req.Body)
	}
	return view
}

// NewResponseView flattens a response for serialization.
func NewResponseView(resp *request.Response) ResponseView {
	headers := make(map[string]string, len(resp.Headers))
	for key, values := range resp.Headers {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	return ResponseView{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Host:       resp.Host,
		Method:     resp.Method,
		Path:       resp.Path,
		Proto:      resp.Proto,
		Headers:    headers,
		Body:       resp.Body,
		Timing: TimingView{
			DNSLookup:       resp.Timing.DNSLookupTime.Milliseconds(),
			TCPConnection:   resp.Timing.TCPConnectTime.Milliseconds(),
			TLSHandshake:    resp.Timing.TLSHandshakeTime.Milliseconds(),
			TimeToFirstByte: resp.Timing.TimeToFirstByte.Milliseconds(),
			ContentTransfer: resp.Timing.ContentTransferTime.Milliseconds(),
			Total:           resp.Timing.TotalTime.Milliseconds(),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// payloadView renders a request body for serialization: JSON payloads as
// their structured value, text and form payloads as strings, binary as
// raw bytes.
func payloadView(body request.Body) interface{} {
	payload, _, err := body.Encode()
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	if body.Kind() == request.BodyJSON {
		var value interface{}
		if json.Unmarshal(payload, &value) == nil {
			return value
		}
	}
	if body.Kind() == request.BodyRaw {
		return payload
	}
	return string(payload)
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// FormatRequest formats a request as a JSON document.
func (f *JSONFormatter) FormatRequest(req *request.Request) string {
	return f.marshal(NewRequestView(req))
}

// FormatResponse formats a response as a JSON document.
func (f *JSONFormatter) FormatResponse(resp *request.Response) string {
	return f.marshal(NewResponseView(resp))
}

func (f *JSONFormatter) marshal(view interface{}) string {
	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(view, "", "  ")
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(out)
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct{}

// FormatRequest formats a request as a YAML document.
func (f *YAMLFormatter) FormatRequest(req *request.Request) string {
	return marshalYAML(NewRequestView(req))
}

// FormatResponse formats a response as a YAML document.
func (f *YAMLFormatter) FormatResponse(resp *request.Response) string {
	return marshalYAML(NewResponseView(resp))
}

func marshalYAML(view interface{}) string {
	out, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Sprintf("error: %s\n", err)
	}
	return string(out)
}

// GetFormatter returns the formatter for the given output format.
func GetFormatter(format OutputFormat, verbose, noColor bool) FormatProvider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}
