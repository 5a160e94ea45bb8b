package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PopovMP/client-request/request"
)

// Formatter renders requests and responses as human-readable text.
type Formatter struct {
	Verbose bool
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a text formatter. With noColor the scheme is fully
// disabled, which also makes the output stable for tests and pipes.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// FormatRequest renders an outgoing request for display.
func (f *Formatter) FormatRequest(req *request.Request) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(strings.ToUpper(req.Method)),
		f.scheme.URL.Sprint(req.URL)))

	if len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(key),
				f.scheme.HeaderValue.Sprint(req.Headers[key])))
		}
	}

	if req.Body.Kind() != request.BodyNone {
		buf.WriteString("  Body: ")
		buf.WriteString(f.formatPayload(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse renders a materialized response for display.
func (f *Formatter) FormatResponse(resp *request.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusColor(resp.StatusCode)
	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprint(resp.Status),
		resp.Timing.TotalTime.Milliseconds()))

	if f.Verbose {
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", resp.Timing.DNSLookupTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", resp.Timing.TCPConnectTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", resp.Timing.TLSHandshakeTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", resp.Timing.TimeToFirstByte.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", resp.Timing.ContentTransferTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", resp.Timing.TotalTime.Milliseconds()))

		buf.WriteString("  Headers:\n")
		for _, key := range sortedHeaderKeys(resp.Headers) {
			for _, value := range resp.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.scheme.HeaderKey.Sprint(key),
					f.scheme.HeaderValue.Sprint(value)))
			}
		}
	}

	if body := f.formatResponseBody(resp); body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.String()
}

// formatPayload renders a request body: binary payloads as a byte count,
// everything else as text with JSON prettified.
func (f *Formatter) formatPayload(body request.Body) string {
	payload, _, err := body.Encode()
	if err != nil {
		return fmt.Sprintf("<unencodable: %v>", err)
	}
	if body.Kind() == request.BodyRaw {
		return fmt.Sprintf("<%d bytes>", len(payload))
	}
	return prettyJSON(string(payload))
}

// formatResponseBody renders the decoded response body, empty string for
// an absent one.
func (f *Formatter) formatResponseBody(resp *request.Response) string {
	switch body := resp.Body.(type) {
	case nil:
		return ""
	case []byte:
		return fmt.Sprintf("    <%d bytes>", len(body))
	case string:
		return indentLines(prettyJSON(body), "    ")
	default:
		pretty, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return indentLines(fmt.Sprintf("%v", body), "    ")
		}
		return indentLines(string(pretty), "    ")
	}
}

// prettyJSON indents a JSON document, passing anything else through
// unchanged.
func prettyJSON(s string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "", "  "); err != nil {
		return s
	}
	return pretty.String()
}

func indentLines(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedHeaderKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
