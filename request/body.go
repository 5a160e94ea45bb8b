package request

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Default content types written by the encoder when the caller supplies
// none. A caller-provided Content-Type header always takes precedence.
const (
	contentTypeBinary = "application/octet-stream"
	contentTypeJSON   = "application/json;charset=utf-8"
	contentTypeText   = "text/plain;charset=utf-8"
	contentTypeForm   = "application/x-www-form-urlencoded"
)

// BodyKind identifies which representation a Body carries. Exactly one
// representation holds for any Body; the kind is fixed when the Body is
// constructed and never changes afterwards.
type BodyKind int

const (
	// BodyNone sends no payload at all. Content-Length is still written
	// as 0 and no Content-Type is forced.
	BodyNone BodyKind = iota

	// BodyRaw sends a byte slice unchanged, defaulting the Content-Type
	// to application/octet-stream.
	BodyRaw

	// BodyText sends a string as-is, defaulting the Content-Type to
	// text/plain;charset=utf-8.
	BodyText

	// BodyJSON marshals a value as JSON, defaulting the Content-Type to
	// application/json;charset=utf-8.
	BodyJSON

	// BodyForm percent-encodes a flat string map into k=v pairs joined
	// by "&", defaulting the Content-Type to
	// application/x-www-form-urlencoded.
	BodyForm
)

// String returns the kind name for logs and error messages.
func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyRaw:
		return "raw"
	case BodyText:
		return "text"
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	default:
		return "unknown"
	}
}

// Body is a request payload tagged with its encoding mode. Construct one
// with NoBody, RawBody, TextBody, JSONBody, FormBody or DetectBody; the
// zero value is equivalent to NoBody().
type Body struct {
	kind  BodyKind
	raw   []byte
	text  string
	value interface{}
	form  map[string]string
}

// NoBody returns a Body that sends no payload.
func NoBody() Body {
	return Body{kind: BodyNone}
}

// RawBody returns a Body that sends b unchanged as binary data.
func RawBody(b []byte) Body {
	return Body{kind: BodyRaw, raw: b}
}

// TextBody returns a Body that sends s as plain text.
func TextBody(s string) Body {
	return Body{kind: BodyText, text: s}
}

// JSONBody returns a Body that marshals v as JSON, whatever its type.
func JSONBody(v interface{}) Body {
	return Body{kind: BodyJSON, value: v}
}

// FormBody returns a Body that percent-encodes the flat map m as an HTML
// form. Keys and values are escaped independently; pair order follows
// url.Values.Encode, so callers must not depend on it.
func FormBody(m map[string]string) Body {
	return Body{kind: BodyForm, form: m}
}

// DetectBody picks the encoding mode from the dynamic type of data, the
// dispatch rule used by Post and Put:
//
//	nil     -> no payload
//	[]byte  -> raw binary
//	string  -> plain text
//	Body    -> used as given
//	other   -> JSON
func DetectBody(data interface{}) Body {
	switch v := data.(type) {
	case nil:
		return NoBody()
	case []byte:
		return RawBody(v)
	case string:
		return TextBody(v)
	case Body:
		return v
	default:
		return JSONBody(v)
	}
}

// Kind returns the encoding mode of the body.
func (b Body) Kind() BodyKind {
	return b.kind
}

// Encode produces the wire payload and the default content type for the
// body's mode. A BodyNone encodes to a nil payload and an empty type.
// Encoding is deterministic: the same body always yields the same bytes.
// This is called internally during dispatch but is exposed for display
// and advanced use cases.
func (b Body) Encode() ([]byte, string, error) {
	switch b.kind {
	case BodyNone:
		return nil, "", nil
	case BodyRaw:
		return b.raw, contentTypeBinary, nil
	case BodyText:
		return []byte(b.text), contentTypeText, nil
	case BodyJSON:
		payload, err := json.Marshal(b.value)
		if err != nil {
			return nil, "", fmt.Errorf("marshal json body: %w", err)
		}
		return payload, contentTypeJSON, nil
	case BodyForm:
		values := make(url.Values, len(b.form))
		for key, value := range b.form {
			values.Set(key, value)
		}
		return []byte(values.Encode()), contentTypeForm, nil
	default:
		return nil, "", fmt.Errorf("unknown body kind %d", int(b.kind))
	}
}
