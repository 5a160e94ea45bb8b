// Package decode interprets response bodies according to their declared
// content type. It is the default body decoder of the request package and
// can be replaced there with any function of the same shape.
package decode

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"
)

// Body decodes data under the given Content-Type value:
//
//   - an empty body decodes to nil whatever the content type says
//   - application/json and any */*+json type decode to the generic JSON
//     value (map[string]interface{}, []interface{}, string, float64, ...)
//   - text/* types, XML types and form-urlencoded payloads decode to string
//   - everything else is returned as the raw []byte
//
// The content type is parsed as a MIME media type, so parameters such as
// charset are tolerated and the match is case-insensitive. An unparseable
// media type on a non-empty body is an error.
func Body(data []byte, contentType string) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parse media type %q: %w", contentType, err)
	}

	switch {
	case isJSON(mediaType):
		var value interface{}
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("unmarshal %s body: %w", mediaType, err)
		}
		return value, nil
	case isTextual(mediaType):
		return string(data), nil
	default:
		return data, nil
	}
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isTextual(mediaType string) bool {
	switch {
	case strings.HasPrefix(mediaType, "text/"):
		return true
	case mediaType == "application/x-www-form-urlencoded":
		return true
	case mediaType == "application/xml" || strings.HasSuffix(mediaType, "+xml"):
		return true
	case mediaType == "application/javascript":
		return true
	default:
		return false
	}
}
