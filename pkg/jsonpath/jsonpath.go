// Package jsonpath pulls values out of JSON documents with JSONPath-style
// expressions, backed by gjson. It covers the subset used for picking
// fields out of decoded responses: dot notation, bracket notation with
// single or double quotes, and numeric array indexes.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at path as a string. Scalars render their
// natural form ("42", "true"), objects and arrays render as compact JSON,
// and an explicit JSON null renders as "null". A path that matches
// nothing is an error.
func Extract(document, path string) (string, error) {
	if document == "" {
		return "", fmt.Errorf("empty document")
	}
	gpath, err := translate(path)
	if err != nil {
		return "", err
	}

	result := gjson.Get(document, gpath)
	if !result.Exists() {
		return "", fmt.Errorf("path %s matched nothing", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// Exists reports whether path matches anything in the document.
func Exists(document, path string) bool {
	gpath, err := translate(path)
	if err != nil {
		return false
	}
	return gjson.Get(document, gpath).Exists()
}

// ExtractAll resolves a set of named paths against one document. All
// paths are attempted; the returned map holds every successful lookup
// and the error, when not nil, lists each failed name.
func ExtractAll(document string, paths map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(paths))
	var failed []string

	for name, path := range paths {
		value, err := Extract(document, path)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		values[name] = value
	}

	if len(failed) > 0 {
		return values, fmt.Errorf("extract: %s", strings.Join(failed, "; "))
	}
	return values, nil
}

// translate rewrites a JSONPath expression into gjson syntax, e.g.
// $.users[0].name into users.0.name. The whole document is addressed
// with "$" alone.
func translate(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	rest := strings.TrimPrefix(path, "$")
	rest = strings.TrimPrefix(rest, ".")
	if rest == "" {
		return "@this", nil
	}

	var segments []string
	for len(rest) > 0 {
		switch {
		case rest[0] == '.':
			rest = rest[1:]
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("unclosed bracket in path %s", path)
			}
			inner := strings.Trim(rest[1:end], `'"`)
			if inner == "" {
				return "", fmt.Errorf("empty bracket in path %s", path)
			}
			segments = append(segments, inner)
			rest = rest[end+1:]
		default:
			stop := strings.IndexAny(rest, ".[")
			if stop < 0 {
				stop = len(rest)
			}
			segments = append(segments, rest[:stop])
			rest = rest[stop:]
		}
	}

	return strings.Join(segments, "."), nil
}
