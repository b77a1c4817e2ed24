// Package jsonpath selects sub-documents out of JSON using a JSONPath subset.
//
// Supported expressions are dotted member access and array indexing:
// $, $.a.b, $.tests[0].profile, $['a'].b, $[2].
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// SelectObject returns the raw JSON of the object at path. Any other kind
// of value is an error.
func SelectObject(doc []byte, path string) ([]byte, error) {
	result, err := lookup(doc, path)
	if err != nil {
		return nil, err
	}
	if !result.IsObject() {
		return nil, fmt.Errorf("path %s is a %s, not an object", path, kind(result))
	}
	return []byte(result.Raw), nil
}

func lookup(doc []byte, path string) (gjson.Result, error) {
	if len(doc) == 0 {
		return gjson.Result{}, fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}
	if !gjson.ValidBytes(doc) {
		return gjson.Result{}, fmt.Errorf("invalid JSON document")
	}

	result := gjson.GetBytes(doc, convertToGjsonPath(path))
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

func kind(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.Type == gjson.Null:
		return "null"
	case r.Type == gjson.String:
		return "string"
	case r.Type == gjson.Number:
		return "number"
	default:
		return "boolean"
	}
}

// convertToGjsonPath converts a JSONPath expression to a gjson path
//
//	$.tests[0].profile -> tests.0.profile
//	$['a b'].c         -> a b.c
func convertToGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				cur.WriteString(path[i:])
				i = len(path)
				continue
			}
			key := strings.Trim(path[i+1:i+end], `'"`)
			parts = append(parts, key)
			i += end
		default:
			cur.WriteByte(c)
		}
	}
	flush()

	for i, p := range parts {
		parts[i] = escape(p)
	}
	return strings.Join(parts, ".")
}

// escape quotes gjson path metacharacters inside a single key.
func escape(key string) string {
	var sb strings.Builder
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(key[i])
	}
	return sb.String()
}
