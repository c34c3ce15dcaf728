// Package jsonutil provides shared helpers for decoding F1 API payloads and
// formatting loosely typed JSON values for display.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeArrayAllowNull decodes a JSON array into a slice.
// A missing body or a literal null yields a nil slice; an empty array yields
// an empty, non-nil slice. Callers use the distinction as "no data yet"
// versus "no rows".
func DecodeArrayAllowNull[T any](data []byte, context string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	entries := []T{}
	if err := UnmarshalWithContext(trimmed, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}

// ToString converts a decoded JSON value to its display form.
// Whole numbers print without a decimal part; nil prints as "".
func ToString(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
