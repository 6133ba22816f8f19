// Package legacy decodes the key-typed record encoding the old backend's
// storage engine leaked through some endpoints: values arrive wrapped as
// {"S": "text"}, {"N": "123"}, {"BOOL": true}, {"M": {...}} or {"L": [...]}.
// Decoding lives here, once, instead of being repeated per resource.
package legacy

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// IsTypedRecord reports whether every field of the object is a single-key
// attribute-value wrapper. Plain JSON records return false and should be
// used as-is.
func IsTypedRecord(record map[string]json.RawMessage) bool {
	if len(record) == 0 {
		return false
	}
	for _, raw := range record {
		var attr map[string]json.RawMessage
		if err := json.Unmarshal(raw, &attr); err != nil {
			return false
		}
		if len(attr) != 1 {
			return false
		}
		for tag := range attr {
			switch tag {
			case "S", "N", "BOOL", "M", "L":
			default:
				return false
			}
		}
	}
	return true
}

// DecodeRecord converts a typed record into a plain map. Numeric strings
// decode to int64 when integral, float64 otherwise.
func DecodeRecord(record map[string]json.RawMessage) (map[string]any, error) {
	out := make(map[string]any, len(record))
	for field, raw := range record {
		v, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		out[field] = v
	}
	return out, nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	var attr map[string]json.RawMessage
	if err := json.Unmarshal(raw, &attr); err != nil {
		return nil, fmt.Errorf("not an attribute value: %w", err)
	}
	if len(attr) != 1 {
		return nil, fmt.Errorf("expected a single type tag, got %d keys", len(attr))
	}

	for tag, inner := range attr {
		switch tag {
		case "S":
			var s string
			if err := json.Unmarshal(inner, &s); err != nil {
				return nil, fmt.Errorf("S value: %w", err)
			}
			return s, nil
		case "N":
			var s string
			if err := json.Unmarshal(inner, &s); err != nil {
				return nil, fmt.Errorf("N value: %w", err)
			}
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return i, nil
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("N value %q is not numeric", s)
			}
			return f, nil
		case "BOOL":
			var b bool
			if err := json.Unmarshal(inner, &b); err != nil {
				return nil, fmt.Errorf("BOOL value: %w", err)
			}
			return b, nil
		case "M":
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(inner, &nested); err != nil {
				return nil, fmt.Errorf("M value: %w", err)
			}
			return DecodeRecord(nested)
		case "L":
			var items []json.RawMessage
			if err := json.Unmarshal(inner, &items); err != nil {
				return nil, fmt.Errorf("L value: %w", err)
			}
			list := make([]any, 0, len(items))
			for i, item := range items {
				v, err := decodeValue(item)
				if err != nil {
					return nil, fmt.Errorf("L[%d]: %w", i, err)
				}
				list = append(list, v)
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unknown type tag %q", tag)
		}
	}

	return nil, fmt.Errorf("empty attribute value")
}

// Normalize returns the record as plain values whether or not it arrived
// typed. Callers never need to know which form they got.
func Normalize(record map[string]json.RawMessage) (map[string]any, error) {
	if IsTypedRecord(record) {
		return DecodeRecord(record)
	}

	out := make(map[string]any, len(record))
	for field, raw := range record {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		out[field] = v
	}
	return out, nil
}
