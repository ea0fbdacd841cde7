package store

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Document data is kept in its JSON shape (float64 numbers, strings, []any,
// map[string]any) so every backend compares and returns the same values.

// reserved keys live on Doc, not in Data.
var reserved = []string{"id", "version"}

// Encode turns an entity into document data.
func Encode(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	for _, k := range reserved {
		delete(data, k)
	}
	return data, nil
}

// Decode fills v from the document, including its id and version.
func Decode(doc Doc, v any) error {
	data := make(map[string]any, len(doc.Data)+2)
	for k, val := range doc.Data {
		data[k] = val
	}
	data["id"] = doc.ID
	data["version"] = doc.Version

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", doc.Path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", doc.Path, err)
	}
	return nil
}

// DecodeAll decodes docs into a slice of T.
func DecodeAll[T any](docs []Doc) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := Decode(d, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Normalize deep-copies data into its JSON shape.
func Normalize(data map[string]any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeValue converts a single filter value into its JSON shape.
func NormalizeValue(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// Match evaluates filters against normalized document data.
func Match(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		field, ok := data[f.Field]
		want := NormalizeValue(f.Value)
		switch f.Op {
		case OpEqual:
			if !ok || !reflect.DeepEqual(field, want) {
				return false
			}
		case OpArrayContains:
			arr, isArr := field.([]any)
			if !ok || !isArr {
				return false
			}
			found := false
			for _, el := range arr {
				if reflect.DeepEqual(el, want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}
