// Package models defines the persisted catalog entities and their coercion
// from validated write documents.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidValue is returned when a field passed schema validation but
// cannot be stored as its column type.
var ErrInvalidValue = errors.New("invalid value")

func invalidValue(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))
}

func requiredString(doc map[string]any, name string) (string, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return "", invalidValue("%s is required", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidValue("%s must be a string", name)
	}
	return s, nil
}

func optionalString(doc map[string]any, name string) (*string, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, invalidValue("%s must be a string", name)
	}
	return &s, nil
}

func requiredInt(doc map[string]any, name string) (int, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return 0, invalidValue("%s is required", name)
	}
	return toInt(name, v)
}

func optionalInt(doc map[string]any, name string, def int) (int, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return def, nil
	}
	return toInt(name, v)
}

func toInt(name string, v any) (int, error) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0, invalidValue("%s must be a number", name)
		}
		f = parsed
	case float64:
		f = n
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, invalidValue("%s must be a number", name)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, invalidValue("%s must be an integer", name)
	}
	return int(f), nil
}
