package schema

import (
	"fmt"
	"math"
)

// Validate checks candidate against the schema and returns a normalized
// copy, or a *ValidationError describing every field that failed.
//
// Validation is strict: unknown enum values, out-of-range numbers, missing
// required fields and wrong primitive types are all rejected, and no value
// is ever coerced across a type mismatch (a numeric-looking string for a
// number field fails). Optional fields may be absent. Keys not declared in
// the schema are dropped from the normalized result.
//
// Normalization resolves JSON's single number type: integer fields come
// back as int, number fields as float64.
func (s *Schema) Validate(candidate map[string]any) (map[string]any, error) {
	verr := &ValidationError{Schema: s.Name}
	out := validateObject(s.Fields, candidate, "", verr)
	if len(verr.Errors) > 0 {
		return nil, verr
	}
	return out, nil
}

func validateObject(fields map[string]Field, candidate map[string]any, path string, verr *ValidationError) map[string]any {
	out := make(map[string]any, len(fields))
	for name, field := range fields {
		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}

		raw, present := candidate[name]
		if !present || raw == nil {
			if !field.Optional {
				verr.Add(fieldPath, "required field is missing")
			}
			continue
		}

		val, ok := validateValue(field, raw, fieldPath, verr)
		if ok {
			out[name] = val
		}
	}
	return out
}

func validateValue(field Field, raw any, path string, verr *ValidationError) (any, bool) {
	switch field.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected string, got %T", raw))
			return nil, false
		}
		if len(field.Enum) > 0 && !containsString(field.Enum, s) {
			verr.Add(path, fmt.Sprintf("value %q not in enum %v", s, field.Enum))
			return nil, false
		}
		return s, true

	case TypeInt:
		n, ok := numberValue(raw)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected integer, got %T", raw))
			return nil, false
		}
		if n != math.Trunc(n) {
			verr.Add(path, fmt.Sprintf("expected integer, got fractional number %v", n))
			return nil, false
		}
		if !inBounds(field, n, path, verr) {
			return nil, false
		}
		return int(n), true

	case TypeFloat:
		n, ok := numberValue(raw)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected number, got %T", raw))
			return nil, false
		}
		if !inBounds(field, n, path, verr) {
			return nil, false
		}
		return n, true

	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected boolean, got %T", raw))
			return nil, false
		}
		return b, true

	case TypeObject:
		m, ok := raw.(map[string]any)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected object, got %T", raw))
			return nil, false
		}
		before := len(verr.Errors)
		out := validateObject(field.Fields, m, path, verr)
		return out, len(verr.Errors) == before

	case TypeArray:
		items, ok := raw.([]any)
		if !ok {
			verr.Add(path, fmt.Sprintf("expected array, got %T", raw))
			return nil, false
		}
		if field.Elem == nil {
			return items, true
		}
		before := len(verr.Errors)
		out := make([]any, 0, len(items))
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			val, ok := validateValue(*field.Elem, item, itemPath, verr)
			if ok {
				out = append(out, val)
			}
		}
		return out, len(verr.Errors) == before

	default:
		verr.Add(path, fmt.Sprintf("schema declares unsupported type %q", field.Type))
		return nil, false
	}
}

// numberValue accepts the numeric representations produced by
// encoding/json and by hand-built Go maps. Strings are deliberately not
// numbers here.
func numberValue(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func inBounds(field Field, n float64, path string, verr *ValidationError) bool {
	if field.Min != nil && n < *field.Min {
		verr.Add(path, fmt.Sprintf("value %v below minimum %v", n, *field.Min))
		return false
	}
	if field.Max != nil && n > *field.Max {
		verr.Add(path, fmt.Sprintf("value %v above maximum %v", n, *field.Max))
		return false
	}
	return true
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
