package model

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	errFieldKeyMissing = errors.New("model: field key is required")
	errNoFields        = errors.New("model: field list is empty")
)

// FieldError ties a schema problem to the offending field key.
type FieldError struct {
	Key     string
	Index   int
	Message string
}

func (e FieldError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("model: field #%d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("model: field %q: %s", e.Key, e.Message)
}

// ValidateFields checks the invariants a field list must hold before it is
// served: unique keys, known types, options for choice types and compilable
// patterns. All problems are returned joined.
func ValidateFields(fields []FieldSchema) error {
	if len(fields) == 0 {
		return errNoFields
	}

	var errs []error
	seen := make(map[string]int, len(fields))
	for idx, field := range fields {
		if field.Key == "" {
			errs = append(errs, fmt.Errorf("field #%d: %w", idx, errFieldKeyMissing))
			continue
		}
		if first, dup := seen[field.Key]; dup {
			errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: fmt.Sprintf("duplicate key (first declared at #%d)", first)})
		} else {
			seen[field.Key] = idx
		}
		if !field.Type.IsKnown() {
			errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: fmt.Sprintf("unknown type %q", string(field.Type))})
		}
		if field.Type.RequiresOptions() && len(field.Options) == 0 {
			errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: fmt.Sprintf("type %q requires options", string(field.Type))})
		}
		if field.Pattern != "" {
			if _, err := regexp.Compile(field.Pattern); err != nil {
				errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: fmt.Sprintf("invalid pattern: %v", err)})
			}
		}
		if field.MinLength > 0 && field.MaxLength > 0 && field.MinLength > field.MaxLength {
			errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: "minLength exceeds maxLength"})
		}
		if field.Min != nil && field.Max != nil && *field.Min > *field.Max {
			errs = append(errs, FieldError{Key: field.Key, Index: idx, Message: "min exceeds max"})
		}
	}
	return errors.Join(errs...)
}
