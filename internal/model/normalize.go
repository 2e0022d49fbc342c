package model

import "strings"

// Normalize returns a copy of fields with keys trimmed, missing labels derived
// from keys and option slices cloned, so callers can mutate the result
// without touching the source list.
func Normalize(fields []FieldSchema, options Options) []FieldSchema {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}

	out := make([]FieldSchema, len(fields))
	for idx, field := range fields {
		field.Key = strings.TrimSpace(field.Key)
		field.Type = FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
		if strings.TrimSpace(field.Label) == "" {
			field.Label = opts.Labeler(field.Key)
		}
		if len(field.Options) > 0 {
			field.Options = append([]Option(nil), field.Options...)
		}
		if len(field.ErrorMessages) > 0 {
			messages := make(ErrorMessages, len(field.ErrorMessages))
			for kind, msg := range field.ErrorMessages {
				messages[kind] = msg
			}
			field.ErrorMessages = messages
		}
		out[idx] = field
	}
	return out
}
