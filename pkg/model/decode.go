package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	internalmodel "github.com/goliatone/go-formschema/internal/model"
)

// DecodeOption configures field list decoding.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation used for fields that
// omit a label.
func WithLabeler(labeler func(string) string) DecodeOption {
	return func(opts *decodeOptions) {
		opts.labeler = labeler
	}
}

// ParseFields decodes a JSON array of field schemas.
func ParseFields(data []byte, options ...DecodeOption) ([]FieldSchema, error) {
	var fields []FieldSchema
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("model: decode json fields: %w", err)
	}
	return normalize(fields, options), nil
}

// ParseFieldsYAML decodes a YAML sequence of field schemas.
func ParseFieldsYAML(data []byte, options ...DecodeOption) ([]FieldSchema, error) {
	var fields []FieldSchema
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("model: decode yaml fields: %w", err)
	}
	return normalize(fields, options), nil
}

// LoadFieldsFile reads a schema file, choosing the decoder from its
// extension. Files that are neither .json nor .yaml/.yml are sniffed.
func LoadFieldsFile(path string, options ...DecodeOption) ([]FieldSchema, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("model: fields path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read fields: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseFields(data, options...)
	case ".yaml", ".yml":
		return ParseFieldsYAML(data, options...)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return ParseFields(data, options...)
	}
	return ParseFieldsYAML(data, options...)
}

func normalize(fields []FieldSchema, options []DecodeOption) []FieldSchema {
	cfg := decodeOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return internalmodel.Normalize(fields, internalmodel.Options{Labeler: cfg.labeler})
}
