// Package demo holds the static field list served by the mock backend.
package demo

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/internal/model"
)

//go:embed fields.yaml
var fieldsYAML []byte

var (
	fieldsOnce sync.Once
	fields     []model.FieldSchema
	fieldsErr  error
)

// Fields returns a fresh copy of the demo field list.
func Fields() []model.FieldSchema {
	fieldsOnce.Do(func() {
		var decoded []model.FieldSchema
		if err := yaml.Unmarshal(fieldsYAML, &decoded); err != nil {
			fieldsErr = fmt.Errorf("demo: decode fields: %w", err)
			return
		}
		fields = decoded
	})
	if fieldsErr != nil {
		panic(fieldsErr)
	}
	return model.Normalize(fields, model.Options{})
}

// RawYAML exposes the embedded document, e.g. for the lint command.
func RawYAML() []byte {
	return append([]byte(nil), fieldsYAML...)
}
