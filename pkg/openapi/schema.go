package openapi

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/model"
)

// PayloadSchema describes the submission payload for fields: one property
// per key, typed by widget, carrying the field's constraints. Empty numbers
// are sent as null.
func PayloadSchema(fields []model.FieldSchema) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for _, field := range fields {
		schema.WithProperty(field.Key, propertySchema(field))
		if field.Required {
			schema.Required = append(schema.Required, field.Key)
		}
	}
	return schema
}

func propertySchema(field model.FieldSchema) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema().WithNullable()
		if field.Min != nil {
			schema.WithMin(*field.Min)
		}
		if field.Max != nil {
			schema.WithMax(*field.Max)
		}
	case model.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	default:
		schema = openapi3.NewStringSchema()
		if field.Type.RequiresOptions() {
			values := make([]any, 0, len(field.Options))
			for _, opt := range field.Options {
				values = append(values, opt.Value)
			}
			schema.WithEnum(values...)
		}
		if field.Pattern != "" {
			schema.WithPattern(field.Pattern)
		}
		if field.MinLength > 0 {
			schema.WithMinLength(int64(field.MinLength))
		}
		if field.MaxLength > 0 {
			schema.WithMaxLength(int64(field.MaxLength))
		}
		switch field.Type {
		case model.FieldTypeEmail:
			schema.Format = "email"
		case model.FieldTypeDate:
			schema.Format = "date"
		case model.FieldTypeURL:
			schema.Format = "uri"
		case model.FieldTypePassword:
			schema.Format = "password"
		}
	}
	schema.Title = field.Label
	if field.Placeholder != "" {
		schema.Description = field.Placeholder
	}
	return schema
}

func optionSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("value", openapi3.NewStringSchema()).
		WithProperty("disabled", openapi3.NewBoolSchema())
	schema.Required = []string{"label", "value"}
	return schema
}

func fieldSchemaSchema() *openapi3.Schema {
	types := make([]any, 0, len(model.FieldTypes()))
	for _, t := range model.FieldTypes() {
		types = append(types, string(t))
	}
	messages := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())

	schema := openapi3.NewObjectSchema().
		WithProperty("key", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema().WithEnum(types...)).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithProperty("required", openapi3.NewBoolSchema()).
		WithProperty("value", &openapi3.Schema{Description: "Default value"}).
		WithProperty("disabled", openapi3.NewBoolSchema()).
		WithProperty("pattern", openapi3.NewStringSchema().WithFormat("regex")).
		WithProperty("minLength", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("maxLength", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("min", openapi3.NewFloat64Schema()).
		WithProperty("max", openapi3.NewFloat64Schema()).
		WithProperty("step", openapi3.NewFloat64Schema()).
		WithProperty("errorMessages", messages).
		WithProperty("options", openapi3.NewArraySchema().WithItems(optionSchema()))
	schema.Required = []string{"key", "type", "label", "required"}
	return schema
}

// envelopeSchema describes api.Envelope; data is omitted when nil.
func envelopeSchema(data *openapi3.Schema) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("errorMessage", openapi3.NewStringSchema())
	if data != nil {
		schema.WithProperty("data", data)
	}
	schema.Required = []string{"success"}
	return schema
}
