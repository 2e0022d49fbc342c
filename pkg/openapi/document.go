package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/api"
	"github.com/goliatone/go-formschema/pkg/model"
)

const (
	// Version is the OpenAPI version emitted by Document.
	Version = "3.0.3"

	OperationGetFields  = "getFormFields"
	OperationSubmitForm = "submitForm"

	schemaFieldSchema = "FieldSchema"
	schemaOption      = "Option"
	schemaPayload     = "SubmissionPayload"
	schemaError       = "ErrorEnvelope"
)

// Info customises the document metadata.
type Info struct {
	Title   string
	Version string
}

// Document builds the API description for fields.
func Document(info Info, fields []model.FieldSchema) *openapi3.T {
	if info.Title == "" {
		info.Title = "Dynamic Form API"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}

	schemas := openapi3.Schemas{
		schemaOption:      openapi3.NewSchemaRef("", optionSchema()),
		schemaFieldSchema: openapi3.NewSchemaRef("", fieldSchemaSchema()),
		schemaPayload:     openapi3.NewSchemaRef("", PayloadSchema(fields)),
		schemaError:       openapi3.NewSchemaRef("", envelopeSchema(nil)),
	}

	fieldsEnvelope := envelopeSchema(openapi3.NewArraySchema().WithItems(schemas[schemaFieldSchema].Value))
	payloadEnvelope := envelopeSchema(schemas[schemaPayload].Value)

	getFields := &openapi3.Operation{
		OperationID: OperationGetFields,
		Summary:     "List the form fields",
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("Field list", fieldsEnvelope)),
			openapi3.WithStatus(http.StatusMethodNotAllowed, jsonResponse(api.MessageMethodNotAllowed, schemas[schemaError].Value)),
		),
	}

	submit := &openapi3.Operation{
		OperationID: OperationSubmitForm,
		Summary:     "Submit form values; the payload is echoed back",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchemaRef(ref(schemaPayload, schemas)),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("Echoed payload", payloadEnvelope)),
			openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Malformed JSON body", schemas[schemaError].Value)),
			openapi3.WithStatus(http.StatusMethodNotAllowed, jsonResponse(api.MessageMethodNotAllowed, schemas[schemaError].Value)),
		),
	}

	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath(api.PathFields, &openapi3.PathItem{Get: getFields}),
			openapi3.WithPath(api.PathSubmit, &openapi3.PathItem{Post: submit}),
		),
		Components: &openapi3.Components{Schemas: schemas},
	}
}

// MarshalDocument builds and encodes the document as JSON.
func MarshalDocument(info Info, fields []model.FieldSchema) ([]byte, error) {
	data, err := Document(info, fields).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return data, nil
}

// Load parses and validates raw (JSON or YAML).
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

func ref(name string, schemas openapi3.Schemas) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schemas[name].Value)
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchema(schema),
	}
}
