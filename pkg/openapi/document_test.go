package openapi

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/api"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

func TestDocumentValidates(t *testing.T) {
	raw, err := MarshalDocument(Info{Title: "Demo"}, testsupport.DemoFields())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	doc, err := Load(context.Background(), raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if doc.Info.Title != "Demo" || doc.Info.Version != "1.0.0" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}
	fields := doc.Paths.Find(api.PathFields)
	if fields == nil || fields.Get == nil || fields.Get.OperationID != OperationGetFields {
		t.Fatalf("missing GET %s operation", api.PathFields)
	}
	submit := doc.Paths.Find(api.PathSubmit)
	if submit == nil || submit.Post == nil || submit.Post.OperationID != OperationSubmitForm {
		t.Fatalf("missing POST %s operation", api.PathSubmit)
	}
	if submit.Post.Responses.Status(405) == nil || submit.Post.Responses.Status(400) == nil {
		t.Fatalf("submit should document 400 and 405 responses")
	}
}

func TestPayloadSchemaFromFields(t *testing.T) {
	schema := PayloadSchema(testsupport.DemoFields())

	if len(schema.Properties) != 14 {
		t.Fatalf("expected 14 properties, got %d", len(schema.Properties))
	}
	wantRequired := []string{
		"name", "email", "phoneNumber", "dob", "url", "password", "age",
		"color", "terms", "contactPreference", "personalDescription",
	}
	if diff := cmp.Diff(wantRequired, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	age := schema.Properties["age"].Value
	if !age.Type.Is(openapi3.TypeNumber) || !age.Nullable {
		t.Fatalf("age should be a nullable number, got %v", age.Type)
	}
	if age.Min == nil || *age.Min != 18 || age.Max == nil || *age.Max != 110 {
		t.Fatalf("unexpected age bounds %v..%v", age.Min, age.Max)
	}

	color := schema.Properties["color"].Value
	if diff := cmp.Diff([]any{"red", "green", "blue", "purple"}, color.Enum); diff != "" {
		t.Fatalf("color enum mismatch (-want +got):\n%s", diff)
	}

	if !schema.Properties["terms"].Value.Type.Is(openapi3.TypeBoolean) {
		t.Fatalf("terms should be boolean")
	}

	password := schema.Properties["password"].Value
	if password.MinLength != 12 || password.Format != "password" {
		t.Fatalf("unexpected password schema: minLength=%d format=%q", password.MinLength, password.Format)
	}
	name := schema.Properties["name"].Value
	if name.MaxLength == nil || *name.MaxLength != 30 || name.Title != "Full Name" {
		t.Fatalf("unexpected name schema %+v", name)
	}
	if email := schema.Properties["email"].Value; email.Pattern == "" || email.Format != "email" {
		t.Fatalf("unexpected email schema %+v", email)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Load(context.Background(), []byte(`{"openapi":"3.0.3","info":{"title":"x"},"paths":{}}`)); err == nil {
		t.Fatalf("expected validation error for missing info.version")
	}
}
