package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWidgetForCoversEveryType(t *testing.T) {
	want := map[FieldType]Widget{
		FieldTypeText:     WidgetInput,
		FieldTypeEmail:    WidgetInput,
		FieldTypeTel:      WidgetInput,
		FieldTypeDate:     WidgetInput,
		FieldTypeDateTime: WidgetInput,
		FieldTypeTime:     WidgetInput,
		FieldTypeURL:      WidgetInput,
		FieldTypePassword: WidgetInput,
		FieldTypeHidden:   WidgetInput,
		FieldTypeNumber:   WidgetInput,
		FieldTypeSelect:   WidgetSelect,
		FieldTypeCheckbox: WidgetCheckbox,
		FieldTypeRadio:    WidgetRadio,
		FieldTypeTextarea: WidgetTextarea,
	}
	if len(want) != len(FieldTypes()) {
		t.Fatalf("expected %d types, FieldTypes lists %d", len(want), len(FieldTypes()))
	}
	for _, typ := range FieldTypes() {
		if got := WidgetFor(typ); got != want[typ] {
			t.Errorf("WidgetFor(%s) = %s, want %s", typ, got, want[typ])
		}
	}
}

func TestWidgetForUnknownPanics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(UnknownFieldTypeError)
		if !ok {
			t.Fatalf("expected UnknownFieldTypeError, got %v", rec)
		}
		if err.Type != "color" || !strings.Contains(err.Error(), `"color"`) {
			t.Fatalf("unexpected error %v", err)
		}
	}()
	WidgetFor("color")
}

func TestInputType(t *testing.T) {
	cases := map[FieldType]string{
		FieldTypeText:     "text",
		FieldTypeEmail:    "text",
		FieldTypeTel:      "text",
		FieldTypeURL:      "text",
		FieldTypeHidden:   "text",
		FieldTypeDate:     "date",
		FieldTypeDateTime: "datetime-local",
		FieldTypeTime:     "time",
		FieldTypePassword: "password",
		FieldTypeNumber:   "number",
	}
	for typ, want := range cases {
		if got := InputType(typ); got != want {
			t.Errorf("InputType(%s) = %q, want %q", typ, got, want)
		}
	}
}

func TestValidateFields(t *testing.T) {
	lo, hi := 10.0, 1.0
	fields := []FieldSchema{
		{Key: "name", Type: FieldTypeText},
		{Key: "name", Type: FieldTypeText},
		{Key: "color", Type: FieldTypeSelect},
		{Key: "when", Type: "datetime-local"},
		{Key: "code", Type: FieldTypeText, Pattern: "([a-z"},
		{Key: "bio", Type: FieldTypeTextarea, MinLength: 5, MaxLength: 2},
		{Key: "age", Type: FieldTypeNumber, Min: &lo, Max: &hi},
		{Type: FieldTypeText},
	}

	err := ValidateFields(fields)
	if err == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(err, errFieldKeyMissing) {
		t.Fatalf("expected missing key error in %v", err)
	}

	var got []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var fe FieldError
		if errors.As(e, &fe) {
			got = append(got, fe.Key)
		}
	}
	want := []string{"name", "color", "when", "code", "bio", "age"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFieldsEmpty(t *testing.T) {
	if err := ValidateFields(nil); !errors.Is(err, errNoFields) {
		t.Fatalf("expected errNoFields, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	source := []FieldSchema{{
		Key:           " phoneNumber ",
		Type:          " TEL ",
		Options:       []Option{{Label: "A", Value: "a"}},
		ErrorMessages: ErrorMessages{RuleRequired: "required"},
	}}

	out := Normalize(source, Options{})
	field := out[0]
	if field.Key != "phoneNumber" || field.Type != FieldTypeTel || field.Label != "Phone Number" {
		t.Fatalf("unexpected normalized field: %+v", field)
	}

	field.Options[0].Label = "changed"
	field.ErrorMessages[RuleRequired] = "changed"
	if source[0].Options[0].Label != "A" || source[0].ErrorMessages[RuleRequired] != "required" {
		t.Fatalf("normalize must not share slices or maps with its input")
	}

	custom := Normalize([]FieldSchema{{Key: "x"}}, Options{Labeler: strings.ToUpper})
	if custom[0].Label != "X" {
		t.Fatalf("expected custom labeler, got %q", custom[0].Label)
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":                    "",
		"name":                "Name",
		"first_name":          "First Name",
		"contact-preference":  "Contact Preference",
		"personalDescription": "Personal Description",
		"address2":            "Address 2",
		"URLPath":             "URL Path",
		"userID":              "User ID",
		"  spaced  key ":      "Spaced Key",
	}
	for in, want := range cases {
		if got := DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldSchemaMessage(t *testing.T) {
	var field FieldSchema
	if got := field.Message(RuleRequired); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
	field.ErrorMessages = ErrorMessages{RulePattern: "bad"}
	if got := field.Message(RulePattern); got != "bad" {
		t.Fatalf("unexpected message %q", got)
	}
}
