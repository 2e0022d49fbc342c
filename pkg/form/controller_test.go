package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

func newLoaded(t *testing.T, sub form.Submitter) (*form.Controller, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	ctrl := form.New(form.WithSubmitter(sub), form.WithNotifier(rec))
	src := form.FieldSourceFunc(func(context.Context) ([]model.FieldSchema, error) {
		return testsupport.DemoFields(), nil
	})
	if err := ctrl.LoadFields(context.Background(), src); err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return ctrl, rec
}

func fillValid(t *testing.T, ctrl *form.Controller, skip ...string) {
	t.Helper()
	for key, value := range testsupport.ValidDemoValuesWithout(skip...) {
		if _, _, err := ctrl.Change(key, value); err != nil {
			t.Fatalf("change %s: %v", key, err)
		}
	}
}

func TestController_LoadSeedsDefaults(t *testing.T) {
	ctrl := form.New()
	ctrl.BeginLoading()
	if state := ctrl.Snapshot(); !state.Loading || state.Phase != form.PhaseLoading {
		t.Fatalf("expected loading state, got %+v", state)
	}

	ctrl.Load(testsupport.DemoFields())
	state := ctrl.Snapshot()
	if state.Loading || state.Phase != form.PhaseLoaded {
		t.Fatalf("expected loaded state, got phase=%s loading=%v", state.Phase, state.Loading)
	}
	if len(state.Fields) != 14 {
		t.Fatalf("expected 14 fields, got %d", len(state.Fields))
	}
	if state.Value("color") != "blue" || state.Value("contactPreference") != "email" {
		t.Fatalf("expected defaults, got color=%v contact=%v", state.Value("color"), state.Value("contactPreference"))
	}
	if state.Value("terms") != false || state.Value("age") != nil {
		t.Fatalf("unexpected typed defaults: terms=%#v age=%#v", state.Value("terms"), state.Value("age"))
	}
	if !state.Valid() {
		t.Fatalf("expected no errors before interaction, got %v", state.Errors)
	}
}

func TestController_LoadFailureNotifies(t *testing.T) {
	rec := notify.NewRecorder()
	ctrl := form.New(form.WithNotifier(rec))

	err := ctrl.LoadFields(context.Background(), form.FieldSourceFunc(func(context.Context) ([]model.FieldSchema, error) {
		return nil, errors.New("dial tcp: refused")
	}))
	if err == nil {
		t.Fatalf("expected error")
	}

	last, ok := rec.Last()
	if !ok {
		t.Fatalf("expected notification")
	}
	want := notify.Notification{ID: last.ID, Severity: notify.SeverityDestructive, Title: form.TitleFailure, Description: form.FallbackLoadError}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Fatalf("notification mismatch (-want +got):\n%s", diff)
	}
	if state := ctrl.Snapshot(); state.Loading {
		t.Fatalf("loading flag should clear on failure")
	}
}

func TestController_ChangeValidatesEveryTime(t *testing.T) {
	ctrl, _ := newLoaded(t, &testsupport.Submitter{})

	v, failed, err := ctrl.Change("email", "nope")
	if err != nil || !failed || v.Message != "Please enter a valid email address" {
		t.Fatalf("expected pattern violation, got %+v failed=%v err=%v", v, failed, err)
	}
	if !ctrl.Snapshot().HasError("email") {
		t.Fatalf("expected email error in state")
	}

	if _, failed, _ := ctrl.Change("email", "a@b.com"); failed {
		t.Fatalf("expected valid email")
	}
	if ctrl.Snapshot().HasError("email") {
		t.Fatalf("expected email error cleared")
	}

	if _, _, err := ctrl.Change("nickname", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestController_ChangeBeforeLoad(t *testing.T) {
	ctrl := form.New()
	if _, _, err := ctrl.Change("email", "a@b.com"); !errors.Is(err, form.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestController_SubmitBlockedByMissingEmail(t *testing.T) {
	sub := &testsupport.Submitter{}
	ctrl, rec := newLoaded(t, sub)
	fillValid(t, ctrl, "email")

	_, err := ctrl.Submit(context.Background())
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(sub.Calls()) != 0 {
		t.Fatalf("expected no submit call, got %d", len(sub.Calls()))
	}

	state := ctrl.Snapshot()
	if got := state.Errors["email"]; got != "Email is required" {
		t.Fatalf("expected inline required error, got %q", got)
	}
	if len(state.Errors) != 1 {
		t.Fatalf("expected only email to fail, got %v", state.Errors)
	}
	if len(rec.All()) != 0 {
		t.Fatalf("blocked submit must not notify, got %+v", rec.All())
	}
}

func TestController_SubmitSendsExactPayload(t *testing.T) {
	sub := &testsupport.Submitter{Block: make(chan struct{}), Started: make(chan struct{})}
	ctrl, rec := newLoaded(t, sub)
	fillValid(t, ctrl)

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background())
		done <- err
	}()

	<-sub.Started
	if !ctrl.IsBusy() || ctrl.Snapshot().Phase != form.PhaseSubmitting {
		t.Fatalf("expected busy state while submit is pending")
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}
	close(sub.Block)

	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := model.Payload{
		"name":                "John Doe",
		"email":               "a@b.com",
		"phoneNumber":         "12345678",
		"dob":                 "1990-01-01",
		"dateTime":            "",
		"time":                "",
		"url":                 "https://example.com",
		"password":            "correct-horse-battery",
		"hidden":              "hidden",
		"age":                 25.0,
		"color":               "blue",
		"terms":               true,
		"contactPreference":   "email",
		"personalDescription": "I write Go.",
	}
	calls := sub.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 submit call, got %d", len(calls))
	}
	if diff := cmp.Diff(want, calls[0]); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	state := ctrl.Snapshot()
	if state.Submitting || state.Phase != form.PhaseSubmitted {
		t.Fatalf("expected submitted state, got %+v", state.Phase)
	}
	if !state.Valid() {
		t.Fatalf("expected no errors, got %v", state.Errors)
	}
	last, ok := rec.Last()
	if !ok || last.Severity != notify.SeverityNormal || last.Title != form.TitleSubmitted {
		t.Fatalf("expected success notification, got %+v", last)
	}
}

func TestController_SubmitFailureKeepsValues(t *testing.T) {
	sub := &testsupport.Submitter{Err: testsupport.MessageError("X")}
	ctrl, rec := newLoaded(t, sub)
	fillValid(t, ctrl)
	before := ctrl.Payload()

	if _, err := ctrl.Submit(context.Background()); err == nil {
		t.Fatalf("expected submit error")
	}

	last, ok := rec.Last()
	if !ok || last.Severity != notify.SeverityDestructive || last.Description != "X" {
		t.Fatalf("expected destructive notification with server message, got %+v", last)
	}
	if diff := cmp.Diff(before, ctrl.Payload()); diff != "" {
		t.Fatalf("values changed after failed submit (-before +after):\n%s", diff)
	}
	state := ctrl.Snapshot()
	if state.Submitting || state.Phase != form.PhaseSubmitFailed {
		t.Fatalf("expected busy flag cleared and failed phase, got %+v", state.Phase)
	}
}

func TestController_SubmitFailureFallbackMessage(t *testing.T) {
	ctrl, rec := newLoaded(t, &testsupport.Submitter{Err: errors.New("connection reset")})
	fillValid(t, ctrl)

	_, _ = ctrl.Submit(context.Background())
	last, _ := rec.Last()
	if last.Description != form.FallbackSubmitError {
		t.Fatalf("expected fallback message, got %q", last.Description)
	}
}

func TestController_SubmitFailureMarkupOnlyMessage(t *testing.T) {
	ctrl, rec := newLoaded(t, &testsupport.Submitter{Err: testsupport.MessageError("<b></b>")})
	fillValid(t, ctrl)

	_, _ = ctrl.Submit(context.Background())
	last, _ := rec.Last()
	if last.Description != form.FallbackSubmitError {
		t.Fatalf("expected fallback message, got %q", last.Description)
	}
}

func TestController_NumberRejectsText(t *testing.T) {
	for _, raw := range []string{"abc", "12abc", "1e400"} {
		sub := &testsupport.Submitter{}
		ctrl, _ := newLoaded(t, sub)
		fillValid(t, ctrl)

		v, failed, err := ctrl.Change("age", raw)
		if err != nil || !failed {
			t.Fatalf("%q: expected violation, got failed=%v err=%v", raw, failed, err)
		}
		if v.Kind != model.RuleRequired || v.Message != "Age is required" {
			t.Fatalf("%q: unexpected violation %+v", raw, v)
		}
		if got := ctrl.Payload()["age"]; got != nil {
			t.Fatalf("%q: expected nil age, got %#v", raw, got)
		}
		if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrInvalid) {
			t.Fatalf("%q: expected ErrInvalid, got %v", raw, err)
		}
		if n := len(sub.Calls()); n != 0 {
			t.Fatalf("%q: expected no submit call, got %d", raw, n)
		}
	}
}

func TestController_OptionalNumberRejectsText(t *testing.T) {
	ctrl := form.New()
	ctrl.Load([]model.FieldSchema{{Key: "qty", Type: model.FieldTypeNumber, Label: "Qty"}})

	v, failed, err := ctrl.Change("qty", "abc")
	if err != nil || !failed {
		t.Fatalf("expected violation, got failed=%v err=%v", failed, err)
	}
	want := model.Payload{"qty": nil}
	if diff := cmp.Diff(want, ctrl.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if v.Kind != model.RuleNumber || v.Message != form.MessageNotANumber {
		t.Fatalf("unexpected violation %+v", v)
	}
	if n := ctrl.Validate(); n != 1 {
		t.Fatalf("expected rejected input to keep failing, got %d failing", n)
	}

	if _, failed, _ := ctrl.Change("qty", ""); failed {
		t.Fatalf("expected blank optional number to pass")
	}
	if n := ctrl.Validate(); n != 0 {
		t.Fatalf("expected no failing fields, got %d", n)
	}
}

func TestController_OptionChecks(t *testing.T) {
	sub := &testsupport.Submitter{}
	ctrl, _ := newLoaded(t, sub)
	fillValid(t, ctrl)

	for key, raw := range map[string]string{"color": "purple", "contactPreference": "carrier-pigeon"} {
		v, failed, err := ctrl.Change(key, raw)
		if err != nil || !failed || v.Kind != model.RuleRequired {
			t.Fatalf("%s=%q: expected required violation, got %+v failed=%v err=%v", key, raw, v, failed, err)
		}
		if got := ctrl.Payload()[key]; got != "" {
			t.Fatalf("%s: expected empty value, got %#v", key, got)
		}
	}
	if _, err := ctrl.Submit(context.Background()); !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if n := len(sub.Calls()); n != 0 {
		t.Fatalf("expected no submit call, got %d", n)
	}

	optional := form.New()
	optional.Load([]model.FieldSchema{{
		Key:           "size",
		Type:          model.FieldTypeSelect,
		Label:         "Size",
		Options:       []model.Option{{Label: "S", Value: "s"}, {Label: "M", Value: "m", Disabled: true}},
		ErrorMessages: model.ErrorMessages{model.RuleOption: "Pick an available size"},
	}})
	v, failed, _ := optional.Change("size", "m")
	if !failed || v.Kind != model.RuleOption || v.Message != "Pick an available size" {
		t.Fatalf("unexpected violation %+v failed=%v", v, failed)
	}
	if _, failed, _ := optional.Change("size", "s"); failed {
		t.Fatalf("expected enabled option to pass")
	}
}

func TestController_SuccessLeavesPriorErrors(t *testing.T) {
	ctrl, _ := newLoaded(t, &testsupport.Submitter{})
	fillValid(t, ctrl)
	if _, err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, failed, _ := ctrl.Change("age", "5"); !failed {
		t.Fatalf("expected age violation after submit")
	}
	if got := ctrl.Snapshot().Errors["age"]; got != "Age must be at least 18" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestController_RegisterOnce(t *testing.T) {
	ctrl := form.New()
	field := model.FieldSchema{Key: "nick", Type: model.FieldTypeText, Value: "gopher"}
	if !ctrl.Register(field) {
		t.Fatalf("expected first register to add field")
	}
	if ctrl.Register(field) {
		t.Fatalf("expected second register to be ignored")
	}
	if got := ctrl.Snapshot().Value("nick"); got != "gopher" {
		t.Fatalf("unexpected seeded value %v", got)
	}
	if _, ok := ctrl.Rules()["nick"]; !ok {
		t.Fatalf("expected compiled rules for registered field")
	}
}

func TestCoerce(t *testing.T) {
	number := model.FieldSchema{Type: model.FieldTypeNumber}
	checkbox := model.FieldSchema{Type: model.FieldTypeCheckbox}
	text := model.FieldSchema{Type: model.FieldTypeText}
	options := []model.Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b", Disabled: true}}
	choice := model.FieldSchema{Type: model.FieldTypeSelect, Options: options}
	radio := model.FieldSchema{Type: model.FieldTypeRadio, Options: options}

	cases := []struct {
		name  string
		field model.FieldSchema
		in    any
		want  any
	}{
		{"number string", number, "25", 25.0},
		{"number empty", number, "", nil},
		{"number int", number, 7, 7.0},
		{"number padded", number, " 30 ", 30.0},
		{"number junk", number, "abc", nil},
		{"number trailing junk", number, "12abc", nil},
		{"number overflow", number, "1e400", nil},
		{"number NaN", number, "NaN", nil},
		{"number bool", number, true, nil},
		{"select enabled", choice, "a", "a"},
		{"select disabled", choice, "b", ""},
		{"select unknown", choice, "zzz", ""},
		{"radio enabled", radio, "a", "a"},
		{"checkbox on", checkbox, "on", true},
		{"checkbox empty", checkbox, "", false},
		{"checkbox bool", checkbox, true, true},
		{"text nil", text, nil, ""},
		{"text float", text, 1.5, "1.5"},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, form.Coerce(tc.field, tc.in)); diff != "" {
			t.Fatalf("%s: (-want +got):\n%s", tc.name, diff)
		}
	}
}
