// Package testsupport holds fixtures and fakes shared by package tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"maps"
	"sync"
	"testing"

	"github.com/goliatone/go-formschema/internal/demo"
	pkgmodel "github.com/goliatone/go-formschema/pkg/model"
)

// DemoFields returns the static field list served by the mock backend.
func DemoFields() []pkgmodel.FieldSchema {
	return demo.Fields()
}

// ValidDemoValues returns raw widget values that satisfy every rule of the
// demo schema. Fields not listed keep their defaults.
func ValidDemoValues() map[string]any {
	return map[string]any{
		"email":               "a@b.com",
		"phoneNumber":         "12345678",
		"dob":                 "1990-01-01",
		"url":                 "https://example.com",
		"password":            "correct-horse-battery",
		"age":                 "25",
		"terms":               "on",
		"personalDescription": "I write Go.",
	}
}

// ValidDemoValuesWithout returns ValidDemoValues minus keys.
func ValidDemoValuesWithout(keys ...string) map[string]any {
	values := ValidDemoValues()
	for _, key := range keys {
		delete(values, key)
	}
	return values
}

// LoadFields reads a JSON or YAML field file, failing the test on error.
func LoadFields(t *testing.T, path string) []pkgmodel.FieldSchema {
	t.Helper()

	fields, err := pkgmodel.LoadFieldsFile(path)
	if err != nil {
		t.Fatalf("load fields: %v", err)
	}
	return fields
}

// Submitter is a recording fake for the submit collaborator. When Block is
// set, Submit signals Started (if set) and waits for Block to close.
type Submitter struct {
	Err     error
	Block   chan struct{}
	Started chan struct{}

	mu    sync.Mutex
	calls []pkgmodel.Payload
	once  sync.Once
}

// Submit records payload and returns it as the echo, or Err.
func (s *Submitter) Submit(ctx context.Context, payload pkgmodel.Payload) (pkgmodel.Payload, error) {
	s.mu.Lock()
	s.calls = append(s.calls, maps.Clone(payload))
	s.mu.Unlock()

	if s.Started != nil {
		s.once.Do(func() { close(s.Started) })
	}
	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return payload, nil
}

// Calls returns the payloads received so far.
func (s *Submitter) Calls() []pkgmodel.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pkgmodel.Payload(nil), s.calls...)
}

// MessageError is an error carrying a user-facing server message, shaped
// like api.Error.
type MessageError string

func (e MessageError) Error() string        { return "server: " + string(e) }
func (e MessageError) ErrorMessage() string { return string(e) }

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
