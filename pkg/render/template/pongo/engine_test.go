package pongo_test

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formschema/pkg/render/template/pongo"
	"github.com/goliatone/go-formschema/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tmpl": {Data: []byte("{{ name|shout_test }}")},
	"field.tmpl":      {Data: []byte(`<input id="{{ field.key|field_id }}" type="{{ field.type|input_type }}">`)},
	"radio.tmpl":      {Data: []byte(`{{ key|field_id:value }}`)},
	"toast.tmpl":      {Data: []byte(`{{ toast.severity }}:{{ toast.title }}`)},
}

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()

	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(templatesFS)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestRenderTemplateWritesOutput(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if want := "Hello Ada"; result != want || written != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q / %q", want, result, written)
	}
}

func TestStructDataUsesJSONNames(t *testing.T) {
	type toast struct {
		Severity string `json:"severity"`
		Title    string `json:"title"`
	}
	engine := newEngine(t)

	out, err := engine.RenderTemplate("toast.tmpl", map[string]any{"toast": toast{Severity: "destructive", Title: "Oops"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "destructive:Oops" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGlobals(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobals(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	out, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "env=staging" {
		t.Fatalf("unexpected output %q", out)
	}

	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "prod"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	if out, _ := engine.RenderTemplate("use-global", nil); out != "env=prod" {
		t.Fatalf("expected updated global, got %q", out)
	}
}

func TestRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout_test", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	out, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ADA!" {
		t.Fatalf("unexpected output %q", out)
	}
	if err := engine.RegisterFilter("shout_test", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	if err := engine.RegisterFilter(" ", nil); err == nil {
		t.Fatalf("expected error for empty filter")
	}
}

func TestFieldFilters(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderTemplate("field", map[string]any{
		"field": map[string]any{"key": "dateTime", "type": "datetime"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<input id="fs-dateTime" type="datetime-local">`; out != want {
		t.Fatalf("want %q, got %q", want, out)
	}

	out, err = engine.RenderTemplate("radio", map[string]any{"key": "contactPreference", "value": "sms"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "fs-contactPreference-sms" {
		t.Fatalf("unexpected radio id %q", out)
	}
}

func TestRenderInlineSource(t *testing.T) {
	engine := newEngine(t)
	out, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": "one", "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "one-two" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte("<p>{{ n }}</p>"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine, err := pongo.New(pongo.WithDir(dir), pongo.WithExtension("html"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderTemplate("page", map[string]any{"n": "3"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>3</p>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestErrors(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
	if _, err := newEngine(t).RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	var nilEngine *pongo.Engine
	if _, err := nilEngine.RenderTemplate("hello", nil); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}
