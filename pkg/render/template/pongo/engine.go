// Package pongo implements template.TemplateRenderer on top of pongo2.
//
// Template data is flattened to plain maps, slices and scalars before
// execution, so structs are addressed by their JSON field names
// ("field.input_type", "toast.severity").
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/render/template"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

var (
	errNoSource  = errors.New("pongo: a template directory or fs.FS is required")
	errNilEngine = errors.New("pongo: engine is nil")
)

// Option configures an Engine.
type Option func(*Engine)

// WithDir loads templates from a directory on disk. It takes precedence over
// WithFS for names present in both.
func WithDir(dir string) Option {
	return func(e *Engine) {
		e.dir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(e *Engine) {
		e.globals = globals
	}
}

// Engine renders pongo2 templates and caches parsed files by path.
type Engine struct {
	dir     string
	files   fs.FS
	ext     string
	globals map[string]any

	set *pongo2.TemplateSet

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one of WithDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{ext: DefaultExtension, cache: make(map[string]*pongo2.Template)}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}

	var loaders []pongo2.TemplateLoader
	if e.dir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(e.dir)
		if err != nil {
			return nil, fmt.Errorf("pongo: template dir %q: %w", e.dir, err)
		}
		loaders = append(loaders, loader)
	}
	if e.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(e.files))
	}
	if len(loaders) == 0 {
		return nil, errNoSource
	}

	registerFieldFilters()
	e.set = pongo2.NewSet("formschema", loaders...)
	if err := e.GlobalContext(e.globals); err != nil {
		return nil, err
	}
	return e, nil
}

// Render executes name as a file, or as inline source when it contains
// template tags.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate executes the template file name. The engine extension is
// appended when name has none.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.load(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, name, data, out)
}

// RenderString parses and executes source without caching it.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter adds a filter. pongo2 filters are process wide, so a name
// can be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	if data == nil {
		return nil
	}
	ctx, err := contextOf(data)
	if err != nil {
		return fmt.Errorf("pongo: global context: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) load(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := contextOf(data)
	if err != nil {
		return "", fmt.Errorf("pongo: %s: %w", name, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}

	if len(out) > 0 {
		if _, err := io.MultiWriter(out...).Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("pongo: write %s: %w", name, err)
		}
	}
	return buf.String(), nil
}

// contextOf flattens data into a pongo2 context. Functions are passed
// through untouched; everything else goes through a JSON round trip.
func contextOf(data any) (pongo2.Context, error) {
	var src map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		src = v
	case map[string]any:
		src = v
	default:
		if err := roundTrip(v, &src); err != nil {
			return nil, err
		}
	}

	ctx := make(pongo2.Context, len(src))
	for key, value := range src {
		if value == nil || reflect.TypeOf(value).Kind() == reflect.Func {
			ctx[key] = value
			continue
		}
		var plain any
		if err := roundTrip(value, &plain); err != nil {
			return nil, fmt.Errorf("value %q: %w", key, err)
		}
		ctx[key] = plain
	}
	return ctx, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

var registerOnce sync.Once

func registerFieldFilters() {
	registerOnce.Do(func() {
		if !pongo2.FilterExists("field_id") {
			_ = pongo2.RegisterFilter("field_id", filterFieldID)
		}
		if !pongo2.FilterExists("input_type") {
			_ = pongo2.RegisterFilter("input_type", filterInputType)
		}
	})
}

// filterFieldID turns a field key into its DOM id. The optional parameter is
// appended, which gives each radio option its own id.
func filterFieldID(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	id := "fs-" + strings.TrimSpace(in.String())
	if param != nil && !param.IsNil() {
		if suffix := strings.TrimSpace(param.String()); suffix != "" {
			id += "-" + suffix
		}
	}
	return pongo2.AsValue(id), nil
}

func filterInputType(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(model.InputType(model.FieldType(in.String()))), nil
}
