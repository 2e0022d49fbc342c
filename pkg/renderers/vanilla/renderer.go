package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/render"
	rendertemplate "github.com/goliatone/go-formschema/pkg/render/template"
	"github.com/goliatone/go-formschema/pkg/render/template/pongo"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla/components"
)

const (
	formTemplate   = "templates/form.tmpl"
	formPartialKey = "forms.form"

	// Theme asset keys resolved through RendererConfig.AssetURL.
	AssetKeyStylesheet = "vanilla.stylesheet"
	AssetKeyScript     = "vanilla.script"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	assetPrefix      string
	title            string
	livePath         string
	document         bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default widget components.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithAssetPrefix sets the URL prefix the embedded assets are served under.
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// WithLiveEndpoint enables the runtime script's websocket connection to path.
func WithLiveEndpoint(path string) Option {
	return func(cfg *config) {
		cfg.livePath = strings.TrimSpace(path)
	}
}

// WithFormOnly renders the form and toasts without the surrounding HTML
// document, for embedding into an existing layout.
func WithFormOnly() Option {
	return func(cfg *config) {
		cfg.document = false
	}
}

type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	assetPrefix string
	title       string
	livePath    string
	document    bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		assetPrefix: "/assets",
		title:       "Dynamic Form",
		document:    true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		registry:    cfg.registry,
		assetPrefix: cfg.assetPrefix,
		title:       cfg.title,
		livePath:    cfg.livePath,
		document:    cfg.document,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the form for state. While state.Loading is set the field list
// is replaced by a loading indicator. Unknown field types panic.
func (r *Renderer) Render(_ context.Context, state form.State, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	partials := themePartials(options.Theme)

	var fieldsHTML string
	if !state.Loading {
		fr := newComponentRenderer(r.templates, r.registry, partials)
		html, err := fr.renderAll(state, options.Registrar)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		fieldsHTML = html
	}
	if options.FieldsOnly {
		return []byte(fieldsHTML), nil
	}

	templateName := formTemplate
	if candidate := strings.TrimSpace(partials[formPartialKey]); candidate != "" {
		templateName = candidate
	}

	data := map[string]any{
		"page":          r.document,
		"title":         r.title,
		"action":        options.Action,
		"phase":         string(state.Phase),
		"loading":       state.Loading,
		"submitting":    state.Submitting,
		"fields_html":   fieldsHTML,
		"notifications": options.Notifications,
		"stylesheet":    r.assetURL(options.Theme, AssetKeyStylesheet, StylesheetName),
		"script":        r.assetURL(options.Theme, AssetKeyScript, RuntimeScriptName),
		"live":          r.livePath,
	}
	if cfg := options.Theme; cfg != nil {
		data["theme"] = cfg.Theme
		data["variant"] = cfg.Variant
		data["css_vars"] = sortedCSSVars(cfg.CSSVars)
	}

	result, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) assetURL(cfg *theme.RendererConfig, key, name string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if url := strings.TrimSpace(cfg.AssetURL(key)); url != "" {
			return url
		}
	}
	return r.assetPrefix + "/" + name
}

// DefaultPartials maps every theme partial key the renderer understands to its
// built-in template. Theme configs use it as the fallback layer.
func DefaultPartials() map[string]string {
	partials := map[string]string{formPartialKey: formTemplate}
	for _, widget := range model.Widgets() {
		partials[components.PartialKey(widget)] = components.TemplateName(widget)
	}
	return partials
}

func themePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedCSSVars(vars map[string]string) []cssVar {
	if len(vars) == 0 {
		return nil
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]cssVar, 0, len(names))
	for _, name := range names {
		out = append(out, cssVar{Name: name, Value: vars[name]})
	}
	return out
}
