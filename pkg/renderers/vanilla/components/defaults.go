package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formschema/pkg/model"
)

// NewDefaultRegistry returns a registry with the template component of every
// widget family.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, widget := range model.Widgets() {
		if err := registry.Set(widget, Template(widget)); err != nil {
			panic(err)
		}
	}
	return registry
}

// Template renders the widget template with the field bound to "field". A
// non-empty theme partial for the widget replaces the built-in template.
func Template(widget model.Widget) Func {
	return func(buf *bytes.Buffer, field FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: no template renderer for %s", widget)
		}
		name := TemplateName(widget)
		if override := strings.TrimSpace(data.ThemePartials[PartialKey(widget)]); override != "" {
			name = override
		}
		out, err := data.Template.RenderTemplate(name, map[string]any{"field": field})
		if err != nil {
			return fmt.Errorf("components: %s: %w", name, err)
		}
		buf.WriteString(strings.TrimSpace(out))
		return nil
	}
}
