package components

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-formschema/pkg/model"
	rendertemplate "github.com/goliatone/go-formschema/pkg/render/template"
)

// ErrNilComponent is returned by Set for a nil Func.
var ErrNilComponent = errors.New("components: nil component")

// Func writes the control markup of one field into buf.
type Func func(buf *bytes.Buffer, field FieldView, data ComponentData) error

// ComponentData carries what a Func may need beyond the field itself.
type ComponentData struct {
	Template      rendertemplate.TemplateRenderer
	ThemePartials map[string]string
}

// Registry maps widget families to component funcs. It is safe for
// concurrent use; a renderer reads it on every request.
type Registry struct {
	mu    sync.RWMutex
	funcs map[model.Widget]Func
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{funcs: make(map[model.Widget]Func, len(model.Widgets()))}
}

// Set installs fn for widget, replacing any previous component.
func (r *Registry) Set(widget model.Widget, fn Func) error {
	if fn == nil {
		return fmt.Errorf("%w for %q", ErrNilComponent, widget)
	}
	r.mu.Lock()
	r.funcs[widget] = fn
	r.mu.Unlock()
	return nil
}

// Lookup returns the component for widget.
func (r *Registry) Lookup(widget model.Widget) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[widget]
	return fn, ok
}

// Missing lists the widget families without a component, in model.Widgets
// order. A complete registry returns nil.
func (r *Registry) Missing() []model.Widget {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var missing []model.Widget
	for _, w := range model.Widgets() {
		if _, ok := r.funcs[w]; !ok {
			missing = append(missing, w)
		}
	}
	return missing
}
