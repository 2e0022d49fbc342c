package render

import (
	"context"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
)

// Renderer turns a form state snapshot into a byte representation (HTML,
// terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, state form.State, options RenderOptions) ([]byte, error)
}

// Registrar receives each field the first time a renderer emits it.
// *form.Controller satisfies it.
type Registrar interface {
	Register(field model.FieldSchema) bool
}

var _ Registrar = (*form.Controller)(nil)
