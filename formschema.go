// Package formschema renders and validates forms described by a server
// provided field list. The subpackages hold the pieces (pkg/rules compiles
// constraints, pkg/form owns the form state, pkg/renderers/* draw it); this
// package wires them for the common cases.
package formschema

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formschema/internal/demo"
	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla"
)

// DemoFields returns the built-in demo field list.
func DemoFields() []model.FieldSchema {
	return demo.Fields()
}

// NewController validates fields and returns a controller with them loaded.
func NewController(fields []model.FieldSchema, options ...form.Option) (*form.Controller, error) {
	if err := model.ValidateFields(fields); err != nil {
		return nil, fmt.Errorf("formschema: %w", err)
	}
	ctrl := form.New(options...)
	ctrl.Load(fields)
	return ctrl, nil
}

// RenderHTML renders fields with their defaults as a standalone HTML page
// using the vanilla renderer.
func RenderHTML(ctx context.Context, fields []model.FieldSchema, options ...vanilla.Option) ([]byte, error) {
	ctrl, err := NewController(fields)
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("formschema: %w", err)
	}
	return renderer.Render(ctx, ctrl.Snapshot(), render.RenderOptions{Registrar: ctrl})
}
