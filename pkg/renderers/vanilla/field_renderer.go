package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/render/template"
	"github.com/goliatone/go-formschema/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formschema/pkg/rules"
)

// invalidFallback fills the error slot of a failing rule without a message.
const invalidFallback = "Invalid value"

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		partials:  partials,
	}
}

func (r *componentRenderer) renderAll(state form.State, registrar render.Registrar) (string, error) {
	var builder strings.Builder
	for _, field := range state.Fields {
		if registrar != nil {
			registrar.Register(field)
		}
		markup, err := r.render(field, state)
		if err != nil {
			return "", err
		}
		builder.WriteString(markup)
	}
	return builder.String(), nil
}

// render dispatches on the field type. model.WidgetFor panics for unknown
// types.
func (r *componentRenderer) render(field model.FieldSchema, state form.State) (string, error) {
	widget := model.WidgetFor(field.Type)

	component, ok := r.registry.Lookup(widget)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", widget, field.Key)
	}

	view := buildFieldView(field, widget, state)

	var control bytes.Buffer
	if err := component(&control, view, components.ComponentData{
		Template:      r.templates,
		ThemePartials: r.partials,
	}); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", widget, field.Key, err)
	}
	if strings.TrimSpace(control.String()) == "" {
		return "", fmt.Errorf("component %q rendered nothing for field %q", widget, field.Key)
	}

	return buildFieldMarkup(view, control.String()), nil
}

func buildFieldView(field model.FieldSchema, widget model.Widget, state form.State) components.FieldView {
	value, ok := state.Values[field.Key]
	if !ok {
		value = form.Coerce(field, field.Value)
	}
	message, invalid := state.Errors[field.Key]
	if invalid && message == "" {
		message = invalidFallback
	}

	view := components.FieldView{
		ID:          fieldID(field.Key),
		Key:         field.Key,
		Type:        string(field.Type),
		Widget:      string(widget),
		InputType:   model.InputType(field.Type),
		Label:       field.Label,
		Placeholder: field.Placeholder,
		Value:       rules.Stringify(value),
		Checked:     value == true,
		Required:    field.Required,
		Disabled:    field.Disabled,
		Hidden:      field.Type == model.FieldTypeHidden,
		Invalid:     invalid,
		Error:       message,
		Min:         formatBound(field.Min),
		Max:         formatBound(field.Max),
		Step:        formatBound(field.Step),
	}
	if len(field.Options) > 0 {
		view.Options = make([]components.OptionView, 0, len(field.Options))
		for _, option := range field.Options {
			view.Options = append(view.Options, components.OptionView{
				Label:    option.Label,
				Value:    option.Value,
				Disabled: option.Disabled,
				Selected: option.Value == view.Value,
			})
		}
	}
	return view
}

func buildFieldMarkup(view components.FieldView, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="fs-field`)
	if view.Hidden {
		builder.WriteString(` fs-hidden`)
	}
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(view.Key))
	builder.WriteString(`" data-widget="`)
	builder.WriteString(html.EscapeString(view.Widget))
	builder.WriteString(`"`)
	if view.Invalid {
		builder.WriteString(` data-invalid="true"`)
	}
	builder.WriteString(">\n")

	if strings.TrimSpace(view.Label) != "" {
		tag := "label"
		if view.Widget == string(model.WidgetRadio) {
			tag = "span"
		}
		builder.WriteString(`  <` + tag + ` id="`)
		builder.WriteString(html.EscapeString(view.ID))
		builder.WriteString(`-label"`)
		if tag == "label" {
			builder.WriteString(` for="`)
			builder.WriteString(html.EscapeString(view.ID))
			builder.WriteString(`"`)
		}
		builder.WriteString(` class="fs-label">`)
		builder.WriteString(html.EscapeString(view.Label))
		if view.Required {
			builder.WriteString(` <span class="fs-required" aria-hidden="true">*</span>`)
		}
		builder.WriteString(`</` + tag + ">\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	// The error slot is always emitted so the layout does not shift.
	builder.WriteString(`  <p id="`)
	builder.WriteString(html.EscapeString(view.ID))
	builder.WriteString(`-error" class="fs-error" role="alert">`)
	builder.WriteString(html.EscapeString(view.Error))
	builder.WriteString("</p>\n")

	builder.WriteString("</div>\n")
	return builder.String()
}

func fieldID(key string) string {
	return "fs-" + strings.TrimSpace(key)
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
