package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/render"
	"github.com/goliatone/go-formschema/pkg/rules"
)

const (
	loadingText        = "Loading form..."
	submittingText     = "Submitting..."
	invalidFallback    = "Invalid value"
	unavailableSuffix  = " (unavailable)"
	unavailableMessage = "That option is unavailable"
)

// Renderer drives a form from the terminal. Collect prompts for every field
// and validates each answer through a form.Controller; Render prints a
// snapshot as JSON or plain text.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render serializes state. Fields are handed to options.Registrar as they are
// emitted, same as the HTML renderer.
func (r *Renderer) Render(ctx context.Context, state form.State, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !state.Loading && options.Registrar != nil {
		for _, field := range state.Fields {
			options.Registrar.Register(field)
		}
	}

	if r.outputFormat == OutputFormatPrettyText {
		return []byte(r.summary(state, options)), nil
	}

	payload := make(model.Payload, len(state.Fields))
	for _, field := range state.Fields {
		payload[field.Key] = valueOf(state, field)
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode payload: %w", err)
	}
	return append(out, '\n'), nil
}

func (r *Renderer) summary(state form.State, options render.RenderOptions) string {
	var b strings.Builder
	if state.Loading {
		b.WriteString(r.theme.InfoPrefix + loadingText + "\n")
	} else {
		for _, field := range state.Fields {
			if field.Type == model.FieldTypeHidden {
				continue
			}
			label := field.Label
			if field.Required {
				label += " *"
			}
			fmt.Fprintf(&b, "%s: %s\n", label, displayValue(field, valueOf(state, field)))
			if msg, ok := state.Errors[field.Key]; ok {
				if msg == "" {
					msg = invalidFallback
				}
				fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, msg)
			}
		}
	}
	if state.Submitting {
		b.WriteString(r.theme.InfoPrefix + submittingText + "\n")
	}
	for _, n := range options.Notifications {
		line := n.Title
		if n.Description != "" {
			line += ": " + n.Description
		}
		fmt.Fprintf(&b, "[%s] %s\n", n.Severity, line)
	}
	return b.String()
}

// Collect prompts for every visible, enabled field of ctrl and applies each
// answer through ctrl.Change, re-prompting while the field has a violation.
// It returns the controller payload once all fields were answered.
func (r *Renderer) Collect(ctx context.Context, ctrl *form.Controller) (model.Payload, error) {
	if ctrl == nil {
		return nil, ErrNoController
	}
	state := ctrl.Snapshot()
	if len(state.Fields) == 0 {
		return nil, form.ErrNotLoaded
	}
	for _, field := range state.Fields {
		ctrl.Register(field)
		if field.Type == model.FieldTypeHidden {
			continue
		}
		if field.Disabled {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.InfoPrefix, field.Label, displayValue(field, state.Value(field.Key)))); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.collectField(ctx, ctrl, field); err != nil {
			return nil, err
		}
	}
	return ctrl.Payload(), nil
}

func (r *Renderer) collectField(ctx context.Context, ctrl *form.Controller, field model.FieldSchema) error {
	for attempt := 1; ; attempt++ {
		current := ctrl.Snapshot().Value(field.Key)
		answer, err := r.ask(ctx, field, current)
		if err != nil {
			var unavailable optionUnavailableError
			if !errors.As(err, &unavailable) {
				return err
			}
			if infoErr := r.driver.Info(ctx, r.theme.ErrorPrefix+unavailableMessage); infoErr != nil {
				return infoErr
			}
		} else {
			violation, failed, err := ctrl.Change(field.Key, answer)
			if err != nil {
				return err
			}
			if !failed {
				return nil
			}
			if err := r.report(ctx, violation); err != nil {
				return err
			}
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Key)
		}
	}
}

func (r *Renderer) report(ctx context.Context, v rules.Violation) error {
	msg := v.Message
	if msg == "" {
		msg = invalidFallback
	}
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

type optionUnavailableError struct {
	value string
}

func (e optionUnavailableError) Error() string {
	return fmt.Sprintf("tui: option %q is unavailable", e.value)
}

func (r *Renderer) ask(ctx context.Context, field model.FieldSchema, current any) (any, error) {
	message := r.theme.PromptPrefix + field.Label
	if field.Required {
		message += " *"
	}

	switch model.WidgetFor(field.Type) {
	case model.WidgetInput:
		cfg := InputConfig{
			Message: message,
			Default: rules.Stringify(current),
			Help:    field.Placeholder,
		}
		if field.Type == model.FieldTypePassword {
			return r.driver.Password(ctx, cfg)
		}
		return r.driver.Input(ctx, cfg)
	case model.WidgetTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: rules.Stringify(current),
			Help:    field.Placeholder,
		})
	case model.WidgetCheckbox:
		if field.Placeholder != "" {
			message = r.theme.PromptPrefix + field.Placeholder
		}
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current == true,
			Help:    field.Label,
		})
	case model.WidgetSelect, model.WidgetRadio:
		labels := make([]string, len(field.Options))
		defaultIndex := -1
		selected := rules.Stringify(current)
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Disabled {
				labels[i] += unavailableSuffix
			}
			if opt.Value == selected {
				defaultIndex = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         field.Placeholder,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		if opt := field.Options[idx]; opt.Disabled {
			return nil, optionUnavailableError{value: opt.Value}
		}
		return field.Options[idx].Value, nil
	}
	return nil, nil
}

func valueOf(state form.State, field model.FieldSchema) any {
	if v, ok := state.Values[field.Key]; ok {
		return v
	}
	return form.Coerce(field, field.Value)
}

func displayValue(field model.FieldSchema, value any) string {
	switch model.WidgetFor(field.Type) {
	case model.WidgetCheckbox:
		if value == true {
			return "yes"
		}
		return "no"
	case model.WidgetSelect, model.WidgetRadio:
		current := rules.Stringify(value)
		for _, opt := range field.Options {
			if opt.Value == current {
				return opt.Label
			}
		}
		return ""
	case model.WidgetInput:
		if field.Type == model.FieldTypePassword && rules.Stringify(value) != "" {
			return "********"
		}
	}
	return rules.Stringify(value)
}
