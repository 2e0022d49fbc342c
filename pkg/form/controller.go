package form

import (
	"context"
	"fmt"
	"maps"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/model"
	"github.com/goliatone/go-formschema/pkg/notify"
	"github.com/goliatone/go-formschema/pkg/rules"
)

// Toast copy shown by the controller.
const (
	TitleFailure        = "Uh oh! Something went wrong."
	TitleSubmitted      = "Form Submitted"
	FallbackLoadError   = "Error on GET form fields"
	FallbackSubmitError = "Error on form submit"
)

// Messages of the input checks when the schema configures none.
const (
	MessageNotANumber        = "Please enter a valid number"
	MessageOptionUnavailable = "That option is unavailable"
)

// FieldSource provides the field list, typically the GET fields endpoint.
type FieldSource interface {
	Fields(ctx context.Context) ([]model.FieldSchema, error)
}

// Submitter receives a valid payload, typically the submit endpoint. The
// returned payload is the server echo.
type Submitter interface {
	Submit(ctx context.Context, payload model.Payload) (model.Payload, error)
}

// FieldSourceFunc adapts a function to FieldSource.
type FieldSourceFunc func(ctx context.Context) ([]model.FieldSchema, error)

// Fields calls f.
func (f FieldSourceFunc) Fields(ctx context.Context) ([]model.FieldSchema, error) {
	return f(ctx)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, payload model.Payload) (model.Payload, error)

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, payload model.Payload) (model.Payload, error) {
	return f(ctx, payload)
}

// Controller owns the FormState of one form instance. Handlers are serialized;
// the lock is released while the Submitter runs and the submitting flag keeps
// a second Submit out.
type Controller struct {
	mu sync.Mutex

	fields []model.FieldSchema
	index  map[string]int
	rules  map[string]rules.RuleSet
	values map[string]any
	errors map[string]string
	// rejected holds the input-check violation of the last Change per key.
	rejected map[string]rules.Violation

	phase      Phase
	loading    bool
	submitting bool

	submitter Submitter
	notifier  notify.Notifier
	logger    *zap.Logger
}

// New constructs an idle controller.
func New(options ...Option) *Controller {
	c := &Controller{
		index:    make(map[string]int),
		rules:    make(map[string]rules.RuleSet),
		values:   make(map[string]any),
		errors:   make(map[string]string),
		rejected: make(map[string]rules.Violation),
		phase:    PhaseIdle,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BeginLoading marks the form as fetching its field list. Renderers show a
// loading indicator instead of fields while the flag is set.
func (c *Controller) BeginLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.phase = PhaseLoading
}

// LoadFields fetches the field list from src and loads it. Fetch failures
// are reported through the notifier and returned.
func (c *Controller) LoadFields(ctx context.Context, src FieldSource) error {
	c.BeginLoading()

	fields, err := src.Fields(ctx)
	if err != nil {
		c.mu.Lock()
		c.loading = false
		c.phase = PhaseIdle
		c.mu.Unlock()

		c.logger.Warn("load fields failed", zap.Error(err))
		c.notify(ctx, notify.Destructive(TitleFailure, messageOr(err, FallbackLoadError)))
		return fmt.Errorf("form: load fields: %w", err)
	}

	c.Load(fields)
	return nil
}

// Load replaces the field list, compiles rule sets and seeds default values.
// Previous values and errors are discarded.
func (c *Controller) Load(fields []model.FieldSchema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fields = nil
	c.index = make(map[string]int, len(fields))
	c.rules = make(map[string]rules.RuleSet, len(fields))
	c.values = make(map[string]any, len(fields))
	c.errors = make(map[string]string)
	c.rejected = make(map[string]rules.Violation)

	for _, field := range fields {
		c.register(field)
	}
	c.loading = false
	c.phase = PhaseLoaded
	c.logger.Debug("fields loaded", zap.Int("count", len(c.fields)))
}

// Register adds field to the state the first time it is seen and reports
// whether it did. Renderers call it as they emit widgets.
func (c *Controller) Register(field model.FieldSchema) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register(field)
}

func (c *Controller) register(field model.FieldSchema) bool {
	if _, exists := c.index[field.Key]; exists {
		return false
	}
	c.index[field.Key] = len(c.fields)
	c.fields = append(c.fields, field)
	c.rules[field.Key] = rules.Compile(field)
	c.values[field.Key] = Coerce(field, field.Value)
	return true
}

// Change stores value for key and re-runs that field's rules. Input the field
// cannot hold (text in a number field, a value that is not an enabled option)
// is stored as empty and, when no schema rule fails first, reported as a
// RuleNumber or RuleOption violation. It returns the field's resulting
// violation, if any.
func (c *Controller) Change(key string, value any) (rules.Violation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.fields) == 0 {
		return rules.Violation{}, false, ErrNotLoaded
	}
	idx, ok := c.index[key]
	if !ok {
		return rules.Violation{}, false, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	field := c.fields[idx]
	coerced := Coerce(field, value)
	c.values[key] = coerced
	if v, rejected := inputViolation(field, value, coerced); rejected {
		c.rejected[key] = v
	} else {
		delete(c.rejected, key)
	}
	v, failed := c.validate(key, coerced)
	return v, failed, nil
}

// Validate re-runs every field's rules and returns the number of failing
// fields.
func (c *Controller) Validate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateAll()
}

func (c *Controller) validateAll() int {
	failing := 0
	for _, field := range c.fields {
		if _, failed := c.validate(field.Key, c.values[field.Key]); failed {
			failing++
		}
	}
	return failing
}

func (c *Controller) validate(key string, value any) (rules.Violation, bool) {
	v, failed := c.rules[key].Check(value)
	if !failed {
		v, failed = c.rejected[key]
	}
	if failed {
		c.errors[key] = v.Message
	} else {
		delete(c.errors, key)
	}
	return v, failed
}

// Submit validates every field and, when all pass, hands the payload to the
// Submitter. Success and failure are both reported through the notifier;
// values and errors are left untouched either way.
func (c *Controller) Submit(ctx context.Context) (model.Payload, error) {
	c.mu.Lock()
	if len(c.fields) == 0 {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if c.submitter == nil {
		c.mu.Unlock()
		return nil, ErrNoSubmitter
	}
	if failing := c.validateAll(); failing > 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %d field(s)", ErrInvalid, failing)
	}

	payload := c.payload()
	c.submitting = true
	c.phase = PhaseSubmitting
	submitter := c.submitter
	c.mu.Unlock()

	echo, err := submitter.Submit(ctx, payload)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.phase = PhaseSubmitFailed
	} else {
		c.phase = PhaseSubmitted
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("submit failed", zap.Error(err))
		c.notify(ctx, notify.Destructive(TitleFailure, messageOr(err, FallbackSubmitError)))
		return nil, fmt.Errorf("form: submit: %w", err)
	}

	c.logger.Info("form submitted", zap.Int("fields", len(payload)))
	c.notify(ctx, notify.Normal(TitleSubmitted, ""))
	return echo, nil
}

func (c *Controller) payload() model.Payload {
	out := make(model.Payload, len(c.fields))
	for _, field := range c.fields {
		out[field.Key] = c.values[field.Key]
	}
	return out
}

// Payload returns the current values keyed by field.
func (c *Controller) Payload() model.Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload()
}

// Snapshot returns a copy of the current FormState.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := State{
		Phase:      c.phase,
		Fields:     c.fields,
		Values:     c.values,
		Errors:     c.errors,
		Loading:    c.loading,
		Submitting: c.submitting,
	}
	return state.clone()
}

// Field returns the loaded schema for key.
func (c *Controller) Field(key string) (model.FieldSchema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.index[key]
	if !ok {
		return model.FieldSchema{}, false
	}
	return c.fields[idx], true
}

// Rules returns a copy of the compiled rule sets.
func (c *Controller) Rules() map[string]rules.RuleSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.rules)
}

func (c *Controller) notify(ctx context.Context, n notify.Notification) {
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("notify failed", zap.String("title", n.Title), zap.Error(err))
	}
}

// messageOr returns the plain-text server message carried by err, or
// fallback when there is none left after stripping markup.
func messageOr(err error, fallback string) string {
	if msg := notify.PlainText(userMessage(err)); msg != "" {
		return msg
	}
	return fallback
}

// Coerce converts a raw widget value into the payload type for field:
// float64 for numbers, bool for checkboxes and string otherwise. Number
// input that is empty or not a finite number becomes nil, the way a browser
// number input reports it. A select or radio value that is not an enabled
// option becomes "".
func Coerce(field model.FieldSchema, value any) any {
	switch field.Type {
	case model.FieldTypeNumber:
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		n, ok := rules.Number(value)
		if !ok || math.IsInf(n, 0) || math.IsNaN(n) {
			return nil
		}
		return n
	case model.FieldTypeSelect, model.FieldTypeRadio:
		selected := rules.Stringify(value)
		for _, opt := range field.Options {
			if opt.Value == selected && !opt.Disabled {
				return selected
			}
		}
		return ""
	case model.FieldTypeCheckbox:
		switch v := value.(type) {
		case bool:
			return v
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "on", "true", "1", "yes":
				return true
			}
			return false
		default:
			return false
		}
	default:
		return rules.Stringify(value)
	}
}

// inputViolation reports raw input that Coerce had to drop. Blank input is
// left to the required rule.
func inputViolation(field model.FieldSchema, raw, coerced any) (rules.Violation, bool) {
	if s, ok := raw.(string); raw == nil || (ok && strings.TrimSpace(s) == "") {
		return rules.Violation{}, false
	}
	switch {
	case field.Type == model.FieldTypeNumber && coerced == nil:
		return rules.Violation{Kind: model.RuleNumber, Message: messageFor(field, model.RuleNumber, MessageNotANumber)}, true
	case field.Type.RequiresOptions() && coerced == "":
		return rules.Violation{Kind: model.RuleOption, Message: messageFor(field, model.RuleOption, MessageOptionUnavailable)}, true
	}
	return rules.Violation{}, false
}

func messageFor(field model.FieldSchema, kind model.RuleKind, fallback string) string {
	if msg := field.Message(kind); msg != "" {
		return msg
	}
	return fallback
}

// IsBusy reports whether a submission is outstanding.
func (c *Controller) IsBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}
