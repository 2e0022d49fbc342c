package server

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/goliatone/go-formschema/pkg/form"
	"github.com/goliatone/go-formschema/pkg/model"
)

// MaxRequestDelay caps the per-request "_delay" override.
const MaxRequestDelay = 10 * time.Second

// Backend is the mock data source behind every surface: it serves a static
// field list and echoes submissions, each after the artificial delay.
type Backend struct {
	fields []model.FieldSchema
	delay  time.Duration
}

var (
	_ form.FieldSource = (*Backend)(nil)
	_ form.Submitter   = (*Backend)(nil)
)

// NewBackend returns a backend serving fields after delay.
func NewBackend(fields []model.FieldSchema, delay time.Duration) *Backend {
	return &Backend{
		fields: slices.Clone(fields),
		delay:  delay,
	}
}

// Fields returns a copy of the field list once the delay elapsed.
func (b *Backend) Fields(ctx context.Context) ([]model.FieldSchema, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return b.Schema(), nil
}

// Submit echoes payload once the delay elapsed. It does not validate.
func (b *Backend) Submit(ctx context.Context, payload model.Payload) (model.Payload, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	return maps.Clone(payload), nil
}

// Schema returns the field list without any delay.
func (b *Backend) Schema() []model.FieldSchema {
	return slices.Clone(b.fields)
}

func (b *Backend) wait(ctx context.Context) error {
	d := b.delay
	if override, ok := delayFrom(ctx); ok {
		d = override
	}
	return sleep(ctx, d)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type delayKey struct{}

// ContextWithDelay returns a context whose backend calls wait d instead of the
// configured delay.
func ContextWithDelay(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, delayKey{}, d)
}

func delayFrom(ctx context.Context) (time.Duration, bool) {
	d, ok := ctx.Value(delayKey{}).(time.Duration)
	return d, ok
}

// requestDelay reads the "_delay" query parameter. Unparseable, negative and
// excessive values are ignored; "0s" disables the delay for the request.
func requestDelay(r *http.Request) (time.Duration, bool) {
	raw := r.URL.Query().Get("_delay")
	if raw == "" {
		return 0, false
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 || d > MaxRequestDelay {
		return 0, false
	}
	return d, true
}
