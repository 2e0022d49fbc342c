// Package notify carries transient user notifications (toasts) from the form
// controller to whatever surface displays them.
package notify

import (
	"context"
	"errors"
	"html"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Severity distinguishes informational notices from failures.
type Severity string

const (
	SeverityNormal      Severity = "normal"
	SeverityDestructive Severity = "destructive"
)

// Notification is a single toast.
type Notification struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
}

// Notifier displays notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, n Notification) error

// Notify calls f.
func (f Func) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// PlainText strips markup from text, unescapes entities and trims the
// result. Markup-only input yields "".
func PlainText(text string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(text)))
}

// New builds a notification with a fresh ID. Title and description are
// stripped of markup since descriptions often carry server-provided text.
func New(severity Severity, title, description string) Notification {
	if severity == "" {
		severity = SeverityNormal
	}
	return Notification{
		ID:          uuid.NewString(),
		Severity:    severity,
		Title:       PlainText(title),
		Description: PlainText(description),
	}
}

// Normal is shorthand for New(SeverityNormal, ...).
func Normal(title, description string) Notification {
	return New(SeverityNormal, title, description)
}

// Destructive is shorthand for New(SeverityDestructive, ...).
func Destructive(title, description string) Notification {
	return New(SeverityDestructive, title, description)
}

// Multi fans a notification out to every notifier and joins their errors.
func Multi(notifiers ...Notifier) Notifier {
	list := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			list = append(list, n)
		}
	}
	return Func(func(ctx context.Context, n Notification) error {
		var errs []error
		for _, target := range list {
			if err := target.Notify(ctx, n); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) error { return nil })
