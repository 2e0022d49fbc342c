package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formschema/pkg/notify"
)

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter sets the collaborator that receives valid payloads.
func WithSubmitter(s Submitter) Option {
	return func(c *Controller) {
		c.submitter = s
	}
}

// WithNotifier sets the collaborator that displays toasts.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}
