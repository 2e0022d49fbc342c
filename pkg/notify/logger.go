package notify

import (
	"context"

	"go.uber.org/zap"
)

// NewLogger returns a notifier that writes notifications to logger.
// Destructive notifications are logged at warn level.
func NewLogger(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Func(func(_ context.Context, n Notification) error {
		fields := []zap.Field{
			zap.String("id", n.ID),
			zap.String("severity", string(n.Severity)),
			zap.String("description", n.Description),
		}
		if n.Severity == SeverityDestructive {
			logger.Warn(n.Title, fields...)
			return nil
		}
		logger.Info(n.Title, fields...)
		return nil
	})
}
