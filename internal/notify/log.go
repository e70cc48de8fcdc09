package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the operational log. Used when no
// broker is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info("notification",
		zap.String("audience", string(msg.Audience)),
		zap.String("user_id", msg.UserID),
		zap.String("event", msg.Event),
		zap.String("body", msg.Body),
		zap.Any("context", msg.Context),
	)
	return nil
}
