package storage

import (
	"context"
	"encoding/json"

	"eatery-frontend/web-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaNotifier publishes user notifications so the browser-facing push
// relay can show them. Messages are keyed by subject to keep one user's
// notifications ordered.
type KafkaNotifier struct {
	Writer MessageWriter
	Logger *zap.Logger
}

func NewKafkaNotifier(writer MessageWriter, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{Writer: writer, Logger: logger}
}

func (n *KafkaNotifier) Notify(ctx context.Context, notification domain.Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		n.Logger.Error("encode notification", zap.String("operation", notification.Operation), zap.Error(err))
		return
	}
	err = n.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.Subject),
		Value: payload,
	})
	if err != nil {
		n.Logger.Error("publish notification",
			zap.String("operation", notification.Operation),
			zap.String("kind", string(notification.Kind)),
			zap.Error(err))
	}
}

// LogNotifier writes notifications to the log. Used when no broker is set.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, notification domain.Notification) {
	n.Logger.Info("notification",
		zap.String("kind", string(notification.Kind)),
		zap.String("operation", notification.Operation),
		zap.String("message", notification.Message),
		zap.String("subject", notification.Subject))
}
