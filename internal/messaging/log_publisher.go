// Package messaging содержит публикаторы событий, не требующие брокера.
package messaging

import (
	"context"
	"log/slog"

	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
)

// LogPublisher пишет события в лог вместо брокера. Используется, когда RabbitMQ не настроен.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishEmployeeEvent(ctx context.Context, event payloads.EmployeeEvent) error {
	p.logger.DebugContext(ctx, "employee event (no broker configured)",
		slog.String("type", event.Type),
		slog.String("employee_id", event.EmployeeID),
		slog.String("unreferenced_image", event.UnreferencedImage()),
	)
	return nil
}
