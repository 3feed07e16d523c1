package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeAdmin/internal/core/ports"
	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
)

// runWorker потребляет события сотрудников и удаляет изображения,
// на которые больше нет ссылок
func runWorker(
	ctx context.Context,
	consumer ports.EmployeeEventConsumer,
	files ports.FileStorage,
	logger *slog.Logger,
) error {
	if consumer == nil {
		return errors.New("режим worker требует RABBITMQ_URL")
	}

	if err := consumer.StartConsumingEmployeeEvents(ctx, imageCleanupHandler(files, logger)); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	logger.Info("worker started, waiting for employee events")
	<-ctx.Done()
	logger.Info("worker stopped")
	return nil
}

// imageCleanupHandler удаляет файл, освободившийся после события
func imageCleanupHandler(files ports.FileStorage, logger *slog.Logger) func(context.Context, payloads.EmployeeEvent) error {
	return func(ctx context.Context, event payloads.EmployeeEvent) error {
		ref := event.UnreferencedImage()
		if ref == "" {
			return nil
		}

		key, ok := domain.ImageKey(ref)
		if !ok {
			logger.Warn("skipping foreign image reference", "type", event.Type, "image", ref)
			return nil
		}

		if err := files.DeleteFile(ctx, key); err != nil {
			return fmt.Errorf("не удалось удалить изображение %s: %w", key, err)
		}

		logger.Info("unreferenced image removed",
			"type", event.Type,
			"employee_id", event.EmployeeID,
			"key", key,
		)
		return nil
	}
}
