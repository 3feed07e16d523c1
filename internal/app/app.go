package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/EmployeeAdmin/internal/config"
	"github.com/GoArmGo/EmployeeAdmin/internal/core/ports"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config   *config.Config
	logger   *slog.Logger
	router   http.Handler
	files    ports.FileStorage
	consumer ports.EmployeeEventConsumer
	closers  []func() error
}

// NewApp собирает приложение. consumer может быть nil, если RabbitMQ не настроен.
// closers вызываются при завершении в обратном порядке.
func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	router http.Handler,
	files ports.FileStorage,
	consumer ports.EmployeeEventConsumer,
	closers ...func() error,
) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		router:   router,
		files:    files,
		consumer: consumer,
		closers:  closers,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до SIGINT/SIGTERM
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = runServer(ctx, a.Config, a.router, a.logger)
	case ModeWorker:
		err = runWorker(ctx, a.consumer, a.files, a.logger)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("ошибка при закрытии ресурсов: %w", errors.Join(errs...))
	}
	a.logger.Info("resources released")
	return nil
}
