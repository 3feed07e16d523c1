package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeAdmin/internal/adapter/storage/local"
	"github.com/GoArmGo/EmployeeAdmin/internal/adapter/storage/minio"
	"github.com/GoArmGo/EmployeeAdmin/internal/app"
	"github.com/GoArmGo/EmployeeAdmin/internal/auth"
	"github.com/GoArmGo/EmployeeAdmin/internal/config"
	"github.com/GoArmGo/EmployeeAdmin/internal/core/ports"
	"github.com/GoArmGo/EmployeeAdmin/internal/database/client"
	"github.com/GoArmGo/EmployeeAdmin/internal/database/postgres"
	"github.com/GoArmGo/EmployeeAdmin/internal/database/storage"
	"github.com/GoArmGo/EmployeeAdmin/internal/handler"
	"github.com/GoArmGo/EmployeeAdmin/internal/logger"
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging"
	"github.com/GoArmGo/EmployeeAdmin/internal/rabbitmq"
	"github.com/GoArmGo/EmployeeAdmin/internal/usecase"
	"golang.org/x/sync/semaphore"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var closers []func() error
	fail := func(err error) (*app.App, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, err
	}

	// 2. PostgreSQL: sqlx для сотрудников и миграций, GORM для учетных записей
	dbClient, err := client.NewClient(ctx, cfg, slogger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, dbClient.Close)

	gormClient, err := postgres.NewClient(ctx, cfg, slogger)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, gormClient.Close)

	// 3. Инициализация хранилищ
	employeeStorage := storage.NewEmployeeStorage(dbClient.DB, slogger)
	userStorage := postgres.NewGormUserStorage(gormClient.DB, slogger)

	fileStorage, err := newFileStorage(ctx, cfg, slogger)
	if err != nil {
		return fail(err)
	}

	// 4. События: RabbitMQ, если настроен, иначе только лог
	var (
		publisher ports.EmployeeEventPublisher = messaging.NewLogPublisher(slogger)
		consumer  ports.EmployeeEventConsumer
	)
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() error { rabbitMQClient.Close(); return nil })
		publisher, consumer = rabbitMQClient, rabbitMQClient
	} else {
		slogger.Warn("RABBITMQ_URL is not set, employee events are only logged")
	}

	// 5. Аутентификация
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Expiry: cfg.JWTExpiry,
	})
	if err != nil {
		return fail(err)
	}
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// 6. Инициализация бизнес-логики (usecases)
	userUseCase := usecase.NewUserUseCase(userStorage, hasher, tokens, slogger)
	employeeUseCase := usecase.NewEmployeeUseCase(employeeStorage, fileStorage, publisher, slogger,
		usecase.WithMaxImageSize(cfg.MaxUploadSize))

	// 7. Лимитер параллельных загрузок
	uploadLimiter := semaphore.NewWeighted(int64(cfg.UploadConcurrency))

	// 8. HTTP
	router := handler.NewRouter(handler.RouterConfig{
		Auth:           handler.NewAuthHandler(userUseCase, slogger),
		Employees:      handler.NewEmployeeHandler(employeeUseCase, uploadLimiter, cfg.MaxUploadSize, slogger),
		Images:         handler.NewImageHandler(fileStorage, slogger),
		Health:         handler.NewHealthHandler(dbClient, slogger),
		Tokens:         tokens,
		Logger:         slogger,
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// 9. Сборка итогового приложения
	return app.NewApp(cfg, slogger, router, fileStorage, consumer, closers...), nil
}

// newFileStorage выбирает хранилище изображений по IMAGE_STORAGE
func newFileStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.FileStorage, error) {
	switch cfg.ImageStorage {
	case config.ImageStorageS3:
		return minio.NewMinioClient(ctx, cfg, logger)
	case config.ImageStorageLocal:
		return local.NewStorage(cfg.UploadDir, logger)
	default:
		return nil, fmt.Errorf("неизвестное хранилище изображений: %s", cfg.ImageStorage)
	}
}
