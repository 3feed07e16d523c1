package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"gorm.io/gorm"
)

// GormUserStorage реализует интерфейс ports.UserStorage с использованием GORM
type GormUserStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUserStorage создает новый экземпляр GormUserStorage
func NewGormUserStorage(db *gorm.DB, logger *slog.Logger) *GormUserStorage {
	return &GormUserStorage{db: db, logger: logger}
}

// CreateUser сохраняет пользователя. Повтор имени определяет уникальный индекс.
func (s *GormUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			s.logger.Warn("username already registered", "username", user.Username)
			return domain.ErrDuplicateUsername
		}
		s.logger.Error("failed to create user", "error", result.Error)
		return fmt.Errorf("ошибка при создании пользователя с GORM: %w", result.Error)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetUserByUsername ищет пользователя по имени
func (s *GormUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	result := s.db.WithContext(ctx).Where("username = ?", username).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get user by username", "error", result.Error)
		return nil, fmt.Errorf("ошибка при поиске пользователя с GORM: %w", result.Error)
	}
	return &user, nil
}
