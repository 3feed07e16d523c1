package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/EmployeeAdmin/internal/core/ports"
	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	userStorage ports.UserStorage
	hasher      PasswordHasher
	tokens      TokenIssuer
	validate    *validator.Validate
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(
	userStorage ports.UserStorage,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		userStorage: userStorage,
		hasher:      hasher,
		tokens:      tokens,
		validate:    newValidator(),
		logger:      logger,
		now:         time.Now,
	}
}

// Register регистрирует нового администратора. Пароль хранится только в виде bcrypt-хеша.
func (uc *userUseCase) Register(ctx context.Context, username, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)
	if err := validateStruct(uc.validate, credentialsForm{Username: username, Password: password}); err != nil {
		return uuid.Nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("usecase: ошибка хеширования пароля: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return uuid.Nil, domain.ErrDuplicateUsername
		}
		return uuid.Nil, fmt.Errorf("usecase: ошибка при сохранении пользователя %s: %w", username, err)
	}

	uc.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return user.ID, nil
}

// Verify проверяет имя и пароль. Для неизвестного имени сравнение с фиктивным
// хешем все равно выполняется, чтобы время ответа не выдавало существование имени.
func (uc *userUseCase) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		_ = uc.hasher.Compare("", password)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userStorage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = uc.hasher.Compare("", password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("usecase: ошибка при получении пользователя %s: %w", username, err)
	}

	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login проверяет учетные данные и выпускает токен
func (uc *userUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			uc.logger.InfoContext(ctx, "login rejected")
		}
		return "", err
	}

	token, err := uc.tokens.Issue(user.ID.String(), user.Username)
	if err != nil {
		return "", fmt.Errorf("usecase: ошибка выпуска токена: %w", err)
	}

	uc.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return token, nil
}
