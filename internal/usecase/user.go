package usecase

import (
	"context"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/google/uuid"
)

// PasswordHasher хеширует и сверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare возвращает ошибку, если пароль не подходит к хешу.
	// При пустом хеше сравнение все равно выполняется.
	Compare(hash, password string) error
}

// TokenIssuer выпускает bearer-токены
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// UserUseCase определяет регистрацию и вход администраторов
type UserUseCase interface {
	// Register создает пользователя; domain.ErrDuplicateUsername, если имя занято
	Register(ctx context.Context, username, password string) (uuid.UUID, error)

	// Verify проверяет учетные данные; domain.ErrInvalidCredentials при любой неудаче
	Verify(ctx context.Context, username, password string) (*domain.User, error)

	// Login проверяет учетные данные и выпускает токен
	Login(ctx context.Context, username, password string) (string, error)
}
