package ports

import (
	"context"
	"io"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей
type UserStorage interface {
	// CreateUser сохраняет пользователя; domain.ErrDuplicateUsername при повторе имени
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByUsername возвращает domain.ErrNotFound, если пользователя нет
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// EmployeeStorage определяет методы для взаимодействия с хранилищем сотрудников.
// Уникальность email и выдачу uniqueId обеспечивает само хранилище.
type EmployeeStorage interface {
	NextUniqueID(ctx context.Context) (int64, error)
	SaveEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	// UpdateEmployee атомарно заменяет поля записи. Если expectedImage не nil,
	// запись обновляется только при совпадении текущего изображения с ним,
	// иначе domain.ErrImageMismatch.
	UpdateEmployee(ctx context.Context, id uuid.UUID, patch *domain.Employee, expectedImage *string) (*domain.EmployeeUpdate, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (диск, MinIO)
type FileStorage interface {
	// UploadFile сохраняет файл под ключом key и возвращает относительный путь-ссылку.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// OpenFile открывает файл по ключу; domain.ErrNotFound, если файла нет.
	OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error)

	// DeleteFile удаляет файл по ключу. Отсутствие файла не ошибка.
	DeleteFile(ctx context.Context, key string) error
}
