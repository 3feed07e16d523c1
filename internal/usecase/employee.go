package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/google/uuid"
)

// EmployeeInput — поля сотрудника, пришедшие от клиента
type EmployeeInput struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Mobile      string      `json:"mobile"`
	Designation string      `json:"designation"`
	Gender      string      `json:"gender"`
	Course      CourseInput `json:"course"`

	// ExistingImage — текущая ссылка на изображение, которую клиент
	// передает обратно при обновлении без нового файла
	ExistingImage string `json:"existingImage"`
}

// ImageUpload — загружаемый файл изображения
type ImageUpload struct {
	Reader   io.Reader
	Filename string
	Size     int64 // -1, если неизвестен
}

// EmployeeUseCase определяет интерфейс для бизнес-логики работы с сотрудниками
type EmployeeUseCase interface {
	// Create валидирует поля, сохраняет изображение (если есть) и создает запись
	Create(ctx context.Context, in EmployeeInput, image *ImageUpload) (*domain.Employee, error)

	// Update заменяет все изменяемые поля. Без нового файла сохраняется
	// ссылка из in.ExistingImage.
	Update(ctx context.Context, id uuid.UUID, in EmployeeInput, image *ImageUpload) (*domain.Employee, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
