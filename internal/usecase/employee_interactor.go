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
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// employeeUseCase implements EmployeeUseCase
type employeeUseCase struct {
	employeeStorage ports.EmployeeStorage
	fileStorage     ports.FileStorage
	publisher       ports.EmployeeEventPublisher
	validate        *validator.Validate
	logger          *slog.Logger
	maxImageSize    int64
	now             func() time.Time
}

// EmployeeOption настраивает employeeUseCase
type EmployeeOption func(*employeeUseCase)

// WithMaxImageSize задает лимит размера загружаемого изображения
func WithMaxImageSize(n int64) EmployeeOption {
	return func(uc *employeeUseCase) {
		if n > 0 {
			uc.maxImageSize = n
		}
	}
}

// WithEmployeeClock подменяет часы для меток времени событий
func WithEmployeeClock(now func() time.Time) EmployeeOption {
	return func(uc *employeeUseCase) { uc.now = now }
}

// NewEmployeeUseCase создает новый экземпляр EmployeeUseCase
func NewEmployeeUseCase(
	employeeStorage ports.EmployeeStorage,
	fileStorage ports.FileStorage,
	publisher ports.EmployeeEventPublisher,
	logger *slog.Logger,
	opts ...EmployeeOption,
) EmployeeUseCase {
	uc := &employeeUseCase{
		employeeStorage: employeeStorage,
		fileStorage:     fileStorage,
		publisher:       publisher,
		validate:        newValidator(),
		logger:          logger,
		maxImageSize:    DefaultMaxImageSize,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// toEmployee нормализует и валидирует вход
func (uc *employeeUseCase) toEmployee(in EmployeeInput) (*domain.Employee, error) {
	courses := NormalizeCourses(in.Course)
	form := employeeForm{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Mobile:      strings.TrimSpace(in.Mobile),
		Designation: strings.TrimSpace(in.Designation),
		Gender:      strings.TrimSpace(in.Gender),
		Course:      courses,
	}
	if err := validateStruct(uc.validate, form); err != nil {
		return nil, err
	}
	return &domain.Employee{
		Name:        form.Name,
		Email:       form.Email,
		Mobile:      form.Mobile,
		Designation: form.Designation,
		Gender:      form.Gender,
		Course:      courses,
	}, nil
}

// Create валидирует поля, сохраняет изображение и создает запись.
// uniqueId и дату создания назначает хранилище.
func (uc *employeeUseCase) Create(ctx context.Context, in EmployeeInput, image *ImageUpload) (*domain.Employee, error) {
	employee, err := uc.toEmployee(in)
	if err != nil {
		return nil, err
	}

	var stored string
	if image != nil {
		stored, err = uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		employee.Image = &stored
	}

	employee.ID = uuid.New()
	saved, err := uc.employeeStorage.SaveEmployee(ctx, employee)
	if err != nil {
		uc.discardImage(ctx, stored)
		return nil, fmt.Errorf("usecase: ошибка при сохранении сотрудника: %w", err)
	}

	uc.logger.InfoContext(ctx, "employee created",
		slog.String("employee_id", saved.ID.String()),
		slog.Int64("unique_id", saved.UniqueID),
	)
	uc.publish(ctx, payloads.EmployeeEvent{
		Type:       payloads.EventEmployeeCreated,
		EmployeeID: saved.ID.String(),
		UniqueID:   saved.UniqueID,
		Image:      saved.ImageRef(),
	})
	return saved, nil
}

// Update заменяет изменяемые поля записи. Новый файл заменяет изображение,
// иначе сохраняется ссылка, переданная клиентом в ExistingImage; без обоих
// изображение снимается. ExistingImage проверяется при самой записи, так что
// параллельное обновление не оставит запись на удаленном файле.
func (uc *employeeUseCase) Update(ctx context.Context, id uuid.UUID, in EmployeeInput, image *ImageUpload) (*domain.Employee, error) {
	if _, err := uc.employeeStorage.GetEmployeeByID(ctx, id); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении сотрудника %s: %w", id, err)
	}

	patch, err := uc.toEmployee(in)
	if err != nil {
		return nil, err
	}

	var (
		stored   string
		expected *string
	)
	if image != nil {
		stored, err = uc.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.Image = &stored
	} else if ref := strings.TrimSpace(in.ExistingImage); ref != "" {
		patch.Image = &ref
		expected = &ref
	}

	result, err := uc.employeeStorage.UpdateEmployee(ctx, id, patch, expected)
	if err != nil {
		uc.discardImage(ctx, stored)
		if errors.Is(err, domain.ErrImageMismatch) {
			return nil, domain.NewValidationError("existingImage", "Image does not belong to this employee")
		}
		return nil, fmt.Errorf("usecase: ошибка при обновлении сотрудника %s: %w", id, err)
	}
	updated := result.Employee

	uc.logger.InfoContext(ctx, "employee updated", slog.String("employee_id", id.String()))
	uc.publish(ctx, payloads.EmployeeEvent{
		Type:            payloads.EventEmployeeUpdated,
		EmployeeID:      updated.ID.String(),
		UniqueID:        updated.UniqueID,
		Image:           updated.ImageRef(),
		SupersededImage: result.SupersededImage(),
	})
	return updated, nil
}

// Get возвращает сотрудника по ID
func (uc *employeeUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	employee, err := uc.employeeStorage.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении сотрудника %s: %w", id, err)
	}
	return employee, nil
}

// List возвращает всех сотрудников
func (uc *employeeUseCase) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := uc.employeeStorage.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка сотрудников: %w", err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

// Delete удаляет запись; изображение удалит воркер по событию
func (uc *employeeUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := uc.employeeStorage.DeleteEmployee(ctx, id)
	if err != nil {
		return fmt.Errorf("usecase: ошибка при удалении сотрудника %s: %w", id, err)
	}

	uc.logger.InfoContext(ctx, "employee deleted", slog.String("employee_id", id.String()))
	uc.publish(ctx, payloads.EmployeeEvent{
		Type:       payloads.EventEmployeeDeleted,
		EmployeeID: removed.ID.String(),
		UniqueID:   removed.UniqueID,
		Image:      removed.ImageRef(),
	})
	return nil
}

// discardImage удаляет файл, сохраненный перед неудачной записью.
// Если удалить не вышло, файл передается воркеру событием image.discarded.
func (uc *employeeUseCase) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)

	key, ok := domain.ImageKey(ref)
	if ok {
		err := uc.fileStorage.DeleteFile(ctx, key)
		if err == nil {
			return
		}
		uc.logger.WarnContext(ctx, "failed to delete discarded image",
			slog.String("image", ref), slog.Any("error", err))
	}
	uc.publish(ctx, payloads.EmployeeEvent{Type: payloads.EventImageDiscarded, Image: ref})
}

// publish отправляет событие; ошибка публикации запрос не ломает
func (uc *employeeUseCase) publish(ctx context.Context, event payloads.EmployeeEvent) {
	event.OccurredAt = uc.now().UTC()
	if err := uc.publisher.PublishEmployeeEvent(context.WithoutCancel(ctx), event); err != nil {
		uc.logger.WarnContext(ctx, "failed to publish employee event",
			slog.String("type", event.Type),
			slog.String("employee_id", event.EmployeeID),
			slog.Any("error", err),
		)
	}
}
