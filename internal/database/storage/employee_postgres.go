package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation       = "23505"
	uniqueIDConstraint    = "idx_employees_unique_id"
	employeeColumns       = `id, unique_id, name, email, mobile, designation, gender, course, image, created_date`
	nextUniqueIDStatement = `SELECT nextval('employees_unique_id_seq')`

	updatedEmployeeColumns  = `e.id, e.unique_id, e.name, e.email, e.mobile, e.designation, e.gender, e.course, e.image, e.created_date, prev.image AS previous_image`
	employeeExistsStatement = `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`
)

// EmployeeStorage реализует интерфейс ports.EmployeeStorage поверх sqlx
type EmployeeStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewEmployeeStorage(db *sqlx.DB, logger *slog.Logger) *EmployeeStorage {
	return &EmployeeStorage{db: db, logger: logger}
}

// NextUniqueID выдает следующее значение последовательности uniqueId.
// Значение не переиспользуется, даже если вставка не удалась.
func (s *EmployeeStorage) NextUniqueID(ctx context.Context) (int64, error) {
	var next int64
	if err := s.db.GetContext(ctx, &next, nextUniqueIDStatement); err != nil {
		s.logger.Error("failed to allocate unique id", "error", err)
		return 0, fmt.Errorf("ошибка при получении uniqueId: %w", err)
	}
	return next, nil
}

// SaveEmployee сохраняет нового сотрудника и возвращает запись,
// как ее сохранила бд (uniqueId, дата создания)
func (s *EmployeeStorage) SaveEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	start := time.Now()

	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	if employee.UniqueID == 0 {
		next, err := s.NextUniqueID(ctx)
		if err != nil {
			return nil, err
		}
		employee.UniqueID = next
	}

	query := `
	INSERT INTO employees (id, unique_id, name, email, mobile, designation, gender, course, image)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + employeeColumns

	var saved domain.Employee
	err := s.db.GetContext(ctx, &saved, query,
		employee.ID, employee.UniqueID, employee.Name, employee.Email, employee.Mobile,
		employee.Designation, employee.Gender, employee.Course, employee.Image,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			s.logger.Warn("employee email already exists", "unique_id", employee.UniqueID)
			return nil, mapped
		}
		s.logger.Error("failed to save employee", "id", employee.ID, "error", err)
		return nil, fmt.Errorf("ошибка при сохранении сотрудника: %w", err)
	}

	s.logger.Info("employee saved successfully",
		"id", saved.ID,
		"unique_id", saved.UniqueID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &saved, nil
}

// updatedEmployeeRow — строка RETURNING обновления вместе с прежним изображением
type updatedEmployeeRow struct {
	domain.Employee
	PreviousImage *string `db:"previous_image"`
}

// UpdateEmployee заменяет все изменяемые поля одной командой UPDATE.
// Прежнее изображение читается под блокировкой строки в той же команде,
// условие expectedImage проверяется там же.
func (s *EmployeeStorage) UpdateEmployee(ctx context.Context, id uuid.UUID, patch *domain.Employee, expectedImage *string) (*domain.EmployeeUpdate, error) {
	start := time.Now()

	query := `
	UPDATE employees AS e
	SET name = $2, email = $3, mobile = $4, designation = $5, gender = $6, course = $7, image = $8
	FROM (SELECT id, image FROM employees WHERE id = $1 FOR UPDATE) AS prev
	WHERE e.id = prev.id AND ($9::text IS NULL OR prev.image = $9::text)
	RETURNING ` + updatedEmployeeColumns

	var row updatedEmployeeRow
	err := s.db.GetContext(ctx, &row, query,
		id, patch.Name, patch.Email, patch.Mobile, patch.Designation, patch.Gender, patch.Course, patch.Image,
		expectedImage,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.explainMissedUpdate(ctx, id, expectedImage)
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			s.logger.Warn("employee email already exists", "id", id)
			return nil, mapped
		}
		s.logger.Error("failed to update employee", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при обновлении сотрудника: %w", err)
	}

	s.logger.Info("employee updated successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	update := &domain.EmployeeUpdate{Employee: &row.Employee}
	if row.PreviousImage != nil {
		update.PreviousImage = *row.PreviousImage
	}
	return update, nil
}

// explainMissedUpdate различает отсутствие записи и несовпадение изображения,
// когда UPDATE не затронул ни одной строки
func (s *EmployeeStorage) explainMissedUpdate(ctx context.Context, id uuid.UUID, expectedImage *string) error {
	if expectedImage == nil {
		s.logger.Warn("employee not found for update", "id", id)
		return domain.ErrNotFound
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, employeeExistsStatement, id); err != nil {
		s.logger.Error("failed to check employee existence", "id", id, "error", err)
		return fmt.Errorf("ошибка при проверке сотрудника: %w", err)
	}
	if !exists {
		s.logger.Warn("employee not found for update", "id", id)
		return domain.ErrNotFound
	}

	s.logger.Warn("employee image changed concurrently", "id", id)
	return domain.ErrImageMismatch
}

// GetEmployeeByID получает сотрудника по ID
func (s *EmployeeStorage) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	start := time.Now()

	var employee domain.Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 LIMIT 1`

	err := s.db.GetContext(ctx, &employee, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("employee not found by id", "id", id)
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to get employee by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении сотрудника по ID: %w", err)
	}

	s.logger.Debug("employee retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &employee, nil
}

// ListEmployees возвращает всех сотрудников в порядке uniqueId
func (s *EmployeeStorage) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	start := time.Now()

	employees := []domain.Employee{}
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY unique_id`

	if err := s.db.SelectContext(ctx, &employees, query); err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, fmt.Errorf("ошибка при получении списка сотрудников: %w", err)
	}

	s.logger.Debug("employees listed",
		"count", len(employees),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return employees, nil
}

// DeleteEmployee удаляет сотрудника и возвращает удаленную запись
func (s *EmployeeStorage) DeleteEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	start := time.Now()

	var removed domain.Employee
	query := `DELETE FROM employees WHERE id = $1 RETURNING ` + employeeColumns

	err := s.db.GetContext(ctx, &removed, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("employee not found for delete", "id", id)
			return nil, domain.ErrNotFound
		}
		s.logger.Error("failed to delete employee", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при удалении сотрудника: %w", err)
	}

	s.logger.Info("employee deleted successfully",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &removed, nil
}

// mapUniqueViolation переводит нарушение уникального индекса email в domain.ErrDuplicateEmail
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return nil
	}
	if pqErr.Constraint == uniqueIDConstraint {
		return fmt.Errorf("uniqueId уже занят: %w", err)
	}
	return domain.ErrDuplicateEmail
}
