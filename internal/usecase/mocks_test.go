package usecase_test

import (
	"context"
	"io"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserStorage struct{ mock.Mock }

func (m *mockUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Issue(userID, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

type mockEmployeeStorage struct{ mock.Mock }

func (m *mockEmployeeStorage) NextUniqueID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEmployeeStorage) SaveEmployee(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	args := m.Called(ctx, e)
	if out, ok := args.Get(0).(*domain.Employee); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeStorage) UpdateEmployee(ctx context.Context, id uuid.UUID, patch *domain.Employee, expectedImage *string) (*domain.EmployeeUpdate, error) {
	args := m.Called(ctx, id, patch, expectedImage)
	if out, ok := args.Get(0).(*domain.EmployeeUpdate); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeStorage) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if out, ok := args.Get(0).(*domain.Employee); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeStorage) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if out, ok := args.Get(0).([]domain.Employee); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEmployeeStorage) DeleteEmployee(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if out, ok := args.Get(0).(*domain.Employee); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFileStorage struct{ mock.Mock }

func (m *mockFileStorage) UploadFile(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	// поток вычитывается, как это сделал бы настоящий адаптер
	_, copyErr := io.Copy(io.Discard, r)
	args := m.Called(ctx, key, contentType)
	if copyErr != nil {
		return "", copyErr
	}
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) OpenFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockFileStorage) DeleteFile(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishEmployeeEvent(ctx context.Context, event payloads.EmployeeEvent) error {
	return m.Called(ctx, event).Error(0)
}
