package usecase_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/GoArmGo/EmployeeAdmin/internal/logger"
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
	"github.com/GoArmGo/EmployeeAdmin/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// guardedEmployeeStorage хранит одну запись и проверяет expectedImage
// при записи так же, как это делает UPDATE в postgres
type guardedEmployeeStorage struct {
	mockEmployeeStorage

	mu       sync.Mutex
	employee domain.Employee
	afterGet func()
}

func (s *guardedEmployeeStorage) GetEmployeeByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	s.mu.Lock()
	if id != s.employee.ID {
		s.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	e := s.employee
	hook := s.afterGet
	s.afterGet = nil
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return &e, nil
}

func (s *guardedEmployeeStorage) UpdateEmployee(_ context.Context, id uuid.UUID, patch *domain.Employee, expectedImage *string) (*domain.EmployeeUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.employee.ID {
		return nil, domain.ErrNotFound
	}
	previous := s.employee.ImageRef()
	if expectedImage != nil && *expectedImage != previous {
		return nil, domain.ErrImageMismatch
	}
	s.employee.Name, s.employee.Email, s.employee.Mobile = patch.Name, patch.Email, patch.Mobile
	s.employee.Designation, s.employee.Gender, s.employee.Course = patch.Designation, patch.Gender, patch.Course
	s.employee.Image = patch.Image
	updated := s.employee
	return &domain.EmployeeUpdate{Employee: &updated, PreviousImage: previous}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []payloads.EmployeeEvent
}

func (p *recordingPublisher) PublishEmployeeEvent(_ context.Context, event payloads.EmployeeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) unreferenced() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		if ref := e.UnreferencedImage(); ref != "" {
			out = append(out, ref)
		}
	}
	return out
}

func TestEmployeeUseCase_Update_StaleExistingImageLosesToConcurrentUpload(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &guardedEmployeeStorage{employee: domain.Employee{ID: id, UniqueID: 1, Image: ptr("uploads/x.png")}}
	files := new(mockFileStorage)
	files.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("uploads/y.png", nil).Once()
	publisher := &recordingPublisher{}
	uc := usecase.NewEmployeeUseCase(store, files, publisher, logger.Discard())

	// первое обновление загружает новый файл и успевает записать его
	// между чтением и записью второго
	var uploadErr error
	store.afterGet = func() {
		img := &usecase.ImageUpload{Reader: bytes.NewReader(pngHeader), Size: int64(len(pngHeader))}
		_, uploadErr = uc.Update(ctx, id, bobInput(), img)
	}

	in := bobInput()
	in.ExistingImage = "uploads/x.png"
	_, err := uc.Update(ctx, id, in, nil)

	require.NoError(t, uploadErr)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "existingImage")

	final := store.employee.ImageRef()
	assert.Equal(t, "uploads/y.png", final)
	assert.Equal(t, []string{"uploads/x.png"}, publisher.unreferenced())
	assert.NotContains(t, publisher.unreferenced(), final)
}

func TestEmployeeUseCase_Update_ExistingImageWinsBeforeConcurrentUpload(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &guardedEmployeeStorage{employee: domain.Employee{ID: id, UniqueID: 1, Image: ptr("uploads/x.png")}}
	files := new(mockFileStorage)
	files.On("UploadFile", mock.Anything, mock.Anything, "image/png").Return("uploads/y.png", nil).Once()
	publisher := &recordingPublisher{}
	uc := usecase.NewEmployeeUseCase(store, files, publisher, logger.Discard())

	in := bobInput()
	in.ExistingImage = "uploads/x.png"
	_, err := uc.Update(ctx, id, in, nil)
	require.NoError(t, err)

	img := &usecase.ImageUpload{Reader: bytes.NewReader(pngHeader), Size: int64(len(pngHeader))}
	_, err = uc.Update(ctx, id, bobInput(), img)
	require.NoError(t, err)

	assert.Equal(t, "uploads/y.png", store.employee.ImageRef())
	assert.Equal(t, []string{"uploads/x.png"}, publisher.unreferenced())
}
