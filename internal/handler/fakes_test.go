package handler_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/google/uuid"
)

type memUserStorage struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserStorage() *memUserStorage {
	return &memUserStorage{users: map[string]domain.User{}}
}

func (s *memUserStorage) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	s.users[user.Username] = *user
	return nil
}

func (s *memUserStorage) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

type memEmployeeStorage struct {
	mu        sync.Mutex
	seq       int64
	employees map[uuid.UUID]domain.Employee
}

func newMemEmployeeStorage() *memEmployeeStorage {
	return &memEmployeeStorage{employees: map[uuid.UUID]domain.Employee{}}
}

func (s *memEmployeeStorage) NextUniqueID(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

func (s *memEmployeeStorage) emailTaken(email string, except uuid.UUID) bool {
	for id, e := range s.employees {
		if id != except && e.Email == email {
			return true
		}
	}
	return false
}

func (s *memEmployeeStorage) SaveEmployee(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	next, _ := s.NextUniqueID(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTaken(e.Email, uuid.Nil) {
		return nil, domain.ErrDuplicateEmail
	}
	saved := *e
	saved.UniqueID = next
	s.employees[saved.ID] = saved
	return &saved, nil
}

func (s *memEmployeeStorage) UpdateEmployee(_ context.Context, id uuid.UUID, patch *domain.Employee, expectedImage *string) (*domain.EmployeeUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	previous := current.ImageRef()
	if expectedImage != nil && *expectedImage != previous {
		return nil, domain.ErrImageMismatch
	}
	if s.emailTaken(patch.Email, id) {
		return nil, domain.ErrDuplicateEmail
	}
	current.Name, current.Email, current.Mobile = patch.Name, patch.Email, patch.Mobile
	current.Designation, current.Gender, current.Course = patch.Designation, patch.Gender, patch.Course
	current.Image = patch.Image
	s.employees[id] = current
	return &domain.EmployeeUpdate{Employee: &current, PreviousImage: previous}, nil
}

func (s *memEmployeeStorage) GetEmployeeByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (s *memEmployeeStorage) ListEmployees(context.Context) ([]domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UniqueID < out[j].UniqueID })
	return out, nil
}

func (s *memEmployeeStorage) DeleteEmployee(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.employees, id)
	return &e, nil
}

type memFile struct {
	data        []byte
	contentType string
}

type memFileStorage struct {
	mu    sync.Mutex
	files map[string]memFile
}

func newMemFileStorage() *memFileStorage {
	return &memFileStorage{files: map[string]memFile{}}
}

func (s *memFileStorage) UploadFile(_ context.Context, key string, r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = memFile{data: data, contentType: contentType}
	return domain.ImageRef(key), nil
}

func (s *memFileStorage) OpenFile(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[key]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(f.data)), f.contentType, nil
}

func (s *memFileStorage) DeleteFile(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }
