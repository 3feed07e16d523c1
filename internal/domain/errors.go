package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound — запись не найдена
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername — пользователь с таким именем уже зарегистрирован
	ErrDuplicateUsername = errors.New("username is already registered")

	// ErrDuplicateEmail — сотрудник с таким email уже существует
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrInvalidCredentials — неверное имя пользователя или пароль.
	// Сообщение одно и то же для обоих случаев.
	ErrInvalidCredentials = errors.New("wrong username or password")

	// ErrUnauthenticated — отсутствует или отклонен bearer-токен
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnsupportedImage — допускаются только jpg/png
	ErrUnsupportedImage = errors.New("only jpg/png files are allowed")

	// ErrImageTooLarge — превышен лимит размера загрузки
	ErrImageTooLarge = errors.New("image is too large")

	// ErrImageMismatch — текущее изображение записи не совпало с ожидаемым
	ErrImageMismatch = errors.New("image does not match the stored one")
)

// ValidationError описывает ошибки валидации по полям.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError создает ошибку валидации для одного поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
