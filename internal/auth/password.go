package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch — пароль не совпадает с хешем
var ErrPasswordMismatch = errors.New("password mismatch")

// BcryptHasher хеширует пароли bcrypt-ом (соль встроена в хеш)
type BcryptHasher struct {
	cost      int
	dummyHash []byte
}

// NewBcryptHasher создает хешер. Некорректная стоимость заменяется на bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// хеш-заглушка для сравнения, когда пользователя нет
	dummy, _ := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	return &BcryptHasher{cost: cost, dummyHash: dummy}
}

// Hash возвращает хеш пароля
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hash), nil
}

// Compare сверяет пароль с хешем. При пустом хеше сравнивает с заглушкой,
// чтобы время ответа не зависело от существования пользователя.
func (h *BcryptHasher) Compare(hash, password string) error {
	target := []byte(hash)
	if len(target) == 0 {
		target = h.dummyHash
	}

	err := bcrypt.CompareHashAndPassword(target, []byte(password))
	if err != nil || len(hash) == 0 {
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("%w: %v", ErrPasswordMismatch, err)
		}
		return ErrPasswordMismatch
	}
	return nil
}
