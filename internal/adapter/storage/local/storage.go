// Package local хранит изображения в каталоге на диске.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/gabriel-vasile/mimetype"
)

// Storage реализует ports.FileStorage поверх каталога dir
type Storage struct {
	dir    string
	logger *slog.Logger
}

// NewStorage создает каталог, если его нет
func NewStorage(dir string, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать каталог загрузок %s: %w", dir, err)
	}
	logger.Info("local image storage ready", "dir", dir)
	return &Storage{dir: dir, logger: logger}, nil
}

// path возвращает путь к файлу; ключ не может выходить за пределы каталога
func (s *Storage) path(key string) (string, error) {
	if !filepath.IsLocal(key) || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("недопустимый ключ файла %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// UploadFile пишет во временный файл и переименовывает его после полной записи
func (s *Storage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	target, err := s.path(key)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("не удалось создать временный файл: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("ошибка записи файла %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ошибка записи файла %s: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("ошибка сохранения файла %s: %w", key, err)
	}

	s.logger.Info("file stored", "key", key, "content_type", contentType)
	return domain.ImageRef(key), nil
}

// OpenFile открывает файл; тип определяется по расширению, затем по содержимому
func (s *Storage) OpenFile(_ context.Context, key string) (io.ReadCloser, string, error) {
	target, err := s.path(key)
	if err != nil {
		return nil, "", domain.ErrNotFound
	}

	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("ошибка открытия файла %s: %w", key, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		mt, err := mimetype.DetectReader(f)
		if err == nil {
			contentType = mt.String()
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, "", fmt.Errorf("ошибка чтения файла %s: %w", key, err)
		}
	}
	return f, contentType, nil
}

// DeleteFile удаляет файл; отсутствие файла не ошибка
func (s *Storage) DeleteFile(_ context.Context, key string) error {
	target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла %s: %w", key, err)
	}
	s.logger.Info("file deleted", "key", key)
	return nil
}
