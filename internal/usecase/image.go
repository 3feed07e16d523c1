package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// сколько байт читается для определения типа файла
const sniffLen = 3072

var allowedImageTypes = []string{"image/jpeg", "image/png"}

// DefaultMaxImageSize — лимит размера изображения по умолчанию (5 МБ)
const DefaultMaxImageSize int64 = 5 << 20

// sizeLimitedReader отдает не больше limit байт; при превышении
// возвращает domain.ErrImageTooLarge и запоминает это
type sizeLimitedReader struct {
	r        io.Reader
	limit    int64
	read     int64
	exceeded bool
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, domain.ErrImageTooLarge
	}
	if room := l.limit - l.read + 1; int64(len(p)) > room {
		p = p[:room]
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.limit {
		l.exceeded = true
		return 0, domain.ErrImageTooLarge
	}
	return n, err
}

// detectImage читает начало файла и проверяет, что это jpeg или png.
// Возвращает поток, снова начинающийся с первого байта.
func detectImage(r io.Reader) (*mimetype.MIME, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, nil, fmt.Errorf("usecase: ошибка чтения изображения: %w", err)
	}
	if n == 0 {
		return nil, nil, domain.ErrUnsupportedImage
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, nil, domain.ErrUnsupportedImage
	}
	return mt, io.MultiReader(bytes.NewReader(head), r), nil
}

// storeImage проверяет и сохраняет загрузку, возвращает ссылку вида uploads/<uuid><ext>
func (uc *employeeUseCase) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img.Size > uc.maxImageSize {
		return "", domain.ErrImageTooLarge
	}

	mt, body, err := detectImage(img.Reader)
	if err != nil {
		return "", err
	}

	key := uuid.NewString() + mt.Extension()
	limited := &sizeLimitedReader{r: body, limit: uc.maxImageSize}

	ref, err := uc.fileStorage.UploadFile(ctx, key, limited, mt.String())
	if err != nil {
		if limited.exceeded {
			_ = uc.fileStorage.DeleteFile(context.WithoutCancel(ctx), key)
			return "", domain.ErrImageTooLarge
		}
		return "", fmt.Errorf("usecase: ошибка сохранения изображения: %w", err)
	}
	return ref, nil
}
