package handler

import (
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/GoArmGo/EmployeeAdmin/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// память под поля multipart-формы; файл сверх этого уходит во временный файл
const multipartMemory = 1 << 20

// EmployeeHandler — обработчик HTTP-запросов для работы с сотрудниками.
type EmployeeHandler struct {
	employeeUseCase usecase.EmployeeUseCase
	uploadLimiter   *semaphore.Weighted
	maxUploadSize   int64
	logger          *slog.Logger
}

// NewEmployeeHandler создаёт новый экземпляр EmployeeHandler.
// limiter ограничивает число одновременно обрабатываемых загрузок.
func NewEmployeeHandler(
	uc usecase.EmployeeUseCase,
	limiter *semaphore.Weighted,
	maxUploadSize int64,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUseCase: uc,
		uploadLimiter:   limiter,
		maxUploadSize:   maxUploadSize,
		logger:          logger,
	}
}

// Create — POST /api/employees/create
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, image, cleanup, err := h.parseEmployeeRequest(w, r)
	if err != nil {
		h.respondParseError(w, r, err)
		return
	}
	defer cleanup()

	if image != nil {
		release, ok := h.acquireUploadSlot(r)
		if !ok {
			respondWithError(w, http.StatusServiceUnavailable, "Too many concurrent uploads", h.logger)
			return
		}
		defer release()
	}

	employee, err := h.employeeUseCase.Create(r.Context(), in, image)
	if err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, employee, h.logger)
}

// List — GET /api/employees/list
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeUseCase.List(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, employees, h.logger)
}

// Get — GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		respondWithServiceError(w, r, domain.ErrNotFound, h.logger)
		return
	}

	employee, err := h.employeeUseCase.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, employee, h.logger)
}

// Update — PUT /api/employees/update/{id}
//
// Поля заменяются целиком. Изображение: файл image заменяет текущее,
// existingImage сохраняет текущее (значение должно совпадать с ним),
// а запрос без обоих полей, в том числе JSON без existingImage, снимает
// изображение с записи, и файл затем удаляется воркером.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		respondWithServiceError(w, r, domain.ErrNotFound, h.logger)
		return
	}

	in, image, cleanup, err := h.parseEmployeeRequest(w, r)
	if err != nil {
		h.respondParseError(w, r, err)
		return
	}
	defer cleanup()

	if image != nil {
		release, ok := h.acquireUploadSlot(r)
		if !ok {
			respondWithError(w, http.StatusServiceUnavailable, "Too many concurrent uploads", h.logger)
			return
		}
		defer release()
	}

	employee, err := h.employeeUseCase.Update(r.Context(), id, in, image)
	if err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, employee, h.logger)
}

// Delete — DELETE /api/employees/delete/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseEmployeeID(r)
	if !ok {
		respondWithServiceError(w, r, domain.ErrNotFound, h.logger)
		return
	}

	if err := h.employeeUseCase.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Employee deleted"}, h.logger)
}

// некорректный id считается отсутствующей записью
func parseEmployeeID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

var errBadBody = errors.New("некорректное тело запроса")

// parseEmployeeRequest принимает multipart-форму (с необязательным файлом image) или JSON.
// cleanup освобождает временные файлы формы.
func (h *EmployeeHandler) parseEmployeeRequest(w http.ResponseWriter, r *http.Request) (usecase.EmployeeInput, *usecase.ImageUpload, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var in usecase.EmployeeInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.logger.Warn("invalid employee body", "error", err)
			return in, nil, noop, errBadBody
		}
		return in, nil, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.EmployeeInput{}, nil, noop, domain.ErrImageTooLarge
		}
		h.logger.Warn("invalid multipart form", "error", err)
		return usecase.EmployeeInput{}, nil, noop, errBadBody
	}
	form := r.MultipartForm
	cleanup := func() { _ = form.RemoveAll() }

	in := usecase.EmployeeInput{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Mobile:        r.FormValue("mobile"),
		Designation:   r.FormValue("designation"),
		Gender:        r.FormValue("gender"),
		Course:        usecase.CourseFormValues(courseValues(form)),
		ExistingImage: r.FormValue("existingImage"),
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, cleanup, nil
	}
	if err != nil {
		cleanup()
		h.logger.Warn("failed to read uploaded image", "error", err)
		return in, nil, noop, errBadBody
	}

	return in, &usecase.ImageUpload{Reader: file, Filename: header.Filename, Size: header.Size}, func() {
		_ = file.Close()
		cleanup()
	}, nil
}

// courseValues собирает значения course и course[]
func courseValues(form *multipart.Form) []string {
	values := append([]string{}, form.Value["course"]...)
	return append(values, form.Value["course[]"]...)
}

func (h *EmployeeHandler) respondParseError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadBody) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	respondWithServiceError(w, r, err, h.logger)
}

// acquireUploadSlot ждет свободный слот загрузки, пока жив запрос
func (h *EmployeeHandler) acquireUploadSlot(r *http.Request) (func(), bool) {
	if h.uploadLimiter == nil {
		return func() {}, true
	}
	if err := h.uploadLimiter.Acquire(r.Context(), 1); err != nil {
		h.logger.Warn("upload slot wait cancelled", "path", r.URL.Path, "error", err)
		return nil, false
	}
	return func() { h.uploadLimiter.Release(1) }, true
}
