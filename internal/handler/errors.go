package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
)

// respondWithServiceError переводит ошибку бизнес-логики в HTTP-ответ.
// Подробности внутренних ошибок клиенту не отдаются.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Fields: verr.Fields}, logger)
	case errors.Is(err, domain.ErrUnsupportedImage), errors.Is(err, domain.ErrImageTooLarge):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid image",
			Fields:  map[string]string{"image": imageMessage(err)},
		}, logger)
	case errors.Is(err, domain.ErrDuplicateUsername):
		respondWithError(w, http.StatusBadRequest, "Username already exists", logger)
	case errors.Is(err, domain.ErrDuplicateEmail):
		respondWithError(w, http.StatusBadRequest, "Email already exists", logger)
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Employee not found", logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Wrong username or password", logger)
	case errors.Is(err, domain.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", logger)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

func imageMessage(err error) string {
	if errors.Is(err, domain.ErrImageTooLarge) {
		return "Image is too large"
	}
	return "Only jpg/png files are allowed"
}
