package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/EmployeeAdmin/internal/core/ports"
	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ImageHandler отдает загруженные изображения по ссылке uploads/<name>
type ImageHandler struct {
	files  ports.FileStorage
	logger *slog.Logger
}

func NewImageHandler(files ports.FileStorage, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{files: files, logger: logger}
}

// Serve — GET /uploads/{name}
func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key, ok := domain.ImageKey(domain.ImageRef(name))
	if !ok {
		http.NotFound(w, r)
		return
	}

	body, contentType, err := h.files.OpenFile(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to open image", "key", key, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")

	// с диска отдаем через ServeContent: Range и If-Modified-Since
	if seeker, ok := body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, key, time.Time{}, seeker)
		return
	}

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("failed to stream image", "key", key, "error", err)
	}
}
