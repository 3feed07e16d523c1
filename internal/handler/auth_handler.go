package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/EmployeeAdmin/internal/usecase"
)

// AuthHandler — обработчик регистрации и входа.
type AuthHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

func NewAuthHandler(uc usecase.UserUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{userUseCase: uc, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register — POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid register body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if _, err := h.userUseCase.Register(r.Context(), req.Username, req.Password); err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, messageResponse{Message: "User registered"}, h.logger)
}

// Login — POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid login body", "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	token, err := h.userUseCase.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithServiceError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token}, h.logger)
}
