package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig — все, что нужно для сборки маршрутов
type RouterConfig struct {
	Auth      *AuthHandler
	Employees *EmployeeHandler
	Images    *ImageHandler
	Health    *HealthHandler

	Tokens         TokenVerifier
	Logger         *slog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter собирает chi-роутер панели
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", cfg.Health.Check)
	r.Get("/uploads/{name}", cfg.Images.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.Auth.Register)
		r.Post("/auth/login", cfg.Auth.Login)

		r.Route("/employees", func(r chi.Router) {
			r.Use(Authenticate(cfg.Tokens, cfg.Logger))

			r.Post("/create", cfg.Employees.Create)
			r.Get("/list", cfg.Employees.List)
			r.Get("/{id}", cfg.Employees.Get)
			r.Put("/update/{id}", cfg.Employees.Update)
			r.Delete("/delete/{id}", cfg.Employees.Delete)
		})
	})

	return r
}
