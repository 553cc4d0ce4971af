package api

import (
	"net/http"

	"github.com/clinicare/clinic-backend/internal/api/handlers"
	"github.com/clinicare/clinic-backend/internal/api/middleware"
	"github.com/clinicare/clinic-backend/internal/config"
	"github.com/clinicare/clinic-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"Up and running!"}`))
	})

	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	codeHandler := handlers.NewCodeHandler(services.Code)
	noteHandler := handlers.NewNoteHandler(services.Note)

	// Public routes
	r.Post("/signup", authHandler.Signup)
	r.Post("/token", authHandler.Token)
	r.Post("/token/refresh", authHandler.Refresh)
	r.Post("/logout", authHandler.Logout)
	r.Get("/diagnosis", codeHandler.Search)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(services.Auth))

		r.Post("/consultation", noteHandler.Create)
		r.Get("/consultation", noteHandler.List)
	})

	return r
}
