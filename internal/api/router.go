package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/api/handler"
	"inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/platform/avatar"
)

func NewRouter(
	authService *service.AuthService,
	accountService *service.AccountService,
	postService *service.PostService,
	avatars *avatar.Storage,
	avatarDir string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Session cookie resolution; requests without a valid session stay
	// anonymous until they hit a RequireAuthenticated guard.
	sessionAuth := middleware.NewSessionAuth(authService)
	r.Use(sessionAuth.Resolver)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Uploaded avatars are served as static files.
	fileServer := http.StripPrefix("/static/profilepics/", http.FileServer(http.Dir(avatarDir)))
	r.Get("/static/profilepics/*", fileServer.ServeHTTP)

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService, accountService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		accountHandler := handler.NewAccountHandler(accountService, avatars)
		v1.Route("/account", accountHandler.RegisterRoutes)

		postHandler := handler.NewPostHandler(postService)
		v1.Route("/posts", postHandler.RegisterRoutes)
		v1.Route("/users", postHandler.RegisterUserRoutes)
	})

	return r
}
