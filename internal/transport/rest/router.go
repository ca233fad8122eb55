package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/user-management/internal/auth"
	"github.com/frahmantamala/user-management/internal/role"
	"github.com/frahmantamala/user-management/internal/tokengate"
	"github.com/frahmantamala/user-management/internal/transport/middleware"
	"github.com/frahmantamala/user-management/internal/transport/swagger"
	"github.com/frahmantamala/user-management/internal/user"
)

// RegisterAllRoutes wires the middleware chain and every endpoint. The
// token gate runs globally; its excluded-prefix list keeps the auth
// endpoints, docs and probes reachable without a token.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	gate *tokengate.Gate,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	roleHandler *role.Handler,
	userService middleware.UserLoader,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(gate.Middleware)

	// OpenAPI spec at root, outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
		})

		// Everything below is token-protected by the gate.
		r.Get("/users/me", userHandler.GetCurrentUser)

		r.Route("/roles", func(rr chi.Router) {
			rr.Get("/", roleHandler.GetRoles)
			rr.Get("/{id}", roleHandler.GetRole)
			rr.Get("/{id}/permissions", roleHandler.GetRolePermissions)
		})

		r.Group(func(ar chi.Router) {
			ar.Use(middleware.RequirePermissions(userService, logger, "manage_users"))
			ar.Get("/admin/users", userHandler.ListUsers)
		})
	})
}
