// Package registry предоставляет маршруты для основного приложения.
package registry

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	affiliationcreate "github.com/magabrotheeeer/conference-registry/internal/http/handlers/affiliation/create"
	affiliationlist "github.com/magabrotheeeer/conference-registry/internal/http/handlers/affiliation/list"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/contribution/create"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/contribution/discount"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/contribution/list"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/contribution/read"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/contribution/remove"
	"github.com/magabrotheeeer/conference-registry/internal/http/handlers/health"
	"github.com/magabrotheeeer/conference-registry/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/conference-registry/internal/services/auth"
	contributionservice "github.com/magabrotheeeer/conference-registry/internal/services/contribution"
	"github.com/magabrotheeeer/conference-registry/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, contributionService *contributionservice.Service, db *repository.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/contributions", create.New(logger, contributionService).ServeHTTP)
			r.Get("/contributions/list", list.New(logger, contributionService).ServeHTTP)
			r.Get("/contributions/{id}", read.New(logger, contributionService).ServeHTTP)
			r.Delete("/contributions/{id}", remove.New(logger, contributionService).ServeHTTP)
			r.Post("/affiliations", affiliationcreate.New(logger, contributionService).ServeHTTP)
			r.Get("/affiliations/list", affiliationlist.New(logger, contributionService).ServeHTTP)

			// Административные конечные точки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Patch("/contributions/{id}/discount", discount.New(logger, contributionService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
