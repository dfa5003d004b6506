// Package subscriptiontracker собирает приложение и регистрирует маршруты.
package subscriptiontracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/signout"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/health"
	subcreate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	sublist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	subread "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	subremove "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	subupdate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	usercreate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/create"
	userlist "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/list"
	userread "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/read"
	userremove "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/remove"
	userupdate "github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	userservice "github.com/magabrotheeeer/subscription-tracker/internal/services/user"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, tokens jwt.Maker, db *storage.Storage,
	authService *authservice.Service, userService *userservice.Service, subscriptionService *subservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/signin", signin.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, db, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/signout", signout.New(logger).ServeHTTP)

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Post("/users", usercreate.New(logger, userService).ServeHTTP)
			r.Get("/users/{uid}", userread.New(logger, userService).ServeHTTP)
			r.Put("/users/{uid}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/{uid}", userremove.New(logger, userService).ServeHTTP)

			r.Get("/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", subread.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", subupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", subremove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
