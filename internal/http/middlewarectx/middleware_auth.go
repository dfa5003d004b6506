// Package middlewarectx содержит HTTP middleware шлюза аутентификации.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке Authorization,
// разрешает субъект токена через хранилище и кладёт в контекст запроса
// аутентифицированного пользователя (без хэша пароля) для обработчиков ниже.
//
// Любая причина отказа — отсутствие токена, неверная подпись, истёкший срок,
// неизвестный субъект — возвращает HTTP 401 с одним и тем же общим сообщением.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ аутентифицированного пользователя в контексте.
const IdentityKey Key = "identity"

// TokenParser описывает проверку токена и извлечение UID субъекта.
type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// UserProvider описывает разрешение субъекта токена в запись пользователя.
type UserProvider interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке Authorization и разрешает его субъект через хранилище.
//
// При успехе в контекст запроса попадает models.Identity; при любой
// ошибке — 401 Unauthorized с общим сообщением, без уточнения причины.
func JWTMiddleware(tokens TokenParser, users UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Info("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userUID, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			user, err := users.GetUser(r.Context(), userUID)
			if err != nil {
				log.Info("token subject not resolved", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, models.IdentityOf(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity извлекает аутентифицированного пользователя из контекста запроса.
func Identity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	return identity, ok
}
