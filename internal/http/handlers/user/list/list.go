// Package list реализует HTTP-обработчик получения списка пользователей.
// Операция доступна только администраторам.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы на список пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	List(ctx context.Context, identity models.Identity) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всех пользователей. Только для администраторов.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список пользователей"
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.Identity(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Unauthorized"))
		return
	}

	users, err := h.service.List(r.Context(), identity)
	if err != nil {
		response.Err(w, r, log, err)
		return
	}

	log.Info("listed users", slog.Int("count", len(users)))
	render.JSON(w, r, response.OK(users))
}
