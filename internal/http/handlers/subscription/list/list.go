// Package list реализует HTTP-обработчик получения списка подписок.
// Операция доступна только администраторам; поддерживается пагинация
// через query-параметры limit и offset.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// Handler обрабатывает запросы на список подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	List(ctx context.Context, identity models.Identity, limit, offset int) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает все подписки. Только для администраторов.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимум записей в ответе"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} response.Response "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Нет токена"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

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

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxLimit {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid offset"))
			return
		}
		offset = parsed
	}

	subs, err := h.service.List(r.Context(), identity, limit, offset)
	if err != nil {
		response.Err(w, r, log, err)
		return
	}

	log.Info("listed subscriptions", slog.Int("count", len(subs)))
	render.JSON(w, r, response.OK(subs))
}
