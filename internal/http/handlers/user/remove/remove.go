// Package remove реализует HTTP-обработчик удаления пользователя.
// Доступ разрешён владельцу записи и администраторам.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler обрабатывает запросы на удаление пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления пользователя.
type Service interface {
	Delete(ctx context.Context, identity models.Identity, targetUID string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

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

	uid := chi.URLParam(r, "uid")
	deleted, err := h.service.Delete(r.Context(), identity, uid)
	if err != nil {
		response.Err(w, r, log, err)
		return
	}

	log.Info("deleted user", slog.String("uid", deleted.UID))
	render.JSON(w, r, response.OKWithMessage("user deleted successfully", deleted))
}
