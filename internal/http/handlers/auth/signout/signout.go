// Package signout реализует HTTP-обработчик выхода.
//
// Токены не хранятся на сервере, поэтому выход сводится к указанию
// клиенту удалить сохранённый токен.
package signout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
)

// Handler обрабатывает запросы на выход.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Info("user signed out")
	render.JSON(w, r, response.OKWithMessage("signed out, discard the stored token", nil))
}
