// Package health реализует проверку живости сервиса.
package health

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
)

// Handler отвечает на запросы проверки состояния сервиса.
type Handler struct{}

// New создает новый Handler.
func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithMessage("ok", nil))
}
