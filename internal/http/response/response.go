// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Все ответы сервера имеют
// форму {success, message?, data?}; ошибки проходят через единственный
// централизованный ответчик Err.
package response

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/apperror"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
}

// OK возвращает успешный Response с переданными данными.
func OK(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// OKWithMessage возвращает успешный Response с сообщением и данными.
func OKWithMessage(msg string, data any) Response {
	return Response{
		Success: true,
		Message: msg,
		Data:    data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// Err — централизованный ответчик: приводит произвольную ошибку к доменной,
// пишет её статус и безопасное сообщение. Внутренняя причина попадает
// только в лог.
func Err(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.Status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", sl.Err(err))
	}
	w.WriteHeader(appErr.Status)
	render.JSON(w, r, Error(appErr.Message))
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "datetime=02-01-2006":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only date in format 02-01-2006", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(errsMsgs, ", "),
	}
}
