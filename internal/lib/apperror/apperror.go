// Package apperror определяет доменную таксономию ошибок API.
//
// Каждая ошибка несёт HTTP-статус и безопасное для клиента сообщение.
// Внутренняя причина сохраняется для логов через Unwrap, но наружу
// никогда не отдаётся: клиент видит только статус и сообщение.
package apperror

import (
	"errors"
	"net/http"
)

// Error — доменная ошибка с HTTP-статусом и сообщением для клиента.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap возвращает внутреннюю причину ошибки.
func (e *Error) Unwrap() error { return e.Err }

// Validation — некорректные или отсутствующие входные данные (400).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized — отказ аутентификации (401). Сообщение всегда общее,
// чтобы не раскрывать причину отказа.
func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "Unauthorized"}
}

// Forbidden — нарушение прав доступа: чужой ресурс или недостаточная роль (403).
func Forbidden() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Forbidden"}
}

// NotFound — запрошенный ресурс отсутствует (404).
func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

// Conflict — конфликт с существующей записью, например занятый email (409).
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// Internal — неожиданная ошибка (500). Причина остаётся в Err для логов.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// From приводит произвольную ошибку к *Error. Доменные ошибки проходят
// как есть, всё остальное становится Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
