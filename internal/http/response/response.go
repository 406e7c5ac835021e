// Package response содержит типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков.
//
// Помимо человекочитаемого текста каждая ошибка несет машинно-читаемый
// kind, выведенный из доменного вида ошибки.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ответа с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Kind   string `json:"kind" example:"conflict"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{
		Status: StatusOK,
	}
}

// Error возвращает ErrorResponse с переданным сообщением и kind "error".
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Kind:   "error",
		Error:  msg,
	}
}

// FromError возвращает ErrorResponse с kind, выведенным из доменного вида ошибки.
func FromError(err error, msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Kind:   Kind(err),
		Error:  msg,
	}
}

// Kind возвращает машинно-читаемый вид ошибки.
func Kind(err error) string {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, errs.ErrForbidden):
		return "forbidden"
	case errors.Is(err, errs.ErrNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

// StatusCode возвращает HTTP-статус для доменного вида ошибки.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение превращается в человекочитаемый текст, объединённый через запятую.
func ValidationError(errsList validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errsList {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Kind:   "validation",
		Error:  strings.Join(errsMsgs, ", "),
	}
}
