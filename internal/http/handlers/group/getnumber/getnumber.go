// Package getnumber реализует HTTP-обработчик чтения номера группы.
package getnumber

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bounchich1/queue-project-backend/internal/http/middlewarectx"
	"github.com/bounchich1/queue-project-backend/internal/http/response"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Handler управляет HTTP-запросами на чтение номера группы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики групп.
type Service interface {
	GetGroupNumber(ctx context.Context, user *models.User) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить номер группы
// @Description Возвращает отображаемый номер группы текущего пользователя.
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Номер группы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Router /groups/get_group_number [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.getnumber"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	number, err := h.service.GetGroupNumber(r.Context(), user)
	if err != nil {
		log.Error("failed to get group number", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not get group number"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]string{
		"group_number": number,
	}))
}
