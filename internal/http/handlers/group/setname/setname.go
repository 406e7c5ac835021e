// Package setname реализует HTTP-обработчик смены номера группы.
package setname

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/bounchich1/queue-project-backend/internal/http/middlewarectx"
	"github.com/bounchich1/queue-project-backend/internal/http/response"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Handler управляет HTTP-запросами на смену номера группы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики групп.
type Service interface {
	SetGroupName(ctx context.Context, user *models.User, groupNumber string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Установить номер группы
// @Description Обновляет отображаемый номер группы текущего пользователя.
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.SetGroupNameRequest true "Новый номер группы"
// @Success 200 {object} response.Response "Номер обновлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Router /groups/set_group_name [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.setname"
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

	var req models.SetGroupNameRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		errors.As(err, &validateErrs)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErrs))
		return
	}

	if err := h.service.SetGroupName(r.Context(), user, req.GroupNumber); err != nil {
		log.Error("failed to set group number", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not set group number"))
		return
	}

	log.Info("group number updated", slog.String("user", user.UID))
	render.JSON(w, r, response.OK())
}
