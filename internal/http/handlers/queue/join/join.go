// Package join реализует HTTP-обработчик записи в очередь по предмету.
package join

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
	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Handler управляет HTTP-запросами на запись в очередь.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики очередей.
type Service interface {
	Join(ctx context.Context, user *models.User, subjectID, taskNumber int) ([]models.QueueEntryView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Записаться в очередь
// @Description Добавляет пользователя в очередь по предмету и возвращает актуальный список.
// @Tags Queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.JoinQueueRequest true "Предмет и номер работы"
// @Success 200 {array} models.QueueEntryView "Текущая очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Предмет не найден"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже в очереди"
// @Router /infoqueue/add_to_queue [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.queue.join"
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

	var req models.JoinQueueRequest
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

	entries, err := h.service.Join(r.Context(), user, req.SubjectID, req.TaskNumber)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			log.Error("user already queued", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.FromError(err, "already in queue"))
			return
		}
		log.Error("failed to join queue", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not join queue"))
		return
	}

	log.Info("user joined queue",
		slog.String("user", user.UID),
		slog.Int("subject_id", req.SubjectID))
	render.JSON(w, r, response.OKWithData(entries))
}
