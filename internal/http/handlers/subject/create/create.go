// Package create реализует HTTP-обработчик добавления предмета группы.
package create

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

// Handler управляет HTTP-запросами на добавление предмета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики предметов.
type Service interface {
	AddSubject(ctx context.Context, user *models.User, req models.SubjectRequest) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Добавить предмет
// @Description Создает новый предмет в группе текущего пользователя.
// @Tags Subjects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body models.SubjectRequest true "Название и сокращение предмета"
// @Success 200 {object} models.SubjectView "Созданный предмет"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 409 {object} response.ErrorResponse "Предмет уже существует"
// @Router /infoqueue/add_new_subjects [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subject.create"
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

	var req models.SubjectRequest
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

	subjectID, err := h.service.AddSubject(r.Context(), user, req)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			log.Error("subject already exists", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.FromError(err, "subject already exists"))
			return
		}
		log.Error("failed to add subject", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not add subject"))
		return
	}

	log.Info("subject created", slog.Int("subject_id", subjectID))
	render.JSON(w, r, response.OKWithData(models.SubjectView{
		ID:               subjectID,
		SubjectFullName:  req.SubjectFullName,
		SubjectShortName: req.SubjectShortName,
	}))
}
