// Package complete реализует HTTP-обработчик выхода из очереди по предмету.
package complete

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bounchich1/queue-project-backend/internal/http/middlewarectx"
	"github.com/bounchich1/queue-project-backend/internal/http/response"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Handler управляет HTTP-запросами на выход из очереди.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики очередей.
type Service interface {
	Complete(ctx context.Context, user *models.User, subjectID int) ([]models.QueueEntryView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Покинуть очередь
// @Description Удаляет запись пользователя из очереди по предмету.
// @Tags Queue
// @Produce json
// @Security BearerAuth
// @Param subject path int true "Идентификатор предмета"
// @Success 200 {array} models.QueueEntryView "Очередь после удаления записи"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Пользователь не состоит в группе"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /infoqueue/complete/{subject} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.queue.complete"
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

	subjectID, err := strconv.Atoi(chi.URLParam(r, "subject"))
	if err != nil {
		log.Error("invalid subject id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subject id"))
		return
	}

	entries, err := h.service.Complete(r.Context(), user, subjectID)
	if err != nil {
		log.Error("failed to leave queue", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not leave queue"))
		return
	}

	log.Info("user left queue",
		slog.String("user", user.UID),
		slog.Int("subject_id", subjectID))
	render.JSON(w, r, response.OKWithData(entries))
}
