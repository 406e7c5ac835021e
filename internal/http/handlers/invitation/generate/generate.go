// Package generate реализует HTTP-обработчик выпуска кода приглашения.
package generate

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

// Handler управляет HTTP-запросами на выпуск кода приглашения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выпуска кода.
type Service interface {
	CreateInvitationToken(ctx context.Context, user *models.User) (*models.InvitationToken, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выпустить код приглашения
// @Description Выпускает код для вступления в группу по подписке вызывающего.
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.InvitationTokenView
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Router /user/generate_invitation_token [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invitation.generate"
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

	token, err := h.service.CreateInvitationToken(r.Context(), user)
	if err != nil {
		log.Error("failed to create invitation token", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not create invitation token"))
		return
	}

	log.Info("invitation token generated", slog.String("owner", user.UID))
	render.JSON(w, r, response.OKWithData(models.InvitationTokenView{
		Token:                token.Token,
		RemainingActivations: token.RemainingActivations,
		Expires:              token.Expires,
	}))
}
