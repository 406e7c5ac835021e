// Package get реализует HTTP-обработчик просмотра последнего кода приглашения.
package get

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

// Handler управляет HTTP-запросами на просмотр кода приглашения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра кода.
type Service interface {
	GetInvitationToken(ctx context.Context, user *models.User) (*models.InvitationToken, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить последний код приглашения
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.InvitationTokenView
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Код не найден"
// @Router /user/get_invitation_token [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invitation.get"
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

	token, err := h.service.GetInvitationToken(r.Context(), user)
	if err != nil {
		log.Error("failed to get invitation token", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "invitation token not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(models.InvitationTokenView{
		Token:                token.Token,
		RemainingActivations: token.RemainingActivations,
		Expires:              token.Expires,
	}))
}
