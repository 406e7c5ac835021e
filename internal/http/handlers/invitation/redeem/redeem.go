// Package redeem реализует HTTP-обработчик активации кода приглашения.
package redeem

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bounchich1/queue-project-backend/internal/http/middlewarectx"
	"github.com/bounchich1/queue-project-backend/internal/http/response"
	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Handler управляет HTTP-запросами на активацию кода приглашения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики активации кода.
type Service interface {
	RedeemInvitationToken(ctx context.Context, user *models.User, token string) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Активировать код приглашения
// @Description Вступает в группу по коду и списывает одну активацию.
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Код приглашения"
// @Success 200 {object} map[string]any "Остаток активаций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Код не найден"
// @Failure 409 {object} response.ErrorResponse "Лимит активаций исчерпан"
// @Router /user/enter_invitation_token/{token} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.invitation.redeem"
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

	token := chi.URLParam(r, "token")
	if token == "" {
		log.Error("missing token")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid token"))
		return
	}

	remaining, err := h.service.RedeemInvitationToken(r.Context(), user, token)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			log.Error("invitation limit exceeded", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.FromError(err, "limit exceeded"))
			return
		}
		log.Error("failed to redeem invitation token", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "could not redeem invitation token"))
		return
	}

	log.Info("invitation token redeemed", slog.String("user", user.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"remaining_activations": remaining,
	}))
}
