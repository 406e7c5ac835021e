// Package plan реализует HTTP-обработчик просмотра подписки.
package plan

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

// Handler управляет HTTP-запросами на просмотр подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики просмотра подписки.
type Service interface {
	GetSubscription(ctx context.Context, user *models.User) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Просмотреть план подписки
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SubscriptionView
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Router /user/subscription_plan [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.plan"
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

	sub, err := h.service.GetSubscription(r.Context(), user)
	if err != nil {
		log.Error("failed to get subscription", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.FromError(err, "subscription not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(models.SubscriptionView{
		Tier:            sub.Tier,
		GroupPopulation: sub.GroupPopulation,
		Months:          sub.Months,
		CreatedAt:       sub.CreatedAt,
		Expires:         sub.Expires,
	}))
}
