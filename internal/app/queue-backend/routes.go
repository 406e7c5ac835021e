// Package queuebackend предоставляет маршруты для основного приложения.
package queuebackend

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/bounchich1/queue-project-backend/internal/config"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/auth/login"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/auth/register"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/group/getnumber"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/group/setname"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/invitation/generate"
	invitationget "github.com/bounchich1/queue-project-backend/internal/http/handlers/invitation/get"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/invitation/redeem"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/queue/complete"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/queue/join"
	queueview "github.com/bounchich1/queue-project-backend/internal/http/handlers/queue/view"
	subjectcreate "github.com/bounchich1/queue-project-backend/internal/http/handlers/subject/create"
	subjectlist "github.com/bounchich1/queue-project-backend/internal/http/handlers/subject/list"
	subjectupdate "github.com/bounchich1/queue-project-backend/internal/http/handlers/subject/update"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/subscription/activate"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/subscription/plan"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/user/me"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/user/members"
	"github.com/bounchich1/queue-project-backend/internal/http/handlers/user/remove"
	"github.com/bounchich1/queue-project-backend/internal/http/middlewarectx"
	authservice "github.com/bounchich1/queue-project-backend/internal/services/auth"
	groupservice "github.com/bounchich1/queue-project-backend/internal/services/group"
	queueservice "github.com/bounchich1/queue-project-backend/internal/services/queue"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService, groupService *groupservice.GroupService, queueService *queueservice.QueueService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Открытые конечные точки
	r.Post("/registration", register.New(logger, authService).ServeHTTP)
	r.Post("/token", login.New(logger, authService).ServeHTTP)
	r.Delete("/user/{id}", remove.New(logger, groupService).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/users/me", me.New(logger).ServeHTTP)
		r.Get("/users/list_of_users", members.New(logger, groupService).ServeHTTP)

		r.Post("/user/activate_subscription", activate.New(logger, groupService).ServeHTTP)
		r.Get("/user/subscription_plan", plan.New(logger, groupService).ServeHTTP)
		r.Get("/user/generate_invitation_token", generate.New(logger, groupService).ServeHTTP)
		r.Get("/user/get_invitation_token", invitationget.New(logger, groupService).ServeHTTP)
		r.Post("/user/enter_invitation_token/{token}", redeem.New(logger, groupService).ServeHTTP)

		r.Post("/infoqueue/add_to_queue", join.New(logger, queueService).ServeHTTP)
		r.Get("/infoqueue/get_queue/{subject}", queueview.New(logger, queueService).ServeHTTP)
		r.Delete("/infoqueue/complete/{subject}", complete.New(logger, queueService).ServeHTTP)
		r.Get("/infoqueue/get_subjects", subjectlist.New(logger, queueService).ServeHTTP)
		r.Post("/infoqueue/add_new_subjects", subjectcreate.New(logger, queueService).ServeHTTP)
		r.Post("/infoqueue/update_subject", subjectupdate.New(logger, queueService).ServeHTTP)

		r.Post("/groups/set_group_name", setname.New(logger, groupService).ServeHTTP)
		r.Get("/groups/get_group_number", getnumber.New(logger, groupService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
