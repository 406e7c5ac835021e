// Package queuebackend собирает и запускает основной HTTP-сервис очередей.
package queuebackend

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/bounchich1/queue-project-backend/internal/cache"
	"github.com/bounchich1/queue-project-backend/internal/config"
	"github.com/bounchich1/queue-project-backend/internal/lib/jwt"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/migrations"
	"github.com/bounchich1/queue-project-backend/internal/rabbitmq"
	authservice "github.com/bounchich1/queue-project-backend/internal/services/auth"
	groupservice "github.com/bounchich1/queue-project-backend/internal/services/group"
	queueservice "github.com/bounchich1/queue-project-backend/internal/services/queue"
	"github.com/bounchich1/queue-project-backend/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и внешние подключения сервиса.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	cache      *cache.Cache
	rabbitConn *amqp.Connection
}

// New собирает приложение: хранилище, миграции, кеш, брокер и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)

	// Брокер уведомлений необязателен: без него коды приглашений
	// выпускаются, но письма не отправляются.
	var rabbitConn *amqp.Connection
	var publisher groupservice.InvitePublisher
	if cfg.RabbitMQURL != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			logger.Warn("rabbitmq is unavailable, invitation mail is disabled", sl.Err(err))
		} else {
			ch, chErr := rabbitmq.SetupChannel(rabbitConn)
			if chErr != nil {
				return nil, chErr
			}
			publisher = rabbitmq.NewPublisher(ch)
		}
	}

	groupService := groupservice.NewGroupService(db, publisher, logger)
	queueService := queueservice.NewQueueService(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, groupService, queueService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		cache:      cacheRedis,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.rabbitConn != nil {
			_ = a.rabbitConn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
