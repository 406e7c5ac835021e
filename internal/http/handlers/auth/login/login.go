// Package login реализует HTTP-обработчик входа в систему.
//
// Запрос принимается в форме OAuth2 password grant: поля формы
// username и password, где username несет email пользователя.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bounchich1/queue-project-backend/internal/http/response"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на вход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Войти в систему
// @Description Проверяет email и пароль (форма OAuth2 password grant) и возвращает токен сессии.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} map[string]any "Токен сессии"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Router /token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	email := r.PostFormValue("username")
	rawPassword := r.PostFormValue("password")
	if email == "" || rawPassword == "" {
		log.Error("missing credentials in form")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("username and password are required"))
		return
	}

	token, err := h.service.Login(r.Context(), email, rawPassword)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.FromError(err, "invalid credentials"))
		return
	}

	log.Info("user logged in", slog.String("email", email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	}))
}
