// Package auth содержит бизнес-логику регистрации, входа и проверки токенов.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/lib/jwt"
	"github.com/bounchich1/queue-project-backend/internal/lib/password"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает пользователя с Argon2id-хешем пароля и сразу
// аутентифицирует его, возвращая токен сессии.
// Повторный email возвращает errs.ErrConflict.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	const op = "auth.Register"
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	if _, err = s.users.RegisterUser(ctx, user); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login проверяет пароль пользователя и возвращает токен сессии.
// Неизвестный email и неверный пароль неразличимы для вызывающего:
// оба случая дают errs.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ResolveToken проверяет JWT и возвращает актуальную запись пользователя.
//
// Закрывается при любом дефекте: неверная подпись, истекший срок,
// нечитаемый payload и удаленный пользователь дают errs.ErrUnauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.ResolveToken"
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	}
	return user, nil
}
