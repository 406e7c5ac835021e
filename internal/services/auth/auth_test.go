package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	customjwt "github.com/bounchich1/queue-project-backend/internal/lib/jwt"
	"github.com/bounchich1/queue-project-backend/internal/lib/password"
	"github.com/bounchich1/queue-project-backend/internal/models"
	"github.com/bounchich1/queue-project-backend/internal/services/auth"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(email, role string) (string, error) {
	args := m.Called(email, role)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	req := models.RegisterRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "test@example.com",
		Password:  "password123",
	}

	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    bool
		errIs      error
	}{
		{
			name: "successful registration returns session token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.FirstName == "Ivan" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == "user"
				})).Return("some-uuid-string", nil).Once()
				j.On("GenerateToken", "test@example.com", "user").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			name: "duplicate email",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("", errs.ErrConflict).Once()
			},
			wantErr: true,
			errIs:   errs.ErrConflict,
		},
		{
			name: "repository error",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			got, err := svc.Register(context.Background(), req)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, got)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"

	hashedPassword, err := password.GetHash(rawPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	testUser := &models.User{
		Email:        "test@example.com",
		PasswordHash: hashedPassword,
		Role:         "user",
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantToken  string
		wantErr    bool
		errIs      error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "test@example.com", "user").Return("jwt-token-123", nil).Once()
			},
			wantToken: "jwt-token-123",
		},
		{
			// Неизвестный email неотличим от неверного пароля
			name:     "user not found",
			email:    "nonexistent@example.com",
			password: "password",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nonexistent@example.com").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: true,
			errIs:   errs.ErrUnauthorized,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantErr: true,
			errIs:   errs.ErrUnauthorized,
		},
		{
			name:     "token generation error",
			email:    "test@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
				j.On("GenerateToken", "test@example.com", "user").Return("", errors.New("token error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveToken(t *testing.T) {
	validClaims := &customjwt.CustomClaims{
		Email: "test@example.com",
		Role:  "user",
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	testUser := &models.User{
		UID:   "uid-1",
		Email: "test@example.com",
		Role:  "user",
	}

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantUser   *models.User
		wantErr    bool
	}{
		{
			name:  "valid token resolves to user",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").Return(validClaims, nil).Once()
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(testUser, nil).Once()
			},
			wantUser: testUser,
		},
		{
			name:  "invalid token",
			token: "invalid-token",
			setupMocks: func(_ *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "invalid-token").Return(nil, errors.New("invalid token")).Once()
			},
			wantErr: true,
		},
		{
			// Пользователь удален после выпуска токена
			name:  "deleted user",
			token: "valid-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseToken", "valid-token").Return(validClaims, nil).Once()
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(nil, errs.ErrNotFound).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			svc := auth.NewAuthService(repo, jwtMock)

			tt.setupMocks(repo, jwtMock)

			user, err := svc.ResolveToken(context.Background(), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrUnauthorized)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUser, user)
			}

			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
