package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
// Повторная регистрация email возвращает errs.ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (first_name, last_name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, classify(err))
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email или errs.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, first_name, last_name, email, password_hash, role,
			      group_uid, subscription_expires, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, first_name, last_name, email, password_hash, role,
			      group_uid, subscription_expires, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var groupUID sql.NullString
	var subscriptionExpires sql.NullTime
	if err := row.Scan(&u.UID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &groupUID, &subscriptionExpires, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	if groupUID.Valid {
		u.GroupUID = &groupUID.String
	}
	if subscriptionExpires.Valid {
		u.SubscriptionExpires = &subscriptionExpires.Time
	}
	return u, nil
}

// ListGroupMembers возвращает имена пользователей, состоящих в группе.
func (s *Storage) ListGroupMembers(ctx context.Context, groupUID string) ([]models.MemberView, error) {
	const op = "storage.ListGroupMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT first_name, last_name
			  FROM users
			  WHERE group_uid = $1
			  ORDER BY last_name, first_name`
	rows, err := s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.MemberView
	for rows.Next() {
		var m models.MemberView
		if err = rows.Scan(&m.FirstName, &m.LastName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteUser удаляет пользователя по UID.
// Возвращает errs.ErrNotFound, если строка не была удалена.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return nil
}
