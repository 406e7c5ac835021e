package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// CreateInvitationToken сохраняет новый код приглашения.
func (s *Storage) CreateInvitationToken(ctx context.Context, token models.InvitationToken) error {
	const op = "storage.CreateInvitationToken"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO invitation_tokens (token, group_uid, owner_uid,
			      remaining_activations, expires)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		token.Token, token.GroupUID, token.OwnerUID,
		token.RemainingActivations, token.Expires); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// GetLatestTokenByOwner возвращает последний выпущенный владельцем код.
func (s *Storage) GetLatestTokenByOwner(ctx context.Context, ownerUID string) (*models.InvitationToken, error) {
	const op = "storage.GetLatestTokenByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT token, group_uid, owner_uid, remaining_activations, expires, created_at
			  FROM invitation_tokens
			  WHERE owner_uid = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	t := &models.InvitationToken{}
	if err := s.DB.QueryRowContext(ctx, query, ownerUID).Scan(
		&t.Token, &t.GroupUID, &t.OwnerUID, &t.RemainingActivations,
		&t.Expires, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return t, nil
}

// RedeemInvitationToken атомарно активирует код приглашения пользователем.
//
// Код блокируется на время транзакции. Неизвестный код возвращает
// errs.ErrNotFound, исчерпанный errs.ErrConflict. Пользователь без группы
// получает группу кода и срок подписки. Счётчик активаций уменьшается
// в любом случае, даже если пользователь уже состоял в группе.
func (s *Storage) RedeemInvitationToken(ctx context.Context, userUID, token string) (int, error) {
	const op = "storage.RedeemInvitationToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var groupUID string
	var remaining int
	var expires sql.NullTime
	query := `SELECT group_uid, remaining_activations, expires
			  FROM invitation_tokens
			  WHERE token = $1
			  FOR UPDATE`
	if err = tx.QueryRowContext(ctx, query, token).Scan(&groupUID, &remaining, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, errs.ErrNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if remaining == 0 {
		return 0, fmt.Errorf("%s: limit exceeded: %w", op, errs.ErrConflict)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users
		 SET group_uid = $1, subscription_expires = $2
		 WHERE uid = $3 AND group_uid IS NULL`,
		groupUID, expires, userUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.QueryRowContext(ctx,
		`UPDATE invitation_tokens
		 SET remaining_activations = remaining_activations - 1
		 WHERE token = $1
		 RETURNING remaining_activations`, token).Scan(&remaining); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return remaining, nil
}
