package repository

import (
	"context"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/models"
)

// ActivateSubscription атомарно создает подписку владельца.
//
// Если createGroup не nil, группа создается в той же транзакции и
// назначается пользователю вместе с ролью "moderator" и сроком подписки.
// Вторая подписка на того же владельца упирается в уникальный индекс
// по owner_uid и возвращает errs.ErrConflict, не оставляя полусозданной группы.
func (s *Storage) ActivateSubscription(ctx context.Context, sub models.Subscription, createGroup *models.Group) (int, error) {
	const op = "storage.ActivateSubscription"
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

	if createGroup != nil {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO groups (group_uid, group_number) VALUES ($1, $2)`,
			createGroup.GroupUID, createGroup.GroupNumber); err != nil {
			return 0, fmt.Errorf("%s: %w", op, classify(err))
		}
	}

	var newID int
	query := `INSERT INTO subscriptions (owner_uid, group_uid, tier, group_population,
			      months, created_at, expires)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err = tx.QueryRowContext(ctx, query,
		sub.OwnerUID, sub.GroupUID, sub.Tier, sub.GroupPopulation,
		sub.Months, sub.CreatedAt, sub.Expires).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, classify(err))
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users
		 SET group_uid = COALESCE(group_uid, $1),
			 role = 'moderator',
			 subscription_expires = $2
		 WHERE uid = $3`,
		sub.GroupUID, sub.Expires, sub.OwnerUID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscriptionByOwner возвращает подписку владельца или errs.ErrNotFound.
func (s *Storage) GetSubscriptionByOwner(ctx context.Context, ownerUID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByOwner"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, owner_uid, group_uid, tier, group_population, months,
			      created_at, expires
			  FROM subscriptions
			  WHERE owner_uid = $1`
	sub := &models.Subscription{}
	if err := s.DB.QueryRowContext(ctx, query, ownerUID).Scan(
		&sub.ID, &sub.OwnerUID, &sub.GroupUID, &sub.Tier, &sub.GroupPopulation,
		&sub.Months, &sub.CreatedAt, &sub.Expires); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return sub, nil
}
