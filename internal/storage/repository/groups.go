package repository

import (
	"context"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// GetGroup возвращает группу по её UID или errs.ErrNotFound.
func (s *Storage) GetGroup(ctx context.Context, groupUID string) (*models.Group, error) {
	const op = "storage.GetGroup"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT group_uid, group_number FROM groups WHERE group_uid = $1`
	g := &models.Group{}
	if err := s.DB.QueryRowContext(ctx, query, groupUID).Scan(&g.GroupUID, &g.GroupNumber); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return g, nil
}

// UpdateGroupNumber изменяет отображаемый номер группы.
func (s *Storage) UpdateGroupNumber(ctx context.Context, groupUID, groupNumber string) error {
	const op = "storage.UpdateGroupNumber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE groups SET group_number = $1 WHERE group_uid = $2`, groupNumber, groupUID)
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
