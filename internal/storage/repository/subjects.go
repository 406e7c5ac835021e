package repository

import (
	"context"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// CreateSubject сохраняет новый предмет группы и возвращает его ID.
// Повтор тройки (группа, полное имя, короткое имя) возвращает errs.ErrConflict.
func (s *Storage) CreateSubject(ctx context.Context, subject models.Subject) (int, error) {
	const op = "storage.CreateSubject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO subjects (group_uid, subject_full_name, subject_short_name)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		subject.GroupUID, subject.SubjectFullName, subject.SubjectShortName).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, classify(err))
	}
	return newID, nil
}

// UpdateSubject изменяет названия предмета в пределах группы.
// Возвращает errs.ErrNotFound, если предмет не принадлежит группе.
func (s *Storage) UpdateSubject(ctx context.Context, subject models.Subject) error {
	const op = "storage.UpdateSubject"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subjects
			  SET subject_full_name = $1, subject_short_name = $2
			  WHERE id = $3 AND group_uid = $4`
	result, err := s.DB.ExecContext(ctx, query,
		subject.SubjectFullName, subject.SubjectShortName, subject.ID, subject.GroupUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
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

// ListSubjects возвращает предметы группы.
func (s *Storage) ListSubjects(ctx context.Context, groupUID string) ([]models.SubjectView, error) {
	const op = "storage.ListSubjects"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subject_full_name, subject_short_name
			  FROM subjects
			  WHERE group_uid = $1
			  ORDER BY subject_full_name`
	rows, err := s.DB.QueryContext(ctx, query, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.SubjectView
	for rows.Next() {
		var sv models.SubjectView
		if err = rows.Scan(&sv.ID, &sv.SubjectFullName, &sv.SubjectShortName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetSubject возвращает предмет по ID в пределах группы.
func (s *Storage) GetSubject(ctx context.Context, subjectID int, groupUID string) (*models.Subject, error) {
	const op = "storage.GetSubject"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, group_uid, subject_full_name, subject_short_name
			  FROM subjects
			  WHERE id = $1 AND group_uid = $2`
	sub := &models.Subject{}
	if err := s.DB.QueryRowContext(ctx, query, subjectID, groupUID).Scan(
		&sub.ID, &sub.GroupUID, &sub.SubjectFullName, &sub.SubjectShortName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return sub, nil
}
