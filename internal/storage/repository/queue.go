package repository

import (
	"context"
	"fmt"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// CreateQueueEntry вставляет новую запись в очередь предмета.
//
// Повторное вступление того же пользователя в ту же очередь упирается
// в уникальный индекс (user_uid, subject_id, group_uid) и возвращает
// errs.ErrConflict. Момент created_at назначает база, порядок вставки
// и есть порядок очереди.
func (s *Storage) CreateQueueEntry(ctx context.Context, entry models.QueueEntry) error {
	const op = "storage.CreateQueueEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO queue_entries (user_uid, group_uid, subject_id, position, task_number)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		entry.UserUID, entry.GroupUID, entry.SubjectID, entry.Position,
		entry.TaskNumber); err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// ListQueueEntries возвращает очередь предмета в порядке вступления.
//
// Имена подтягиваются из users в момент чтения. Порядок: created_at,
// затем task_number, затем id как детерминированный финальный разрешитель.
func (s *Storage) ListQueueEntries(ctx context.Context, subjectID int, groupUID string) ([]models.QueueEntryView, error) {
	const op = "storage.ListQueueEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT q.position, q.task_number, u.first_name, u.last_name
			  FROM queue_entries q
			  JOIN users u ON u.uid = q.user_uid
			  WHERE q.subject_id = $1 AND q.group_uid = $2
			  ORDER BY q.created_at, q.task_number, q.id`
	rows, err := s.DB.QueryContext(ctx, query, subjectID, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []models.QueueEntryView
	for rows.Next() {
		var qv models.QueueEntryView
		if err = rows.Scan(&qv.Position, &qv.TaskNumber, &qv.FirstName, &qv.LastName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, qv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteQueueEntry удаляет собственную запись пользователя из очереди.
// Возвращает errs.ErrNotFound, если записи не было.
func (s *Storage) DeleteQueueEntry(ctx context.Context, userUID string, subjectID int, groupUID string) error {
	const op = "storage.DeleteQueueEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM queue_entries
			  WHERE user_uid = $1 AND subject_id = $2 AND group_uid = $3`
	result, err := s.DB.ExecContext(ctx, query, userUID, subjectID, groupUID)
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
