// Package queue содержит бизнес-логику очередей по предметам:
// вступление, просмотр, выход и CRUD предметов группы.
package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Repository описывает контракт хранилища для очередей и предметов.
type Repository interface {
	// CreateQueueEntry вставляет запись, повтор дает errs.ErrConflict.
	CreateQueueEntry(ctx context.Context, entry models.QueueEntry) error
	// ListQueueEntries возвращает очередь предмета в порядке вступления.
	ListQueueEntries(ctx context.Context, subjectID int, groupUID string) ([]models.QueueEntryView, error)
	// DeleteQueueEntry удаляет собственную запись, отсутствие дает errs.ErrNotFound.
	DeleteQueueEntry(ctx context.Context, userUID string, subjectID int, groupUID string) error
	// CreateSubject сохраняет предмет, повтор тройки дает errs.ErrConflict.
	CreateSubject(ctx context.Context, subject models.Subject) (int, error)
	// UpdateSubject изменяет названия предмета в пределах группы.
	UpdateSubject(ctx context.Context, subject models.Subject) error
	// ListSubjects возвращает предметы группы.
	ListSubjects(ctx context.Context, groupUID string) ([]models.SubjectView, error)
	// GetSubject возвращает предмет по ID в пределах группы.
	GetSubject(ctx context.Context, subjectID int, groupUID string) (*models.Subject, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// QueueService реализует операции над очередями и предметами группы.
type QueueService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewQueueService создает новый экземпляр QueueService.
func NewQueueService(repo Repository, cache Cache, log *slog.Logger) *QueueService {
	return &QueueService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// groupOf возвращает группу пользователя или errs.ErrForbidden,
// если пользователь еще не вступил ни в одну группу.
func groupOf(user *models.User) (string, error) {
	if user.GroupUID == nil {
		return "", fmt.Errorf("user has no group: %w", errs.ErrForbidden)
	}
	return *user.GroupUID, nil
}

// Join ставит пользователя в очередь предмета и возвращает обновленную очередь.
//
// Хранимая позиция всегда 1: порядок определяется моментом вставки,
// который назначает база атомарно. Повторное вступление без выхода
// возвращает errs.ErrConflict от уникального ограничения, поэтому два
// одновременных вступления одного пользователя не могут пройти оба.
func (s *QueueService) Join(ctx context.Context, user *models.User, subjectID, taskNumber int) ([]models.QueueEntryView, error) {
	const op = "queue.Join"
	groupUID, err := groupOf(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err = s.repo.GetSubject(ctx, subjectID, groupUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entry := models.QueueEntry{
		UserUID:    user.UID,
		GroupUID:   groupUID,
		SubjectID:  subjectID,
		Position:   1,
		TaskNumber: taskNumber,
	}
	if err = s.repo.CreateQueueEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user joined queue",
		slog.String("user", user.UID), slog.Int("subject", subjectID))

	return s.repo.ListQueueEntries(ctx, subjectID, groupUID)
}

// View возвращает очередь предмета без побочных эффектов.
func (s *QueueService) View(ctx context.Context, user *models.User, subjectID int) ([]models.QueueEntryView, error) {
	const op = "queue.View"
	groupUID, err := groupOf(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.ListQueueEntries(ctx, subjectID, groupUID)
}

// Complete убирает собственную запись пользователя из очереди предмета
// и возвращает оставшуюся очередь. Отсутствие записи дает errs.ErrNotFound.
func (s *QueueService) Complete(ctx context.Context, user *models.User, subjectID int) ([]models.QueueEntryView, error) {
	const op = "queue.Complete"
	groupUID, err := groupOf(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.repo.DeleteQueueEntry(ctx, user.UID, subjectID, groupUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user left queue",
		slog.String("user", user.UID), slog.Int("subject", subjectID))

	return s.repo.ListQueueEntries(ctx, subjectID, groupUID)
}

func subjectsCacheKey(groupUID string) string {
	return fmt.Sprintf("subjects:%s", groupUID)
}

// AddSubject создает предмет в группе пользователя и возвращает его ID.
// Повтор тройки (группа, полное имя, короткое имя) дает errs.ErrConflict.
func (s *QueueService) AddSubject(ctx context.Context, user *models.User, req models.SubjectRequest) (int, error) {
	const op = "queue.AddSubject"
	groupUID, err := groupOf(user)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	subject := models.Subject{
		GroupUID:         groupUID,
		SubjectFullName:  req.SubjectFullName,
		SubjectShortName: req.SubjectShortName,
	}
	id, err := s.repo.CreateSubject(ctx, subject)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.cache.Invalidate(ctx, subjectsCacheKey(groupUID)); err != nil {
		s.log.Warn("failed to invalidate subjects cache",
			slog.String("group", groupUID), slog.Any("err", err))
	}
	return id, nil
}

// UpdateSubject изменяет названия предмета группы пользователя.
// Проверяется только членство в группе, владение предметом не проверяется.
func (s *QueueService) UpdateSubject(ctx context.Context, user *models.User, req models.UpdateSubjectRequest) error {
	const op = "queue.UpdateSubject"
	groupUID, err := groupOf(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subject := models.Subject{
		ID:               req.ID,
		GroupUID:         groupUID,
		SubjectFullName:  req.SubjectFullName,
		SubjectShortName: req.SubjectShortName,
	}
	if err = s.repo.UpdateSubject(ctx, subject); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = s.cache.Invalidate(ctx, subjectsCacheKey(groupUID)); err != nil {
		s.log.Warn("failed to invalidate subjects cache",
			slog.String("group", groupUID), slog.Any("err", err))
	}
	return nil
}

// ListSubjects возвращает предметы группы пользователя, используя кеш.
func (s *QueueService) ListSubjects(ctx context.Context, user *models.User) ([]models.SubjectView, error) {
	const op = "queue.ListSubjects"
	groupUID, err := groupOf(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheKey := subjectsCacheKey(groupUID)
	var cached []models.SubjectView
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read subjects cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	subjects, err := s.repo.ListSubjects(ctx, groupUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = s.cache.Set(ctx, cacheKey, subjects, time.Hour); err != nil {
		s.log.Warn("failed to cache subjects", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return subjects, nil
}
