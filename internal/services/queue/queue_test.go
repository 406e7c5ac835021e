package queue_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
	"github.com/bounchich1/queue-project-backend/internal/services/queue"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateQueueEntry(ctx context.Context, entry models.QueueEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *RepoMock) ListQueueEntries(ctx context.Context, subjectID int, groupUID string) ([]models.QueueEntryView, error) {
	args := m.Called(ctx, subjectID, groupUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QueueEntryView), args.Error(1)
}

func (m *RepoMock) DeleteQueueEntry(ctx context.Context, userUID string, subjectID int, groupUID string) error {
	args := m.Called(ctx, userUID, subjectID, groupUID)
	return args.Error(0)
}

func (m *RepoMock) CreateSubject(ctx context.Context, subject models.Subject) (int, error) {
	args := m.Called(ctx, subject)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) UpdateSubject(ctx context.Context, subject models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

func (m *RepoMock) ListSubjects(ctx context.Context, groupUID string) ([]models.SubjectView, error) {
	args := m.Called(ctx, groupUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubjectView), args.Error(1)
}

func (m *RepoMock) GetSubject(ctx context.Context, subjectID int, groupUID string) (*models.Subject, error) {
	args := m.Called(ctx, subjectID, groupUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func groupedUser() *models.User {
	groupUID := "group-1"
	return &models.User{
		UID:      "user-1",
		Email:    "user@example.com",
		Role:     "user",
		GroupUID: &groupUID,
	}
}

var testSubject = &models.Subject{
	ID:               3,
	GroupUID:         "group-1",
	SubjectFullName:  "Математический анализ",
	SubjectShortName: "Матан",
}

func TestQueueService_Join(t *testing.T) {
	expected := []models.QueueEntryView{
		{Position: 1, TaskNumber: 2, FirstName: "Ivan", LastName: "Petrov"},
	}

	t.Run("joins and returns the queue", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("GetSubject", mock.Anything, 3, "group-1").Return(testSubject, nil).Once()
		repo.On("CreateQueueEntry", mock.Anything, mock.MatchedBy(func(entry models.QueueEntry) bool {
			return entry.UserUID == "user-1" &&
				entry.GroupUID == "group-1" &&
				entry.SubjectID == 3 &&
				entry.TaskNumber == 2 &&
				entry.Position == 1
		})).Return(nil).Once()
		repo.On("ListQueueEntries", mock.Anything, 3, "group-1").Return(expected, nil).Once()

		got, err := svc.Join(context.Background(), groupedUser(), 3, 2)
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		repo.AssertExpectations(t)
	})

	t.Run("user without group is forbidden", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		_, err := svc.Join(context.Background(), &models.User{UID: "user-1"}, 3, 2)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown subject", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("GetSubject", mock.Anything, 99, "group-1").Return(nil, errs.ErrNotFound).Once()

		_, err := svc.Join(context.Background(), groupedUser(), 99, 2)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("double join conflicts", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("GetSubject", mock.Anything, 3, "group-1").Return(testSubject, nil).Once()
		repo.On("CreateQueueEntry", mock.Anything, mock.Anything).Return(errs.ErrConflict).Once()

		_, err := svc.Join(context.Background(), groupedUser(), 3, 2)
		assert.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertExpectations(t)
	})
}

func TestQueueService_Complete(t *testing.T) {
	t.Run("removes own entry and returns the rest", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())
		rest := []models.QueueEntryView{
			{Position: 1, TaskNumber: 1, FirstName: "Anna", LastName: "Sidorova"},
		}

		repo.On("DeleteQueueEntry", mock.Anything, "user-1", 3, "group-1").Return(nil).Once()
		repo.On("ListQueueEntries", mock.Anything, 3, "group-1").Return(rest, nil).Once()

		got, err := svc.Complete(context.Background(), groupedUser(), 3)
		assert.NoError(t, err)
		assert.Equal(t, rest, got)
		repo.AssertExpectations(t)
	})

	t.Run("missing entry returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("DeleteQueueEntry", mock.Anything, "user-1", 3, "group-1").Return(errs.ErrNotFound).Once()

		_, err := svc.Complete(context.Background(), groupedUser(), 3)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})
}

func TestQueueService_ListSubjects(t *testing.T) {
	subjects := []models.SubjectView{
		{ID: 3, SubjectFullName: "Математический анализ", SubjectShortName: "Матан"},
	}

	t.Run("cache miss goes to repository and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		cache.On("Get", mock.Anything, "subjects:group-1", mock.Anything).Return(false, nil).Once()
		repo.On("ListSubjects", mock.Anything, "group-1").Return(subjects, nil).Once()
		cache.On("Set", mock.Anything, "subjects:group-1", subjects, time.Hour).Return(nil).Once()

		got, err := svc.ListSubjects(context.Background(), groupedUser())
		assert.NoError(t, err)
		assert.Equal(t, subjects, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		cache.On("Get", mock.Anything, "subjects:group-1", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(*[]models.SubjectView)
				*out = subjects
			}).Return(true, nil).Once()

		got, err := svc.ListSubjects(context.Background(), groupedUser())
		assert.NoError(t, err)
		assert.Equal(t, subjects, got)
		cache.AssertExpectations(t)
		repo.AssertNotCalled(t, "ListSubjects", mock.Anything, mock.Anything)
	})
}

func TestQueueService_AddSubject(t *testing.T) {
	req := models.SubjectRequest{
		SubjectFullName:  "Теория вероятностей",
		SubjectShortName: "Тервер",
	}

	t.Run("creates subject and invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("CreateSubject", mock.Anything, mock.MatchedBy(func(s models.Subject) bool {
			return s.GroupUID == "group-1" && s.SubjectFullName == "Теория вероятностей"
		})).Return(11, nil).Once()
		cache.On("Invalidate", mock.Anything, "subjects:group-1").Return(nil).Once()

		id, err := svc.AddSubject(context.Background(), groupedUser(), req)
		assert.NoError(t, err)
		assert.Equal(t, 11, id)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("duplicate subject conflicts", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("CreateSubject", mock.Anything, mock.Anything).Return(0, errs.ErrConflict).Once()

		_, err := svc.AddSubject(context.Background(), groupedUser(), req)
		assert.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertExpectations(t)
	})
}

func TestQueueService_UpdateSubject(t *testing.T) {
	req := models.UpdateSubjectRequest{
		ID:               3,
		SubjectFullName:  "Математический анализ II",
		SubjectShortName: "Матан",
	}

	t.Run("updates within the group and invalidates cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("UpdateSubject", mock.Anything, mock.MatchedBy(func(s models.Subject) bool {
			return s.ID == 3 && s.GroupUID == "group-1"
		})).Return(nil).Once()
		cache.On("Invalidate", mock.Anything, "subjects:group-1").Return(nil).Once()

		err := svc.UpdateSubject(context.Background(), groupedUser(), req)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("subject of another group is not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := queue.NewQueueService(repo, cache, discardLogger())

		repo.On("UpdateSubject", mock.Anything, mock.Anything).Return(errs.ErrNotFound).Once()

		err := svc.UpdateSubject(context.Background(), groupedUser(), req)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})
}
