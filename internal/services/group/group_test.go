package group_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/models"
	"github.com/bounchich1/queue-project-backend/internal/services/group"
)

// Мок для Repository
type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) ActivateSubscription(ctx context.Context, sub models.Subscription, createGroup *models.Group) (int, error) {
	args := m.Called(ctx, sub, createGroup)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetSubscriptionByOwner(ctx context.Context, ownerUID string) (*models.Subscription, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *RepoMock) CreateInvitationToken(ctx context.Context, token models.InvitationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RepoMock) GetLatestTokenByOwner(ctx context.Context, ownerUID string) (*models.InvitationToken, error) {
	args := m.Called(ctx, ownerUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvitationToken), args.Error(1)
}

func (m *RepoMock) RedeemInvitationToken(ctx context.Context, userUID, token string) (int, error) {
	args := m.Called(ctx, userUID, token)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetGroup(ctx context.Context, groupUID string) (*models.Group, error) {
	args := m.Called(ctx, groupUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *RepoMock) UpdateGroupNumber(ctx context.Context, groupUID, groupNumber string) error {
	args := m.Called(ctx, groupUID, groupNumber)
	return args.Error(0)
}

func (m *RepoMock) ListGroupMembers(ctx context.Context, groupUID string) ([]models.MemberView, error) {
	args := m.Called(ctx, groupUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MemberView), args.Error(1)
}

func (m *RepoMock) DeleteUser(ctx context.Context, userUID string) error {
	args := m.Called(ctx, userUID)
	return args.Error(0)
}

// Мок для InvitePublisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishInvite(event models.InviteEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func groupedUser(groupUID string) *models.User {
	return &models.User{
		UID:      "owner-uid",
		Email:    "owner@example.com",
		Role:     "moderator",
		GroupUID: &groupUID,
	}
}

func TestGroupService_ActivateSubscription(t *testing.T) {
	req := models.ActivateSubscriptionRequest{
		Tier:            1,
		Months:          6,
		GroupPopulation: 25,
		GroupNumber:     "БИВТ-21-16",
	}

	t.Run("user without group gets a new group", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := &models.User{UID: "owner-uid", Email: "owner@example.com", Role: "user"}

		repo.On("ActivateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
			return sub.OwnerUID == "owner-uid" &&
				sub.Months == 6 &&
				sub.GroupPopulation == 25 &&
				sub.Expires.Equal(sub.CreatedAt.AddDate(0, 6, 0))
		}), mock.MatchedBy(func(g *models.Group) bool {
			return g != nil && g.GroupNumber == "БИВТ-21-16" && g.GroupUID != ""
		})).Return(7, nil).Once()

		sub, err := svc.ActivateSubscription(context.Background(), user, req)
		assert.NoError(t, err)
		assert.Equal(t, 7, sub.ID)
		assert.NotEmpty(t, sub.GroupUID)
		repo.AssertExpectations(t)
	})

	t.Run("grouped user keeps the existing group", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("ActivateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
			return sub.GroupUID == "group-1"
		}), (*models.Group)(nil)).Return(8, nil).Once()

		sub, err := svc.ActivateSubscription(context.Background(), user, req)
		assert.NoError(t, err)
		assert.Equal(t, "group-1", sub.GroupUID)
		repo.AssertExpectations(t)
	})

	t.Run("second subscription conflicts", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("ActivateSubscription", mock.Anything, mock.Anything, mock.Anything).
			Return(0, errs.ErrConflict).Once()

		_, err := svc.ActivateSubscription(context.Background(), user, req)
		assert.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertExpectations(t)
	})
}

func TestGroupService_CreateInvitationToken(t *testing.T) {
	sub := &models.Subscription{
		ID:              7,
		OwnerUID:        "owner-uid",
		GroupUID:        "group-1",
		GroupPopulation: 25,
		Expires:         time.Now().UTC().Add(24 * time.Hour),
	}

	t.Run("token copies limits from subscription", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("GetSubscriptionByOwner", mock.Anything, "owner-uid").Return(sub, nil).Once()
		repo.On("CreateInvitationToken", mock.Anything, mock.MatchedBy(func(token models.InvitationToken) bool {
			return token.GroupUID == "group-1" &&
				token.OwnerUID == "owner-uid" &&
				token.RemainingActivations == 25 &&
				token.Expires.Equal(sub.Expires) &&
				len(token.Token) == 10
		})).Return(nil).Once()

		token, err := svc.CreateInvitationToken(context.Background(), user)
		assert.NoError(t, err)
		assert.Len(t, token.Token, 10)
		repo.AssertExpectations(t)
	})

	t.Run("without subscription returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("GetSubscriptionByOwner", mock.Anything, "owner-uid").Return(nil, errs.ErrNotFound).Once()

		_, err := svc.CreateInvitationToken(context.Background(), user)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertExpectations(t)
	})

	t.Run("publish failure does not cancel the token", func(t *testing.T) {
		repo := new(RepoMock)
		publisher := new(PublisherMock)
		svc := group.NewGroupService(repo, publisher, discardLogger())
		user := groupedUser("group-1")

		repo.On("GetSubscriptionByOwner", mock.Anything, "owner-uid").Return(sub, nil).Once()
		repo.On("CreateInvitationToken", mock.Anything, mock.Anything).Return(nil).Once()
		publisher.On("PublishInvite", mock.MatchedBy(func(event models.InviteEvent) bool {
			return event.Email == "owner@example.com"
		})).Return(errors.New("broker down")).Once()

		token, err := svc.CreateInvitationToken(context.Background(), user)
		assert.NoError(t, err)
		assert.NotNil(t, token)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})
}

func TestGroupService_RedeemInvitationToken(t *testing.T) {
	t.Run("returns remaining activations", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := &models.User{UID: "user-uid"}

		repo.On("RedeemInvitationToken", mock.Anything, "user-uid", "a1b2c3d4e5").Return(4, nil).Once()

		remaining, err := svc.RedeemInvitationToken(context.Background(), user, "a1b2c3d4e5")
		assert.NoError(t, err)
		assert.Equal(t, 4, remaining)
		repo.AssertExpectations(t)
	})

	t.Run("exhausted token conflicts", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := &models.User{UID: "user-uid"}

		repo.On("RedeemInvitationToken", mock.Anything, "user-uid", "a1b2c3d4e5").
			Return(0, errs.ErrConflict).Once()

		_, err := svc.RedeemInvitationToken(context.Background(), user, "a1b2c3d4e5")
		assert.ErrorIs(t, err, errs.ErrConflict)
		repo.AssertExpectations(t)
	})
}

func TestGroupService_GroupNumber(t *testing.T) {
	t.Run("set without group returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())

		err := svc.SetGroupName(context.Background(), &models.User{UID: "u"}, "БИВТ-21-16")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("get returns stored number", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("GetGroup", mock.Anything, "group-1").
			Return(&models.Group{GroupUID: "group-1", GroupNumber: "БИВТ-21-16"}, nil).Once()

		number, err := svc.GetGroupNumber(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, "БИВТ-21-16", number)
		repo.AssertExpectations(t)
	})

	t.Run("set delegates to repository", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")

		repo.On("UpdateGroupNumber", mock.Anything, "group-1", "БИВТ-22-1").Return(nil).Once()

		err := svc.SetGroupName(context.Background(), user, "БИВТ-22-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGroupService_ListGroupMembers(t *testing.T) {
	t.Run("without group returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())

		_, err := svc.ListGroupMembers(context.Background(), &models.User{UID: "u"})
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("returns members of the group", func(t *testing.T) {
		repo := new(RepoMock)
		svc := group.NewGroupService(repo, nil, discardLogger())
		user := groupedUser("group-1")
		members := []models.MemberView{
			{FirstName: "Ivan", LastName: "Petrov"},
			{FirstName: "Anna", LastName: "Sidorova"},
		}

		repo.On("ListGroupMembers", mock.Anything, "group-1").Return(members, nil).Once()

		got, err := svc.ListGroupMembers(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, members, got)
		repo.AssertExpectations(t)
	})
}
