// Package group содержит бизнес-логику членства в группах: активацию
// подписок, выпуск и активацию кодов приглашений, управление номером группы.
package group

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bounchich1/queue-project-backend/internal/lib/errs"
	"github.com/bounchich1/queue-project-backend/internal/lib/invite"
	"github.com/bounchich1/queue-project-backend/internal/lib/sl"
	"github.com/bounchich1/queue-project-backend/internal/models"
)

// Repository описывает контракт хранилища для групп, подписок и кодов приглашений.
type Repository interface {
	// ActivateSubscription атомарно создает подписку, группу и обновляет владельца.
	ActivateSubscription(ctx context.Context, sub models.Subscription, createGroup *models.Group) (int, error)
	// GetSubscriptionByOwner возвращает подписку владельца или errs.ErrNotFound.
	GetSubscriptionByOwner(ctx context.Context, ownerUID string) (*models.Subscription, error)
	// CreateInvitationToken сохраняет новый код приглашения.
	CreateInvitationToken(ctx context.Context, token models.InvitationToken) error
	// GetLatestTokenByOwner возвращает последний выпущенный владельцем код.
	GetLatestTokenByOwner(ctx context.Context, ownerUID string) (*models.InvitationToken, error)
	// RedeemInvitationToken активирует код и возвращает остаток активаций.
	RedeemInvitationToken(ctx context.Context, userUID, token string) (int, error)
	// GetGroup возвращает группу по UID.
	GetGroup(ctx context.Context, groupUID string) (*models.Group, error)
	// UpdateGroupNumber изменяет отображаемый номер группы.
	UpdateGroupNumber(ctx context.Context, groupUID, groupNumber string) error
	// ListGroupMembers возвращает имена участников группы.
	ListGroupMembers(ctx context.Context, groupUID string) ([]models.MemberView, error)
	// DeleteUser удаляет пользователя по UID.
	DeleteUser(ctx context.Context, userUID string) error
}

// InvitePublisher публикует событие о выпуске кода приглашения.
type InvitePublisher interface {
	PublishInvite(event models.InviteEvent) error
}

// GroupService реализует операции над группами и подписками.
type GroupService struct {
	repo      Repository
	publisher InvitePublisher
	log       *slog.Logger
}

// NewGroupService создает новый экземпляр GroupService.
// publisher может быть nil, тогда письма с кодами не отправляются.
func NewGroupService(repo Repository, publisher InvitePublisher, log *slog.Logger) *GroupService {
	return &GroupService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ActivateSubscription активирует подписку пользователя.
//
// Пользователь без группы получает новую группу с переданным номером,
// создание группы и вставка подписки идут одной транзакцией. Срок
// подписки считается календарными месяцами. Вторая подписка того же
// владельца возвращает errs.ErrConflict.
func (s *GroupService) ActivateSubscription(ctx context.Context, user *models.User, req models.ActivateSubscriptionRequest) (*models.Subscription, error) {
	const op = "group.ActivateSubscription"

	var createGroup *models.Group
	var groupUID string
	if user.GroupUID != nil {
		groupUID = *user.GroupUID
	} else {
		groupUID = uuid.New().String()
		createGroup = &models.Group{
			GroupUID:    groupUID,
			GroupNumber: req.GroupNumber,
		}
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		OwnerUID:        user.UID,
		GroupUID:        groupUID,
		Tier:            req.Tier,
		GroupPopulation: req.GroupPopulation,
		Months:          req.Months,
		CreatedAt:       now,
		Expires:         now.AddDate(0, req.Months, 0),
	}
	id, err := s.repo.ActivateSubscription(ctx, sub, createGroup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.ID = id

	s.log.Info("subscription activated",
		slog.String("owner", user.UID), slog.Int("months", req.Months))
	return &sub, nil
}

// GetSubscription возвращает подписку, которой владеет пользователь.
func (s *GroupService) GetSubscription(ctx context.Context, user *models.User) (*models.Subscription, error) {
	return s.repo.GetSubscriptionByOwner(ctx, user.UID)
}

// CreateInvitationToken выпускает новый код приглашения по подписке пользователя.
//
// Без собственной подписки возвращает errs.ErrNotFound. Число активаций
// равно group_population подписки, срок копируется из подписки. Сбой
// публикации события для письма логируется и не отменяет выпуск кода.
func (s *GroupService) CreateInvitationToken(ctx context.Context, user *models.User) (*models.InvitationToken, error) {
	const op = "group.CreateInvitationToken"
	sub, err := s.repo.GetSubscriptionByOwner(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	code, err := invite.NewToken()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	token := models.InvitationToken{
		Token:                code,
		GroupUID:             sub.GroupUID,
		OwnerUID:             user.UID,
		RemainingActivations: sub.GroupPopulation,
		Expires:              sub.Expires,
		CreatedAt:            time.Now().UTC(),
	}
	if err = s.repo.CreateInvitationToken(ctx, token); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.publisher != nil {
		event := models.InviteEvent{
			Email:     user.Email,
			FirstName: user.FirstName,
			Token:     token.Token,
			Expires:   token.Expires,
		}
		if err = s.publisher.PublishInvite(event); err != nil {
			s.log.Warn("failed to publish invite event", sl.Err(err))
		}
	}

	s.log.Info("invitation token created", slog.String("owner", user.UID))
	return &token, nil
}

// GetInvitationToken возвращает последний выпущенный пользователем код.
func (s *GroupService) GetInvitationToken(ctx context.Context, user *models.User) (*models.InvitationToken, error) {
	return s.repo.GetLatestTokenByOwner(ctx, user.UID)
}

// RedeemInvitationToken активирует код приглашения для пользователя.
// Возвращает остаток активаций после списания.
func (s *GroupService) RedeemInvitationToken(ctx context.Context, user *models.User, token string) (int, error) {
	const op = "group.RedeemInvitationToken"
	remaining, err := s.repo.RedeemInvitationToken(ctx, user.UID, token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("invitation token redeemed",
		slog.String("user", user.UID), slog.Int("remaining", remaining))
	return remaining, nil
}

// SetGroupName изменяет отображаемый номер группы пользователя.
// Пользователь без группы получает errs.ErrNotFound.
func (s *GroupService) SetGroupName(ctx context.Context, user *models.User, groupNumber string) error {
	const op = "group.SetGroupName"
	if user.GroupUID == nil {
		return fmt.Errorf("%s: user has no group: %w", op, errs.ErrNotFound)
	}
	if err := s.repo.UpdateGroupNumber(ctx, *user.GroupUID, groupNumber); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetGroupNumber возвращает отображаемый номер группы пользователя.
func (s *GroupService) GetGroupNumber(ctx context.Context, user *models.User) (string, error) {
	const op = "group.GetGroupNumber"
	if user.GroupUID == nil {
		return "", fmt.Errorf("%s: user has no group: %w", op, errs.ErrNotFound)
	}
	g, err := s.repo.GetGroup(ctx, *user.GroupUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return g.GroupNumber, nil
}

// ListGroupMembers возвращает имена участников группы пользователя.
func (s *GroupService) ListGroupMembers(ctx context.Context, user *models.User) ([]models.MemberView, error) {
	const op = "group.ListGroupMembers"
	if user.GroupUID == nil {
		return nil, fmt.Errorf("%s: user has no group: %w", op, errs.ErrNotFound)
	}
	return s.repo.ListGroupMembers(ctx, *user.GroupUID)
}

// DeleteUser удаляет пользователя по UID.
// Операция не проверяет ни аутентификацию, ни группу вызывающего.
func (s *GroupService) DeleteUser(ctx context.Context, userUID string) error {
	return s.repo.DeleteUser(ctx, userUID)
}
