package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/samber/lo"
)

// NotificationService lists and acknowledges the caller's notifications.
// Notifications are written by the services whose actions trigger them.
type NotificationService struct {
	base
}

func NewNotificationService(d Deps, identity *IdentityResolver) *NotificationService {
	return &NotificationService{base: newBase(d, identity, "notifications")}
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, sess *models.Session) ([]NotificationView, error) {
	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Notifications.GetByRecipientID(ctx, callerID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch notifications")
	}
	return lo.Map(rows, func(n models.Notification, _ int) NotificationView {
		return toNotificationView(n)
	}), nil
}

// MarkRead flags ids as read. Ids addressed to other users are ignored.
func (s *NotificationService) MarkRead(ctx context.Context, sess *models.Session, ids []string) (updated int64, err error) {
	defer func() { observability.RecordAction("mark_notifications_read", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return 0, err
	}
	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return 0, models.NewValidationError("At least one notification id is required")
	}
	updated, err = s.store.Notifications.MarkAsRead(ctx, callerID, ids)
	if err != nil {
		return 0, s.storageError(err, "Failed to mark notifications as read")
	}
	return updated, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, sess *models.Session) (int64, error) {
	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return 0, err
	}
	count, err := s.store.Notifications.GetUnreadCount(ctx, callerID)
	if err != nil {
		return 0, s.storageError(err, "Failed to count notifications")
	}
	return count, nil
}
