// Package services holds the social domain operations: identity resolution,
// the follow graph, posts and comments, likes and notification fan-out.
package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/notifications"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Store       *repositories.Store
	Revalidator revalidate.Revalidator
	Notifier    *notifications.Notifier
	Log         zerolog.Logger
}

type base struct {
	store       *repositories.Store
	identity    *IdentityResolver
	revalidator revalidate.Revalidator
	notifier    *notifications.Notifier
	log         zerolog.Logger
}

func newBase(d Deps, identity *IdentityResolver, component string) base {
	rv := d.Revalidator
	if rv == nil {
		rv = revalidate.NewLogRevalidator(d.Log)
	}
	return base{
		store:       d.Store,
		identity:    identity,
		revalidator: rv,
		notifier:    d.Notifier,
		log:         d.Log.With().Str("component", component).Logger(),
	}
}

// revalidate never fails the caller; a stale page is not worth an error.
func (b *base) revalidate(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := b.revalidator.Revalidate(ctx, p); err != nil {
			b.log.Warn().Err(err).Str("path", p).Msg("revalidation failed")
		}
	}
}

// storageError logs the cause and hides it behind message.
func (b *base) storageError(err error, message string) error {
	b.log.Error().Err(err).Msg(message)
	return models.NewStorageError(message, err)
}

// lookupError turns a missing row into NotFoundError and anything else into StorageError.
func (b *base) lookupError(err error, resource, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return b.storageError(err, "Failed to load "+resource)
}

// fanOut writes n inside tx unless the actor is also the recipient.
// It returns the written notification, or nil when suppressed.
func fanOut(ctx context.Context, tx *repositories.Store, n *models.Notification) (*models.Notification, error) {
	if n.ActorID == n.RecipientID {
		return nil, nil
	}
	if err := tx.Notifications.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// deliver runs after commit: it counts and publishes a fanned-out notification.
func (b *base) deliver(ctx context.Context, n *models.Notification) {
	if n == nil {
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	if err := b.notifier.PublishUser(ctx, n.RecipientID, n); err != nil {
		b.log.Warn().Err(err).Str("recipient_id", n.RecipientID).Msg("notification publish failed")
	}
}

func strPtr(s string) *string {
	return &s
}
