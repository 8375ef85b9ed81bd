package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
)

// FollowState is the relation after a toggle.
type FollowState struct {
	Following bool `json:"following"`
}

// SocialGraphService manages directed follow edges between users.
type SocialGraphService struct {
	base
}

func NewSocialGraphService(d Deps, identity *IdentityResolver) *SocialGraphService {
	return &SocialGraphService{base: newBase(d, identity, "social_graph")}
}

// ToggleFollow follows targetUserID, or unfollows when the edge already exists.
// Following writes the edge and a FOLLOW notification in one transaction.
func (s *SocialGraphService) ToggleFollow(ctx context.Context, sess *models.Session, targetUserID string) (state *FollowState, err error) {
	defer func() { observability.RecordAction("toggle_follow", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if targetUserID == callerID {
		return nil, models.NewInvalidOperationError("You cannot follow yourself")
	}
	if _, err := s.store.Users.GetUserByID(ctx, targetUserID); err != nil {
		return nil, s.lookupError(err, "user", targetUserID)
	}

	removed, err := s.store.Follows.DeleteFollow(ctx, callerID, targetUserID)
	if err != nil {
		return nil, s.storageError(err, "Failed to toggle follow")
	}
	if removed {
		s.revalidate(ctx, revalidate.HomePath)
		return &FollowState{Following: false}, nil
	}

	var note *models.Notification
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Follows.CreateFollow(ctx, &models.Follow{FollowerID: callerID, FollowingID: targetUserID}); err != nil {
			return err
		}
		var err error
		note, err = fanOut(ctx, tx, &models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     callerID,
			RecipientID: targetUserID,
		})
		return err
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		// A concurrent request created the edge first.
		return &FollowState{Following: true}, nil
	}
	if err != nil {
		return nil, s.storageError(err, "Failed to toggle follow")
	}

	s.deliver(ctx, note)
	s.revalidate(ctx, revalidate.HomePath)
	return &FollowState{Following: true}, nil
}

// IsFollowing answers false for anonymous callers rather than failing.
func (s *SocialGraphService) IsFollowing(ctx context.Context, sess *models.Session, targetUserID string) (bool, error) {
	callerID, err := s.identity.CurrentUserID(ctx, sess)
	if err != nil {
		return false, err
	}
	if callerID == "" {
		return false, nil
	}
	ok, err := s.store.Follows.IsFollowing(ctx, callerID, targetUserID)
	if err != nil {
		return false, s.storageError(err, "Failed to check follow status")
	}
	return ok, nil
}

func (s *SocialGraphService) Followers(ctx context.Context, userID string) ([]models.UserCompact, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, s.lookupError(err, "user", userID)
	}
	users, err := s.store.Follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch followers")
	}
	return toCompacts(users), nil
}

func (s *SocialGraphService) Following(ctx context.Context, userID string) ([]models.UserCompact, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, s.lookupError(err, "user", userID)
	}
	users, err := s.store.Follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch following")
	}
	return toCompacts(users), nil
}
