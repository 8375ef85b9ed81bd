package services

import (
	"context"
	"errors"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
)

// LikeState is the relation after a toggle, with the post's resulting like count.
type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// InteractionService handles likes.
type InteractionService struct {
	base
}

func NewInteractionService(d Deps, identity *IdentityResolver) *InteractionService {
	return &InteractionService{base: newBase(d, identity, "interaction")}
}

// ToggleLike removes the caller's like if present, otherwise adds it together
// with a LIKE notification to the post author.
func (s *InteractionService) ToggleLike(ctx context.Context, sess *models.Session, postID string) (state *LikeState, err error) {
	defer func() { observability.RecordAction("toggle_like", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, s.lookupError(err, "post", postID)
	}

	removed, err := s.store.Likes.DeleteLike(ctx, postID, callerID)
	if err != nil {
		return nil, s.storageError(err, "Failed to toggle like")
	}
	if removed {
		s.revalidate(ctx, revalidate.HomePath)
		return s.state(ctx, postID, false)
	}

	var note *models.Notification
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Likes.CreateLike(ctx, &models.Like{UserID: callerID, PostID: postID}); err != nil {
			return err
		}
		var err error
		note, err = fanOut(ctx, tx, &models.Notification{
			Type:        models.NotificationLike,
			ActorID:     callerID,
			RecipientID: post.AuthorID,
			PostID:      strPtr(postID),
		})
		return err
	})
	if err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return nil, s.storageError(err, "Failed to toggle like")
	}

	s.deliver(ctx, note)
	s.revalidate(ctx, revalidate.HomePath)
	return s.state(ctx, postID, true)
}

func (s *InteractionService) state(ctx context.Context, postID string, liked bool) (*LikeState, error) {
	count, err := s.store.Likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return nil, s.storageError(err, "Failed to count likes")
	}
	return &LikeState{Liked: liked, Likes: count}, nil
}
