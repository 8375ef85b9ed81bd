package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
)

const (
	suggestedUsersLimit = 3
	searchUsersLimit    = 20
)

type UpdateProfileInput struct {
	Name     string
	Bio      string
	Location string
	Website  string
}

// ProfileService serves user profiles and per-user post listings.
type ProfileService struct {
	base
}

func NewProfileService(d Deps, identity *IdentityResolver) *ProfileService {
	return &ProfileService{base: newBase(d, identity, "profile")}
}

func (s *ProfileService) GetProfileByHandle(ctx context.Context, sess *models.Session, handle string) (*ProfileView, error) {
	user, err := s.store.Users.GetUserByHandle(ctx, handle)
	if err != nil {
		return nil, s.lookupError(err, "user", handle)
	}
	view := toProfileView(*user)
	if view.Followers, err = s.store.Follows.CountFollowers(ctx, user.ID); err != nil {
		return nil, s.storageError(err, "Failed to fetch profile")
	}
	if view.Following, err = s.store.Follows.CountFollowing(ctx, user.ID); err != nil {
		return nil, s.storageError(err, "Failed to fetch profile")
	}
	if view.Posts, err = s.store.Posts.CountPostsByAuthor(ctx, user.ID); err != nil {
		return nil, s.storageError(err, "Failed to fetch profile")
	}

	callerID, err := s.identity.CurrentUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if callerID != "" && callerID != user.ID {
		if view.IsFollowing, err = s.store.Follows.IsFollowing(ctx, callerID, user.ID); err != nil {
			return nil, s.storageError(err, "Failed to fetch profile")
		}
	}
	return view, nil
}

// UpdateProfile edits the caller's own profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, sess *models.Session, in UpdateProfileInput) (user *models.User, err error) {
	defer func() { observability.RecordAction("update_profile", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	user, err = s.store.Users.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, s.lookupError(err, "user", callerID)
	}
	user.Name = name
	user.Bio = strings.TrimSpace(in.Bio)
	user.Location = strings.TrimSpace(in.Location)
	user.Website = strings.TrimSpace(in.Website)
	if err := s.store.Users.UpdateUser(ctx, user); err != nil {
		return nil, s.storageError(err, "Failed to update profile")
	}

	s.revalidate(ctx, revalidate.ProfilePath(user.Handle))
	return user, nil
}

func (s *ProfileService) GetUserPosts(ctx context.Context, userID string) ([]PostView, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, s.lookupError(err, "user", userID)
	}
	posts, err := s.store.Posts.ListPostsByAuthor(ctx, userID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch user posts")
	}
	return toPostViews(posts), nil
}

func (s *ProfileService) GetUserLikedPosts(ctx context.Context, userID string) ([]PostView, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, s.lookupError(err, "user", userID)
	}
	posts, err := s.store.Posts.ListPostsLikedBy(ctx, userID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch liked posts")
	}
	return toPostViews(posts), nil
}

// SuggestedUsers picks a few random users the caller does not follow yet.
func (s *ProfileService) SuggestedUsers(ctx context.Context, sess *models.Session) ([]models.UserCompact, error) {
	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	users, err := s.store.Users.GetSuggestedUsers(ctx, callerID, suggestedUsersLimit)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch suggested users")
	}
	return toCompacts(users), nil
}

func (s *ProfileService) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	users, err := s.store.Users.SearchUsers(ctx, query, searchUsersLimit)
	if err != nil {
		return nil, s.storageError(err, "Failed to search users")
	}
	return toCompacts(users), nil
}
