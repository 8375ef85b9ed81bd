package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const maxHandleAttempts = 5

var handleUnsafe = regexp.MustCompile(`[^a-z0-9_.]+`)

// IdentityResolver maps an external session onto an internal user, creating one on first sight.
type IdentityResolver struct {
	store *repositories.Store
	log   zerolog.Logger
}

func NewIdentityResolver(store *repositories.Store, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{
		store: store,
		log:   log.With().Str("component", "identity").Logger(),
	}
}

// ResolveOrProvision returns the user linked to sess, provisioning it when absent.
func (r *IdentityResolver) ResolveOrProvision(ctx context.Context, sess *models.Session) (*models.User, error) {
	if sess == nil || sess.ExternalID == "" {
		return nil, models.ErrUnauthenticated
	}

	user, err := r.store.Users.GetUserByFirebaseUID(ctx, sess.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error().Err(err).Msg("failed to look up user")
		return nil, models.NewStorageError("Failed to resolve user", err)
	}

	email := strings.TrimSpace(sess.Email)
	if email == "" {
		return nil, models.NewAuthenticationError("external profile has no email address")
	}

	name := strings.TrimSpace(sess.Name)
	base := baseHandle(sess)
	for attempt := 0; attempt < maxHandleAttempts; attempt++ {
		handle, err := r.availableHandle(ctx, base)
		if err != nil {
			r.log.Error().Err(err).Msg("failed to pick a handle")
			return nil, models.NewStorageError("Failed to provision user", err)
		}
		user = &models.User{
			FirebaseUID: sess.ExternalID,
			Handle:      handle,
			Email:       email,
			Name:        lo.Ternary(name == "", handle, name),
			Image:       sess.Picture,
		}
		err = r.store.Users.CreateUser(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			r.log.Error().Err(err).Str("handle", handle).Msg("failed to provision user")
			return nil, models.NewStorageError("Failed to provision user", err)
		}
		existing, conflict, cerr := r.resolveConflict(ctx, sess.ExternalID, email)
		if cerr != nil {
			return nil, cerr
		}
		if existing != nil {
			return existing, nil
		}
		if conflict {
			return nil, models.NewAuthenticationError("email address is already linked to another account")
		}
		// Handle was taken between the availability check and the insert.
		r.log.Warn().Str("handle", handle).Msg("handle taken concurrently, retrying")
		user = nil
	}
	if user == nil {
		return nil, models.NewStorageError("Failed to provision user", repositories.ErrDuplicate)
	}

	r.log.Info().Str("user_id", user.ID).Str("handle", user.Handle).Msg("provisioned user")
	return user, nil
}

// resolveConflict explains a duplicate insert. It returns the row of a
// concurrent first login for the same external id, or reports that the email
// belongs to another account. Otherwise the handle collided.
func (r *IdentityResolver) resolveConflict(ctx context.Context, externalID, email string) (*models.User, bool, error) {
	existing, err := r.store.Users.GetUserByFirebaseUID(ctx, externalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error().Err(err).Msg("failed to look up user")
		return nil, false, models.NewStorageError("Failed to resolve user", err)
	}
	taken, err := r.store.Users.EmailExists(ctx, email)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to look up email")
		return nil, false, models.NewStorageError("Failed to resolve user", err)
	}
	return nil, taken, nil
}

// CurrentUserID returns "" for an anonymous caller and NotFoundError when the
// session has no internal row.
func (r *IdentityResolver) CurrentUserID(ctx context.Context, sess *models.Session) (string, error) {
	if sess == nil || sess.ExternalID == "" {
		return "", nil
	}
	user, err := r.store.Users.GetUserByFirebaseUID(ctx, sess.ExternalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.NewNotFoundError("user", sess.ExternalID)
		}
		r.log.Error().Err(err).Msg("failed to look up user")
		return "", models.NewStorageError("Failed to resolve user", err)
	}
	return user.ID, nil
}

// RequireUserID is CurrentUserID for operations that need a caller.
func (r *IdentityResolver) RequireUserID(ctx context.Context, sess *models.Session) (string, error) {
	id, err := r.CurrentUserID(ctx, sess)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", models.ErrUnauthenticated
	}
	return id, nil
}

func (r *IdentityResolver) availableHandle(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 0; i < maxHandleAttempts; i++ {
		taken, err := r.store.Users.HandleExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "_" + lo.RandomString(4, lo.NumbersCharset)
	}
	return base + "_" + lo.RandomString(8, lo.AlphanumericCharset), nil
}

// baseHandle derives a handle from the username, else the email local part.
func baseHandle(sess *models.Session) string {
	raw := sess.Username
	if strings.TrimSpace(raw) == "" {
		raw, _, _ = strings.Cut(sess.Email, "@")
	}
	h := handleUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), "")
	if h == "" {
		h = "user"
	}
	if len(h) > 48 {
		h = h[:48]
	}
	return h
}
