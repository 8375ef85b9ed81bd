package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

// Store groups the repositories over one *gorm.DB, which is either the pool or a transaction.
type Store struct {
	db            *gorm.DB
	Users         UserRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Follows       FollowRepository
	Notifications NotificationRepository
}

// NewStore creates a Store whose repositories all run on db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
	}
}

// Transaction runs fn against a Store bound to a single database transaction.
// Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// isUniqueViolation checks if a DB error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

func translate(err error) error {
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}
