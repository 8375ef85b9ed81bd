package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostWithDetails(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListPostsLikedBy(ctx context.Context, userID string) ([]models.Post, error)
	CountPostsByAuthor(ctx context.Context, authorID string) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// withDetails preloads author, comments with their authors (oldest first) and likes.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes")
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

// GetPostByID fetches the bare post row
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPostWithDetails(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := withDetails(r.db.WithContext(ctx)).Where("posts.id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost reports whether a row was removed. Comments, likes and
// notifications go with it through ON DELETE CASCADE.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListPosts returns every post, newest first
func (r *PostgresPostRepository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := withDetails(r.db.WithContext(ctx)).Order("posts.created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresPostRepository) ListPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := withDetails(r.db.WithContext(ctx)).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsLikedBy returns posts the user liked, newest post first
func (r *PostgresPostRepository) ListPostsLikedBy(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := withDetails(r.db.WithContext(ctx)).
		Where("posts.id IN (?)", r.db.Table("likes").Select("post_id").Where("user_id = ?", userID)).
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostgresPostRepository) CountPostsByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
