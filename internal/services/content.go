package services

import (
	"context"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/observability"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
)

const (
	maxPostContent    = 280
	maxCommentContent = 500
)

type CreatePostInput struct {
	Content  string
	ImageURL string
}

// ContentService owns posts and comments.
type ContentService struct {
	base
}

func NewContentService(d Deps, identity *IdentityResolver) *ContentService {
	return &ContentService{base: newBase(d, identity, "content")}
}

func (s *ContentService) CreatePost(ctx context.Context, sess *models.Session, in CreatePostInput) (view *PostView, err error) {
	defer func() { observability.RecordAction("create_post", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(in.Content)
	if len([]rune(content)) > maxPostContent {
		return nil, models.NewValidationError("Post content is too long")
	}
	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		return nil, models.NewValidationError("An image is required")
	}

	post := &models.Post{AuthorID: callerID, Content: content, Image: image}
	if err := s.store.Posts.CreatePost(ctx, post); err != nil {
		return nil, s.storageError(err, "Failed to create post")
	}

	created, err := s.store.Posts.GetPostWithDetails(ctx, post.ID)
	if err != nil {
		return nil, s.storageError(err, "Failed to load post")
	}
	s.revalidate(ctx, revalidate.HomePath)
	v := toPostView(*created)
	return &v, nil
}

// DeletePost removes a post owned by the caller. Comments, likes and
// notifications on it are removed by the database.
func (s *ContentService) DeletePost(ctx context.Context, sess *models.Session, postID string) (err error) {
	defer func() { observability.RecordAction("delete_post", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return err
	}
	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return s.lookupError(err, "post", postID)
	}
	if post.AuthorID != callerID {
		return models.NewForbiddenError("Unauthorized - no delete permission")
	}

	removed, err := s.store.Posts.DeletePost(ctx, postID)
	if err != nil {
		return s.storageError(err, "Failed to delete post")
	}
	if !removed {
		return models.NewNotFoundError("post", postID)
	}
	s.revalidate(ctx, revalidate.HomePath)
	return nil
}

// CreateComment adds a comment and, unless the caller wrote the post, a COMMENT
// notification to the post author. Both rows commit together.
func (s *ContentService) CreateComment(ctx context.Context, sess *models.Session, postID, content string) (view *CommentView, err error) {
	defer func() { observability.RecordAction("create_comment", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > maxCommentContent {
		return nil, models.NewValidationError("Comment is too long")
	}

	post, err := s.store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, s.lookupError(err, "post", postID)
	}

	comment := &models.Comment{PostID: postID, AuthorID: callerID, Content: content}
	var note *models.Notification
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		var err error
		note, err = fanOut(ctx, tx, &models.Notification{
			Type:        models.NotificationComment,
			ActorID:     callerID,
			RecipientID: post.AuthorID,
			PostID:      strPtr(postID),
			CommentID:   strPtr(comment.ID),
		})
		return err
	})
	if err != nil {
		return nil, s.storageError(err, "Failed to create comment")
	}

	s.deliver(ctx, note)
	s.revalidate(ctx, revalidate.HomePath)

	author, err := s.store.Users.GetUserByID(ctx, callerID)
	if err != nil {
		return nil, s.storageError(err, "Failed to load comment author")
	}
	comment.Author = *author
	v := toCommentView(*comment)
	return &v, nil
}

// DeleteComment is allowed for the comment author and the author of the post it is on.
func (s *ContentService) DeleteComment(ctx context.Context, sess *models.Session, commentID string) (err error) {
	defer func() { observability.RecordAction("delete_comment", err) }()

	callerID, err := s.identity.RequireUserID(ctx, sess)
	if err != nil {
		return err
	}
	comment, err := s.store.Comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return s.lookupError(err, "comment", commentID)
	}
	if comment.AuthorID != callerID {
		post, err := s.store.Posts.GetPostByID(ctx, comment.PostID)
		if err != nil {
			return s.lookupError(err, "post", comment.PostID)
		}
		if post.AuthorID != callerID {
			return models.NewForbiddenError("Unauthorized - no delete permission")
		}
	}

	removed, err := s.store.Comments.DeleteComment(ctx, commentID)
	if err != nil {
		return s.storageError(err, "Failed to delete comment")
	}
	if !removed {
		return models.NewNotFoundError("comment", commentID)
	}
	s.revalidate(ctx, revalidate.HomePath)
	return nil
}

// ListPosts returns the feed, newest first.
func (s *ContentService) ListPosts(ctx context.Context) ([]PostView, error) {
	posts, err := s.store.Posts.ListPosts(ctx)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch posts")
	}
	return toPostViews(posts), nil
}

// ListComments returns a post's comments oldest first.
func (s *ContentService) ListComments(ctx context.Context, postID string) ([]CommentView, error) {
	if _, err := s.store.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, s.lookupError(err, "post", postID)
	}
	comments, err := s.store.Comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, s.storageError(err, "Failed to fetch comments")
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, toCommentView(c))
	}
	return views, nil
}
