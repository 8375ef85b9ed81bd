package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, sessA := env.newUser(t, "alice")

	post, err := env.content.CreatePost(ctx, sessA, CreatePostInput{Content: "  first  ", ImageURL: "https://img/1.png"})
	require.NoError(t, err)
	assert.Equal(t, "first", post.Content)
	assert.Equal(t, a.ID, post.Author.ID)
	assert.Equal(t, "alice", post.Author.Handle)
	assert.Empty(t, post.Comments)
	assert.Equal(t, PostCount{}, post.Count)
	assert.Equal(t, []string{revalidate.HomePath}, env.revalidator.Paths())
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")

	_, err := env.content.CreatePost(ctx, nil, CreatePostInput{ImageURL: "https://img/1.png"})
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))

	_, err = env.content.CreatePost(ctx, sessA, CreatePostInput{Content: "no image"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	long := make([]rune, maxPostContent+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = env.content.CreatePost(ctx, sessA, CreatePostInput{Content: string(long), ImageURL: "https://img/1.png"})
	assert.True(t, errors.Is(err, models.ErrValidation))
	assert.Equal(t, int64(0), env.count(t, &models.Post{}, "1 = 1"))
}

func TestDeletePost_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")
	_, sessB := env.newUser(t, "bob")
	post := env.newPost(t, sessA, "mine")

	err := env.content.DeletePost(ctx, sessB, post.ID)
	assert.True(t, errors.Is(err, models.ErrForbidden))
	assert.Equal(t, int64(1), env.count(t, &models.Post{}, "id = ?", post.ID))

	err = env.content.DeletePost(ctx, sessA, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDeletePost_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")
	_, sessB := env.newUser(t, "bob")
	post := env.newPost(t, sessA, "doomed")

	_, err := env.interaction.ToggleLike(ctx, sessB, post.ID)
	require.NoError(t, err)
	_, err = env.content.CreateComment(ctx, sessB, post.ID, "nice")
	require.NoError(t, err)
	require.Equal(t, int64(2), env.count(t, &models.Notification{}, "post_id = ?", post.ID))

	require.NoError(t, env.content.DeletePost(ctx, sessA, post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Post{}, "id = ?", post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Comment{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Like{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Notification{}, "post_id = ?", post.ID))
}

func TestCreateComment_NotifiesPostAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, sessA := env.newUser(t, "alice")
	b, sessB := env.newUser(t, "bob")
	post := env.newPost(t, sessA, "hello")

	comment, err := env.content.CreateComment(ctx, sessB, post.ID, "  great shot ")
	require.NoError(t, err)
	assert.Equal(t, "great shot", comment.Content)
	assert.Equal(t, "bob", comment.Author.Handle)

	var note models.Notification
	require.NoError(t, env.db.Where("recipient_id = ?", a.ID).First(&note).Error)
	assert.Equal(t, models.NotificationComment, note.Type)
	assert.Equal(t, b.ID, note.ActorID)
	require.NotNil(t, note.CommentID)
	assert.Equal(t, comment.ID, *note.CommentID)

	_, err = env.content.CreateComment(ctx, sessA, post.ID, "thanks")
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.count(t, &models.Notification{}, "recipient_id = ?", a.ID))
}

func TestCreateComment_EmptyContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")
	_, sessB := env.newUser(t, "bob")
	post := env.newPost(t, sessA, "hello")

	for _, content := range []string{"", "   "} {
		_, err := env.content.CreateComment(ctx, sessB, post.ID, content)
		assert.True(t, errors.Is(err, models.ErrValidation))
	}
	assert.Equal(t, int64(0), env.count(t, &models.Comment{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Notification{}, "1 = 1"))

	_, err := env.content.CreateComment(ctx, sessB, "missing", "hi")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCreateComment_NotificationFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	_, sessA := env.newUser(t, "alice")
	_, sessB := env.newUser(t, "bob")
	post := env.newPost(t, sessA, "hello")
	env.failNotificationInserts(t)

	_, err := env.content.CreateComment(context.Background(), sessB, post.ID, "hi")
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.Equal(t, int64(0), env.count(t, &models.Comment{}, "post_id = ?", post.ID))
}

func TestDeleteComment_Permissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")
	_, sessB := env.newUser(t, "bob")
	_, sessC := env.newUser(t, "carol")
	post := env.newPost(t, sessA, "hello")

	byBob, err := env.content.CreateComment(ctx, sessB, post.ID, "one")
	require.NoError(t, err)
	another, err := env.content.CreateComment(ctx, sessB, post.ID, "two")
	require.NoError(t, err)

	err = env.content.DeleteComment(ctx, sessC, byBob.ID)
	assert.True(t, errors.Is(err, models.ErrForbidden))

	require.NoError(t, env.content.DeleteComment(ctx, sessB, byBob.ID))
	require.NoError(t, env.content.DeleteComment(ctx, sessA, another.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Comment{}, "post_id = ?", post.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Notification{}, "comment_id IS NOT NULL"))

	err = env.content.DeleteComment(ctx, sessB, byBob.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListPosts_Ordering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, _ := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	older := seedPostAt(t, env.db, a.ID, "older", base)
	newer := seedPostAt(t, env.db, a.ID, "newer", base.Add(time.Hour))

	for i, content := range []string{"c1", "c2", "c3"} {
		c := &models.Comment{PostID: older.ID, AuthorID: b.ID, Content: content, CreatedAt: base.Add(time.Duration(3-i) * time.Minute)}
		require.NoError(t, env.store.Comments.CreateComment(ctx, c))
	}
	require.NoError(t, env.store.Likes.CreateLike(ctx, &models.Like{UserID: b.ID, PostID: older.ID}))

	posts, err := env.content.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	got := posts[1]
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "c3", got.Comments[0].Content)
	assert.Equal(t, "c1", got.Comments[2].Content)
	assert.Equal(t, "bob", got.Comments[0].Author.Handle)
	assert.Equal(t, PostCount{Likes: 1, Comments: 3}, got.Count)
	assert.Equal(t, []LikeView{{UserID: b.ID}}, got.Likes)
	assert.Equal(t, "alice", got.Author.Handle)

	comments, err := env.content.ListComments(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "c3", comments[0].Content)
}
