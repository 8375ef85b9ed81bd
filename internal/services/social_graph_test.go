package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/revalidate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow_FollowThenUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, sessA := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")

	state, err := env.graph.ToggleFollow(ctx, sessA, b.ID)
	require.NoError(t, err)
	assert.True(t, state.Following)
	assert.Equal(t, int64(1), env.count(t, &models.Follow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))

	var notes []models.Notification
	require.NoError(t, env.db.Where("recipient_id = ?", b.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationFollow, notes[0].Type)
	assert.Equal(t, a.ID, notes[0].ActorID)
	assert.False(t, notes[0].IsRead)
	assert.Nil(t, notes[0].PostID)

	state, err = env.graph.ToggleFollow(ctx, sessA, b.ID)
	require.NoError(t, err)
	assert.False(t, state.Following)
	assert.Equal(t, int64(0), env.count(t, &models.Follow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))
	assert.Equal(t, int64(1), env.count(t, &models.Notification{}, "recipient_id = ?", b.ID))
	assert.Contains(t, env.revalidator.Paths(), revalidate.HomePath)
}

func TestToggleFollow_Self(t *testing.T) {
	env := newTestEnv(t)
	a, sessA := env.newUser(t, "alice")

	for i := 0; i < 2; i++ {
		_, err := env.graph.ToggleFollow(context.Background(), sessA, a.ID)
		assert.True(t, errors.Is(err, models.ErrInvalidOperation))
	}
	assert.Equal(t, int64(0), env.count(t, &models.Follow{}, "follower_id = ?", a.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Notification{}, "recipient_id = ?", a.ID))
}

func TestToggleFollow_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	b, _ := env.newUser(t, "bob")
	_, sessA := env.newUser(t, "alice")

	_, err := env.graph.ToggleFollow(ctx, nil, b.ID)
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))

	_, err = env.graph.ToggleFollow(ctx, sessA, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestToggleFollow_NotificationFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	a, sessA := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")
	env.failNotificationInserts(t)

	_, err := env.graph.ToggleFollow(context.Background(), sessA, b.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStorage))
	assert.Equal(t, int64(0), env.count(t, &models.Follow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))
}

func TestFollowUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, _ := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")

	require.NoError(t, env.store.Follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowingID: b.ID}))
	err := env.store.Follows.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FollowingID: b.ID})
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))
	assert.Equal(t, int64(1), env.count(t, &models.Follow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))
}

func TestIsFollowing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, sessA := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")

	ok, err := env.graph.IsFollowing(ctx, nil, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.graph.IsFollowing(ctx, sessA, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.graph.ToggleFollow(ctx, sessA, b.ID)
	require.NoError(t, err)
	ok, err = env.graph.IsFollowing(ctx, sessA, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollowersAndFollowing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, sessA := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")
	_, sessC := env.newUser(t, "carol")

	_, err := env.graph.ToggleFollow(ctx, sessA, b.ID)
	require.NoError(t, err)
	_, err = env.graph.ToggleFollow(ctx, sessC, b.ID)
	require.NoError(t, err)

	followers, err := env.graph.Followers(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := env.graph.Following(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Handle)

	_, err = env.graph.Followers(ctx, "missing")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestToggleFollow_ConcurrentInsertCountsAsFollowing(t *testing.T) {
	env := newTestEnv(t)
	a, sessA := env.newUser(t, "alice")
	b, _ := env.newUser(t, "bob")
	env.insertAfterDelete(t, "follows", &models.Follow{FollowerID: a.ID, FollowingID: b.ID})

	state, err := env.graph.ToggleFollow(context.Background(), sessA, b.ID)
	require.NoError(t, err)
	assert.True(t, state.Following)
	assert.Equal(t, int64(1), env.count(t, &models.Follow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))
	assert.Equal(t, int64(0), env.count(t, &models.Notification{}, "recipient_id = ?", b.ID))
}
