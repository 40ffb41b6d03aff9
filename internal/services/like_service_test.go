package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/rythmrun/internal/events"
)

func TestLikes_Flow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := newUser(t, e.db, "alice")
	fan := newUser(t, e.db, "bob")

	in := runInput(time.Now())
	in.IsPublic = true
	a, err := e.acts.Create(ctx, owner.ID, in)
	require.NoError(t, err)

	st, err := e.likes.Status(ctx, fan.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, st.Liked)
	assert.Zero(t, st.LikeCount)

	st, err = e.likes.Like(ctx, fan.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, st.Liked)
	assert.EqualValues(t, 1, st.LikeCount)

	_, err = e.likes.Like(ctx, fan.ID, a.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	got := e.pub.all()
	require.Len(t, got, 1)
	assert.Equal(t, events.ActivityLiked, got[0].Type)
	assert.Equal(t, owner.ID, got[0].UserID)

	st, err = e.likes.Unlike(ctx, fan.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, st.Liked)
	assert.Zero(t, st.LikeCount)

	_, err = e.likes.Unlike(ctx, fan.ID, a.ID)
	assert.ErrorIs(t, err, ErrLikeNotFound)
}

func TestLikes_PrivateActivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := newUser(t, e.db, "alice")
	other := newUser(t, e.db, "bob")

	a, err := e.acts.Create(ctx, owner.ID, runInput(time.Now()))
	require.NoError(t, err)

	_, err = e.likes.Like(ctx, other.ID, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.likes.Status(ctx, other.ID, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	st, err := e.likes.Like(ctx, owner.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, st.Liked)
	assert.Empty(t, e.pub.all())
}
