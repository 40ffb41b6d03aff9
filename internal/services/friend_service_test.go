package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
)

func TestFriendRequest_SelfRequest(t *testing.T) {
	e := newEnv(t)
	a := newUser(t, e.db, "alice")

	_, err := e.friends.Request(context.Background(), a.ID, a.ID)
	assert.ErrorIs(t, err, ErrSelfRequest)

	pending, err := e.friends.ListPending(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestFriendRequest_TargetNotFound(t *testing.T) {
	e := newEnv(t)
	a := newUser(t, e.db, "alice")

	_, err := e.friends.Request(context.Background(), a.ID, a.ID+42)
	assert.ErrorIs(t, err, ErrTargetNotFound)
}

func TestFriendRequest_SymmetricPending(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := e.friends.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusPending, fr.Status)

	_, err = e.friends.Request(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrRequestPending)
	_, err = e.friends.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrRequestPending)

	got := e.pub.all()
	require.Len(t, got, 1)
	assert.Equal(t, events.FriendRequestReceived, got[0].Type)
	assert.Equal(t, b.ID, got[0].UserID)
}

func TestFriendRequest_ConcurrentOppositeDirections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, pair := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
		wg.Add(1)
		go func(i int, from, to uint) {
			defer wg.Done()
			_, errs[i] = e.friends.Request(ctx, from, to)
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrRequestPending)
	}
	assert.Equal(t, 1, ok)

	var n int64
	require.NoError(t, e.db.Gorm().Model(&models.FriendRequest{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFriendRequest_AcceptFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := e.friends.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	st, err := e.friends.StatusBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusPending, st.Status)
	assert.Equal(t, models.DirectionSent, st.Direction)

	st, err = e.friends.StatusBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionReceived, st.Direction)

	// отправитель не может принять свою заявку
	_, err = e.friends.Accept(ctx, a.ID, fr.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	accepted, err := e.friends.Accept(ctx, b.ID, fr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusAccepted, accepted.Status)

	st, err = e.friends.StatusBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusAccepted, st.Status)
	assert.Empty(t, st.Direction)

	_, err = e.friends.Request(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrAlreadyFriends)

	friends, err := e.friends.ListFriends(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, a.ID, friends[0].User.ID)

	got := e.pub.all()
	require.Len(t, got, 2)
	assert.Equal(t, events.FriendRequestAccepted, got[1].Type)
	assert.Equal(t, a.ID, got[1].UserID)
}

func TestFriendRequest_StatusNone(t *testing.T) {
	e := newEnv(t)
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	st, err := e.friends.StatusBetween(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusNone, st.Status)
	assert.Nil(t, st.Request)
}

func TestFriendRequest_CancelOnlyBySenderWhilePending(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := e.friends.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, e.friends.Cancel(ctx, b.ID, fr.ID), ErrNotFound)
	require.NoError(t, e.friends.Cancel(ctx, a.ID, fr.ID))
	assert.ErrorIs(t, e.friends.Cancel(ctx, a.ID, fr.ID), ErrNotFound)

	st, err := e.friends.StatusBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusNone, st.Status)

	// после отмены можно снова
	_, err = e.friends.Request(ctx, b.ID, a.ID)
	assert.NoError(t, err)
}

func TestFriendRequest_CancelAfterAcceptFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := e.friends.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = e.friends.Accept(ctx, b.ID, fr.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, e.friends.Cancel(ctx, a.ID, fr.ID), ErrNotFound)
	_, err = e.friends.Reject(ctx, b.ID, fr.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFriendRequest_RejectedBlocksByDefault(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := e.friends.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	rejected, err := e.friends.Reject(ctx, b.ID, fr.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusRejected, rejected.Status)

	_, err = e.friends.Request(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, ErrRequestExists)
	_, err = e.friends.Request(ctx, b.ID, a.ID)
	assert.ErrorIs(t, err, ErrRequestExists)

	st, err := e.friends.StatusBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusRejected, st.Status)
}

func TestFriendRequest_RejectedReplacedWhenAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewFriendService(e.db, e.db, e.pub, logging.Nop(), true)
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")

	fr, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.Reject(ctx, b.ID, fr.ID)
	require.NoError(t, err)

	again, err := svc.Request(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.NotEqual(t, fr.ID, again.ID)
	assert.Equal(t, models.FriendStatusPending, again.Status)

	var n int64
	require.NoError(t, e.db.Gorm().Model(&models.FriendRequest{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestListPending_NewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := newUser(t, e.db, "alice")
	b := newUser(t, e.db, "bob")
	c := newUser(t, e.db, "carol")

	first, err := e.friends.Request(ctx, a.ID, c.ID)
	require.NoError(t, err)
	second, err := e.friends.Request(ctx, b.ID, c.ID)
	require.NoError(t, err)

	pending, err := e.friends.ListPending(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, second.ID, pending[0].ID)
	assert.Equal(t, first.ID, pending[1].ID)
	require.NotNil(t, pending[0].Requester)
	assert.Equal(t, "bob", pending[0].Requester.Username)

	pending, err = e.friends.ListPending(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
