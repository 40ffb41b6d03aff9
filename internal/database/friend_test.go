package database_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/database/dbtest"
	"github.com/thereayou/rythmrun/internal/models"
)

func TestCreateFriendRequest_UnorderedPairUnique(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	require.NoError(t, db.CreateFriendRequest(ctx, models.NewFriendRequest(a.ID, b.ID)))

	err := db.CreateFriendRequest(ctx, models.NewFriendRequest(b.ID, a.ID))
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestCreateFriendRequest_ConcurrentOppositeDirections(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, pair := range [][2]uint{{a.ID, b.ID}, {b.ID, a.ID}} {
		wg.Add(1)
		go func(i int, from, to uint) {
			defer wg.Done()
			errs[i] = db.CreateFriendRequest(ctx, models.NewFriendRequest(from, to))
		}(i, pair[0], pair[1])
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, database.ErrDuplicate):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, dup)

	var n int64
	require.NoError(t, db.Gorm().Model(&models.FriendRequest{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFindFriendRequestBetween_BothOrders(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	fr := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, db.CreateFriendRequest(ctx, fr))

	got, err := db.FindFriendRequestBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, fr.ID, got.ID)
	assert.Equal(t, a.ID, got.RequesterID)

	_, err = db.FindFriendRequestBetween(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRespondFriendRequest_OnlyTargetWhilePending(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	fr := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, db.CreateFriendRequest(ctx, fr))

	_, err := db.RespondFriendRequest(ctx, a.ID, fr.ID, models.FriendStatusAccepted)
	assert.ErrorIs(t, err, database.ErrNotFound)

	got, err := db.RespondFriendRequest(ctx, b.ID, fr.ID, models.FriendStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.FriendStatusAccepted, got.Status)
	require.NotNil(t, got.Requester)
	assert.Equal(t, "alice", got.Requester.Username)

	_, err = db.RespondFriendRequest(ctx, b.ID, fr.ID, models.FriendStatusRejected)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeletePendingFriendRequest(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	fr := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, db.CreateFriendRequest(ctx, fr))

	assert.ErrorIs(t, db.DeletePendingFriendRequest(ctx, b.ID, fr.ID), database.ErrNotFound)
	require.NoError(t, db.DeletePendingFriendRequest(ctx, a.ID, fr.ID))

	_, err := db.FindFriendRequestBetween(ctx, a.ID, b.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestReplaceRejectedFriendRequest(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")

	fr := models.NewFriendRequest(a.ID, b.ID)
	require.NoError(t, db.CreateFriendRequest(ctx, fr))
	_, err := db.RespondFriendRequest(ctx, b.ID, fr.ID, models.FriendStatusRejected)
	require.NoError(t, err)

	fresh := models.NewFriendRequest(b.ID, a.ID)
	require.NoError(t, db.ReplaceRejectedFriendRequest(ctx, fr.ID, fresh))

	got, err := db.FindFriendRequestBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
	assert.Equal(t, models.FriendStatusPending, got.Status)
	assert.Equal(t, b.ID, got.RequesterID)
}

func TestListPendingAndFriends(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	a := createUser(t, db, "alice")
	b := createUser(t, db, "bob")
	c := createUser(t, db, "carol")

	ab := models.NewFriendRequest(a.ID, b.ID)
	cb := models.NewFriendRequest(c.ID, b.ID)
	require.NoError(t, db.CreateFriendRequest(ctx, ab))
	require.NoError(t, db.CreateFriendRequest(ctx, cb))

	pending, err := db.ListPendingFriendRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, cb.ID, pending[0].ID)
	assert.Equal(t, ab.ID, pending[1].ID)

	_, err = db.RespondFriendRequest(ctx, b.ID, ab.ID, models.FriendStatusAccepted)
	require.NoError(t, err)

	friends, err := db.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].Other(a.ID))
}
