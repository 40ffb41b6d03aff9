package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/database/dbtest"
	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/pkg/auth"
)

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, e)
	return nil
}

func (p *recordingPublisher) all() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.got...)
}

func newTestIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("access-secret", "refresh-secret")
}

func newUser(t *testing.T, db *database.Database, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.SaveUser(context.Background(), u))
	return u
}

type env struct {
	db       *database.Database
	pub      *recordingPublisher
	gate     *Gate
	auth     *AuthService
	friends  *FriendService
	acts     *ActivityService
	comments *CommentService
	likes    *LikeService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.New(t)
	pub := &recordingPublisher{}
	log := logging.Nop()
	gate := NewGate(db)
	return &env{
		db:       db,
		pub:      pub,
		gate:     gate,
		auth:     NewAuthService(db, db.RefreshSessions(), newTestIssuer(), log),
		friends:  NewFriendService(db, db, pub, log, false),
		acts:     NewActivityService(db, gate, log),
		comments: NewCommentService(db, gate, pub, log),
		likes:    NewLikeService(db, gate, pub, log),
	}
}
