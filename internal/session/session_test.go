package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandukaz/debtbook/internal/session"
)

func newManager(t *testing.T, ttl time.Duration) (*session.Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return session.NewManager([]byte("test-secret"), ttl, session.NewRedisStore(client)), mr
}

func TestManager_IssueAndVerify(t *testing.T) {
	mgr, _ := newManager(t, time.Hour)
	ctx := context.Background()

	userID := uuid.New()

	sess, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.NotEmpty(t, sess.Token)

	verified, err := mgr.Verify(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, verified.UserID)
}

func TestManager_VerifyGarbageToken(t *testing.T) {
	mgr, _ := newManager(t, time.Hour)

	_, err := mgr.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, session.ErrInvalid)
}

func TestManager_RevokedTokenRejected(t *testing.T) {
	mgr, _ := newManager(t, time.Hour)
	ctx := context.Background()

	userID := uuid.New()

	sess, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(ctx, userID))

	_, err = mgr.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrExpired)
}

func TestManager_NewLoginSupersedesOld(t *testing.T) {
	mgr, _ := newManager(t, time.Hour)
	ctx := context.Background()

	userID := uuid.New()

	first, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)

	// Tokens embed the expiry with second precision; make sure the second
	// login produces a distinct token.
	time.Sleep(1100 * time.Millisecond)

	second, err := mgr.Issue(ctx, userID)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	_, err = mgr.Verify(ctx, first.Token)
	assert.ErrorIs(t, err, session.ErrExpired)

	_, err = mgr.Verify(ctx, second.Token)
	assert.NoError(t, err)
}

func TestManager_StoreExpiryEndsSession(t *testing.T) {
	mgr, mr := newManager(t, time.Hour)
	ctx := context.Background()

	sess, err := mgr.Issue(ctx, uuid.New())
	require.NoError(t, err)

	// Redis TTL lapses before the JWT expiry.
	mr.FastForward(2 * time.Hour)

	_, err = mgr.Verify(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrExpired)
}
