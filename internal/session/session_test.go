package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"tech-assigner/internal/apperr"
	"tech-assigner/internal/session"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestFromBearer_ParsesClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, "assigner-7", exp)

	sess, err := session.FromBearer("Bearer " + raw)
	require.NoError(t, err)
	require.Equal(t, raw, sess.Token)
	require.Equal(t, "assigner-7", sess.AssignerID)
	require.True(t, sess.ExpiresAt.Equal(exp))
	require.False(t, sess.Expired(time.Now()))
}

func TestFromBearer_EmptyHeader(t *testing.T) {
	t.Parallel()

	_, err := session.FromBearer("")
	require.ErrorIs(t, err, apperr.ErrAuthExpired)

	_, err = session.FromBearer("Bearer   ")
	require.ErrorIs(t, err, apperr.ErrAuthExpired)
}

func TestFromBearer_OpaqueTokenStillUsable(t *testing.T) {
	t.Parallel()

	sess, err := session.FromBearer("Bearer not-a-jwt")
	require.NoError(t, err)
	require.Equal(t, "not-a-jwt", sess.Token)
	require.Empty(t, sess.AssignerID)
	require.False(t, sess.Expired(time.Now()))
}

func TestExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sess := session.Session{Token: "x", ExpiresAt: now.Add(-time.Minute)}
	require.True(t, sess.Expired(now))
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := session.FromContext(context.Background())
	require.False(t, ok)

	want := session.Session{Token: "abc", AssignerID: "a1"}
	ctx := session.WithSession(context.Background(), want)
	got, ok := session.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, want, got)
}
