package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/chpancrate/litreview/config"
	"github.com/chpancrate/litreview/internal/repository"
)

func newTestAuth(t *testing.T) (AuthService, *TokenDenylist) {
	t.Helper()
	db := setupFeedDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	denylist := NewTokenDenylist(rdb)
	cfg := config.JWTConfig{Secret: "test-secret", ExpireMin: 60, Issuer: "litreview"}
	return NewAuthService(repository.NewUserRepository(db), denylist, cfg), denylist
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	u, token, err := svc.Signup(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEmpty(t, token)
	require.NotEqual(t, "password123", u.PasswordHash)

	// 用户名唯一
	_, _, err = svc.Signup(ctx, "alice", "password123")
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token2, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token2)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, denylist := newTestAuth(t)
	ctx := context.Background()

	_, token, err := svc.Signup(ctx, "alice", "password123")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	revoked, err := denylist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, svc.Logout(ctx, claims.ID, claims.ExpiresAt.Time))
	revoked, err = denylist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestLogoutExpiredTokenIsNoop(t *testing.T) {
	svc, denylist := newTestAuth(t)
	ctx := context.Background()

	require.NoError(t, svc.Logout(ctx, "expired-jti", time.Now().Add(-time.Minute)))
	revoked, err := denylist.IsRevoked(ctx, "expired-jti")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	u, _, err := svc.Signup(ctx, "alice", "password123")
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword(ctx, u.ID, "wrong", "newpassword1"), ErrInvalidCredentials)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "password123", "newpassword1"))

	_, err = svc.Login(ctx, "alice", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "alice", "newpassword1")
	require.NoError(t, err)
}
