package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("unit-test-secret")

	token, err := GenerateToken("admin", RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	secret := []byte("unit-test-secret")
	token, err := GenerateToken("admin", RoleAdmin, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklistedToken(t *testing.T) {
	secret := []byte("unit-test-secret")
	token, err := GenerateToken("admin", RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, ErrBlacklistedToken)
}

func TestPurgeBlacklist(t *testing.T) {
	BlacklistToken("stale-token", time.Now().Add(-time.Second))
	assert.False(t, IsTokenBlacklisted("stale-token"))

	assert.GreaterOrEqual(t, purgeBlacklist(time.Now()), 1)

	blacklistMutex.RLock()
	_, exists := blacklistedTokens["stale-token"]
	blacklistMutex.RUnlock()
	assert.False(t, exists)
}

func TestRunBlacklistJanitorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunBlacklistJanitor(ctx, 10*time.Millisecond) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
