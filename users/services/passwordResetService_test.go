package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupResetService(t *testing.T) (*PasswordResetService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	return NewPasswordResetService(redisClient, context.Background()), mr
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	svc, _ := setupResetService(t)

	token, err := svc.CreateResetToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ConsumeResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestPasswordReset_TokenIsSingleUse(t *testing.T) {
	svc, _ := setupResetService(t)

	token, err := svc.CreateResetToken("user-123")
	require.NoError(t, err)

	_, err = svc.ConsumeResetToken(token)
	require.NoError(t, err)

	_, err = svc.ConsumeResetToken(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordReset_UnknownToken(t *testing.T) {
	svc, _ := setupResetService(t)

	_, err := svc.ConsumeResetToken("never-issued")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordReset_TokenExpires(t *testing.T) {
	svc, mr := setupResetService(t)

	token, err := svc.CreateResetToken("user-123")
	require.NoError(t, err)

	mr.FastForward(16 * time.Minute)

	_, err = svc.ConsumeResetToken(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordReset_TokensAreUnique(t *testing.T) {
	svc, _ := setupResetService(t)

	first, err := svc.CreateResetToken("user-a")
	require.NoError(t, err)
	second, err := svc.CreateResetToken("user-b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
