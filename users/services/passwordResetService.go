package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const passwordResetTTL = 15 * time.Minute

// ErrInvalidResetToken is returned when a reset token is unknown, expired,
// or already used.
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// PasswordResetService hands out single-use reset tokens backed by Redis.
type PasswordResetService struct {
	redisClient *redis.Client
	ctx         context.Context
}

func NewPasswordResetService(redisClient *redis.Client, ctx context.Context) *PasswordResetService {
	return &PasswordResetService{
		redisClient: redisClient,
		ctx:         ctx,
	}
}

// CreateResetToken stores a fresh token mapped to the user's id. The token
// expires after 15 minutes.
func (s *PasswordResetService) CreateResetToken(userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	err := s.redisClient.Set(s.ctx, "password_reset:"+token, userID, passwordResetTTL).Err()
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeResetToken validates the token and deletes it so it cannot be
// replayed. Returns the user id the token was issued for.
func (s *PasswordResetService) ConsumeResetToken(token string) (string, error) {
	key := "password_reset:" + token

	userID, err := s.redisClient.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return "", ErrInvalidResetToken
	} else if err != nil {
		return "", err
	}

	if err := s.redisClient.Del(s.ctx, key).Err(); err != nil {
		return "", err
	}
	return userID, nil
}
