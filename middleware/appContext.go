package middleware

import (
	"context"
	"waste-tracking-backend/token"

	"github.com/redis/go-redis/v9"
)

// AppContext bundles all dependencies the auth guard needs
type AppContext struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
}
