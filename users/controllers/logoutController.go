package controllers

import (
	"waste-tracking-backend/config"
	"waste-tracking-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LogoutUser handles POST /api/v1/auth/logout.
func (ac *AuthController) LogoutUser(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken != "" {
		err := ac.RedisClient.Del(ac.Ctx, "refresh_token:"+refreshToken).Err()
		if err != nil {
			config.Logger.Error("Failed to delete refresh token from Redis during logout",
				zap.Error(err),
			)
		}
	} else {
		config.Logger.Debug("No refresh token found in cookies during logout attempt")
	}

	middleware.ClearAuthCookies(c)

	config.Logger.Info("User logged out successfully",
		zap.String("client_ip", c.IP()),
	)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
		"data":    nil,
		"error":   nil,
	})
}
