package controllers

import (
	"waste-tracking-backend/token"

	"github.com/gofiber/fiber/v2"
)

// CurrentUser handles GET /api/v1/auth/me for the logged-in user.
func (ac *AuthController) CurrentUser(c *fiber.Ctx) error {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "Authentication required",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(payload.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"data":    nil,
			"error":   "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Current user retrieved",
		"data": fiber.Map{
			"id":        user.ID.String(),
			"email":     user.Email,
			"firstName": user.FirstName,
			"lastName":  user.LastName,
		},
		"error": nil,
	})
}
