package controllers

import (
	"errors"
	"fmt"

	"waste-tracking-backend/config"
	"waste-tracking-backend/internal/tasks"
	"waste-tracking-backend/users/repositories"
	"waste-tracking-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ForgotPasswordRequest handles POST /api/v1/auth/forgot-password. It always
// answers with the same generic message so the endpoint cannot be used to
// probe which emails exist.
func (ac *AuthController) ForgotPasswordRequest(c *fiber.Ctx) error {
	type ForgotPasswordRequest struct {
		Email string `json:"email"`
	}

	genericResponse := fiber.Map{
		"message": "If a matching account is found, a password reset link has been sent.",
		"data":    nil,
		"error":   nil,
	}

	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing forgot password request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	user, err := ac.UserRepo.GetUserByEmail(req.Email)
	if err != nil {
		config.Logger.Warn("Forgot password attempt: User not found",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		return c.JSON(genericResponse)
	}

	resetService := services.NewPasswordResetService(ac.RedisClient, ac.Ctx)
	resetToken, err := resetService.CreateResetToken(user.ID.String())
	if err != nil {
		config.Logger.Error("Failed to create password reset token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", ac.BaseFrontendURL, resetToken)
	message := fmt.Sprintf("You have requested a password reset. Please click on the link below to reset your password:\n\n%s\n\nThis link is valid for 15 minutes. If you did not request this, please ignore this email.", resetLink)

	task, err := tasks.NewEmailDeliveryTask(user.Email, "Password Reset Request", message, "")
	if err != nil {
		config.Logger.Error("Failed to build email delivery task", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}
	if _, err := ac.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue password reset email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	return c.JSON(genericResponse)
}

// ForgotPasswordReset handles POST /api/v1/auth/reset-password.
func (ac *AuthController) ForgotPasswordReset(c *fiber.Ctx) error {
	type ForgotPasswordResetRequest struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}

	var req ForgotPasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing password reset request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	if validationError := services.ValidatePassword(req.NewPassword); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Password reset failed",
			"data":    nil,
			"error":   validationError,
		})
	}

	resetService := services.NewPasswordResetService(ac.RedisClient, ac.Ctx)
	userIDStr, err := resetService.ConsumeResetToken(req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Password reset failed",
				"data":    nil,
				"error":   "Invalid or expired reset token.",
			})
		}
		config.Logger.Error("Error validating reset token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		config.Logger.Error("Malformed user id stored for reset token",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
			"data":    nil,
			"error":   "An internal server error occurred.",
		})
	}

	hashedPassword, err := repositories.HashPassword(req.NewPassword)
	if err != nil {
		config.Logger.Error("Error hashing new password for reset", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Password reset failed",
			"data":    nil,
			"error":   "Error processing new password.",
		})
	}

	if err := ac.UserRepo.UpdatePassword(userID, hashedPassword); err != nil {
		config.Logger.Error("Error updating user password in DB",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Password reset failed",
			"data":    nil,
			"error":   "Internal error: Could not update password.",
		})
	}

	config.Logger.Info("Password reset completed",
		zap.String("user_id", userID.String()),
	)

	return c.JSON(fiber.Map{
		"message": "Password has been reset successfully.",
		"data":    nil,
		"error":   nil,
	})
}
