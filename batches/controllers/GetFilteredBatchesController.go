package controllers

import (
	"waste-tracking-backend/config"
	"waste-tracking-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredBatches handles GET /api/v1/batches: the authenticated user's
// active batches, newest first, paginated.
func (bc *BatchController) GetFilteredBatches(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"error":   err.Error(),
		})
	}

	user, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Authentication required",
		})
	}

	offset := (params.Page - 1) * params.PageSize
	summaries, total, err := bc.BatchRepo.GetFilteredBatches(user.ID, params.PageSize, offset)
	if err != nil {
		config.Logger.Error("Failed to fetch batches",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch batches",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(pagination.NewPaginatedResponse(c, summaries, total, params))
}
