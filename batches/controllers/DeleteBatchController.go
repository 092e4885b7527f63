package controllers

import (
	"waste-tracking-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteBatch handles DELETE /api/v1/batches/:id as a soft delete; the
// batch stays in storage with deleted status until the cleanup job purges it.
func (bc *BatchController) DeleteBatch(c *fiber.Ctx) error {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch id",
		})
	}

	user, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Authentication required",
		})
	}

	deleted, err := bc.BatchRepo.SoftDeleteBatch(batchID, user.ID)
	if err != nil {
		config.Logger.Error("Failed to delete batch",
			zap.String("batch_id", batchID.String()),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete batch",
			"error":   err.Error(),
		})
	}

	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found or access denied",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
