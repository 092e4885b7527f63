package controllers

import (
	"errors"
	"io"
	"strings"

	"waste-tracking-backend/batches/repositories"
	"waste-tracking-backend/batches/services"
	"waste-tracking-backend/config"
	"waste-tracking-backend/db/models"
	"waste-tracking-backend/token"
	users_repositories "waste-tracking-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BatchController struct {
	BatchService *services.BatchService
	BatchRepo    repositories.BatchRepository
	UserRepo     users_repositories.UserRepository
}

// currentUser resolves the authenticated user from the token payload the
// auth guard stored on the request.
func (bc *BatchController) currentUser(c *fiber.Ctx) (*models.User, error) {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return nil, errors.New("no authenticated user on request")
	}
	return bc.UserRepo.GetUserByEmail(payload.Email)
}

// ImportBatch handles POST /api/v1/batches/import: a multipart CSV upload
// that becomes one new batch, or one precise error.
func (bc *BatchController) ImportBatch(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded.",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	isCSV := strings.Contains(contentType, "text/csv") ||
		strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv")
	if !isCSV {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid file type. Only CSV files are allowed.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}
	defer file.Close()

	fileContent, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file.",
		})
	}

	user, err := bc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Authentication required",
		})
	}

	result, err := bc.BatchService.ImportBatch(c.Context(), fileContent, fileHeader.Filename, user.ID)
	if err != nil {
		var validationErr *services.ImportValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
			})
		}

		config.Logger.Error("Batch import failed",
			zap.String("filename", fileHeader.Filename),
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
