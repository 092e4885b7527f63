package controllers

import (
	"errors"
	"strings"

	"waste-tracking-backend/config"
	"waste-tracking-backend/db/models"
	"waste-tracking-backend/token"
	users_repositories "waste-tracking-backend/users/repositories"
	"waste-tracking-backend/wastedata/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type WasteDataController struct {
	WasteDataService *services.WasteDataService
	UserRepo         users_repositories.UserRepository
}

type generateReportRequest struct {
	GroupBy      string   `json:"groupBy"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	WasteTypeIDs []string `json:"wasteTypeIds"`
	LocationIDs  []string `json:"locationIds"`
}

func (wc *WasteDataController) currentUser(c *fiber.Ctx) (*models.User, error) {
	payload, ok := c.Locals("user").(*token.Payload)
	if !ok {
		return nil, errors.New("no authenticated user on request")
	}
	return wc.UserRepo.GetUserByEmail(payload.Email)
}

// GetWasteSummary handles GET /api/v1/waste-data: aggregated chart data.
func (wc *WasteDataController) GetWasteSummary(c *fiber.Ctx) error {
	user, err := wc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Authentication required",
		})
	}

	params := services.SummaryParams{
		GroupBy:      c.Query("groupBy"),
		StartDate:    c.Query("startDate"),
		EndDate:      c.Query("endDate"),
		WasteTypeIDs: c.Query("wasteTypeIds"),
		LocationIDs:  c.Query("locationIds"),
	}

	items, err := wc.WasteDataService.GetSummary(params, user.ID)
	if err != nil {
		var validationErr *services.RequestValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
			})
		}

		config.Logger.Error("Failed to fetch waste summary",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": items})
}

// GenerateAiReport handles POST /api/v1/waste-data/report: a short
// AI-written summary of the filtered aggregation.
func (wc *WasteDataController) GenerateAiReport(c *fiber.Ctx) error {
	user, err := wc.currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
			"error":   "Authentication required",
		})
	}

	var req generateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	params := services.SummaryParams{
		GroupBy:      req.GroupBy,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		WasteTypeIDs: strings.Join(req.WasteTypeIDs, ","),
		LocationIDs:  strings.Join(req.LocationIDs, ","),
	}

	report, err := wc.WasteDataService.GenerateAiReport(c.Context(), params, user.ID)
	if err != nil {
		var validationErr *services.RequestValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": validationErr.Error(),
			})
		}
		if errors.Is(err, services.ErrAIService) {
			config.Logger.Error("AI report generation unavailable",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "Service Unavailable",
				"message": "AI report generation service is temporarily unavailable. Please try again later.",
			})
		}

		config.Logger.Error("Failed to generate AI report",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"report": report})
}
