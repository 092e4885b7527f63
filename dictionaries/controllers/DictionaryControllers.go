package controllers

import (
	"waste-tracking-backend/config"
	"waste-tracking-backend/dictionaries/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DictionaryController struct {
	DictionaryRepo repositories.DictionaryRepository
}

// GetWasteTypes returns the waste-type vocabulary as {id, name} items.
func (dc *DictionaryController) GetWasteTypes(c *fiber.Ctx) error {
	wasteTypes, err := dc.DictionaryRepo.GetAllWasteTypes()
	if err != nil {
		config.Logger.Error("Failed to fetch waste types", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch waste types",
			"error":   err.Error(),
		})
	}

	items := make([]fiber.Map, 0, len(wasteTypes))
	for _, wt := range wasteTypes {
		items = append(items, fiber.Map{"id": wt.ID, "name": wt.Name})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

// GetLocations returns all known locations as {id, name} items.
func (dc *DictionaryController) GetLocations(c *fiber.Ctx) error {
	locations, err := dc.DictionaryRepo.GetAllLocations()
	if err != nil {
		config.Logger.Error("Failed to fetch locations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch locations",
			"error":   err.Error(),
		})
	}

	items := make([]fiber.Map, 0, len(locations))
	for _, loc := range locations {
		items = append(items, fiber.Map{"id": loc.ID, "name": loc.Name})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}
