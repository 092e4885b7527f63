package config

import (
	"fmt"
	"waste-tracking-backend/db/models"

	"gorm.io/gorm"
)

// defaultWasteTypes is the initial dictionary vocabulary. Imports validate
// waste_type values against this table, so a fresh install needs it seeded.
var defaultWasteTypes = []string{
	"plastic",
	"paper",
	"glass",
	"metal",
	"organic",
	"electronics",
	"hazardous",
	"other",
}

// SeedWasteTypes inserts the default waste-type vocabulary, skipping names
// that already exist.
func SeedWasteTypes(db *gorm.DB) error {
	for _, name := range defaultWasteTypes {
		wasteType := models.WasteType{Name: name, IsActive: true}

		var existing models.WasteType
		result := db.Where("name = ?", name).FirstOrCreate(&existing, wasteType)
		if result.Error != nil {
			return fmt.Errorf("failed to seed waste type %q: %w", name, result.Error)
		}
	}
	return nil
}
