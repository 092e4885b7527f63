package repositories

import (
	"waste-tracking-backend/db/models"

	"gorm.io/gorm"
)

type DictionaryRepository interface {
	GetAllWasteTypes() ([]models.WasteType, error)
	GetAllLocations() ([]models.Location, error)
}

type dictionaryRepository struct {
	db *gorm.DB
}

func NewDictionaryRepository(db *gorm.DB) DictionaryRepository {
	return &dictionaryRepository{
		db: db,
	}
}

// GetAllWasteTypes returns the active waste-type vocabulary in insertion order.
func (r *dictionaryRepository) GetAllWasteTypes() ([]models.WasteType, error) {
	var wasteTypes []models.WasteType
	err := r.db.Where("is_active = ?", true).Order("created_at ASC").Find(&wasteTypes).Error
	if err != nil {
		return nil, err
	}
	return wasteTypes, nil
}

// GetAllLocations returns all known locations in insertion order.
func (r *dictionaryRepository) GetAllLocations() ([]models.Location, error) {
	var locations []models.Location
	err := r.db.Order("created_at ASC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
