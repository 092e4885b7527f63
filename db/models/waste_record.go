package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WasteRecord is one validated row of imported waste data.
type WasteRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	BatchID     uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	WasteTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"waste_type_id"`
	LocationID  uuid.UUID `gorm:"type:uuid;not null;index" json:"location_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`

	WasteType *WasteType `gorm:"foreignKey:WasteTypeID" json:"waste_type,omitempty"`
	Location  *Location  `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WasteRecord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
