package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchStatus string

const (
	ActiveBatchStatus  BatchStatus = "active"
	DeletedBatchStatus BatchStatus = "deleted"
)

// Batch represents one completed CSV import owned by a user.
// Its records are created in the same transaction that creates the batch,
// so a batch is never observable in a partially imported state.
type Batch struct {
	ID       uuid.UUID   `gorm:"type:uuid;primary_key;" json:"id"`
	UserID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Filename string      `gorm:"not null" json:"filename"`
	Status   BatchStatus `gorm:"type:varchar(10);default:'active';index" json:"status"`

	Records []WasteRecord `gorm:"foreignKey:BatchID" json:"records,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (b *Batch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ValidatedWasteRow is the typed, validated form of one CSV data row,
// handed from the import pipeline to the persistence layer.
type ValidatedWasteRow struct {
	Date      string `json:"date"`
	WasteType string `json:"waste_type"`
	Location  string `json:"location"`
	Quantity  int    `json:"quantity"`
}
