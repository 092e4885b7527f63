package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"waste-tracking-backend/db/models"
	"waste-tracking-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportBatchResult is what the atomic import hands back to the pipeline.
type ImportBatchResult struct {
	BatchID     uuid.UUID
	Filename    string
	RecordCount int
	CreatedAt   time.Time
}

// BatchSummary is one row of the batch listing, with its record count.
type BatchSummary struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type BatchRepository interface {
	ImportBatchData(ctx context.Context, userID uuid.UUID, filename string, rows []models.ValidatedWasteRow) (*ImportBatchResult, error)
	GetFilteredBatches(userID uuid.UUID, pageSize int, offset int) ([]BatchSummary, int64, error)
	SoftDeleteBatch(batchID uuid.UUID, userID uuid.UUID) (bool, error)
}

type batchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{
		db: db,
	}
}

// ImportBatchData creates the batch row and every waste record in one
// transaction. Either the whole batch commits or none of it does.
func (r *batchRepository) ImportBatchData(
	ctx context.Context,
	userID uuid.UUID,
	filename string,
	rows []models.ValidatedWasteRow,
) (*ImportBatchResult, error) {
	var result *ImportBatchResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch := models.Batch{
			UserID:   userID,
			Filename: filename,
			Status:   models.ActiveBatchStatus,
		}
		if err := tx.Create(&batch).Error; err != nil {
			return err
		}

		var wasteTypes []models.WasteType
		if err := tx.Find(&wasteTypes).Error; err != nil {
			return err
		}
		wasteTypeIDs := make(map[string]uuid.UUID, len(wasteTypes))
		for _, wt := range wasteTypes {
			wasteTypeIDs[strings.ToLower(wt.Name)] = wt.ID
		}

		locationIDs := make(map[string]uuid.UUID)
		records := make([]models.WasteRecord, 0, len(rows))
		for _, row := range rows {
			wasteTypeID, ok := wasteTypeIDs[row.WasteType]
			if !ok {
				return fmt.Errorf("unknown waste type %q", row.WasteType)
			}

			locationID, ok := locationIDs[row.Location]
			if !ok {
				var location models.Location
				err := tx.Where("name = ?", row.Location).
					FirstOrCreate(&location, models.Location{Name: row.Location}).Error
				if err != nil {
					return err
				}
				locationID = location.ID
				locationIDs[row.Location] = locationID
			}

			date, err := time.ParseInLocation("2006-01-02", row.Date, utils.DateLocation)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", row.Date, err)
			}

			records = append(records, models.WasteRecord{
				BatchID:     batch.ID,
				Date:        date,
				WasteTypeID: wasteTypeID,
				LocationID:  locationID,
				Quantity:    row.Quantity,
			})
		}

		if err := tx.CreateInBatches(records, 200).Error; err != nil {
			return err
		}

		result = &ImportBatchResult{
			BatchID:     batch.ID,
			Filename:    batch.Filename,
			RecordCount: len(records),
			CreatedAt:   batch.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetFilteredBatches returns the user's active batches, newest first,
// with per-batch record counts.
func (r *batchRepository) GetFilteredBatches(userID uuid.UUID, pageSize int, offset int) ([]BatchSummary, int64, error) {
	var total int64
	err := r.db.Model(&models.Batch{}).
		Where("user_id = ? AND status = ?", userID, models.ActiveBatchStatus).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var summaries []BatchSummary
	err = r.db.Table("batches").
		Select("batches.id, batches.filename, batches.created_at, COUNT(waste_records.id) AS record_count").
		Joins("LEFT JOIN waste_records ON waste_records.batch_id = batches.id").
		Where("batches.user_id = ? AND batches.status = ?", userID, models.ActiveBatchStatus).
		Group("batches.id, batches.filename, batches.created_at").
		Order("batches.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Scan(&summaries).Error
	if err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

// SoftDeleteBatch flips an active batch to deleted status. Returns false
// when the batch does not exist, is already deleted, or belongs to someone
// else.
func (r *batchRepository) SoftDeleteBatch(batchID uuid.UUID, userID uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Batch{}).
		Where("id = ? AND user_id = ? AND status = ?", batchID, userID, models.ActiveBatchStatus).
		Update("status", models.DeletedBatchStatus)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
