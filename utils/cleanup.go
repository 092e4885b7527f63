package utils

import (
	"time"
	"waste-tracking-backend/config"
	"waste-tracking-backend/db/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deletedBatchRetention is how long soft-deleted batches are kept before
// they and their records are purged for good.
const deletedBatchRetention = 30 * 24 * time.Hour

// StartScheduledCleanup runs a daily job that purges batches soft-deleted
// longer than the retention window, together with their waste records.
func StartScheduledCleanup(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		if err := PurgeDeletedBatches(db); err != nil {
			config.Logger.Error("Scheduled batch cleanup failed", zap.Error(err))
		}
	})
	if err != nil {
		config.Logger.Error("Failed to schedule batch cleanup", zap.Error(err))
		return c
	}

	c.Start()
	config.Logger.Info("Scheduled daily cleanup of soft-deleted batches")
	return c
}

// PurgeDeletedBatches removes batches that have been in deleted status for
// longer than the retention window. Records go first to satisfy the FK.
func PurgeDeletedBatches(db *gorm.DB) error {
	cutoff := time.Now().Add(-deletedBatchRetention)

	return db.Transaction(func(tx *gorm.DB) error {
		var batchIDs []string
		err := tx.Model(&models.Batch{}).
			Where("status = ? AND updated_at < ?", models.DeletedBatchStatus, cutoff).
			Pluck("id", &batchIDs).Error
		if err != nil {
			return err
		}
		if len(batchIDs) == 0 {
			return nil
		}

		if err := tx.Where("batch_id IN ?", batchIDs).Delete(&models.WasteRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", batchIDs).Delete(&models.Batch{}).Error; err != nil {
			return err
		}

		config.Logger.Info("Purged soft-deleted batches",
			zap.Int("count", len(batchIDs)),
		)
		return nil
	})
}
