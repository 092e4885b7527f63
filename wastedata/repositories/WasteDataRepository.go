package repositories

import (
	"time"

	"waste-tracking-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SummaryQuery narrows the aggregation to a date range and dictionary ids.
// GroupBy is validated by the service layer before it reaches the repository.
type SummaryQuery struct {
	GroupBy      string
	StartDate    *time.Time
	EndDate      *time.Time
	WasteTypeIDs []uuid.UUID
	LocationIDs  []uuid.UUID
}

// SummaryItem is one aggregated point of a dashboard series.
type SummaryItem struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type WasteDataRepository interface {
	GetSummary(userID uuid.UUID, query SummaryQuery) ([]SummaryItem, error)
}

type wasteDataRepository struct {
	db *gorm.DB
}

func NewWasteDataRepository(db *gorm.DB) WasteDataRepository {
	return &wasteDataRepository{
		db: db,
	}
}

// GetSummary aggregates the user's waste records over their active batches,
// grouped by month (YYYY-MM), waste type name, or location name.
func (r *wasteDataRepository) GetSummary(userID uuid.UUID, query SummaryQuery) ([]SummaryItem, error) {
	q := r.db.Table("waste_records").
		Joins("JOIN batches ON batches.id = waste_records.batch_id").
		Where("batches.user_id = ? AND batches.status = ?", userID, models.ActiveBatchStatus)

	if query.StartDate != nil {
		q = q.Where("waste_records.date >= ?", query.StartDate.Format("2006-01-02"))
	}
	if query.EndDate != nil {
		q = q.Where("waste_records.date <= ?", query.EndDate.Format("2006-01-02"))
	}
	if len(query.WasteTypeIDs) > 0 {
		q = q.Where("waste_records.waste_type_id IN ?", query.WasteTypeIDs)
	}
	if len(query.LocationIDs) > 0 {
		q = q.Where("waste_records.location_id IN ?", query.LocationIDs)
	}

	switch query.GroupBy {
	case "month":
		q = q.Select("to_char(waste_records.date, 'YYYY-MM') AS label, SUM(waste_records.quantity) AS value").
			Group("to_char(waste_records.date, 'YYYY-MM')").
			Order("label ASC")
	case "type":
		q = q.Select("waste_types.name AS label, SUM(waste_records.quantity) AS value").
			Joins("JOIN waste_types ON waste_types.id = waste_records.waste_type_id").
			Group("waste_types.name").
			Order("label ASC")
	case "location":
		q = q.Select("locations.name AS label, SUM(waste_records.quantity) AS value").
			Joins("JOIN locations ON locations.id = waste_records.location_id").
			Group("locations.name").
			Order("label ASC")
	}

	var items []SummaryItem
	if err := q.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
