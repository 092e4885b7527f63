package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"waste-tracking-backend/db/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestImportBatchData_CommitsWholeBatch(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	userID := uuid.New()
	plasticID := uuid.New()
	paperID := uuid.New()
	warsawID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "waste_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "created_at"}).
			AddRow(plasticID, "plastic", true, time.Now()).
			AddRow(paperID, "paper", true, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "locations"`).
		WithArgs("warsaw", "warsaw", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(warsawID, "warsaw", time.Now()))
	mock.ExpectExec(`INSERT INTO "waste_records"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	rows := []models.ValidatedWasteRow{
		{Date: "2023-01-01", WasteType: "plastic", Location: "warsaw", Quantity: 100},
		{Date: "2023-01-02", WasteType: "paper", Location: "warsaw", Quantity: 200},
	}

	result, err := repo.ImportBatchData(context.Background(), userID, "waste.csv", rows)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, uuid.Nil, result.BatchID)
	assert.Equal(t, "waste.csv", result.Filename)
	assert.Equal(t, 2, result.RecordCount)
	assert.False(t, result.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchData_CreatesMissingLocation(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	plasticID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "waste_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "created_at"}).
			AddRow(plasticID, "plastic", true, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))
	mock.ExpectExec(`INSERT INTO "locations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "waste_records"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows := []models.ValidatedWasteRow{
		{Date: "2023-01-01", WasteType: "plastic", Location: "gdynia", Quantity: 5},
	}

	result, err := repo.ImportBatchData(context.Background(), uuid.New(), "waste.csv", rows)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchData_RollsBackWhenRecordInsertFails(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	plasticID := uuid.New()
	warsawID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "waste_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "created_at"}).
			AddRow(plasticID, "plastic", true, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "locations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(warsawID, "warsaw", time.Now()))
	mock.ExpectExec(`INSERT INTO "waste_records"`).
		WillReturnError(errors.New("value too long for type"))
	mock.ExpectRollback()

	rows := []models.ValidatedWasteRow{
		{Date: "2023-01-01", WasteType: "plastic", Location: "warsaw", Quantity: 1},
	}

	result, err := repo.ImportBatchData(context.Background(), uuid.New(), "waste.csv", rows)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportBatchData_RollsBackOnUnknownWasteType(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "batches"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "waste_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_active", "created_at"}).
			AddRow(uuid.New(), "plastic", true, time.Now()))
	mock.ExpectRollback()

	rows := []models.ValidatedWasteRow{
		{Date: "2023-01-01", WasteType: "glass", Location: "warsaw", Quantity: 1},
	}

	result, err := repo.ImportBatchData(context.Background(), uuid.New(), "waste.csv", rows)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown waste type "glass"`)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteBatch_Deleted(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	batchID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "batches" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := repo.SoftDeleteBatch(batchID, userID)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteBatch_NotFoundOrForeign(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "batches" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	deleted, err := repo.SoftDeleteBatch(uuid.New(), uuid.New())

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteBatch_DBError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "batches" SET`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	deleted, err := repo.SoftDeleteBatch(uuid.New(), uuid.New())

	require.Error(t, err)
	assert.False(t, deleted)
}

func TestGetFilteredBatches(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	userID := uuid.New()
	batchID := uuid.New()
	createdAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "batches"`)).
		WithArgs(userID, "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT batches\.id, batches\.filename, batches\.created_at, COUNT\(waste_records\.id\) AS record_count FROM "batches"`).
		WithArgs(userID, "active", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "created_at", "record_count"}).
			AddRow(batchID, "waste.csv", createdAt, 42))

	summaries, total, err := repo.GetFilteredBatches(userID, 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	assert.Equal(t, batchID, summaries[0].ID)
	assert.Equal(t, "waste.csv", summaries[0].Filename)
	assert.Equal(t, 42, summaries[0].RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFilteredBatches_CountError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewBatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "batches"`)).
		WillReturnError(errors.New("relation does not exist"))

	summaries, total, err := repo.GetFilteredBatches(uuid.New(), 10, 0)

	require.Error(t, err)
	assert.Nil(t, summaries)
	assert.Equal(t, int64(0), total)
}
