package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"waste-tracking-backend/batches/repositories"
	"waste-tracking-backend/config"
	"waste-tracking-backend/db/models"
	"waste-tracking-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxImportRecords caps how many data rows a single CSV import may carry.
const maxImportRecords = 1000

// requiredColumns, in the canonical order used for the missing-columns error.
var requiredColumns = []string{"date", "waste_type", "location", "quantity"}

// WasteTypeLister is the slice of the dictionary repository the pipeline
// needs: a fresh waste-type vocabulary per import call.
type WasteTypeLister interface {
	GetAllWasteTypes() ([]models.WasteType, error)
}

// BatchImporter is the atomic persistence operation the pipeline ends with.
type BatchImporter interface {
	ImportBatchData(ctx context.Context, userID uuid.UUID, filename string, rows []models.ValidatedWasteRow) (*repositories.ImportBatchResult, error)
}

// ImportValidationError marks failures the caller should treat as bad input
// (HTTP 400) rather than server faults. The message is the user-facing text.
type ImportValidationError struct {
	msg string
}

func (e *ImportValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...interface{}) error {
	return &ImportValidationError{msg: fmt.Sprintf(format, args...)}
}

// BatchDto mirrors the batch shape returned to API consumers.
type BatchDto struct {
	ID          uuid.UUID          `json:"id"`
	Filename    string             `json:"filename"`
	Status      models.BatchStatus `json:"status"`
	RecordCount int                `json:"recordCount"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ImportBatchResponse is the success payload of an import call.
type ImportBatchResponse struct {
	Message string   `json:"message"`
	Batch   BatchDto `json:"batch"`
}

type BatchService struct {
	dictionaryRepo WasteTypeLister
	batchRepo      BatchImporter
}

func NewBatchService(dictionaryRepo WasteTypeLister, batchRepo BatchImporter) *BatchService {
	return &BatchService{
		dictionaryRepo: dictionaryRepo,
		batchRepo:      batchRepo,
	}
}

// ImportBatch validates an uploaded CSV of waste records and persists it as
// one new batch. Processing is strictly sequential and fail-fast: the first
// offending row aborts the whole import and nothing is persisted.
func (s *BatchService) ImportBatch(
	ctx context.Context,
	fileContent []byte,
	filename string,
	userID uuid.UUID,
) (*ImportBatchResponse, error) {
	headers, rows, err := parseCSV(fileContent)
	if err != nil {
		return nil, validationErrorf("CSV parsing failed: %v", err)
	}

	// Cheap rejects before any per-row work.
	if len(rows) > maxImportRecords {
		return nil, validationErrorf("File exceeds the %d record limit.", maxImportRecords)
	}
	if len(rows) == 0 {
		return nil, validationErrorf("File contains no valid records.")
	}

	if missing := missingRequiredColumns(headers); len(missing) > 0 {
		return nil, validationErrorf("Missing required columns: %s.", strings.Join(missing, ", "))
	}

	vocabulary, err := s.fetchWasteTypeVocabulary()
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch waste types: %v", err)
	}

	validatedRows, err := validateRows(rows, vocabulary)
	if err != nil {
		return nil, err
	}

	result, err := s.batchRepo.ImportBatchData(ctx, userID, filename, validatedRows)
	if err != nil {
		return nil, fmt.Errorf("Failed to import batch: %v", err)
	}

	config.Logger.Info("Batch imported",
		zap.String("batch_id", result.BatchID.String()),
		zap.String("filename", result.Filename),
		zap.Int("record_count", result.RecordCount),
	)

	return &ImportBatchResponse{
		Message: "Import successful",
		Batch: BatchDto{
			ID:          result.BatchID,
			Filename:    result.Filename,
			Status:      models.ActiveBatchStatus,
			RecordCount: result.RecordCount,
			CreatedAt:   result.CreatedAt,
		},
	}, nil
}

// parseCSV decodes the upload into a header list and one name→value map per
// data row. Header names are lower-cased and trimmed before use as keys;
// blank lines are skipped by the reader.
func parseCSV(content []byte) ([]string, []map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range record {
			row[headers[i]] = value
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// missingRequiredColumns lists absent required columns in canonical order.
func missingRequiredColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// wasteTypeVocabulary is an immutable per-call snapshot of the known
// waste-type names, lower-cased, preserving fetch order for error messages.
type wasteTypeVocabulary struct {
	names []string
	set   map[string]struct{}
}

func (v *wasteTypeVocabulary) contains(name string) bool {
	_, ok := v.set[name]
	return ok
}

func (v *wasteTypeVocabulary) String() string {
	return strings.Join(v.names, ", ")
}

func (s *BatchService) fetchWasteTypeVocabulary() (*wasteTypeVocabulary, error) {
	wasteTypes, err := s.dictionaryRepo.GetAllWasteTypes()
	if err != nil {
		return nil, err
	}

	vocabulary := &wasteTypeVocabulary{
		set: make(map[string]struct{}, len(wasteTypes)),
	}
	for _, wt := range wasteTypes {
		name := strings.ToLower(wt.Name)
		if _, seen := vocabulary.set[name]; seen {
			continue
		}
		vocabulary.set[name] = struct{}{}
		vocabulary.names = append(vocabulary.names, name)
	}
	return vocabulary, nil
}

// validateRows checks every row in file order and stops at the first bad
// one. Row numbers are 2-based: the header line is row 1.
func validateRows(rows []map[string]string, vocabulary *wasteTypeVocabulary) ([]models.ValidatedWasteRow, error) {
	today := utils.Today()

	validatedRows := make([]models.ValidatedWasteRow, 0, len(rows))
	for i, row := range rows {
		rowNumber := i + 2

		dateStr := strings.TrimSpace(row["date"])
		if dateStr == "" {
			return nil, validationErrorf("Invalid data format in row %d: date is required.", rowNumber)
		}

		date, err := time.ParseInLocation("2006-01-02", dateStr, utils.DateLocation)
		if err != nil {
			return nil, validationErrorf("Invalid data format in row %d: invalid date format. Use YYYY-MM-DD.", rowNumber)
		}

		if date.After(today) {
			return nil, validationErrorf("Invalid data format in row %d: date cannot be in the future.", rowNumber)
		}

		wasteTypeStr := strings.ToLower(strings.TrimSpace(row["waste_type"]))
		if wasteTypeStr == "" || !vocabulary.contains(wasteTypeStr) {
			// The offending value is rendered raw between plain quotes, not
			// Go-escaped; consumers match the message verbatim.
			return nil, validationErrorf(
				"Invalid value in row %d: unknown waste type \"%s\". Valid types: %s.",
				rowNumber, wasteTypeStr, vocabulary,
			)
		}

		quantityStr := strings.TrimSpace(row["quantity"])
		if quantityStr == "" {
			return nil, validationErrorf("Invalid data format in row %d: quantity is required.", rowNumber)
		}

		quantity, err := strconv.Atoi(quantityStr)
		if err != nil || quantity <= 0 {
			return nil, validationErrorf("Invalid data format in row %d: quantity must be a positive integer.", rowNumber)
		}

		locationStr := strings.ToLower(strings.TrimSpace(row["location"]))

		validatedRows = append(validatedRows, models.ValidatedWasteRow{
			Date:      date.Format("2006-01-02"),
			WasteType: wasteTypeStr,
			Location:  locationStr,
			Quantity:  quantity,
		})
	}

	return validatedRows, nil
}
