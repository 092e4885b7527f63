package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"waste-tracking-backend/batches/repositories"
	"waste-tracking-backend/batches/services"
	"waste-tracking-backend/config"
	"waste-tracking-backend/db/models"
	"waste-tracking-backend/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	config.Logger = zap.NewNop()
	m.Run()
}

type fakeUserRepo struct {
	user *models.User
	err  error
}

func (f *fakeUserRepo) CreateUser(user *models.User) (*models.User, error) { return user, nil }
func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error)  { return f.user, f.err }
func (f *fakeUserRepo) GetUserByID(id uuid.UUID) (*models.User, error)     { return f.user, f.err }
func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	return nil
}

type fakeDictionaryLister struct {
	wasteTypes []models.WasteType
	err        error
}

func (f *fakeDictionaryLister) GetAllWasteTypes() ([]models.WasteType, error) {
	return f.wasteTypes, f.err
}

type fakeImporter struct {
	result *repositories.ImportBatchResult
	err    error
}

func (f *fakeImporter) ImportBatchData(ctx context.Context, userID uuid.UUID, filename string, rows []models.ValidatedWasteRow) (*repositories.ImportBatchResult, error) {
	return f.result, f.err
}

func setupImportApp(t *testing.T, lister *fakeDictionaryLister, importer *fakeImporter) *fiber.App {
	t.Helper()

	user := &models.User{ID: uuid.New(), Email: "analyst@example.com"}
	controller := &BatchController{
		BatchService: services.NewBatchService(lister, importer),
		UserRepo:     &fakeUserRepo{user: user},
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &token.Payload{ID: uuid.New(), Email: user.Email})
		return c.Next()
	})
	app.Post("/api/v1/batches/import", controller.ImportBatch)

	return app
}

func multipartCSVRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestImportBatchEndpoint_Success(t *testing.T) {
	importer := &fakeImporter{
		result: &repositories.ImportBatchResult{
			BatchID:     uuid.New(),
			Filename:    "waste.csv",
			RecordCount: 2,
			CreatedAt:   time.Now(),
		},
	}
	lister := &fakeDictionaryLister{wasteTypes: []models.WasteType{
		{ID: uuid.New(), Name: "plastic"},
		{ID: uuid.New(), Name: "paper"},
	}}
	app := setupImportApp(t, lister, importer)

	csvContent := "date,waste_type,location,quantity\n" +
		"2023-01-01,plastic,warsaw,100\n" +
		"2023-01-02,paper,krakow,200\n"
	resp, err := app.Test(multipartCSVRequest(t, "waste.csv", csvContent))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Import successful", body["message"])

	batch, ok := body["batch"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "waste.csv", batch["filename"])
	assert.Equal(t, "active", batch["status"])
	assert.Equal(t, float64(2), batch["recordCount"])
	assert.NotEmpty(t, batch["id"])
	assert.NotEmpty(t, batch["createdAt"])
}

func TestImportBatchEndpoint_ValidationErrorsAre400(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError string
	}{
		{
			name:      "empty file",
			content:   "date,waste_type,location,quantity\n",
			wantError: "File contains no valid records.",
		},
		{
			name:      "missing columns",
			content:   "date,quantity\n2023-01-01,5\n",
			wantError: "Missing required columns: waste_type, location.",
		},
		{
			name:      "bad row",
			content:   "date,waste_type,location,quantity\n2023-01-01,plastic,warsaw,zero\n",
			wantError: "Invalid data format in row 2: quantity must be a positive integer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeDictionaryLister{wasteTypes: []models.WasteType{{ID: uuid.New(), Name: "plastic"}}}
			app := setupImportApp(t, lister, &fakeImporter{})

			resp, err := app.Test(multipartCSVRequest(t, "waste.csv", tt.content))

			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestImportBatchEndpoint_NonCSVRejected(t *testing.T) {
	lister := &fakeDictionaryLister{wasteTypes: []models.WasteType{{ID: uuid.New(), Name: "plastic"}}}
	app := setupImportApp(t, lister, &fakeImporter{})

	resp, err := app.Test(multipartCSVRequest(t, "report.pdf", "%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid file type. Only CSV files are allowed.", body["error"])
}

func TestImportBatchEndpoint_NoFileRejected(t *testing.T) {
	lister := &fakeDictionaryLister{wasteTypes: []models.WasteType{{ID: uuid.New(), Name: "plastic"}}}
	app := setupImportApp(t, lister, &fakeImporter{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches/import", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "No file uploaded.", body["error"])
}

func TestImportBatchEndpoint_ReferenceFetchFailureIs500(t *testing.T) {
	lister := &fakeDictionaryLister{err: errors.New("connection refused")}
	app := setupImportApp(t, lister, &fakeImporter{})

	csvContent := "date,waste_type,location,quantity\n2023-01-01,plastic,warsaw,1\n"
	resp, err := app.Test(multipartCSVRequest(t, "waste.csv", csvContent))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Internal Server Error", body["error"])
	assert.Equal(t, "Failed to fetch waste types: connection refused", body["message"])
}

func TestImportBatchEndpoint_PersistenceFailureIs500(t *testing.T) {
	lister := &fakeDictionaryLister{wasteTypes: []models.WasteType{{ID: uuid.New(), Name: "plastic"}}}
	app := setupImportApp(t, lister, &fakeImporter{err: errors.New("deadlock detected")})

	csvContent := "date,waste_type,location,quantity\n2023-01-01,plastic,warsaw,1\n"
	resp, err := app.Test(multipartCSVRequest(t, "waste.csv", csvContent))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Failed to import batch: deadlock detected", body["message"])
}
