package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"waste-tracking-backend/utils"
	"waste-tracking-backend/wastedata/repositories"

	"github.com/google/uuid"
)

// ErrAIService marks failures of the report generator so the HTTP layer can
// answer 503 instead of 500.
var ErrAIService = errors.New("AI service error")

var validGroupByValues = []string{"month", "type", "location"}

var groupByDescriptions = map[string]string{
	"month":    "monthly distribution over time",
	"type":     "waste type categories",
	"location": "different locations/facilities",
}

// RequestValidationError marks bad query input (HTTP 400).
type RequestValidationError struct {
	msg string
}

func (e *RequestValidationError) Error() string {
	return e.msg
}

func requestErrorf(format string, args ...interface{}) error {
	return &RequestValidationError{msg: fmt.Sprintf(format, args...)}
}

// SummaryParams are the raw query parameters of a summary request.
type SummaryParams struct {
	GroupBy      string
	StartDate    string
	EndDate      string
	WasteTypeIDs string // comma-joined uuids
	LocationIDs  string // comma-joined uuids
}

// ReportGenerator is the slice of the AI client the report flow needs.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, prompt string) (string, error)
}

type WasteDataService struct {
	wasteDataRepo repositories.WasteDataRepository
	generator     ReportGenerator
}

func NewWasteDataService(wasteDataRepo repositories.WasteDataRepository, generator ReportGenerator) *WasteDataService {
	return &WasteDataService{
		wasteDataRepo: wasteDataRepo,
		generator:     generator,
	}
}

// GetSummary validates the query parameters and returns the aggregated
// {label, value} series for the user's active batches.
func (s *WasteDataService) GetSummary(params SummaryParams, userID uuid.UUID) ([]repositories.SummaryItem, error) {
	query, err := buildSummaryQuery(params)
	if err != nil {
		return nil, err
	}

	items, err := s.wasteDataRepo.GetSummary(userID, *query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waste data summary: %w", err)
	}
	if items == nil {
		items = []repositories.SummaryItem{}
	}
	return items, nil
}

// GenerateAiReport runs the same aggregation and asks the AI generator for
// a short management-facing summary of it.
func (s *WasteDataService) GenerateAiReport(ctx context.Context, params SummaryParams, userID uuid.UUID) (string, error) {
	items, err := s.GetSummary(params, userID)
	if err != nil {
		return "", err
	}

	prompt := BuildReportPrompt(params.GroupBy, items)

	report, err := s.generator.GenerateReport(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: unable to generate report: %v", ErrAIService, err)
	}
	if strings.TrimSpace(report) == "" {
		return "", fmt.Errorf("%w: generator returned empty report", ErrAIService)
	}

	return strings.TrimSpace(report), nil
}

// BuildReportPrompt formats the aggregated series into the analyst prompt.
func BuildReportPrompt(groupBy string, items []repositories.SummaryItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %d units", item.Label, item.Value))
	}
	dataString := strings.Join(lines, "\n")

	return fmt.Sprintf(`You are a professional waste management analyst providing concise, data-driven insights.

Analyze the following waste management data showing %s:

%s

Please provide a concise, professional summary report that includes:
1. Key trends and patterns observed
2. Notable highs and lows

Please be concise and to the point. Use markdown formatting for the report. Don't include any other text than the report. The report should be maximum 3 sentences.

Keep the report focused and actionable, suitable for management review.`, groupByDescriptions[groupBy], dataString)
}

func buildSummaryQuery(params SummaryParams) (*repositories.SummaryQuery, error) {
	groupByValid := false
	for _, v := range validGroupByValues {
		if params.GroupBy == v {
			groupByValid = true
			break
		}
	}
	if !groupByValid {
		return nil, requestErrorf("Invalid groupBy parameter. Must be one of: %s", strings.Join(validGroupByValues, ", "))
	}

	query := &repositories.SummaryQuery{GroupBy: params.GroupBy}

	if params.StartDate != "" {
		startDate, err := time.ParseInLocation("2006-01-02", params.StartDate, utils.DateLocation)
		if err != nil {
			return nil, requestErrorf("startDate must be in YYYY-MM-DD format")
		}
		query.StartDate = &startDate
	}
	if params.EndDate != "" {
		endDate, err := time.ParseInLocation("2006-01-02", params.EndDate, utils.DateLocation)
		if err != nil {
			return nil, requestErrorf("endDate must be in YYYY-MM-DD format")
		}
		query.EndDate = &endDate
	}
	if query.StartDate != nil && query.EndDate != nil && query.StartDate.After(*query.EndDate) {
		return nil, requestErrorf("Start date cannot be after end date")
	}

	wasteTypeIDs, err := parseIDList(params.WasteTypeIDs)
	if err != nil {
		return nil, requestErrorf("Invalid waste type ID: %v", err)
	}
	query.WasteTypeIDs = wasteTypeIDs

	locationIDs, err := parseIDList(params.LocationIDs)
	if err != nil {
		return nil, requestErrorf("Invalid location ID: %v", err)
	}
	query.LocationIDs = locationIDs

	return query, nil
}

func parseIDList(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%s", strings.TrimSpace(part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
