package analysis

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/analysis"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// SpendingBody is the request body for a spending analysis.
type SpendingBody struct {
	From      string `json:"from" required:"true" format:"date" doc:"Window start, inclusive"`
	To        string `json:"to" required:"true" format:"date" doc:"Window end, exclusive"`
	Tolerance string `json:"tolerance,omitempty" doc:"Trend dead zone as a fraction, defaults to 0.03"`
}

// SpendingInput is the Huma input for a spending analysis.
type SpendingInput struct {
	Body SpendingBody
}

// CategorySpend is the API model for one category's share of spending.
type CategorySpend struct {
	CategoryID       string `json:"categoryId,omitempty" doc:"Category UUID, absent for the uncategorized bucket"`
	Name             string `json:"name"`
	Amount           string `json:"amount" doc:"Absolute spend in the window"`
	Percentage       string `json:"percentage" doc:"Share of total expense, 0-100 with two decimals"`
	TransactionCount int    `json:"transactionCount"`
}

// SpendingResponseBody is the response body for a spending analysis.
type SpendingResponseBody struct {
	TotalIncome   string          `json:"totalIncome"`
	TotalExpense  string          `json:"totalExpense" doc:"Absolute sum of debits"`
	Net           string          `json:"net" doc:"Income minus expense, may be negative"`
	TopCategories []CategorySpend `json:"topCategories"`
	Trend         string          `json:"trend" enum:"increasing,decreasing,stable" doc:"Expense trend versus the preceding window"`
}

// SpendingOutput is the Huma output for a spending analysis.
type SpendingOutput struct {
	Body SpendingResponseBody
}

// spendingReporter is the interface for computing spending reports.
type spendingReporter interface {
	SpendingReport(ctx context.Context, from, to time.Time, tolerance decimal.Decimal) (*analysis.Report, error)
}

// SpendingHandler handles POST /v1/analysis/spending.
type SpendingHandler struct {
	AnalysisService spendingReporter
}

// NewSpendingHandler creates a new SpendingHandler.
func NewSpendingHandler(svc spendingReporter) *SpendingHandler {
	return &SpendingHandler{AnalysisService: svc}
}

// Register registers the spending analysis endpoint with the Huma API.
func (h *SpendingHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-spending",
		Method:      http.MethodPost,
		Path:        "/v1/analysis/spending",
		Summary:     "Spending analysis",
		Description: "Income, expense, top categories and expense trend for a date window.",
		Tags:        []string{"Analysis"},
	}, h.handle)
}

// parseSpendingInput parses and validates the API input.
func parseSpendingInput(input *SpendingInput) (from, to time.Time, tolerance decimal.Decimal, err error) {
	from, err = time.Parse(time.DateOnly, input.Body.From)
	if err != nil {
		return time.Time{}, time.Time{}, decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid from date", err)
	}
	to, err = time.Parse(time.DateOnly, input.Body.To)
	if err != nil {
		return time.Time{}, time.Time{}, decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid to date", err)
	}
	if input.Body.Tolerance != "" {
		tolerance, err = decimal.NewFromString(input.Body.Tolerance)
		if err != nil {
			return time.Time{}, time.Time{}, decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid tolerance", err)
		}
	}
	return from, to, tolerance, nil
}

func (h *SpendingHandler) handle(ctx context.Context, input *SpendingInput) (*SpendingOutput, error) {
	logData := logging.GetLogData(ctx)
	from, to, tolerance, err := parseSpendingInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("spendingAnalysisMs")
	}
	report, err := h.AnalysisService.SpendingReport(ctx, from, to, tolerance)
	if stopTimer != nil {
		stopTimer()
	}
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return nil, huma.NewError(http.StatusBadRequest, validationErr.Error())
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute spending analysis", err)
	}

	if logData != nil {
		logData.AddData("topCategoryCount", len(report.TopCategories))
	}

	resp := SpendingResponseBody{
		TotalIncome:   report.TotalIncome.String(),
		TotalExpense:  report.TotalExpense.String(),
		Net:           report.Net.String(),
		TopCategories: make([]CategorySpend, len(report.TopCategories)),
		Trend:         string(report.Trend),
	}
	for i, c := range report.TopCategories {
		resp.TopCategories[i] = CategorySpend{
			CategoryID:       c.CategoryID,
			Name:             c.Name,
			Amount:           c.Amount.String(),
			Percentage:       c.Percentage.String(),
			TransactionCount: c.TransactionCount,
		}
	}
	return &SpendingOutput{Body: resp}, nil
}
