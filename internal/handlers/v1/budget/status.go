package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// StatusResponseBody is the response body for the budget status listing.
type StatusResponseBody struct {
	Budgets     []Status `json:"budgets" doc:"Current-period state per budget"`
	SafeToSpend string   `json:"safeToSpend,omitempty" doc:"Overall allowance minus category spend, floored at zero; absent without an overall budget"`
}

// StatusOutput is the Huma output for the budget status listing.
type StatusOutput struct {
	Body StatusResponseBody
}

// statusReader is the interface for reading budget statuses.
type statusReader interface {
	GetBudgetStatus(ctx context.Context) (*service.StatusReport, error)
}

// StatusHandler handles GET /v1/budget/status.
type StatusHandler struct {
	BudgetService statusReader
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(svc statusReader) *StatusHandler {
	return &StatusHandler{BudgetService: svc}
}

// Register registers the budget status endpoint with the Huma API.
func (h *StatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-status",
		Method:      http.MethodGet,
		Path:        "/v1/budget/status",
		Summary:     "Budget status",
		Description: "Recomputes spent, remaining and threshold state for every budget's current period.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *StatusHandler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("budgetStatusMs")
	}
	report, err := h.BudgetService.GetBudgetStatus(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute budget status", err)
	}

	if logData != nil {
		logData.AddData("budgetCount", len(report.Statuses))
	}

	resp := StatusResponseBody{
		Budgets: make([]Status, len(report.Statuses)),
	}
	for i, s := range report.Statuses {
		resp.Budgets[i] = toStatus(s)
	}
	if report.HasOverall {
		resp.SafeToSpend = report.SafeToSpend.String()
	}
	return &StatusOutput{Body: resp}, nil
}
