package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/service"
)

// SummaryResponseBody is the response body for the budget summary.
type SummaryResponseBody struct {
	TotalBudgets   int    `json:"totalBudgets"`
	ActiveBudgets  int    `json:"activeBudgets"`
	InWarning      int    `json:"inWarning" doc:"Active budgets past their notification threshold"`
	TotalBudgeted  string `json:"totalBudgeted" doc:"Sum of active budget allowances"`
	TotalSpent     string `json:"totalSpent"`
	TotalRemaining string `json:"totalRemaining"`
	SafeToSpend    string `json:"safeToSpend,omitempty" doc:"Absent without an overall budget"`
}

// SummaryOutput is the Huma output for the budget summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

// summaryReader is the interface for reading the budget summary.
type summaryReader interface {
	GetBudgetSummary(ctx context.Context) (*service.Summary, error)
}

// SummaryHandler handles GET /v1/budget/summary.
type SummaryHandler struct {
	BudgetService summaryReader
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(svc summaryReader) *SummaryHandler {
	return &SummaryHandler{BudgetService: svc}
}

// Register registers the budget summary endpoint with the Huma API.
func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget-summary",
		Method:      http.MethodGet,
		Path:        "/v1/budget/summary",
		Summary:     "Budget summary",
		Description: "Counts and totals across active budgets.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summary, err := h.BudgetService.GetBudgetSummary(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute budget summary", err)
	}

	resp := SummaryResponseBody{
		TotalBudgets:   summary.TotalBudgets,
		ActiveBudgets:  summary.ActiveBudgets,
		InWarning:      summary.InWarning,
		TotalBudgeted:  summary.TotalBudgeted.String(),
		TotalSpent:     summary.TotalSpent.String(),
		TotalRemaining: summary.TotalRemaining.String(),
	}
	if summary.HasOverall {
		resp.SafeToSpend = summary.SafeToSpend.String()
	}
	return &SummaryOutput{Body: resp}, nil
}
