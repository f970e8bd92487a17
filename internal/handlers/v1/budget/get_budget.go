package budget

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// GetBudgetInput is the Huma input for fetching a budget.
type GetBudgetInput struct {
	ID string `path:"id" format:"uuid" doc:"Budget UUID"`
}

// GetBudgetOutput is the Huma output for fetching a budget.
type GetBudgetOutput struct {
	Body Budget
}

// budgetReader is the interface for fetching a single budget.
type budgetReader interface {
	GetBudget(ctx context.Context, id uuid.UUID) (*ledger.Budget, error)
}

// GetBudgetHandler handles GET /v1/budget/{id}.
type GetBudgetHandler struct {
	BudgetService budgetReader
}

// NewGetBudgetHandler creates a new GetBudgetHandler.
func NewGetBudgetHandler(svc budgetReader) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

// Register registers the get budget endpoint with the Huma API.
func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Get budget",
		Description: "Returns the budget definition only; use the status endpoint for derived figures.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, input *GetBudgetInput) (*GetBudgetOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid budget id", err)
	}

	b, err := h.BudgetService.GetBudget(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "budget not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to fetch budget", err)
	}

	return &GetBudgetOutput{Body: toBudget(*b)}, nil
}
