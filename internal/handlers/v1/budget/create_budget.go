package budget

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	Name                  string `json:"name" required:"true" minLength:"1" doc:"Budget name"`
	CategoryID            string `json:"categoryId,omitempty" format:"uuid" doc:"Category UUID, omit for an overall budget"`
	Amount                string `json:"amount" required:"true" doc:"Period allowance, decimal"`
	Period                string `json:"period" required:"true" enum:"weekly,monthly,quarterly,yearly"`
	StartDate             string `json:"startDate" required:"true" format:"date" doc:"YYYY-MM-DD"`
	EndDate               string `json:"endDate,omitempty" format:"date" doc:"YYYY-MM-DD, must be after startDate"`
	NotificationThreshold string `json:"notificationThreshold,omitempty" doc:"Warning fraction in (0, 1], e.g. 0.8"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	Body CreateBudgetBody
}

// CreateBudgetResponseBody is the response body for creating a budget.
type CreateBudgetResponseBody struct {
	ID string `json:"id" doc:"Budget UUID"`
}

// CreateBudgetOutput is the Huma output for creating a budget.
type CreateBudgetOutput struct {
	Status int
	Body   CreateBudgetResponseBody
}

// budgetCreator is the interface for creating budgets.
type budgetCreator interface {
	CreateBudget(ctx context.Context, b ledger.Budget) (uuid.UUID, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budget",
		Summary:       "Create budget",
		Description:   "Creates a budget definition. Spent and remaining are derived on read.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateBudgetInput parses and validates the API input into a domain budget.
func parseCreateBudgetInput(input *CreateBudgetInput) (ledger.Budget, error) {
	b := ledger.Budget{Name: input.Body.Name}

	if input.Body.CategoryID != "" {
		categoryID, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
		}
		b.CategoryID = uuid.NullUUID{UUID: categoryID, Valid: true}
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	b.Amount = amount

	period, err := ledger.ParsePeriod(input.Body.Period)
	if err != nil {
		return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid period", err)
	}
	b.Period = period

	startDate, err := time.Parse(time.DateOnly, input.Body.StartDate)
	if err != nil {
		return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}
	b.StartDate = startDate

	if input.Body.EndDate != "" {
		endDate, err := time.Parse(time.DateOnly, input.Body.EndDate)
		if err != nil {
			return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
		}
		b.EndDate = &endDate
	}

	if input.Body.NotificationThreshold != "" {
		threshold, err := decimal.NewFromString(input.Body.NotificationThreshold)
		if err != nil {
			return ledger.Budget{}, huma.NewError(http.StatusBadRequest, "invalid notificationThreshold", err)
		}
		b.NotificationThreshold = decimal.NewNullDecimal(threshold)
	}

	return b, nil
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	b, err := parseCreateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	id, err := h.BudgetService.CreateBudget(ctx, b)
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return nil, huma.NewError(http.StatusBadRequest, validationErr.Error())
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create budget", err)
	}

	return &CreateBudgetOutput{
		Status: http.StatusCreated,
		Body:   CreateBudgetResponseBody{ID: id.String()},
	}, nil
}
