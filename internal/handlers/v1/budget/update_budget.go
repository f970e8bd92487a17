package budget

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	storagebudget "github.com/carson-networks/ledger-server/internal/storage/budget"
)

// UpdateBudgetBody is the request body for updating a budget. Omitted fields
// keep their stored value; an empty-string endDate clears it.
type UpdateBudgetBody struct {
	Name                  *string `json:"name,omitempty" minLength:"1"`
	CategoryID            *string `json:"categoryId,omitempty" doc:"Category UUID, empty string makes the budget overall"`
	Amount                *string `json:"amount,omitempty" doc:"Period allowance, decimal"`
	Period                *string `json:"period,omitempty" enum:"weekly,monthly,quarterly,yearly"`
	StartDate             *string `json:"startDate,omitempty" format:"date"`
	EndDate               *string `json:"endDate,omitempty" doc:"YYYY-MM-DD, empty string clears the end date"`
	NotificationThreshold *string `json:"notificationThreshold,omitempty" doc:"Warning fraction in (0, 1], empty string clears it"`
}

// UpdateBudgetInput is the Huma input for updating a budget.
type UpdateBudgetInput struct {
	ID   string `path:"id" format:"uuid" doc:"Budget UUID"`
	Body UpdateBudgetBody
}

// UpdateBudgetOutput is the Huma output for updating a budget.
type UpdateBudgetOutput struct {
	Status int
}

// budgetUpdater is the interface for updating budgets.
type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id uuid.UUID, upd *storagebudget.Update) error
}

// UpdateBudgetHandler handles PUT /v1/budget/{id}.
type UpdateBudgetHandler struct {
	BudgetService budgetUpdater
}

// NewUpdateBudgetHandler creates a new UpdateBudgetHandler.
func NewUpdateBudgetHandler(svc budgetUpdater) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

// Register registers the update budget endpoint with the Huma API.
func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-budget",
		Method:        http.MethodPut,
		Path:          "/v1/budget/{id}",
		Summary:       "Update budget",
		Description:   "Changes a budget definition. Derived figures are never written.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

// parseUpdateBudgetInput parses and validates the API input into a storage update.
func parseUpdateBudgetInput(input *UpdateBudgetInput) (uuid.UUID, *storagebudget.Update, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid budget id", err)
	}

	upd := &storagebudget.Update{}
	if input.Body.Name != nil {
		upd.Name = omit.From(*input.Body.Name)
	}
	if input.Body.CategoryID != nil {
		var categoryID uuid.NullUUID
		if *input.Body.CategoryID != "" {
			parsed, err := uuid.FromString(*input.Body.CategoryID)
			if err != nil {
				return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
			}
			categoryID = uuid.NullUUID{UUID: parsed, Valid: true}
		}
		upd.CategoryID = omit.From(categoryID)
	}
	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		upd.Amount = omit.From(amount)
	}
	if input.Body.Period != nil {
		period, err := ledger.ParsePeriod(*input.Body.Period)
		if err != nil {
			return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid period", err)
		}
		upd.Period = omit.From(period)
	}
	if input.Body.StartDate != nil {
		startDate, err := time.Parse(time.DateOnly, *input.Body.StartDate)
		if err != nil {
			return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
		}
		upd.StartDate = omit.From(startDate)
	}
	if input.Body.EndDate != nil {
		if *input.Body.EndDate == "" {
			upd.EndDate = omit.From[*time.Time](nil)
		} else {
			endDate, err := time.Parse(time.DateOnly, *input.Body.EndDate)
			if err != nil {
				return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
			}
			upd.EndDate = omit.From(&endDate)
		}
	}
	if input.Body.NotificationThreshold != nil {
		var threshold decimal.NullDecimal
		if *input.Body.NotificationThreshold != "" {
			parsed, err := decimal.NewFromString(*input.Body.NotificationThreshold)
			if err != nil {
				return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid notificationThreshold", err)
			}
			threshold = decimal.NewNullDecimal(parsed)
		}
		upd.NotificationThreshold = omit.From(threshold)
	}

	return id, upd, nil
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	id, upd, err := parseUpdateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	err = h.BudgetService.UpdateBudget(ctx, id, upd)
	var validationErr *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return nil, huma.NewError(http.StatusNotFound, "budget not found")
	case errors.As(err, &validationErr):
		return nil, huma.NewError(http.StatusBadRequest, validationErr.Error())
	case err != nil:
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update budget", err)
	}

	return &UpdateBudgetOutput{Status: http.StatusNoContent}, nil
}
