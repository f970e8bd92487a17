package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// SetCategoryBody is the request body for recategorizing a transaction.
type SetCategoryBody struct {
	CategoryID string `json:"categoryId" required:"true" format:"uuid" doc:"Category UUID to assign"`
}

// SetCategoryInput is the Huma input for recategorizing a transaction.
type SetCategoryInput struct {
	ID   string `path:"id" doc:"Transaction ID"`
	Body SetCategoryBody
}

// SetCategoryOutput is the Huma output for recategorizing a transaction.
type SetCategoryOutput struct {
	Status int
}

// categorySetter is the interface for overriding a transaction's category.
type categorySetter interface {
	SetCategory(ctx context.Context, id string, categoryID uuid.UUID) error
}

// SetCategoryHandler handles PATCH /v1/transaction/{id}/category.
type SetCategoryHandler struct {
	TransactionService categorySetter
}

// NewSetCategoryHandler creates a new SetCategoryHandler.
func NewSetCategoryHandler(svc categorySetter) *SetCategoryHandler {
	return &SetCategoryHandler{TransactionService: svc}
}

// Register registers the set category endpoint with the Huma API.
func (h *SetCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "set-transaction-category",
		Method:        http.MethodPatch,
		Path:          "/v1/transaction/{id}/category",
		Summary:       "Recategorize transaction",
		Description:   "Manually assigns a category, overriding any keyword match.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *SetCategoryHandler) handle(ctx context.Context, input *SetCategoryInput) (*SetCategoryOutput, error) {
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid categoryId", err)
	}

	err = h.TransactionService.SetCategory(ctx, input.ID, categoryID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "transaction or category not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to set category", err)
	}

	return &SetCategoryOutput{Status: http.StatusNoContent}, nil
}
