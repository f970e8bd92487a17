package category

import (
	"context"
	"errors"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	storagecategory "github.com/carson-networks/ledger-server/internal/storage/category"
)

// UpdateCategoryBody is the request body for updating a category. Omitted
// fields keep their stored value.
type UpdateCategoryBody struct {
	Name        *string   `json:"name,omitempty" minLength:"1"`
	ParentID    *string   `json:"parentId,omitempty" doc:"Parent category UUID, empty string makes the category top-level"`
	Keywords    *[]string `json:"keywords,omitempty" doc:"Replaces the full keyword list"`
	BudgetShare *string   `json:"budgetShare,omitempty" doc:"Suggested share of income, empty string clears it"`
	SortOrder   *int      `json:"sortOrder,omitempty" minimum:"0"`
}

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	ID   string `path:"id" format:"uuid" doc:"Category UUID"`
	Body UpdateCategoryBody
}

// UpdateCategoryOutput is the Huma output for updating a category.
type UpdateCategoryOutput struct {
	Status int
}

// categoryUpdater is the interface for updating categories.
type categoryUpdater interface {
	UpdateCategory(ctx context.Context, id uuid.UUID, upd *storagecategory.Update) error
}

// UpdateCategoryHandler handles PUT /v1/category/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(svc categoryUpdater) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-category",
		Method:        http.MethodPut,
		Path:          "/v1/category/{id}",
		Summary:       "Update category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

// parseUpdateCategoryInput parses and validates the API input into a storage update.
func parseUpdateCategoryInput(input *UpdateCategoryInput) (uuid.UUID, *storagecategory.Update, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid category id", err)
	}

	upd := &storagecategory.Update{}
	if input.Body.Name != nil {
		upd.Name = omit.From(*input.Body.Name)
	}
	if input.Body.ParentID != nil {
		var parentID uuid.NullUUID
		if *input.Body.ParentID != "" {
			parsed, err := uuid.FromString(*input.Body.ParentID)
			if err != nil {
				return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid parentId", err)
			}
			parentID = uuid.NullUUID{UUID: parsed, Valid: true}
		}
		upd.ParentID = omit.From(parentID)
	}
	if input.Body.Keywords != nil {
		upd.Keywords = omit.From(*input.Body.Keywords)
	}
	if input.Body.BudgetShare != nil {
		var share decimal.NullDecimal
		if *input.Body.BudgetShare != "" {
			parsed, err := decimal.NewFromString(*input.Body.BudgetShare)
			if err != nil {
				return uuid.Nil, nil, huma.NewError(http.StatusBadRequest, "invalid budgetShare", err)
			}
			share = decimal.NewNullDecimal(parsed)
		}
		upd.BudgetShare = omit.From(share)
	}
	if input.Body.SortOrder != nil {
		upd.SortOrder = omit.From(*input.Body.SortOrder)
	}

	return id, upd, nil
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	id, upd, err := parseUpdateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	err = h.CategoryService.UpdateCategory(ctx, id, upd)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "category not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update category", err)
	}

	return &UpdateCategoryOutput{Status: http.StatusNoContent}, nil
}
