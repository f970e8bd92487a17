package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	storagecategory "github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name        string   `json:"name" required:"true" minLength:"1" doc:"Category name"`
	ParentID    string   `json:"parentId,omitempty" format:"uuid" doc:"Parent category UUID"`
	Keywords    []string `json:"keywords,omitempty" doc:"Match terms for automatic categorization"`
	BudgetShare string   `json:"budgetShare,omitempty" doc:"Suggested share of income, a fraction"`
	SortOrder   int      `json:"sortOrder,omitempty" minimum:"0"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryResponseBody is the response body for creating a category.
type CreateCategoryResponseBody struct {
	ID string `json:"id" doc:"Category UUID"`
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   CreateCategoryResponseBody
}

// categoryCreator is the interface for creating categories.
type categoryCreator interface {
	CreateCategory(ctx context.Context, create *storagecategory.Create) (uuid.UUID, error)
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create category",
		Description:   "Creates a user category. User categories are matched after system categories.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateCategoryInput parses and validates the API input into a storage create.
func parseCreateCategoryInput(input *CreateCategoryInput) (*storagecategory.Create, error) {
	create := &storagecategory.Create{
		Name:      input.Body.Name,
		Keywords:  input.Body.Keywords,
		SortOrder: input.Body.SortOrder,
	}

	if input.Body.ParentID != "" {
		parentID, err := uuid.FromString(input.Body.ParentID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid parentId", err)
		}
		create.ParentID = uuid.NullUUID{UUID: parentID, Valid: true}
	}

	if input.Body.BudgetShare != "" {
		share, err := decimal.NewFromString(input.Body.BudgetShare)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid budgetShare", err)
		}
		create.BudgetShare = decimal.NewNullDecimal(share)
	}

	return create, nil
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	create, err := parseCreateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	id, err := h.CategoryService.CreateCategory(ctx, create)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create category", err)
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   CreateCategoryResponseBody{ID: id.String()},
	}, nil
}
