package transaction

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

type mockCategorySetter struct {
	mock.Mock
}

func (m *mockCategorySetter) SetCategory(ctx context.Context, id string, categoryID uuid.UUID) error {
	args := m.Called(ctx, id, categoryID)
	return args.Error(0)
}

func newSetCategoryTestAPI(t *testing.T, svc categorySetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSetCategoryHandler(svc).Register(api)
	return api
}

func TestHTTP_SetCategory(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategorySetter)
	mockSvc.On("SetCategory", mock.Anything, "NL-REF-001", categoryID).Return(nil)

	resp := newSetCategoryTestAPI(t, mockSvc).Patch("/v1/transaction/NL-REF-001/category", SetCategoryBody{
		CategoryID: categoryID.String(),
	})

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SetCategory_NotFound(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCategorySetter)
	mockSvc.On("SetCategory", mock.Anything, "missing", categoryID).Return(ledger.ErrNotFound)

	resp := newSetCategoryTestAPI(t, mockSvc).Patch("/v1/transaction/missing/category", SetCategoryBody{
		CategoryID: categoryID.String(),
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SetCategory_InvalidCategoryID(t *testing.T) {
	mockSvc := new(mockCategorySetter)

	resp := newSetCategoryTestAPI(t, mockSvc).Patch("/v1/transaction/NL-REF-001/category", SetCategoryBody{
		CategoryID: "not-a-uuid",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "SetCategory")
}
