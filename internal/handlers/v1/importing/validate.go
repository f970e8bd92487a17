package importing

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/importer"
)

// ValidateBody is the request body for validating an export's structure.
type ValidateBody struct {
	Content string           `json:"content" required:"true" minLength:"1" doc:"Raw export file content, UTF-8"`
	Schema  *SchemaOverrides `json:"schema,omitempty" doc:"Parser overrides, defaults match the Dutch bank layout"`
}

// ValidateInput is the Huma input for validating an export's structure.
type ValidateInput struct {
	Body ValidateBody
}

// ValidateResponseBody is the response body for validating an export's structure.
type ValidateResponseBody struct {
	Valid   bool     `json:"valid" doc:"True when all minimum recognized columns resolve"`
	Missing []string `json:"missing,omitempty" doc:"Logical names of the columns that did not resolve"`
}

// ValidateOutput is the Huma output for validating an export's structure.
type ValidateOutput struct {
	Body ValidateResponseBody
}

// structureValidator is the interface for checking an export header.
type structureValidator interface {
	ValidateStructure(content string, schema importer.Schema) ([]string, error)
}

// ValidateHandler handles POST /v1/import/validate.
type ValidateHandler struct {
	ImportService structureValidator
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(svc structureValidator) *ValidateHandler {
	return &ValidateHandler{ImportService: svc}
}

// Register registers the validate endpoint with the Huma API.
func (h *ValidateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-import",
		Method:      http.MethodPost,
		Path:        "/v1/import/validate",
		Summary:     "Validate export structure",
		Description: "Checks that the file header carries the minimum recognized columns before a full import.",
		Tags:        []string{"Import"},
	}, h.handle)
}

func (h *ValidateHandler) handle(ctx context.Context, input *ValidateInput) (*ValidateOutput, error) {
	missing, err := h.ImportService.ValidateStructure(input.Body.Content, input.Body.Schema.schema())
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "unreadable file header", err)
	}

	return &ValidateOutput{Body: ValidateResponseBody{
		Valid:   len(missing) == 0,
		Missing: missing,
	}}, nil
}
