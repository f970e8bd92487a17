package importing

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/service"
)

// PreviewBody is the request body for previewing an import.
type PreviewBody struct {
	Content string           `json:"content" required:"true" minLength:"1" doc:"Raw export file content, UTF-8"`
	Schema  *SchemaOverrides `json:"schema,omitempty" doc:"Parser overrides, defaults match the Dutch bank layout"`
	Limit   int              `json:"limit,omitempty" minimum:"1" maximum:"100" doc:"Maximum sample transactions to return, default 10"`
}

// PreviewInput is the Huma input for previewing an import.
type PreviewInput struct {
	Body PreviewBody
}

// PreviewResponseBody is the response body for previewing an import.
type PreviewResponseBody struct {
	Result       Result        `json:"result" doc:"The result an actual import would report"`
	Transactions []Transaction `json:"transactions" doc:"Sample of the transactions that would be appended"`
}

// PreviewOutput is the Huma output for previewing an import.
type PreviewOutput struct {
	Body PreviewResponseBody
}

// importPreviewer is the interface for previewing an import.
type importPreviewer interface {
	PreviewImport(ctx context.Context, content string, schema importer.Schema, limit int) (*service.Preview, error)
}

// PreviewHandler handles POST /v1/import/preview.
type PreviewHandler struct {
	ImportService importPreviewer
}

// NewPreviewHandler creates a new PreviewHandler.
func NewPreviewHandler(svc importPreviewer) *PreviewHandler {
	return &PreviewHandler{ImportService: svc}
}

// Register registers the preview endpoint with the Huma API.
func (h *PreviewHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "preview-import",
		Method:      http.MethodPost,
		Path:        "/v1/import/preview",
		Summary:     "Preview import",
		Description: "Runs the import pipeline without committing anything.",
		Tags:        []string{"Import"},
	}, h.handle)
}

func (h *PreviewHandler) handle(ctx context.Context, input *PreviewInput) (*PreviewOutput, error) {
	preview, err := h.ImportService.PreviewImport(ctx, input.Body.Content, input.Body.Schema.schema(), input.Body.Limit)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to preview import", err)
	}

	resp := PreviewResponseBody{
		Result:       toResult(&preview.Result),
		Transactions: make([]Transaction, len(preview.Transactions)),
	}
	for i, t := range preview.Transactions {
		resp.Transactions[i] = toTransaction(t)
	}
	return &PreviewOutput{Body: resp}, nil
}
