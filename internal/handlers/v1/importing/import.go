package importing

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// ImportBody is the request body for importing a bank export.
type ImportBody struct {
	Content string           `json:"content" required:"true" minLength:"1" doc:"Raw export file content, UTF-8"`
	Schema  *SchemaOverrides `json:"schema,omitempty" doc:"Parser overrides, defaults match the Dutch bank layout"`
}

// ImportInput is the Huma input for importing a bank export.
type ImportInput struct {
	Body ImportBody
}

// ImportOutput is the Huma output for importing a bank export.
type ImportOutput struct {
	Body Result
}

// importRunner is the interface for running an import.
type importRunner interface {
	Import(ctx context.Context, content string, schema importer.Schema) (*importer.Result, error)
}

// ImportHandler handles POST /v1/import.
type ImportHandler struct {
	ImportService importRunner
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(svc importRunner) *ImportHandler {
	return &ImportHandler{ImportService: svc}
}

// Register registers the import endpoint with the Huma API.
func (h *ImportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Import bank export",
		Description: "Parses a delimited bank export and appends the new transactions to the ledger. Re-importing the same file is a no-op.",
		Tags:        []string{"Import"},
	}, h.handle)
}

func (h *ImportHandler) handle(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importMs")
	}
	result, err := h.ImportService.Import(ctx, input.Body.Content, input.Body.Schema.schema())
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to import transactions", err)
	}

	if logData != nil {
		logData.AddData("importedCount", result.ImportedCount)
		logData.AddData("duplicateCount", result.DuplicateCount)
		logData.AddData("rowErrorCount", len(result.Errors))
	}

	return &ImportOutput{Body: toResult(result)}, nil
}
