package importing

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// SchemaOverrides tunes the parser for exports that deviate from the default
// Dutch bank layout.
type SchemaOverrides struct {
	Delimiter    string   `json:"delimiter,omitempty" maxLength:"1" doc:"Field delimiter, auto-detected when empty"`
	DateLayouts  []string `json:"dateLayouts,omitempty" doc:"Go time layouts tried in order"`
	DecimalComma *bool    `json:"decimalComma,omitempty" doc:"Treat comma as the decimal separator (European exports)"`
}

func (o *SchemaOverrides) schema() importer.Schema {
	s := importer.DefaultSchema()
	if o == nil {
		return s
	}
	if o.Delimiter != "" {
		s.Delimiter = []rune(o.Delimiter)[0]
	}
	if len(o.DateLayouts) > 0 {
		s.DateLayouts = o.DateLayouts
	}
	if o.DecimalComma != nil {
		s.DecimalComma = *o.DecimalComma
	}
	return s
}

// Result is the API response model for an import run.
type Result struct {
	Success        bool                `json:"success" doc:"False only when zero rows could be parsed"`
	ImportedCount  int                 `json:"importedCount" doc:"Rows appended to the ledger"`
	DuplicateCount int                 `json:"duplicateCount" doc:"Rows dropped as duplicates"`
	TotalProcessed int                 `json:"totalProcessed" doc:"Data rows processed"`
	Errors         []importer.RowError `json:"errors" doc:"Per-row failures with 1-based data row numbers"`
	Warnings       []string            `json:"warnings"`
}

func toResult(r *importer.Result) Result {
	return Result{
		Success:        r.Success,
		ImportedCount:  r.ImportedCount,
		DuplicateCount: r.DuplicateCount,
		TotalProcessed: r.TotalProcessed,
		Errors:         r.Errors,
		Warnings:       r.Warnings,
	}
}

// Transaction is the API response model for a previewed transaction.
type Transaction struct {
	ID                  string   `json:"id" doc:"Stable transaction identity"`
	Date                string   `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Amount              string   `json:"amount" doc:"Signed decimal amount, negative = expense"`
	Description         string   `json:"description"`
	CounterpartyAccount string   `json:"counterpartyAccount,omitempty"`
	CounterpartyName    string   `json:"counterpartyName,omitempty"`
	CategoryID          string   `json:"categoryId,omitempty"`
	CategoryConfidence  *float64 `json:"categoryConfidence,omitempty"`
}

func toTransaction(t ledger.Transaction) Transaction {
	out := Transaction{
		ID:                  t.ID,
		Date:                t.Date.Format(time.DateOnly),
		Amount:              t.Amount.String(),
		Description:         t.Description,
		CounterpartyAccount: t.CounterpartyAccount,
		CounterpartyName:    t.CounterpartyName,
		CategoryConfidence:  t.CategoryConfidence,
	}
	if t.CategoryID.Valid {
		out.CategoryID = t.CategoryID.UUID.String()
	}
	return out
}
