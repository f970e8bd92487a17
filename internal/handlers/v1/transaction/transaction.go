package transaction

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                  string   `json:"id" doc:"Bank reference or content fingerprint"`
	Date                string   `json:"date" doc:"Booking date, YYYY-MM-DD"`
	Amount              string   `json:"amount" doc:"Signed decimal amount, negative for debits"`
	Description         string   `json:"description"`
	CounterpartyAccount string   `json:"counterpartyAccount,omitempty" doc:"IBAN of the other party"`
	CounterpartyName    string   `json:"counterpartyName,omitempty"`
	CategoryID          string   `json:"categoryId,omitempty" doc:"Category UUID, absent when uncategorized"`
	CategoryConfidence  *float64 `json:"categoryConfidence,omitempty" doc:"Keyword match confidence, absent for manual assignments"`
	CreatedAt           string   `json:"createdAt" doc:"RFC3339 ingestion time"`
}

// toTransaction maps a domain transaction to the API model.
func toTransaction(tx ledger.Transaction) Transaction {
	out := Transaction{
		ID:                  tx.ID,
		Date:                tx.Date.Format(time.DateOnly),
		Amount:              tx.Amount.String(),
		Description:         tx.Description,
		CounterpartyAccount: tx.CounterpartyAccount,
		CounterpartyName:    tx.CounterpartyName,
		CategoryConfidence:  tx.CategoryConfidence,
		CreatedAt:           tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID.Valid {
		out.CategoryID = tx.CategoryID.UUID.String()
	}
	return out
}
