package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type Reader struct {
	Transactions *transaction.Reader
	Categories   *category.Reader
	Budgets      *budget.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: transaction.NewReader(exec),
		Categories:   category.NewReader(exec),
		Budgets:      budget.NewReader(exec),
	}
}
