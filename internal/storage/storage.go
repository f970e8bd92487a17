package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Storage bundles the database handle with read-side table access. All writes
// go through the operator, which obtains a tx-scoped Writer via Write.
type Storage struct {
	DB           bob.DB
	Transactions transaction.Table
	Categories   category.Table
	Budgets      budget.Table
}

func NewStorage(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	bobDB := bob.NewDB(db)

	return &Storage{
		DB:           bobDB,
		Transactions: transaction.NewReader(bobDB),
		Categories:   category.NewReader(bobDB),
		Budgets:      budget.NewReader(bobDB),
	}, nil
}

// Write begins a database transaction and returns a Writer scoped to it. The
// caller owns Commit/Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}
