package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var columns = []string{
	"id", "date", "amount", "description",
	"counterparty_account", "counterparty_name",
	"category_id", "category_confidence", "created_at",
}

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	exprs := make([]any, len(columns))
	for i, c := range columns {
		exprs[i] = psql.Quote(c)
	}
	return sm.Columns(exprs...)
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (r *Reader) FindByID(ctx context.Context, id string) (*ledger.Transaction, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t := rowToTransaction(row)
	return &t, nil
}

// List returns transactions matching the filter. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]ledger.Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		selectColumns(),
		sm.From("transactions"),
	}
	if filter != nil {
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("date").LT(psql.Arg(*filter.To))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}

	result := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

// ListRange returns every transaction whose date falls in [from, to), ordered
// by date. Budget and analysis computations feed on this.
func (r *Reader) ListRange(ctx context.Context, from, to time.Time) ([]ledger.Transaction, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("transactions"),
		sm.Where(psql.Quote("date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("date").LT(psql.Arg(to))),
		sm.OrderBy("date").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}

	result := make([]ledger.Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result, nil
}

// ExistingIDs returns the subset of the given IDs already present in the
// ledger. The deduplicator checks candidate batches against this.
func (r *Reader) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	if len(ids) == 0 {
		return map[string]struct{}{}, nil
	}
	q := psql.Select(
		sm.Columns(psql.Quote("id")),
		sm.From("transactions"),
		sm.Where(psql.Raw("id = ANY(?)", pq.Array(ids))),
	)
	found, err := bob.All(ctx, r.exec, q, scan.SingleColumnMapper[string])
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}
