package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var columns = []string{
	"id", "name", "parent_id", "keywords", "budget_share",
	"is_fallback", "is_system", "sort_order", "created_at",
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

// FindByID retrieves a category by primary key.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c := rowToCategory(row)
	return &c, nil
}

// List returns all categories in matching order: system categories first,
// then sort order, then name.
func (r *Reader) List(ctx context.Context) ([]ledger.Category, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("categories"),
		sm.OrderBy("is_system").Desc(),
		sm.OrderBy("sort_order").Asc(),
		sm.OrderBy("name").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}

	result := make([]ledger.Category, len(rows))
	for i, row := range rows {
		result[i] = rowToCategory(row)
	}
	return result, nil
}
