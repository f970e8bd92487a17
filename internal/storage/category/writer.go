package category

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new category and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *Create) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("categories", "name", "parent_id", "keywords", "budget_share", "sort_order"),
		im.Values(psql.Arg(
			create.Name,
			create.ParentID,
			pq.StringArray(create.Keywords),
			create.BudgetShare,
			create.SortOrder,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// Update applies the set fields of upd to a category.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, upd *Update) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("categories"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if upd.Name.IsValue() {
		mods = append(mods, um.SetCol("name").ToArg(upd.Name.MustGet()))
	}
	if upd.ParentID.IsValue() {
		mods = append(mods, um.SetCol("parent_id").ToArg(upd.ParentID.MustGet()))
	}
	if upd.Keywords.IsValue() {
		mods = append(mods, um.SetCol("keywords").ToArg(pq.StringArray(upd.Keywords.MustGet())))
	}
	if upd.BudgetShare.IsValue() {
		mods = append(mods, um.SetCol("budget_share").ToArg(upd.BudgetShare.MustGet()))
	}
	if upd.SortOrder.IsValue() {
		mods = append(mods, um.SetCol("sort_order").ToArg(upd.SortOrder.MustGet()))
	}

	res, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// Delete removes a category by ID. Callers guard the fallback category; the
// ledger relies on exactly one existing.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ledger.ErrNotFound
	}
	return nil
}
