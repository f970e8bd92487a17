package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
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

// Insert creates a new budget and returns its generated ID. Only the budget
// definition is stored; spent and remaining are computed on read.
func (w *Writer) Insert(ctx context.Context, b ledger.Budget) (uuid.UUID, error) {
	var endDate any
	if b.EndDate != nil {
		endDate = *b.EndDate
	}
	q := psql.Insert(
		im.Into("budgets",
			"name", "category_id", "amount", "period",
			"start_date", "end_date", "notification_threshold",
		),
		im.Values(psql.Arg(
			b.Name,
			b.CategoryID,
			b.Amount,
			string(b.Period),
			b.StartDate,
			endDate,
			b.NotificationThreshold,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// Update applies the set fields of upd to a budget.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, upd *Update) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("budgets"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if upd.Name.IsValue() {
		mods = append(mods, um.SetCol("name").ToArg(upd.Name.MustGet()))
	}
	if upd.CategoryID.IsValue() {
		mods = append(mods, um.SetCol("category_id").ToArg(upd.CategoryID.MustGet()))
	}
	if upd.Amount.IsValue() {
		mods = append(mods, um.SetCol("amount").ToArg(upd.Amount.MustGet()))
	}
	if upd.Period.IsValue() {
		mods = append(mods, um.SetCol("period").ToArg(string(upd.Period.MustGet())))
	}
	if upd.StartDate.IsValue() {
		mods = append(mods, um.SetCol("start_date").ToArg(upd.StartDate.MustGet()))
	}
	if upd.EndDate.IsValue() {
		var endDate any
		if end := upd.EndDate.MustGet(); end != nil {
			endDate = *end
		}
		mods = append(mods, um.SetCol("end_date").ToArg(endDate))
	}
	if upd.NotificationThreshold.IsValue() {
		mods = append(mods, um.SetCol("notification_threshold").ToArg(upd.NotificationThreshold.MustGet()))
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

// Delete removes a budget by ID.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("budgets"),
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
