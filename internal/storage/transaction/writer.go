package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

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

var insertColumns = []string{
	"id", "date", "amount", "description",
	"counterparty_account", "counterparty_name",
	"category_id", "category_confidence",
}

// Insert appends one transaction. created_at is set by the database.
func (w *Writer) Insert(ctx context.Context, t ledger.Transaction) error {
	q := psql.Insert(
		im.Into("transactions", insertColumns...),
		im.Values(psql.Arg(
			t.ID,
			t.Date,
			t.Amount,
			t.Description,
			t.CounterpartyAccount,
			t.CounterpartyName,
			t.CategoryID,
			t.CategoryConfidence,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes a transaction by ID.
func (w *Writer) Delete(ctx context.Context, id string) error {
	q := psql.Delete(
		dm.From("transactions"),
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

// SetCategory overrides a transaction's category. A nil confidence marks the
// assignment as manual.
func (w *Writer) SetCategory(ctx context.Context, id string, categoryID uuid.UUID, confidence *float64) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("category_id").ToArg(categoryID),
		um.SetCol("category_confidence").ToArg(confidence),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
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
