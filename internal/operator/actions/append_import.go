package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// AppendImport admits a batch of candidates to the ledger. The dedup check
// and the inserts run inside the same transaction, so a concurrent reader
// sees either none of the batch or all of it.
type AppendImport struct {
	Candidates []importer.Candidate

	// Set by Perform.
	Inserted   int
	Duplicates int
}

func (a *AppendImport) Perform(ctx context.Context, writer *storage.Writer) error {
	ids := make([]string, len(a.Candidates))
	for i, c := range a.Candidates {
		ids[i] = c.ID
	}
	existing, err := writer.Transaction.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}

	kept, duplicates := importer.Dedup(a.Candidates, existing)
	for _, c := range kept {
		if err := writer.Transaction.Insert(ctx, c.Transaction); err != nil {
			return err
		}
	}

	a.Inserted = len(kept)
	a.Duplicates = duplicates
	return nil
}
