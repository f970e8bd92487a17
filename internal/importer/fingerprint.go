package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Fingerprint computes the content identity of a transaction: a SHA-256 over
// date, exact amount, normalized description and counterparty account.
//
// Two genuinely distinct transactions sharing all four fields (two identical
// coffee purchases on the same day, say) collide under this rule. That is an
// accepted risk when the bank supplies no external reference; it is not
// patched over with nondeterministic tie-breaking.
func Fingerprint(t ledger.Transaction) string {
	h := sha256.New()
	io.WriteString(h, t.Date.UTC().Format("2006-01-02"))
	h.Write([]byte{0x1f})
	io.WriteString(h, t.Amount.String())
	h.Write([]byte{0x1f})
	io.WriteString(h, t.Description)
	h.Write([]byte{0x1f})
	io.WriteString(h, t.CounterpartyAccount)
	return hex.EncodeToString(h.Sum(nil))
}

// AssignIDs gives every candidate its stable identity: the bank-assigned
// reference verbatim when present, the content fingerprint otherwise.
func AssignIDs(candidates []Candidate) {
	for i := range candidates {
		if candidates[i].Reference != "" {
			candidates[i].ID = candidates[i].Reference
		} else {
			candidates[i].ID = Fingerprint(candidates[i].Transaction)
		}
	}
}

// Dedup returns the candidates whose ID is neither in existing nor earlier in
// the same batch, plus the number of duplicates dropped. Candidates must have
// IDs assigned. Order is preserved, so reports stay reproducible.
func Dedup(candidates []Candidate, existing map[string]struct{}) ([]Candidate, int) {
	seen := make(map[string]struct{}, len(candidates))
	kept := make([]Candidate, 0, len(candidates))
	duplicates := 0
	for _, c := range candidates {
		if _, ok := existing[c.ID]; ok {
			duplicates++
			continue
		}
		if _, ok := seen[c.ID]; ok {
			duplicates++
			continue
		}
		seen[c.ID] = struct{}{}
		kept = append(kept, c)
	}
	return kept, duplicates
}
