package importer

import (
	"sort"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Assignment is a proposed category for one transaction. Categorization never
// mutates the transaction; the ledger applies the assignment.
type Assignment struct {
	CategoryID uuid.UUID
	Confidence float64
}

// RuleOrder returns the categories in their deterministic matching order:
// system categories first, then sort order, then name, then ID. The matching
// algorithm is specified against this explicit order, not against whatever
// iteration order a store happens to produce.
func RuleOrder(categories []ledger.Category) []ledger.Category {
	ordered := make([]ledger.Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.IsSystem != b.IsSystem {
			return a.IsSystem
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return ordered
}

// Categorize assigns a category to a transaction by ordered keyword matching.
// A keyword hits when it is a case-insensitive substring of the description
// or the counterparty name. The longest matching keyword wins; on equal
// length the earlier-ordered category wins. With no hit the fallback category
// is assigned with confidence zero, so every transaction leaves this stage
// categorized as long as the set carries a fallback.
func Categorize(t ledger.Transaction, categories []ledger.Category) (Assignment, bool) {
	description := strings.ToLower(t.Description)
	counterparty := strings.ToLower(t.CounterpartyName)

	var (
		best       Assignment
		bestLen    int
		fallback   uuid.UUID
		hasBest    bool
		hasFallbck bool
	)
	for _, c := range RuleOrder(categories) {
		if c.IsFallback && !hasFallbck {
			fallback = c.ID
			hasFallbck = true
		}
		for _, keyword := range c.Keywords {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw == "" {
				continue
			}
			if !strings.Contains(description, kw) && !strings.Contains(counterparty, kw) {
				continue
			}
			if len(kw) > bestLen {
				best = Assignment{CategoryID: c.ID, Confidence: 1.0}
				bestLen = len(kw)
				hasBest = true
			}
		}
	}

	if hasBest {
		return best, true
	}
	if hasFallbck {
		return Assignment{CategoryID: fallback, Confidence: 0}, true
	}
	return Assignment{}, false
}

// Apply writes an assignment onto a candidate.
func (a Assignment) Apply(c *Candidate) {
	c.CategoryID = uuid.NullUUID{UUID: a.CategoryID, Valid: true}
	confidence := a.Confidence
	c.CategoryConfidence = &confidence
}
