package category

import (
	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Category is the API response model for a category.
type Category struct {
	ID          string   `json:"id" doc:"Category UUID"`
	Name        string   `json:"name"`
	ParentID    string   `json:"parentId,omitempty" doc:"Parent category UUID, absent for top-level categories"`
	Keywords    []string `json:"keywords" doc:"Match terms for automatic categorization"`
	BudgetShare string   `json:"budgetShare,omitempty" doc:"Suggested share of income, a fraction"`
	IsFallback  bool     `json:"isFallback" doc:"Catch-all that receives unmatched transactions"`
	IsSystem    bool     `json:"isSystem" doc:"Shipped with the seed, matched before user categories"`
	SortOrder   int      `json:"sortOrder"`
}

// toCategory maps a domain category to the API model.
func toCategory(c ledger.Category) Category {
	out := Category{
		ID:         c.ID.String(),
		Name:       c.Name,
		Keywords:   c.Keywords,
		IsFallback: c.IsFallback,
		IsSystem:   c.IsSystem,
		SortOrder:  c.SortOrder,
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	if c.ParentID.Valid {
		out.ParentID = c.ParentID.UUID.String()
	}
	if c.BudgetShare.Valid {
		out.BudgetShare = c.BudgetShare.Decimal.String()
	}
	return out
}
