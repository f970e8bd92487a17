package budget

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Budget is the API response model for a budget definition.
type Budget struct {
	ID                    string `json:"id" doc:"Budget UUID"`
	Name                  string `json:"name"`
	CategoryID            string `json:"categoryId,omitempty" doc:"Category UUID, absent for the overall budget"`
	Amount                string `json:"amount" doc:"Period allowance, decimal"`
	Period                string `json:"period" enum:"weekly,monthly,quarterly,yearly"`
	StartDate             string `json:"startDate" doc:"YYYY-MM-DD"`
	EndDate               string `json:"endDate,omitempty" doc:"YYYY-MM-DD"`
	NotificationThreshold string `json:"notificationThreshold,omitempty" doc:"Warning fraction in (0, 1]"`
}

// Status is the API response model for a budget's current period state.
type Status struct {
	Budget           Budget `json:"budget"`
	PeriodStart      string `json:"periodStart" doc:"YYYY-MM-DD, inclusive"`
	PeriodEnd        string `json:"periodEnd" doc:"YYYY-MM-DD, exclusive"`
	IsActive         bool   `json:"isActive"`
	Spent            string `json:"spent" doc:"Decimal, always recomputed from the ledger"`
	Remaining        string `json:"remaining" doc:"Amount minus spent"`
	Utilization      string `json:"utilization" doc:"Spent divided by amount"`
	ThresholdCrossed bool   `json:"thresholdCrossed"`
}

func toBudget(b ledger.Budget) Budget {
	out := Budget{
		ID:        b.ID.String(),
		Name:      b.Name,
		Amount:    b.Amount.String(),
		Period:    string(b.Period),
		StartDate: b.StartDate.Format(time.DateOnly),
	}
	if b.CategoryID.Valid {
		out.CategoryID = b.CategoryID.UUID.String()
	}
	if b.EndDate != nil {
		out.EndDate = b.EndDate.Format(time.DateOnly)
	}
	if b.NotificationThreshold.Valid {
		out.NotificationThreshold = b.NotificationThreshold.Decimal.String()
	}
	return out
}

func toStatus(s ledger.Status) Status {
	return Status{
		Budget:           toBudget(s.Budget),
		PeriodStart:      s.Window.Start.Format(time.DateOnly),
		PeriodEnd:        s.Window.End.Format(time.DateOnly),
		IsActive:         s.IsActive,
		Spent:            s.Spent.String(),
		Remaining:        s.Remaining.String(),
		Utilization:      s.Utilization.String(),
		ThresholdCrossed: s.ThresholdCrossed,
	}
}
