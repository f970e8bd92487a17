package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError rejects a budget definition at creation time, so period
// resolution and spend computation never have to handle malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid budget %s: %s", e.Field, e.Reason)
}

var one = decimal.NewFromInt(1)

// Validate checks a budget definition before it is accepted into the ledger.
func (b Budget) Validate() error {
	if b.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !b.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if _, err := ParsePeriod(string(b.Period)); err != nil {
		return &ValidationError{Field: "period", Reason: err.Error()}
	}
	if b.StartDate.IsZero() {
		return &ValidationError{Field: "startDate", Reason: "must be set"}
	}
	if b.EndDate != nil && !b.EndDate.After(b.StartDate) {
		return &ValidationError{Field: "endDate", Reason: "must be after startDate"}
	}
	if b.NotificationThreshold.Valid {
		t := b.NotificationThreshold.Decimal
		if !t.IsPositive() || t.GreaterThan(one) {
			return &ValidationError{Field: "notificationThreshold", Reason: "must be in (0, 1]"}
		}
	}
	return nil
}
