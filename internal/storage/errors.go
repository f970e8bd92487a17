package storage

// ConsistencyError reports a write that would break a ledger invariant, such
// as deleting the fallback category.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return "storage consistency: " + e.Reason
}
