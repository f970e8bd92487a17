package ledger

import "errors"

// ErrNotFound is returned by lookups whose subject does not exist. Storage
// maps driver-level "no rows" onto this so callers never match on sql errors.
var ErrNotFound = errors.New("not found")
