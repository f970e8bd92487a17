package importer

import "fmt"

// ParseError is a file-level failure (unreadable content, no usable header,
// zero parseable rows). It aborts the whole import.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// RowError records one rejected row. Row errors are collected, never abort the
// import, and are surfaced in aggregate on the import result.
type RowError struct {
	Row    int    `json:"row" doc:"1-based data row index, header excluded"`
	Reason string `json:"reason" doc:"Why the row was rejected"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func rowErrorf(row int, format string, args ...any) RowError {
	return RowError{Row: row, Reason: fmt.Sprintf(format, args...)}
}
