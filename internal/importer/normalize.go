package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Candidate is a normalized transaction that has not been admitted to the
// ledger yet. Row points back at the source data row for reporting.
type Candidate struct {
	ledger.Transaction
	Reference string // bank-assigned external reference, may be empty
	Row       int
}

// ProgressFunc reports incremental parse progress as (rows done, rows total).
// Total is -1 while unknown.
type ProgressFunc func(done, total int)

// Normalize parses raw export content into transaction candidates. Rows that
// fail to parse are skipped and reported; only file-level problems (or a file
// where every row fails) return a *ParseError.
func Normalize(content string, schema Schema, progress ProgressFunc) ([]Candidate, []RowError, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, &ParseError{Reason: "file is empty"}
	}

	delimiter := schema.Delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(firstLine(content))
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &ParseError{Reason: "cannot read header row: " + err.Error()}
	}

	cols := schema.Columns.resolve(header)
	if cols.date < 0 {
		return nil, nil, &ParseError{Reason: "no date column found in header"}
	}
	if cols.amount < 0 {
		return nil, nil, &ParseError{Reason: "no amount column found in header"}
	}

	var (
		candidates []Candidate
		rowErrs    []RowError
		row        int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			rowErrs = append(rowErrs, rowErrorf(row, "malformed row: %v", err))
			continue
		}

		candidate, rerr := parseRow(record, cols, schema, row)
		if rerr != nil {
			rowErrs = append(rowErrs, *rerr)
		} else {
			candidates = append(candidates, candidate)
		}

		if progress != nil {
			progress(row, -1)
		}
	}

	if row == 0 {
		return nil, nil, &ParseError{Reason: "file contains no data rows"}
	}
	if len(candidates) == 0 {
		return nil, rowErrs, &ParseError{Reason: "no rows could be parsed"}
	}
	return candidates, rowErrs, nil
}

// ValidateHeader checks that the minimum recognized columns resolve against
// the file's header row. It returns the logical names that are missing.
func ValidateHeader(content string, schema Schema) ([]string, error) {
	delimiter := schema.Delimiter
	if delimiter == 0 {
		delimiter = DetectDelimiter(firstLine(content))
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Reason: "cannot read header row: " + err.Error()}
	}

	cols := schema.Columns.resolve(header)
	var missing []string
	for _, check := range []struct {
		name  string
		index int
	}{
		{"date", cols.date},
		{"description", cols.description},
		{"amount", cols.amount},
		{"direction", cols.direction},
	} {
		if check.index < 0 {
			missing = append(missing, check.name)
		}
	}
	return missing, nil
}

func parseRow(record []string, cols columns, schema Schema, row int) (Candidate, *RowError) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return collapseWhitespace(record[i])
	}

	dateStr := field(cols.date)
	if dateStr == "" {
		e := rowErrorf(row, "date is empty")
		return Candidate{}, &e
	}
	date, ok := parseDate(dateStr, schema.DateLayouts)
	if !ok {
		e := rowErrorf(row, "unparseable date %q", dateStr)
		return Candidate{}, &e
	}

	amountStr := field(cols.amount)
	if amountStr == "" {
		e := rowErrorf(row, "amount is empty")
		return Candidate{}, &e
	}
	amount, err := parseAmount(amountStr, schema.DecimalComma)
	if err != nil {
		e := rowErrorf(row, "unparseable amount %q", amountStr)
		return Candidate{}, &e
	}
	if amount.IsZero() {
		e := rowErrorf(row, "amount is zero")
		return Candidate{}, &e
	}

	// An explicit direction column wins over the literal sign.
	switch strings.ToLower(field(cols.direction)) {
	case "af", "debit":
		amount = amount.Abs().Neg()
	case "bij", "credit":
		amount = amount.Abs()
	}

	name := field(cols.description)
	description := assembleDescription(name, field(cols.kind), field(cols.notes))

	return Candidate{
		Transaction: ledger.Transaction{
			Date:                date,
			Amount:              amount,
			Description:         description,
			CounterpartyAccount: field(cols.counterpartyAccount),
			CounterpartyName:    name,
		},
		Reference: field(cols.reference),
		Row:       row,
	}, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseAmount(s string, decimalComma bool) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, " ", "")
	if decimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	return decimal.NewFromString(s)
}

// assembleDescription joins the name, mutation kind and notes the way the
// source exports read best. "GT" is the generic giro kind and adds nothing.
func assembleDescription(name, kind, notes string) string {
	var parts []string
	if name != "" {
		parts = append(parts, name)
	}
	if kind != "" && !strings.EqualFold(kind, "GT") {
		parts = append(parts, kind)
	}
	if notes != "" {
		parts = append(parts, notes)
	}
	if len(parts) == 0 {
		return "Onbekende transactie"
	}
	return strings.Join(parts, " - ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstLine(content string) string {
	if i := strings.IndexAny(content, "\r\n"); i >= 0 {
		return content[:i]
	}
	return content
}
