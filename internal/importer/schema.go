package importer

import "strings"

// ColumnSpec locates one logical field in the export. An explicit Index wins;
// otherwise the first alias found in the header row is used.
type ColumnSpec struct {
	Index   int      // 0-based position, -1 = resolve by alias
	Aliases []string // case-insensitive header names
}

// ColumnMap declares where each recognized field lives. Field positions vary
// by institution, so nothing here is hard-coded into the parser.
type ColumnMap struct {
	Date                ColumnSpec
	Description         ColumnSpec
	OwnAccount          ColumnSpec
	CounterpartyAccount ColumnSpec
	Direction           ColumnSpec
	Amount              ColumnSpec
	Kind                ColumnSpec
	Notes               ColumnSpec
	Reference           ColumnSpec
}

// Schema configures one import. Parsing is a pure function of the file content
// and this value; no locale or format state is read from anywhere else.
type Schema struct {
	// Delimiter of 0 means auto-detect from the header line.
	Delimiter rune
	// DateLayouts are tried in order.
	DateLayouts []string
	// DecimalComma treats "," as the decimal separator and "." as a
	// thousands separator (European exports).
	DecimalComma bool
	Columns      ColumnMap
}

func aliased(names ...string) ColumnSpec {
	return ColumnSpec{Index: -1, Aliases: names}
}

// DefaultSchema matches the Dutch bank export layout: semicolon-or-comma
// delimited, DD-MM-YYYY dates, decimal comma, Af/Bij direction column.
func DefaultSchema() Schema {
	return Schema{
		DateLayouts:  []string{"02-01-2006", "02/01/2006", "2006-01-02", "20060102", "02-01-06"},
		DecimalComma: true,
		Columns: ColumnMap{
			Date:                aliased("Datum"),
			Description:         aliased("Naam/Omschrijving", "Naam", "Omschrijving"),
			OwnAccount:          aliased("Rekening"),
			CounterpartyAccount: aliased("Tegenrekening"),
			Direction:           aliased("Af/Bij"),
			Amount:              aliased("Bedrag"),
			Kind:                aliased("MutatieSoort", "Mutatie"),
			Notes:               aliased("Mededelingen", "Mededeling"),
			Reference:           aliased("Volgnr", "Referentie"),
		},
	}
}

// columns indexes resolved field positions; -1 marks an absent column.
type columns struct {
	date, description, ownAccount, counterpartyAccount int
	direction, amount, kind, notes, reference          int
}

func (s ColumnSpec) resolve(headerIndex map[string]int) int {
	if s.Index >= 0 {
		return s.Index
	}
	for _, alias := range s.Aliases {
		if i, ok := headerIndex[strings.ToLower(alias)]; ok {
			return i
		}
	}
	return -1
}

func (m ColumnMap) resolve(header []string) columns {
	headerIndex := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := headerIndex[name]; !ok {
			headerIndex[name] = i
		}
	}
	return columns{
		date:                m.Date.resolve(headerIndex),
		description:         m.Description.resolve(headerIndex),
		ownAccount:          m.OwnAccount.resolve(headerIndex),
		counterpartyAccount: m.CounterpartyAccount.resolve(headerIndex),
		direction:           m.Direction.resolve(headerIndex),
		amount:              m.Amount.resolve(headerIndex),
		kind:                m.Kind.resolve(headerIndex),
		notes:               m.Notes.resolve(headerIndex),
		reference:           m.Reference.resolve(headerIndex),
	}
}

var delimiterCandidates = []rune{';', ',', '|', '\t'}

// DetectDelimiter picks the candidate producing the most columns in the
// header line, counting only separators outside quoted fields. Ties keep the
// earlier candidate, so semicolon beats comma on Dutch exports that quote
// comma-bearing amounts.
func DetectDelimiter(header string) rune {
	best := ','
	bestColumns := 1
	for _, cand := range delimiterCandidates {
		if n := countColumns(header, cand); n > bestColumns {
			best = cand
			bestColumns = n
		}
	}
	return best
}

func countColumns(line string, delim rune) int {
	n := 1
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == delim && !inQuotes:
			n++
		}
	}
	return n
}
