package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rabobankContent = "Datum;Naam/Omschrijving;Rekening;Tegenrekening;Code;Af/Bij;Bedrag;MutatieSoort;Mededelingen\n" +
	"15-01-2024;Albert Heijn;NL01RABO0123456789;NL02INGB0987654321;BA;Af;87,45;Betaalautomaat;Filiaal 1404\n" +
	"16-01-2024;Werkgever BV;NL01RABO0123456789;NL03ABNA0111111111;SB;Bij;2.500,00;GT;Salaris januari\n"

func TestNormalize_DutchExport(t *testing.T) {
	candidates, rowErrs, err := Normalize(rabobankContent, DefaultSchema(), nil)

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, candidates, 2)

	groceries := candidates[0]
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), groceries.Date)
	assert.True(t, groceries.Amount.Equal(decimal.RequireFromString("-87.45")), "Af makes the amount negative, got %s", groceries.Amount)
	assert.Equal(t, "Albert Heijn - Betaalautomaat - Filiaal 1404", groceries.Description)
	assert.Equal(t, "Albert Heijn", groceries.CounterpartyName)
	assert.Equal(t, "NL02INGB0987654321", groceries.CounterpartyAccount)
	assert.Equal(t, 1, groceries.Row)

	salary := candidates[1]
	assert.True(t, salary.Amount.Equal(decimal.RequireFromString("2500.00")), "thousands dot stripped, got %s", salary.Amount)
	// The GT mutation kind adds nothing to the description.
	assert.Equal(t, "Werkgever BV - Salaris januari", salary.Description)
}

func TestNormalize_DirectionOverridesLiteralSign(t *testing.T) {
	content := "Datum;Omschrijving;Bedrag;Af/Bij\n15-01-2024;Terugboeking;-25,00;Bij\n"

	candidates, rowErrs, err := Normalize(content, DefaultSchema(), nil)

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("25.00")),
		"Bij wins over the literal minus sign, got %s", candidates[0].Amount)
}

func TestNormalize_LiteralSignWithoutDirectionColumn(t *testing.T) {
	content := "Datum;Omschrijving;Bedrag\n15-01-2024;Huur;-850,00\n16-01-2024;Rente;1,23\n"

	candidates, _, err := Normalize(content, DefaultSchema(), nil)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.True(t, candidates[0].IsDebit())
	assert.False(t, candidates[1].IsDebit())
}

func TestNormalize_QuotedFields(t *testing.T) {
	content := "Datum,Omschrijving,Bedrag,Af/Bij\n" +
		"15-01-2024,\"Cafe \"\"De Zon\"\", Amsterdam\",\"1.250,50\",Af\n"

	candidates, rowErrs, err := Normalize(content, DefaultSchema(), nil)

	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, candidates, 1)
	assert.Equal(t, `Cafe "De Zon", Amsterdam`, candidates[0].Description)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("-1250.50")))
}

func TestNormalize_PartialFailureCollectsRowErrors(t *testing.T) {
	content := "Datum;Omschrijving;Bedrag;Af/Bij\n" +
		"15-01-2024;Geldig;10,00;Af\n" +
		"not-a-date;Ongeldig;10,00;Af\n" +
		"17-01-2024;Nulbedrag;0;Af\n" +
		"18-01-2024;Bedragloos;abc;Af\n"

	candidates, rowErrs, err := Normalize(content, DefaultSchema(), nil)

	require.NoError(t, err, "partial failure is still a successful parse")
	assert.Len(t, candidates, 1)
	require.Len(t, rowErrs, 3)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "unparseable date")
	assert.Equal(t, 3, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Reason, "zero")
	assert.Equal(t, 4, rowErrs[2].Row)
	assert.Contains(t, rowErrs[2].Reason, "unparseable amount")
}

func TestNormalize_ZeroValidRowsIsHardFailure(t *testing.T) {
	content := "Datum;Omschrijving;Bedrag\nnope;X;abc\n"

	candidates, rowErrs, err := Normalize(content, DefaultSchema(), nil)

	assert.Nil(t, candidates)
	assert.Len(t, rowErrs, 1, "row errors still reported alongside the hard failure")
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestNormalize_EmptyFile(t *testing.T) {
	_, _, err := Normalize("  \n", DefaultSchema(), nil)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestNormalize_MissingAmountColumn(t *testing.T) {
	_, _, err := Normalize("Datum;Omschrijving\n15-01-2024;X\n", DefaultSchema(), nil)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Reason, "amount")
}

func TestNormalize_ExplicitColumnIndexes(t *testing.T) {
	schema := DefaultSchema()
	schema.Columns.Date = ColumnSpec{Index: 1}
	schema.Columns.Amount = ColumnSpec{Index: 0}
	schema.Columns.Description = ColumnSpec{Index: 2}

	content := "bedrag_kolom|datum_kolom|tekst\n-12,34|15-01-2024|Testrij\n"
	candidates, _, err := Normalize(content, schema, nil)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Testrij", candidates[0].Description)
	assert.True(t, candidates[0].Amount.Equal(decimal.RequireFromString("-12.34")))
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	content := "Datum;Omschrijving;Bedrag\n15-01-2024;  Albert   Heijn \t 1404 ;-5,00\n"

	candidates, _, err := Normalize(content, DefaultSchema(), nil)

	require.NoError(t, err)
	assert.Equal(t, "Albert Heijn 1404", candidates[0].Description)
}

func TestNormalize_ProgressReported(t *testing.T) {
	var calls []int
	_, _, err := Normalize(rabobankContent, DefaultSchema(), func(done, total int) {
		calls = append(calls, done)
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, calls)
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("Datum;Naam;Bedrag"))
	assert.Equal(t, ',', DetectDelimiter("Datum,Naam,Bedrag"))
	assert.Equal(t, '|', DetectDelimiter("Datum|Naam|Bedrag"))
	assert.Equal(t, '\t', DetectDelimiter("Datum\tNaam\tBedrag"))
	// Quoted delimiters don't count toward the column tally.
	assert.Equal(t, ';', DetectDelimiter(`"Naam, voluit";Datum;Bedrag`))
}

func TestValidateHeader(t *testing.T) {
	missing, err := ValidateHeader(rabobankContent, DefaultSchema())
	assert.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = ValidateHeader("Datum;Bedrag\n", DefaultSchema())
	assert.NoError(t, err)
	assert.Equal(t, []string{"description", "direction"}, missing)
}
