package importer

import (
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

func category(name string, keywords ...string) ledger.Category {
	return ledger.Category{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Keywords: keywords,
	}
}

func purchase(description, counterparty string) ledger.Transaction {
	return ledger.Transaction{
		Description:      description,
		CounterpartyName: counterparty,
		Amount:           decimal.RequireFromString("-10.00"),
	}
}

func TestCategorize_KeywordMatch(t *testing.T) {
	groceries := category("Boodschappen", "albert heijn", "jumbo")
	transport := category("Vervoer", "ns reizigers")

	a, ok := Categorize(purchase("Albert Heijn 1404 Utrecht", ""), []ledger.Category{groceries, transport})

	require.True(t, ok)
	assert.Equal(t, groceries.ID, a.CategoryID)
	assert.Equal(t, 1.0, a.Confidence)
}

func TestCategorize_MatchesCounterpartyName(t *testing.T) {
	streaming := category("Abonnementen", "spotify")

	a, ok := Categorize(purchase("Incasso 2024-01", "Spotify AB"), []ledger.Category{streaming})

	require.True(t, ok)
	assert.Equal(t, streaming.ID, a.CategoryID)
}

func TestCategorize_LongestKeywordWins(t *testing.T) {
	broad := category("Winkelen", "heijn")
	specific := category("Boodschappen", "albert heijn")

	a, ok := Categorize(purchase("Albert Heijn 1404", ""), []ledger.Category{broad, specific})

	require.True(t, ok)
	assert.Equal(t, specific.ID, a.CategoryID)
}

func TestCategorize_EqualLengthTiebreakIsDeterministic(t *testing.T) {
	first := category("Aaa", "jumbo")
	second := category("Bbb", "jumbo")

	for range 20 {
		a, ok := Categorize(purchase("Jumbo Leiden", ""), []ledger.Category{second, first})
		require.True(t, ok)
		// RuleOrder sorts by name, so "Aaa" is matched first regardless of
		// input order.
		assert.Equal(t, first.ID, a.CategoryID)
	}
}

func TestCategorize_SystemCategoriesMatchFirst(t *testing.T) {
	user := category("Mijn winkels", "jumbo")
	system := category("Boodschappen", "jumbo")
	system.IsSystem = true

	a, ok := Categorize(purchase("Jumbo Leiden", ""), []ledger.Category{user, system})

	require.True(t, ok)
	assert.Equal(t, system.ID, a.CategoryID)
}

func TestCategorize_FallbackWithZeroConfidence(t *testing.T) {
	groceries := category("Boodschappen", "albert heijn")
	other := category("Overig")
	other.IsFallback = true

	a, ok := Categorize(purchase("Bakkerij Jansen", ""), []ledger.Category{groceries, other})

	require.True(t, ok)
	assert.Equal(t, other.ID, a.CategoryID)
	assert.Zero(t, a.Confidence)
}

func TestCategorize_NoMatchNoFallback(t *testing.T) {
	groceries := category("Boodschappen", "albert heijn")

	_, ok := Categorize(purchase("Bakkerij Jansen", ""), []ledger.Category{groceries})

	assert.False(t, ok)
}

func TestCategorize_IgnoresBlankKeywords(t *testing.T) {
	noisy := category("Leeg", "", "  ")
	groceries := category("Boodschappen", "jumbo")

	a, ok := Categorize(purchase("Jumbo Leiden", ""), []ledger.Category{noisy, groceries})

	require.True(t, ok)
	assert.Equal(t, groceries.ID, a.CategoryID)
}

func TestRuleOrder_DoesNotMutateInput(t *testing.T) {
	a := category("Zzz")
	b := category("Aaa")
	input := []ledger.Category{a, b}

	ordered := RuleOrder(input)

	assert.Equal(t, "Aaa", ordered[0].Name)
	assert.Equal(t, "Zzz", input[0].Name, "input order untouched")
}

func TestAssignmentApply(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	c := candidate("2024-01-15", "-87.45", "Albert Heijn", "NL02INGB0987654321")

	Assignment{CategoryID: id, Confidence: 1.0}.Apply(&c)

	require.True(t, c.CategoryID.Valid)
	assert.Equal(t, id, c.CategoryID.UUID)
	require.NotNil(t, c.CategoryConfidence)
	assert.Equal(t, 1.0, *c.CategoryConfidence)
}
