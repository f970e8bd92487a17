package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const exportContent = "Datum;Naam/Omschrijving;Tegenrekening;Af/Bij;Bedrag\n" +
	"15-01-2024;Albert Heijn;NL02INGB0987654321;Af;87,45\n" +
	"16-01-2024;Bakkerij Jansen;NL08KNAB0000000003;Af;4,50\n"

func testCategories() (groceries, fallback ledger.Category) {
	groceries = ledger.Category{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     "Boodschappen",
		Keywords: []string{"albert heijn"},
	}
	fallback = ledger.Category{
		ID:         uuid.Must(uuid.NewV4()),
		Name:       "Overig",
		IsFallback: true,
	}
	return groceries, fallback
}

func newImportTestService(catTable *mockCategoryTable, txTable *mockTransactionTable, proc *mockProcessor) *ImportService {
	store := &storage.Storage{Categories: catTable, Transactions: txTable}
	return NewImportService(store, proc, logging.SetupLogging())
}

func TestImport_Success(t *testing.T) {
	groceries, fallback := testCategories()

	catTable := new(mockCategoryTable)
	catTable.On("List", mock.Anything).Return([]ledger.Category{groceries, fallback}, nil)

	var batch []importer.Candidate
	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.AnythingOfType("*actions.AppendImport")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.AppendImport)
			batch = action.Candidates
			action.Inserted = len(action.Candidates)
		}).Return(nil)

	svc := newImportTestService(catTable, nil, proc)
	result, err := svc.Import(context.Background(), exportContent, importer.DefaultSchema())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.ImportedCount)
	assert.Zero(t, result.DuplicateCount)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)

	require.Len(t, batch, 2)
	assert.NotEmpty(t, batch[0].ID, "identity assigned before the append")
	require.True(t, batch[0].CategoryID.Valid)
	assert.Equal(t, groceries.ID, batch[0].CategoryID.UUID, "keyword match")
	require.True(t, batch[1].CategoryID.Valid)
	assert.Equal(t, fallback.ID, batch[1].CategoryID.UUID, "fallback for the unmatched row")
	require.NotNil(t, batch[1].CategoryConfidence)
	assert.Zero(t, *batch[1].CategoryConfidence)

	proc.AssertExpectations(t)
}

func TestImport_ParseFailureDoesNotTouchTheLedger(t *testing.T) {
	proc := new(mockProcessor)
	svc := newImportTestService(new(mockCategoryTable), nil, proc)

	result, err := svc.Import(context.Background(), "Datum;Bedrag\nnope;abc\n", importer.DefaultSchema())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Zero(t, result.ImportedCount)
	assert.NotEmpty(t, result.Warnings)
	proc.AssertNotCalled(t, "Process")
}

func TestImport_RowErrorsStillSucceed(t *testing.T) {
	_, fallback := testCategories()

	catTable := new(mockCategoryTable)
	catTable.On("List", mock.Anything).Return([]ledger.Category{fallback}, nil)

	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*actions.AppendImport).Inserted = 1
		}).Return(nil)

	content := "Datum;Naam/Omschrijving;Bedrag\n" +
		"15-01-2024;Geldig;-10,00\n" +
		"kapot;Ongeldig;-10,00\n"
	svc := newImportTestService(catTable, nil, proc)
	result, err := svc.Import(context.Background(), content, importer.DefaultSchema())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ImportedCount)
	assert.Equal(t, 2, result.TotalProcessed)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
}

func TestImport_NoFallbackWarns(t *testing.T) {
	groceries, _ := testCategories()

	catTable := new(mockCategoryTable)
	catTable.On("List", mock.Anything).Return([]ledger.Category{groceries}, nil)

	proc := new(mockProcessor)
	proc.On("Process", mock.Anything, mock.Anything).Return(nil)

	svc := newImportTestService(catTable, nil, proc)
	result, err := svc.Import(context.Background(), exportContent, importer.DefaultSchema())

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no fallback category")
}

func TestPreviewImport_DoesNotWrite(t *testing.T) {
	groceries, fallback := testCategories()

	catTable := new(mockCategoryTable)
	catTable.On("List", mock.Anything).Return([]ledger.Category{groceries, fallback}, nil)

	txTable := new(mockTransactionTable)
	txTable.On("ExistingIDs", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2
	})).Return(map[string]struct{}{}, nil).Once()

	proc := new(mockProcessor)
	svc := newImportTestService(catTable, txTable, proc)

	preview, err := svc.PreviewImport(context.Background(), exportContent, importer.DefaultSchema(), 1)

	require.NoError(t, err)
	assert.True(t, preview.Result.Success)
	assert.Equal(t, 2, preview.Result.ImportedCount)
	assert.Len(t, preview.Transactions, 1, "sample capped at the requested limit")
	proc.AssertNotCalled(t, "Process")
	txTable.AssertExpectations(t)
}

func TestPreviewImport_CountsLedgerDuplicates(t *testing.T) {
	groceries, fallback := testCategories()

	catTable := new(mockCategoryTable)
	catTable.On("List", mock.Anything).Return([]ledger.Category{groceries, fallback}, nil)

	txTable := new(mockTransactionTable)
	txTable.On("ExistingIDs", mock.Anything, mock.Anything).
		Return(map[string]struct{}{}, nil).
		Once()

	svc := newImportTestService(catTable, txTable, new(mockProcessor))
	first, err := svc.PreviewImport(context.Background(), exportContent, importer.DefaultSchema(), 10)
	require.NoError(t, err)
	require.Len(t, first.Transactions, 2)

	// Second preview with the first candidate already in the ledger.
	txTable.On("ExistingIDs", mock.Anything, mock.Anything).
		Return(map[string]struct{}{first.Transactions[0].ID: {}}, nil).
		Once()

	second, err := svc.PreviewImport(context.Background(), exportContent, importer.DefaultSchema(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Result.ImportedCount)
	assert.Equal(t, 1, second.Result.DuplicateCount)
}

func TestValidateStructure(t *testing.T) {
	svc := newImportTestService(new(mockCategoryTable), nil, new(mockProcessor))

	missing, err := svc.ValidateStructure(exportContent, importer.DefaultSchema())
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = svc.ValidateStructure("Datum;Bedrag\n", importer.DefaultSchema())
	require.NoError(t, err)
	assert.Contains(t, missing, "description")
}
