package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// progressLogInterval is how often row progress is logged during a parse.
const progressLogInterval = 1000

const defaultPreviewLimit = 10

// ImportService runs the import pipeline: normalize, assign identities,
// categorize, then hand the batch to the operator for the atomic
// dedup-and-append.
type ImportService struct {
	storage  *storage.Storage
	operator actionProcessor
	logger   *logrus.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(store *storage.Storage, op actionProcessor, logger *logrus.Logger) *ImportService {
	return &ImportService{storage: store, operator: op, logger: logger}
}

// Preview is a dry run of an import: the pipeline output that would be
// committed, plus the first transactions for inspection.
type Preview struct {
	Result       importer.Result
	Transactions []ledger.Transaction
}

// Import parses raw export content and appends the surviving transactions to
// the ledger. Row-level failures are reported in the result, not as an error;
// the returned error is reserved for infrastructure problems.
func (s *ImportService) Import(ctx context.Context, content string, schema importer.Schema) (*importer.Result, error) {
	candidates, rowErrs, warnings, result, err := s.prepare(ctx, content, schema)
	if result != nil || err != nil {
		return result, err
	}

	action := &actions.AppendImport{Candidates: candidates}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"imported":   action.Inserted,
		"duplicates": action.Duplicates,
	}).Info("ImportService.Import.committed")

	return &importer.Result{
		Success:        true,
		ImportedCount:  action.Inserted,
		DuplicateCount: action.Duplicates,
		TotalProcessed: len(candidates) + len(rowErrs),
		Errors:         rowErrs,
		Warnings:       warnings,
	}, nil
}

// PreviewImport runs the pipeline without committing anything. The duplicate
// check reads the ledger but the batch is discarded afterwards.
func (s *ImportService) PreviewImport(ctx context.Context, content string, schema importer.Schema, limit int) (*Preview, error) {
	if limit <= 0 {
		limit = defaultPreviewLimit
	}

	candidates, rowErrs, warnings, result, err := s.prepare(ctx, content, schema)
	if err != nil {
		return nil, err
	}
	if result != nil {
		return &Preview{Result: *result}, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	existing, err := s.storage.Transactions.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	kept, duplicates := importer.Dedup(candidates, existing)

	sample := make([]ledger.Transaction, 0, limit)
	for _, c := range kept {
		if len(sample) == limit {
			break
		}
		sample = append(sample, c.Transaction)
	}

	return &Preview{
		Result: importer.Result{
			Success:        true,
			ImportedCount:  len(kept),
			DuplicateCount: duplicates,
			TotalProcessed: len(candidates) + len(rowErrs),
			Errors:         rowErrs,
			Warnings:       warnings,
		},
		Transactions: sample,
	}, nil
}

// ValidateStructure checks that the file header carries the minimum
// recognized columns. It returns the logical names of the missing ones.
func (s *ImportService) ValidateStructure(content string, schema importer.Schema) ([]string, error) {
	return importer.ValidateHeader(content, schema)
}

// prepare runs the read-only pipeline stages. A non-nil result means the file
// failed to parse entirely and the caller should return it as-is.
func (s *ImportService) prepare(ctx context.Context, content string, schema importer.Schema) ([]importer.Candidate, []importer.RowError, []string, *importer.Result, error) {
	progress := func(done, total int) {
		if done%progressLogInterval == 0 {
			s.logger.WithField("rows", done).Info("ImportService.parse.progress")
		}
	}

	candidates, rowErrs, err := importer.Normalize(content, schema, progress)
	var parseErr *importer.ParseError
	if errors.As(err, &parseErr) {
		return nil, nil, nil, &importer.Result{
			Success:        false,
			TotalProcessed: len(rowErrs),
			Errors:         rowErrs,
			Warnings:       []string{parseErr.Reason},
		}, nil
	}
	if err != nil {
		return nil, nil, nil, nil, err
	}

	importer.AssignIDs(candidates)

	categories, err := s.storage.Categories.List(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	uncategorized := 0
	for i := range candidates {
		assignment, ok := importer.Categorize(candidates[i].Transaction, categories)
		if !ok {
			uncategorized++
			continue
		}
		assignment.Apply(&candidates[i])
	}

	var warnings []string
	if uncategorized > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d transactions left uncategorized: no fallback category configured", uncategorized))
	}

	return candidates, rowErrs, warnings, nil, nil
}
