// Package service orchestrates statement imports: parse a statement file
// into staging records, resolve the records to ledger accounts, and book
// them as balanced transactions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/penny-ledger/internal/domain/categorization"
	"github.com/FACorreiaa/penny-ledger/internal/domain/ledger"
	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
	csvimport "github.com/FACorreiaa/penny-ledger/internal/domain/statement/csv"
	excelimport "github.com/FACorreiaa/penny-ledger/internal/domain/statement/excel"
	pdfimport "github.com/FACorreiaa/penny-ledger/internal/domain/statement/pdf"
	"github.com/FACorreiaa/penny-ledger/pkg/money"
)

// ErrUnsupportedFileType indicates a statement extension no importer handles.
var ErrUnsupportedFileType = errors.New("unsupported statement file type")

// LedgerSink is the part of the ledger the importer needs: account lookup
// and the balanced-transaction commit.
type LedgerSink interface {
	ActiveAccounts(ctx context.Context) ([]ledger.Account, error)
	CreateTransaction(ctx context.Context, timestamp time.Time, description string,
		primaryAccountID int64, amountPennies int64, balancingAccountID int64) (*ledger.Transaction, error)
}

// Options configures one import run.
type Options struct {
	// Mapping applies to tabular statements (.csv, .xlsx); the PDF parser
	// needs none.
	Mapping statement.Mapping
	// DefaultPrimaryAccount books records with no primary hint, typically
	// the current account the statement belongs to.
	DefaultPrimaryAccount string
	// DefaultBalancingAccount books records with no balancing hint and no
	// keyword suggestion, e.g. an "Uncategorised" adjustment account.
	DefaultBalancingAccount string
}

// Result summarizes one import run. Skipped rows are routine (unresolvable
// accounts, incomplete records); their reasons are collected in Errors.
type Result struct {
	JobID        uuid.UUID
	RowsTotal    int
	RowsImported int
	RowsSkipped  int
	Errors       []string
}

// Service wires the statement importers to the ledger.
type Service struct {
	sink      LedgerSink
	suggester *categorization.Suggester
	logger    *slog.Logger
}

// NewService creates an import service. The suggester may be nil when no
// keyword rules are configured.
func NewService(sink LedgerSink, suggester *categorization.Suggester, logger *slog.Logger) *Service {
	return &Service{sink: sink, suggester: suggester, logger: logger}
}

// ParseStatement parses a statement file into staging records without
// touching the ledger, dispatching on the file extension.
func (s *Service) ParseStatement(path string, mapping statement.Mapping) ([]statement.StagingRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfimport.ExtractTransactions(path)
	case ".csv":
		return csvimport.ExtractTransactions(path, mapping)
	case ".xlsx":
		return excelimport.ExtractTransactions(path, mapping)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
	}
}

// Import parses a statement and books every resolvable record. Rows that
// cannot be resolved to two accounts, or that lack a date or amount, are
// skipped and reported; parser-level failures abort the run.
func (s *Service) Import(ctx context.Context, path string, opts Options) (*Result, error) {
	records, err := s.ParseStatement(path, opts.Mapping)
	if err != nil {
		return nil, err
	}

	accounts, err := s.sink.ActiveAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	names := make([]string, len(accounts))
	byName := make(map[string]ledger.Account, len(accounts))
	for i, a := range accounts {
		names[i] = a.Name
		byName[a.Name] = a
	}

	result := &Result{JobID: uuid.New(), RowsTotal: len(records)}

	skip := func(row int, reason string) {
		result.RowsSkipped++
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", row, reason))
	}

	for i, rec := range records {
		row := i + 1

		if !rec.Complete() {
			skip(row, "missing date or amount")
			continue
		}

		timestamp, err := time.Parse("02/01/2006", rec.Date)
		if err != nil {
			skip(row, fmt.Sprintf("invalid date %q", rec.Date))
			continue
		}

		pennies, err := money.ParsePennies(rec.Amount)
		if err != nil {
			skip(row, fmt.Sprintf("invalid amount %q", rec.Amount))
			continue
		}

		primary, ok := s.resolveAccount(rec.PrimaryAccountHint, opts.DefaultPrimaryAccount, names, byName)
		if !ok {
			skip(row, "no primary account resolved")
			continue
		}

		balancing, ok := s.resolveBalancing(rec, opts.DefaultBalancingAccount, names, byName)
		if !ok {
			skip(row, "no balancing account resolved")
			continue
		}

		description := rec.Description
		if description == "" {
			description = rec.Merchant
		}

		if _, err := s.sink.CreateTransaction(ctx, timestamp, description, primary.ID, pennies, balancing.ID); err != nil {
			// A failed commit is not a row problem; stop rather than
			// booking a partial statement silently.
			return nil, fmt.Errorf("book row %d: %w", row, err)
		}
		result.RowsImported++
	}

	s.logger.Info("statement imported",
		"jobID", result.JobID,
		"path", path,
		"total", result.RowsTotal,
		"imported", result.RowsImported,
		"skipped", result.RowsSkipped,
	)
	return result, nil
}

// resolveAccount picks the account for a hint, falling back to the default
// name. Hints resolve exactly first, then fuzzily against active account
// names.
func (s *Service) resolveAccount(hint, fallback string, names []string, byName map[string]ledger.Account) (ledger.Account, bool) {
	for _, candidate := range []string{hint, fallback} {
		if candidate == "" {
			continue
		}
		if resolved, ok := categorization.ResolveAccountName(candidate, names); ok {
			return byName[resolved], true
		}
		s.logger.Warn("account hint did not resolve", "hint", candidate)
	}
	return ledger.Account{}, false
}

// resolveBalancing resolves the balancing side: explicit hint, then keyword
// suggestion from the description, then the configured default.
func (s *Service) resolveBalancing(rec statement.StagingRecord, fallback string, names []string, byName map[string]ledger.Account) (ledger.Account, bool) {
	if rec.BalancingAccountHint != "" {
		if resolved, ok := categorization.ResolveAccountName(rec.BalancingAccountHint, names); ok {
			return byName[resolved], true
		}
		s.logger.Warn("balancing hint did not resolve", "hint", rec.BalancingAccountHint)
	}

	if s.suggester != nil {
		if suggested, ok := s.suggester.Suggest(rec.Description); ok {
			if resolved, ok := categorization.ResolveAccountName(suggested, names); ok {
				return byName[resolved], true
			}
			s.logger.Warn("suggested account does not exist", "account", suggested)
		}
	}

	if fallback != "" {
		if resolved, ok := categorization.ResolveAccountName(fallback, names); ok {
			return byName[resolved], true
		}
	}
	return ledger.Account{}, false
}
