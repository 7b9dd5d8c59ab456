package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/penny-ledger/internal/domain/categorization"
	"github.com/FACorreiaa/penny-ledger/internal/domain/ledger"
	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()
	repo, err := ledger.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return ledger.NewService(repo, slog.Default())
}

func seedAccounts(t *testing.T, svc *ledger.Service) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.AddPrimaryAccount(ctx, "Current Account", ledger.TypeAsset)
	require.NoError(t, err)
	_, err = svc.AddBalancingAccount(ctx, "Groceries", ledger.TypeExpense)
	require.NoError(t, err)
	_, err = svc.AddBalancingAccount(ctx, "Salary", ledger.TypeIncome)
	require.NoError(t, err)
	_, err = svc.AddBalancingAccount(ctx, "Uncategorised", ledger.TypeAdjustment)
	require.NoError(t, err)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	suggester := categorization.NewSuggester([]categorization.Rule{
		{Keyword: "TESCO", AccountName: "Groceries"},
		{Keyword: "SALARY", AccountName: "Salary"},
	})

	mapping := statement.Mapping{
		"date":        "Date",
		"amount":      "Amount",
		"description": "Description",
	}

	t.Run("books resolvable rows and skips the rest", func(t *testing.T) {
		ledgerSvc := newLedger(t)
		seedAccounts(t, ledgerSvc)
		svc := NewService(ledgerSvc, suggester, slog.Default())

		path := writeCSV(t, `Date,Description,Amount
02/12/2025,CR SALARY ACME LTD,1000.00
02/12/2025,VIS TESCO STORES,-12.34
03/12/2025,BP PHONE,-19.99
bad-date,MYSTERY,-1.00`)

		result, err := svc.Import(ctx, path, Options{
			Mapping:                 mapping,
			DefaultPrimaryAccount:   "Current Account",
			DefaultBalancingAccount: "Uncategorised",
		})
		require.NoError(t, err)

		assert.Equal(t, 4, result.RowsTotal)
		assert.Equal(t, 3, result.RowsImported)
		assert.Equal(t, 1, result.RowsSkipped)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "missing date")
		assert.NotEqual(t, result.JobID.String(), "00000000-0000-0000-0000-000000000000")

		txs, err := ledgerSvc.Transactions(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 3)

		balances, err := ledgerSvc.Balances(ctx)
		require.NoError(t, err)
		byName := map[string]int64{}
		for _, b := range balances {
			byName[b.Account.Name] = b.BalancePennies
		}
		// Salary credit raises the current account, debits lower it; the
		// phone row lands on the default balancing account.
		assert.Equal(t, int64(100000-1234-1999), byName["Current Account"])
		assert.Equal(t, int64(1234), byName["Groceries"])
		assert.Equal(t, int64(-100000), byName["Salary"])
		assert.Equal(t, int64(1999), byName["Uncategorised"])
	})

	t.Run("explicit hints beat suggestions", func(t *testing.T) {
		ledgerSvc := newLedger(t)
		seedAccounts(t, ledgerSvc)
		svc := NewService(ledgerSvc, suggester, slog.Default())

		path := writeCSV(t, `Date,Description,Amount,To
02/12/2025,VIS TESCO STORES,-5.00,Uncategorised`)

		withHint := statement.Mapping{
			"date":        "Date",
			"amount":      "Amount",
			"description": "Description",
			"balancing":   "To",
		}
		result, err := svc.Import(ctx, path, Options{
			Mapping:               withHint,
			DefaultPrimaryAccount: "Current Account",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.RowsImported)

		balances, err := ledgerSvc.Balances(ctx)
		require.NoError(t, err)
		for _, b := range balances {
			if b.Account.Name == "Uncategorised" {
				assert.Equal(t, int64(500), b.BalancePennies)
			}
			if b.Account.Name == "Groceries" {
				assert.Zero(t, b.BalancePennies)
			}
		}
	})

	t.Run("unresolvable rows are skipped, not guessed", func(t *testing.T) {
		ledgerSvc := newLedger(t)
		seedAccounts(t, ledgerSvc)
		svc := NewService(ledgerSvc, nil, slog.Default())

		path := writeCSV(t, `Date,Description,Amount
02/12/2025,BP PHONE,-19.99`)

		result, err := svc.Import(ctx, path, Options{
			Mapping:               mapping,
			DefaultPrimaryAccount: "Current Account",
		})
		require.NoError(t, err)
		assert.Zero(t, result.RowsImported)
		assert.Equal(t, 1, result.RowsSkipped)
		assert.Contains(t, result.Errors[0], "balancing")
	})

	t.Run("unknown extension", func(t *testing.T) {
		svc := NewService(newLedger(t), nil, slog.Default())
		_, err := svc.Import(ctx, "statement.ods", Options{})
		require.ErrorIs(t, err, ErrUnsupportedFileType)
	})
}
