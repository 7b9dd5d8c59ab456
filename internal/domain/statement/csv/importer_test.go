package csv

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

func defaultMapping() statement.Mapping {
	return statement.Mapping{
		"date":        "Date",
		"amount":      "Amount",
		"description": "Description",
	}
}

func TestExtract(t *testing.T) {
	t.Run("remaps columns and normalizes values", func(t *testing.T) {
		data := `Date,Description,Amount
02/12/2025,TESCO STORES,"-£1,234.56"
03/12/2025,SALARY,1000.00`

		records, err := extract(strings.NewReader(data), defaultMapping())
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "02/12/2025", records[0].Date)
		assert.Equal(t, "TESCO STORES", records[0].Description)
		assert.Equal(t, "-1234.56", records[0].Amount)
		assert.Empty(t, records[0].Merchant)
		assert.Empty(t, records[0].PrimaryAccountHint)

		assert.Equal(t, "1000.00", records[1].Amount)
	})

	t.Run("parses day-first dates in mixed formats", func(t *testing.T) {
		data := `Date,Description,Amount
2025-12-02,ISO ROW,1.00
02-12-2025,DASH ROW,2.00
02 Dec 2025,TEXT ROW,3.00`

		records, err := extract(strings.NewReader(data), defaultMapping())
		require.NoError(t, err)
		require.Len(t, records, 3)
		for _, rec := range records {
			assert.Equal(t, "02/12/2025", rec.Date)
		}
	})

	t.Run("unparseable date keeps the row with an empty date", func(t *testing.T) {
		data := `Date,Description,Amount
not-a-date,MYSTERY,1.00`

		records, err := extract(strings.NewReader(data), defaultMapping())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Date)
	})

	t.Run("skips balance forward rows", func(t *testing.T) {
		data := `Date,Description,Amount
01/12/2025,BALANCE BROUGHT FORWARD,250.00
02/12/2025,REAL TRANSACTION,10.00
03/12/2025,Balance Carried Forward,260.00`

		records, err := extract(strings.NewReader(data), defaultMapping())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "REAL TRANSACTION", records[0].Description)
	})

	t.Run("ignore sentinel leaves fields empty", func(t *testing.T) {
		data := `Date,Description,Amount
02/12/2025,SHOP,5.00`

		mapping := defaultMapping()
		mapping["description"] = statement.Ignore
		records, err := extract(strings.NewReader(data), mapping)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].Description)
	})

	t.Run("account hint columns pass through", func(t *testing.T) {
		data := `Date,Amount,From,To
02/12/2025,5.00,Current Account,Groceries`

		mapping := statement.Mapping{
			"date":      "Date",
			"amount":    "Amount",
			"primary":   "From",
			"balancing": "To",
		}
		records, err := extract(strings.NewReader(data), mapping)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Current Account", records[0].PrimaryAccountHint)
		assert.Equal(t, "Groceries", records[0].BalancingAccountHint)
	})
}

func TestExtractTransactions(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ExtractTransactions(filepath.Join(t.TempDir(), "missing.csv"), defaultMapping())
		require.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("missing required mapping key", func(t *testing.T) {
		_, err := ExtractTransactions("whatever.csv", statement.Mapping{"date": "Date"})
		require.ErrorIs(t, err, statement.ErrMissingMapping)
	})
}
